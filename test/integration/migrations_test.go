package integration

import (
	"testing"

	"github.com/coursio/streams-ms-go/internal/migration"
	"github.com/coursio/streams-ms-go/test/testutil"
)

func TestMigrateUp(t *testing.T) {
	tdb, err := testutil.SetupTestDB()
	if err != nil {
		t.Fatalf("setup test DB: %v", err)
	}
	defer tdb.Cleanup()

	if err := migration.MigrateUp(tdb.DB); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	for _, table := range []string{"courses", "modules", "lessons", "enrollments"} {
		var name string
		err := tdb.DB.QueryRow("SHOW TABLES LIKE ?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %q missing after migration: %v", table, err)
		}
	}

	// a second run must be a no-op
	if err := migration.MigrateUp(tdb.DB); err != nil {
		t.Fatalf("migrate up second run: %v", err)
	}
}
