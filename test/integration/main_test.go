package integration

import (
	"fmt"
	"os"
	"testing"

	"github.com/coursio/streams-ms-go/test/testutil"
)

var redisAddr string

func TestMain(m *testing.M) {
	code := func() int {
		dbCleanup, err := setupMariaDB()
		if err != nil {
			fmt.Fprintf(os.Stderr, "DB setup failed: %v\n", err)
			return 1
		}
		defer dbCleanup()

		redisCleanup, err := setupRedis()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Redis setup failed: %v\n", err)
			return 1
		}
		defer redisCleanup()

		return m.Run()
	}()

	os.Exit(code)
}

func setupMariaDB() (cleanup func(), err error) {
	if os.Getenv("TEST_DB_DSN") != "" {
		// CI provided it; nothing to clean up
		return func() {}, nil
	}

	mdb, err := testutil.StartMariaDBContainer()
	if err != nil {
		return nil, err
	}

	os.Setenv("TEST_DB_DSN", mdb.DSN)

	return mdb.Cleanup, nil
}

func setupRedis() (cleanup func(), err error) {
	if addr := os.Getenv("TEST_REDIS_ADDR"); addr != "" {
		redisAddr = addr
		return func() {}, nil
	}

	rd, err := testutil.StartRedisContainer()
	if err != nil {
		return nil, err
	}
	redisAddr = rd.Addr

	return rd.Cleanup, nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func ptrString(s string) *string { return &s }
