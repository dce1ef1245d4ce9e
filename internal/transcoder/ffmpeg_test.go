package transcoder

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteMasterPlaylist(t *testing.T) {
	tr := NewFFmpegTranscoder("ffmpeg", "ffprobe")
	path := filepath.Join(t.TempDir(), "lesson.m3u8")

	if err := tr.writeMasterPlaylist(path); err != nil {
		t.Fatalf("writeMasterPlaylist: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	content := string(data)

	if !strings.HasPrefix(content, "#EXTM3U") {
		t.Errorf("manifest does not start with #EXTM3U:\n%s", content)
	}
	for _, r := range DefaultLadder {
		if !strings.Contains(content, r.Name+".m3u8") {
			t.Errorf("manifest missing rendition URI %s.m3u8", r.Name)
		}
		if !strings.Contains(content, "RESOLUTION="+r.Resolution()) {
			t.Errorf("manifest missing RESOLUTION=%s", r.Resolution())
		}
	}
	if !strings.Contains(content, "BANDWIDTH=") {
		t.Error("manifest missing BANDWIDTH attributes")
	}
}

func TestDefaultLadder(t *testing.T) {
	if len(DefaultLadder) != 5 {
		t.Fatalf("ladder has %d renditions; want 5", len(DefaultLadder))
	}
	top := DefaultLadder[len(DefaultLadder)-1]
	if top.Resolution() != "1920x1080" || top.VideoBitrate != 4500 {
		t.Errorf("top rendition = %s @ %dkbps; want 1920x1080 @ 4500kbps", top.Resolution(), top.VideoBitrate)
	}
	if DefaultLadder[0].Bandwidth() != 314000 {
		t.Errorf("240p bandwidth = %d; want 314000", DefaultLadder[0].Bandwidth())
	}
}

func TestParseProbeDuration(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"90.048000\n", 90.048, false},
		{"10.0", 10.0, false},
		{"", 0, true},
		{"N/A\n", 0, true},
		{"garbage", 0, true},
	}
	for _, c := range cases {
		got, err := parseProbeDuration(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("parseProbeDuration(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseProbeDuration(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("parseProbeDuration(%q) = %v; want %v", c.in, got, c.want)
		}
	}
}
