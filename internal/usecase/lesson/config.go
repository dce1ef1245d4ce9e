package lesson

import (
	"fmt"
	"path"
	"time"

	"github.com/coursio/streams-ms-go/internal/db"
)

// StreamTTL bounds both the signed playback URL and the access-cache entry.
// The two must expire together: a longer URL would break segment fetches
// after the cache dies, a longer cache would outlive any token the client
// could re-derive.
const StreamTTL = 3 * time.Hour

const (
	// VideosPrefix is where raw uploads land before transcoding.
	VideosPrefix = "videos"
	// HLSPrefix is where transcoded packages live, namespaced by lesson id.
	HLSPrefix = "courses/hls"
)

// ManifestFilename is the master manifest name inside a lesson's HLS package.
func ManifestFilename(lessonID db.UUID) string {
	return lessonID.String() + ".m3u8"
}

// HLSObjectKey resolves a filename inside a lesson's HLS package.
func HLSObjectKey(lessonID db.UUID, filename string) string {
	return fmt.Sprintf("%s/%s/%s", HLSPrefix, lessonID, filename)
}

// ContentTypeForFile picks the media type served for an HLS artifact.
func ContentTypeForFile(filename string) string {
	switch path.Ext(filename) {
	case ".m3u8":
		return "application/vnd.apple.mpegurl"
	case ".ts":
		return "video/mp2t"
	default:
		return "application/octet-stream"
	}
}

// IsSafeFilename rejects anything that could escape the lesson's package
// directory: path separators, parent references, empty names.
func IsSafeFilename(filename string) bool {
	if filename == "" || filename == "." || filename == ".." {
		return false
	}
	if path.Base(filename) != filename {
		return false
	}
	for _, c := range filename {
		if c == '/' || c == '\\' {
			return false
		}
	}
	return true
}
