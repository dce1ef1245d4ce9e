package transcoder

import "fmt"

// Rendition is one fixed bitrate/resolution step of the HLS ladder.
type Rendition struct {
	Name         string
	Width        int
	Height       int
	VideoBitrate int // kbps
	AudioBitrate int // kbps
}

// Resolution renders the WxH string advertised in the master playlist.
func (r Rendition) Resolution() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// Bandwidth is the peak bandwidth advertised in the master playlist, in bps.
func (r Rendition) Bandwidth() uint32 {
	return uint32((r.VideoBitrate + r.AudioBitrate) * 1000)
}

// DefaultLadder is the fixed five-step encode ladder applied to every lesson
// video.
var DefaultLadder = []Rendition{
	{Name: "240p", Width: 426, Height: 240, VideoBitrate: 250, AudioBitrate: 64},
	{Name: "360p", Width: 640, Height: 360, VideoBitrate: 500, AudioBitrate: 96},
	{Name: "480p", Width: 854, Height: 480, VideoBitrate: 1000, AudioBitrate: 128},
	{Name: "720p", Width: 1280, Height: 720, VideoBitrate: 2500, AudioBitrate: 128},
	{Name: "1080p", Width: 1920, Height: 1080, VideoBitrate: 4500, AudioBitrate: 192},
}
