package ffmpeg

import "strconv"

// Settings is the encoder parameter set applied to a job.
type Settings struct {
	VideoCodec   string
	Preset       string
	CRF          int
	AudioCodec   string
	AudioBitrate string
}

// FastCompression trades some quality for speed and size: x264 veryfast at
// CRF 28, AAC at 128 kb/s.
var FastCompression = Settings{
	VideoCodec:   "libx264",
	Preset:       "veryfast",
	CRF:          28,
	AudioCodec:   "aac",
	AudioBitrate: "128k",
}

// String renders the settings for the batch header, e.g.
// "libx264 veryfast CRF 28, aac 128k".
func (s Settings) String() string {
	return s.VideoCodec + " " + s.Preset + " CRF " + strconv.Itoa(s.CRF) + ", " + s.AudioCodec + " " + s.AudioBitrate
}
