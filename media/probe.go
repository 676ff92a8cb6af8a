package media

import (
	"encoding/json"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Metadata contains the probed properties of a media file.
type Metadata struct {
	Duration float64
	Width    int
	Height   int
}

// ProbeVideo runs ffprobe against path and returns its metadata.
func ProbeVideo(path string) (*Metadata, error) {
	raw, err := ffmpeg.Probe(path)
	if err != nil {
		return nil, &MediaError{Op: "probe", Path: path, Err: err}
	}
	meta, err := parseProbe(raw)
	if err != nil {
		return nil, &MediaError{Op: "probe", Path: path, Err: err}
	}
	return meta, nil
}

// ProbeDuration returns the duration of any media file (audio or video)
// in seconds.
func ProbeDuration(path string) (float64, error) {
	meta, err := ProbeVideo(path)
	if err != nil {
		return 0, err
	}
	return meta.Duration, nil
}

// parseProbe extracts duration and dimensions from ffprobe JSON output.
// Stream-level duration is preferred; the container format duration is
// the fallback (some codecs omit it on the stream).
func parseProbe(raw string) (*Metadata, error) {
	var data struct {
		Streams []struct {
			CodecType string `json:"codec_type"`
			Duration  string `json:"duration"`
			Width     int    `json:"width"`
			Height    int    `json:"height"`
		} `json:"streams"`
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, err
	}

	meta := &Metadata{}
	for _, s := range data.Streams {
		if meta.Duration == 0 {
			meta.Duration = parseSeconds(s.Duration)
		}
		if s.CodecType == "video" {
			meta.Width = s.Width
			meta.Height = s.Height
			if d := parseSeconds(s.Duration); d > 0 {
				meta.Duration = d
			}
		}
	}
	if meta.Duration == 0 {
		meta.Duration = parseSeconds(data.Format.Duration)
	}
	return meta, nil
}

func parseSeconds(s string) float64 {
	d, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return d
}
