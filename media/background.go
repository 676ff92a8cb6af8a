package media

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// RenderOptions carries the encoding settings every media operation
// reads. Values come from the caller's Config; nothing here is global.
type RenderOptions struct {
	Width      int
	Height     int
	FPS        int
	VideoCodec string
	AudioCodec string
	Preset     string
	Threads    int
}

// PrepareBackground produces a clip of exactly targetDuration seconds in
// workDir from the source video. A longer source is trimmed from a
// random offset; a shorter one is looped via the concat demuxer and
// truncated. When alreadyVertical is false the clip is center-cropped
// horizontally to the target aspect ratio.
func PrepareBackground(srcPath, workDir string, targetDuration float64, alreadyVertical bool, opts RenderOptions) (string, error) {
	if targetDuration <= 0 {
		return "", &MediaError{Op: "prepare", Path: srcPath, Err: errors.New("target duration must be positive")}
	}
	meta, err := ProbeVideo(srcPath)
	if err != nil {
		return "", err
	}
	if meta.Duration <= 0 {
		return "", &MediaError{Op: "prepare", Path: srcPath, Err: errors.New("source duration is zero or could not be determined")}
	}
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return "", &MediaError{Op: "prepare", Path: workDir, Err: err}
	}

	trimmed := filepath.Join(workDir, "processed_background.mp4")

	if meta.Duration > targetDuration {
		start := randStartOffset(meta.Duration, targetDuration, nil)
		err = ffmpeg.Input(srcPath, ffmpeg.KwArgs{"ss": start, "t": targetDuration}).
			Output(trimmed, ffmpeg.KwArgs{
				"c:v":    opts.VideoCodec,
				"c:a":    opts.AudioCodec,
				"preset": opts.Preset,
			}).
			OverWriteOutput().Run()
		if err != nil {
			return "", &MediaError{Op: "trim", Path: srcPath, Err: err}
		}
	} else {
		listPath := filepath.Join(workDir, "concat_list.txt")
		loops := loopCount(meta.Duration, targetDuration)
		if err := os.WriteFile(listPath, []byte(concatListContents(srcPath, loops)), 0644); err != nil {
			return "", &MediaError{Op: "loop", Path: srcPath, Err: err}
		}
		err = ffmpeg.Input(listPath, ffmpeg.KwArgs{"f": "concat", "safe": 0}).
			Output(trimmed, ffmpeg.KwArgs{"c": "copy", "t": targetDuration}).
			OverWriteOutput().Run()
		os.Remove(listPath)
		if err != nil {
			return "", &MediaError{Op: "loop", Path: srcPath, Err: err}
		}
	}

	if alreadyVertical {
		return trimmed, nil
	}

	cropW := cropWidth(meta.Height, opts.Width, opts.Height)
	if cropW > meta.Width {
		// Source is narrower than the target ratio; vertical cropping is
		// not performed. The operator should mark the source as vertical.
		return "", &MediaError{Op: "crop", Path: srcPath,
			Err: errors.Errorf("source %dx%d narrower than %d:%d target, set BACKGROUND_IS_9_16 instead", meta.Width, meta.Height, opts.Width, opts.Height)}
	}

	cropped := filepath.Join(workDir, "cropped_background.mp4")
	err = ffmpeg.Input(trimmed).
		Filter("crop", ffmpeg.Args{fmt.Sprintf("%d:%d:%d:0", cropW, meta.Height, (meta.Width-cropW)/2)}).
		Output(cropped, ffmpeg.KwArgs{
			"c:v":    opts.VideoCodec,
			"preset": opts.Preset,
			"an":     "",
		}).
		OverWriteOutput().Run()
	if err != nil {
		return "", &MediaError{Op: "crop", Path: trimmed, Err: err}
	}
	return cropped, nil
}

// loopCount returns how many copies of a srcDuration clip are needed to
// cover targetDuration with material to spare.
func loopCount(srcDuration, targetDuration float64) int {
	return int(targetDuration/srcDuration) + 1
}

// randStartOffset picks a uniform random trim offset in [0, d-target].
// A nil rnd uses the global source.
func randStartOffset(d, target float64, rnd *rand.Rand) float64 {
	span := d - target
	if span <= 0 {
		return 0
	}
	if rnd != nil {
		return rnd.Float64() * span
	}
	return rand.Float64() * span
}

// cropWidth computes the horizontal crop that gives srcHeight the target
// aspect ratio.
func cropWidth(srcHeight, targetW, targetH int) int {
	return int(float64(srcHeight) * float64(targetW) / float64(targetH))
}

// concatListContents builds the concat demuxer list file repeating the
// source loops times.
func concatListContents(srcPath string, loops int) string {
	abs, err := filepath.Abs(srcPath)
	if err != nil {
		abs = srcPath
	}
	var b strings.Builder
	for i := 0; i < loops; i++ {
		fmt.Fprintf(&b, "file '%s'\n", abs)
	}
	return b.String()
}
