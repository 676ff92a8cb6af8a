package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ConcatenateAudio joins the given narration clips, in order, into a
// single track at outPath. A single input is returned unchanged without
// touching ffmpeg. Splices are gapless: the concat demuxer copies the
// sample data without re-encoding.
func ConcatenateAudio(paths []string, outPath string) (string, error) {
	if len(paths) == 0 {
		return "", &MediaError{Op: "concat-audio", Path: outPath, Err: errors.New("no input clips")}
	}
	if len(paths) == 1 {
		return paths[0], nil
	}

	listPath := strings.TrimSuffix(outPath, filepath.Ext(outPath)) + "_list.txt"
	var b strings.Builder
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		fmt.Fprintf(&b, "file '%s'\n", abs)
	}
	if err := os.WriteFile(listPath, []byte(b.String()), 0644); err != nil {
		return "", &MediaError{Op: "concat-audio", Path: outPath, Err: err}
	}
	defer os.Remove(listPath)

	err := ffmpeg.Input(listPath, ffmpeg.KwArgs{"f": "concat", "safe": 0}).
		Output(outPath, ffmpeg.KwArgs{"c": "copy"}).
		OverWriteOutput().Run()
	if err != nil {
		return "", &MediaError{Op: "concat-audio", Path: outPath, Err: err}
	}
	return outPath, nil
}
