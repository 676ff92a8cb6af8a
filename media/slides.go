package media

import (
	"fmt"
	"os"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// SlideOptions controls text-on-image rendering.
type SlideOptions struct {
	Width     int
	Height    int
	FontPath  string
	FontSize  int
	WrapWidth int // approximate characters per line
}

// RenderSlide draws wrapped text centered on a dark translucent frame at
// the target resolution and writes a single PNG to outPath. The text
// goes through a textfile to avoid filter-graph escaping.
func RenderSlide(text string, outPath string, opts SlideOptions) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &MediaError{Op: "render-slide", Path: outPath, Err: fmt.Errorf("empty slide text")}
	}

	textPath := outPath + ".txt"
	if err := os.WriteFile(textPath, []byte(WrapText(text, opts.WrapWidth)), 0644); err != nil {
		return "", &MediaError{Op: "render-slide", Path: outPath, Err: err}
	}
	defer os.Remove(textPath)

	err := ffmpeg.Input(fmt.Sprintf("color=c=0x141414@0.7:s=%dx%d", opts.Width, opts.Height), ffmpeg.KwArgs{"f": "lavfi"}).
		Filter("drawtext", ffmpeg.Args{}, ffmpeg.KwArgs{
			"textfile":  textPath,
			"fontfile":  opts.FontPath,
			"fontsize":  opts.FontSize,
			"fontcolor": "white",
			"x":         "(w-text_w)/2",
			"y":         "(h-text_h)/2",
		}).
		Output(outPath, ffmpeg.KwArgs{"frames:v": 1}).
		OverWriteOutput().Run()
	if err != nil {
		return "", &MediaError{Op: "render-slide", Path: outPath, Err: err}
	}
	return outPath, nil
}

// WrapText inserts line breaks so no line exceeds width characters,
// breaking only between words. Words longer than width stand alone.
func WrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	words := strings.Fields(text)
	var lines []string
	var line string
	for _, w := range words {
		switch {
		case line == "":
			line = w
		case len(line)+1+len(w) <= width:
			line += " " + w
		default:
			lines = append(lines, line)
			line = w
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
