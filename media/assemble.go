package media

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/sumerpunjabi/reelbot-api/processing"
)

// AssembleParams is everything the compositor needs for one reel.
type AssembleParams struct {
	BackgroundPath string
	Timeline       processing.Timeline
	AudioPath      string
	OutputPath     string
	Opts           RenderOptions
}

// Assemble renders the final reel: the background scaled to the target
// frame, each slide overlaid centered during its timeline window, and
// the narration track mapped in. Output length equals the timeline
// total regardless of the background length.
func Assemble(p AssembleParams) (string, error) {
	if len(p.Timeline) == 0 {
		return "", &AssemblyError{Reason: "empty timeline"}
	}
	if err := p.Timeline.Validate(); err != nil {
		return "", &AssemblyError{Reason: "bad timeline", Err: err}
	}
	total := p.Timeline.Total()
	if total <= 0 {
		return "", &AssemblyError{Reason: "timeline total is zero"}
	}
	for _, path := range append([]string{p.BackgroundPath, p.AudioPath}, slideImages(p.Timeline)...) {
		if err := requireFile(path); err != nil {
			return "", &AssemblyError{Reason: "missing input", Err: err}
		}
	}

	video := ffmpeg.Input(p.BackgroundPath).
		Filter("scale", ffmpeg.Args{fmt.Sprintf("%d:%d", p.Opts.Width, p.Opts.Height)})

	for _, entry := range p.Timeline {
		slide := ffmpeg.Input(entry.Slide.ImagePath, ffmpeg.KwArgs{"loop": 1})
		video = ffmpeg.Filter(
			[]*ffmpeg.Stream{video, slide},
			"overlay",
			ffmpeg.Args{},
			ffmpeg.KwArgs{
				"x":      "(W-w)/2",
				"y":      "(H-h)/2",
				"enable": fmt.Sprintf("between(t,%.3f,%.3f)", entry.Start, entry.End),
			},
		)
	}

	audio := ffmpeg.Input(p.AudioPath)
	err := ffmpeg.Output(
		[]*ffmpeg.Stream{video, audio},
		p.OutputPath,
		ffmpeg.KwArgs{
			"c:v":     p.Opts.VideoCodec,
			"c:a":     p.Opts.AudioCodec,
			"preset":  p.Opts.Preset,
			"r":       p.Opts.FPS,
			"t":       total,
			"pix_fmt": "yuv420p",
			"threads": p.Opts.Threads,
		},
	).OverWriteOutput().Run()
	if err != nil {
		return "", &AssemblyError{Reason: "render", Err: err}
	}
	return p.OutputPath, nil
}

func slideImages(tl processing.Timeline) []string {
	out := make([]string, 0, len(tl))
	for _, e := range tl {
		out = append(out, e.Slide.ImagePath)
	}
	return out
}

func requireFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "stat %s", path)
	}
	if info.Size() == 0 {
		return errors.Errorf("%s is empty", path)
	}
	return nil
}
