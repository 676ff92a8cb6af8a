package processing

import (
	"fmt"
	"math"
)

// Slide pairs one rendered image with its narration clip and how long
// both stay on screen.
type Slide struct {
	ImagePath string
	AudioPath string
	Duration  float64
}

// TimelineEntry is a slide placed on the absolute clock of the reel.
type TimelineEntry struct {
	Slide Slide
	Start float64
	End   float64
}

// Timeline is the ordered, contiguous schedule the compositor renders.
type Timeline []TimelineEntry

// NewSlides zips parallel image, audio and duration lists into slides.
// The lists must be the same length.
func NewSlides(images, audios []string, durations []float64) ([]Slide, error) {
	if len(images) != len(audios) || len(images) != len(durations) {
		return nil, fmt.Errorf("mismatched slide inputs: %d images, %d audios, %d durations",
			len(images), len(audios), len(durations))
	}
	slides := make([]Slide, len(images))
	for i := range images {
		slides[i] = Slide{ImagePath: images[i], AudioPath: audios[i], Duration: durations[i]}
	}
	return slides, nil
}

// BuildTimeline lays slides end to end starting at zero. Each entry
// starts exactly where the previous one ends.
func BuildTimeline(slides []Slide) Timeline {
	tl := make(Timeline, 0, len(slides))
	cursor := 0.0
	for _, s := range slides {
		tl = append(tl, TimelineEntry{Slide: s, Start: cursor, End: cursor + s.Duration})
		cursor += s.Duration
	}
	return tl
}

// Total returns the end time of the last entry, which equals the sum of
// the slide durations.
func (t Timeline) Total() float64 {
	if len(t) == 0 {
		return 0
	}
	return t[len(t)-1].End
}

// Validate checks that the timeline starts at zero, is contiguous and
// every entry has positive length.
func (t Timeline) Validate() error {
	cursor := 0.0
	for i, e := range t {
		if math.Abs(e.Start-cursor) > 1e-6 {
			return fmt.Errorf("entry %d starts at %.3f, expected %.3f", i, e.Start, cursor)
		}
		if e.End <= e.Start {
			return fmt.Errorf("entry %d has non-positive length", i)
		}
		cursor = e.End
	}
	return nil
}
