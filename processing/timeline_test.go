package processing

import (
	"math"
	"testing"
)

func TestBuildTimelineContiguous(t *testing.T) {
	slides := []Slide{
		{ImagePath: "a.png", AudioPath: "a.mp3", Duration: 2.5},
		{ImagePath: "b.png", AudioPath: "b.mp3", Duration: 1.0},
		{ImagePath: "c.png", AudioPath: "c.mp3", Duration: 3.25},
	}
	tl := BuildTimeline(slides)

	if len(tl) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(tl))
	}
	if tl[0].Start != 0 {
		t.Errorf("timeline must start at zero, got %f", tl[0].Start)
	}
	for i := 1; i < len(tl); i++ {
		if tl[i].Start != tl[i-1].End {
			t.Errorf("entry %d starts at %f, previous ends at %f", i, tl[i].Start, tl[i-1].End)
		}
	}
	if want := 6.75; math.Abs(tl.Total()-want) > 1e-9 {
		t.Errorf("total = %f, want %f", tl.Total(), want)
	}
	if err := tl.Validate(); err != nil {
		t.Errorf("valid timeline rejected: %v", err)
	}
}

func TestTimelineEmpty(t *testing.T) {
	tl := BuildTimeline(nil)
	if tl.Total() != 0 {
		t.Errorf("empty timeline total = %f", tl.Total())
	}
	if err := tl.Validate(); err != nil {
		t.Errorf("empty timeline should validate: %v", err)
	}
}

func TestTimelineValidateRejectsGaps(t *testing.T) {
	tl := Timeline{
		{Slide: Slide{Duration: 1}, Start: 0, End: 1},
		{Slide: Slide{Duration: 1}, Start: 2, End: 3},
	}
	if err := tl.Validate(); err == nil {
		t.Error("gap between entries not detected")
	}
}

func TestTimelineValidateRejectsZeroLength(t *testing.T) {
	tl := Timeline{{Slide: Slide{}, Start: 0, End: 0}}
	if err := tl.Validate(); err == nil {
		t.Error("zero-length entry not detected")
	}
}

func TestNewSlidesLengthMismatch(t *testing.T) {
	if _, err := NewSlides([]string{"a.png"}, []string{"a.mp3", "b.mp3"}, []float64{1}); err == nil {
		t.Error("mismatched input lengths not detected")
	}
	slides, err := NewSlides([]string{"a.png"}, []string{"a.mp3"}, []float64{1.5})
	if err != nil {
		t.Fatalf("matched inputs rejected: %v", err)
	}
	if slides[0].Duration != 1.5 {
		t.Errorf("duration not carried over: %f", slides[0].Duration)
	}
}
