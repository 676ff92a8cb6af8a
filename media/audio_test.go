package media

import (
	"errors"
	"testing"
)

func TestConcatenateAudioEmpty(t *testing.T) {
	_, err := ConcatenateAudio(nil, "out.mp3")
	if err == nil {
		t.Fatal("empty input accepted")
	}
	var me *MediaError
	if !errors.As(err, &me) {
		t.Errorf("expected MediaError, got %T", err)
	}
}

func TestConcatenateAudioSingleInputPassthrough(t *testing.T) {
	got, err := ConcatenateAudio([]string{"only.mp3"}, "out.mp3")
	if err != nil {
		t.Fatalf("single input failed: %v", err)
	}
	if got != "only.mp3" {
		t.Errorf("single input should pass through, got %q", got)
	}
}
