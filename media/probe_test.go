package media

import "testing"

func TestParseProbeVideoStream(t *testing.T) {
	raw := `{
		"streams": [
			{"codec_type": "audio", "duration": "12.100000"},
			{"codec_type": "video", "duration": "12.345000", "width": 1920, "height": 1080}
		],
		"format": {"duration": "12.400000"}
	}`
	meta, err := parseProbe(raw)
	if err != nil {
		t.Fatalf("parseProbe: %v", err)
	}
	if meta.Duration != 12.345 {
		t.Errorf("duration = %f, want 12.345", meta.Duration)
	}
	if meta.Width != 1920 || meta.Height != 1080 {
		t.Errorf("dimensions = %dx%d, want 1920x1080", meta.Width, meta.Height)
	}
}

func TestParseProbeFormatFallback(t *testing.T) {
	raw := `{
		"streams": [{"codec_type": "video", "width": 640, "height": 480}],
		"format": {"duration": "8.000000"}
	}`
	meta, err := parseProbe(raw)
	if err != nil {
		t.Fatalf("parseProbe: %v", err)
	}
	if meta.Duration != 8.0 {
		t.Errorf("duration = %f, want 8.0", meta.Duration)
	}
}

func TestParseProbeAudioOnly(t *testing.T) {
	raw := `{
		"streams": [{"codec_type": "audio", "duration": "3.250000"}],
		"format": {"duration": "3.250000"}
	}`
	meta, err := parseProbe(raw)
	if err != nil {
		t.Fatalf("parseProbe: %v", err)
	}
	if meta.Duration != 3.25 {
		t.Errorf("duration = %f, want 3.25", meta.Duration)
	}
	if meta.Width != 0 || meta.Height != 0 {
		t.Errorf("audio-only probe should have no dimensions, got %dx%d", meta.Width, meta.Height)
	}
}

func TestParseProbeBadJSON(t *testing.T) {
	if _, err := parseProbe("not json"); err == nil {
		t.Error("invalid JSON accepted")
	}
}
