package config

import (
	"errors"
	"testing"
)

func validPipelineConfig() Config {
	return Config{
		VideoWidth:           1080,
		VideoHeight:          1920,
		VideoFPS:             30,
		MaxWordsPerSegment:   15,
		FallbackSlideSeconds: 3.0,
		BackgroundSource:     "assets/bg.mp4",
	}
}

func TestValidatePipeline(t *testing.T) {
	if err := validPipelineConfig().ValidatePipeline(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.VideoWidth = 0 }},
		{"zero fps", func(c *Config) { c.VideoFPS = 0 }},
		{"zero max words", func(c *Config) { c.MaxWordsPerSegment = 0 }},
		{"zero fallback", func(c *Config) { c.FallbackSlideSeconds = 0 }},
		{"no background", func(c *Config) { c.BackgroundSource = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validPipelineConfig()
			tt.mutate(&cfg)
			err := cfg.ValidatePipeline()
			if err == nil {
				t.Fatal("invalid config accepted")
			}
			var ce *ConfigurationError
			if !errors.As(err, &ce) {
				t.Errorf("expected ConfigurationError, got %T", err)
			}
		})
	}
}

func TestValidateInstagramRejectsPlaceholders(t *testing.T) {
	cfg := Config{InstagramAccessToken: "YOUR_ACCESS_TOKEN", InstagramUserID: "123"}
	err := cfg.ValidateInstagram()
	if err == nil {
		t.Fatal("placeholder token accepted")
	}
	var ce *ConfigurationError
	if !errors.As(err, &ce) || ce.Field != "INSTAGRAM_ACCESS_TOKEN" {
		t.Errorf("unexpected error %v", err)
	}
}

func TestValidateInstagramRejectsEmpty(t *testing.T) {
	cfg := Config{InstagramAccessToken: "real-token"}
	if err := cfg.ValidateInstagram(); err == nil {
		t.Fatal("missing user id accepted")
	}

	cfg = Config{InstagramAccessToken: "real-token", InstagramUserID: "123"}
	if err := cfg.ValidateInstagram(); err != nil {
		t.Fatalf("valid instagram config rejected: %v", err)
	}
}

func TestValidateReddit(t *testing.T) {
	cfg := Config{
		RedditClientID:     "id",
		RedditClientSecret: "secret",
		RedditUserAgent:    "reelbot/1.0",
	}
	if err := cfg.ValidateReddit(); err != nil {
		t.Fatalf("valid reddit config rejected: %v", err)
	}

	cfg.RedditClientSecret = "YOUR_CLIENT_SECRET"
	if err := cfg.ValidateReddit(); err == nil {
		t.Fatal("placeholder secret accepted")
	}

	cfg.RedditClientSecret = "secret"
	cfg.RedditUserAgent = ""
	if err := cfg.ValidateReddit(); err == nil {
		t.Fatal("empty user agent accepted")
	}
}
