package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ConfigurationError indicates a missing or placeholder required setting.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// Config holds every setting the pipeline reads. It is loaded once at
// startup and passed explicitly into components; nothing reads the
// environment after Load returns.
type Config struct {
	// Video output
	VideoWidth  int
	VideoHeight int
	VideoFPS    int
	VideoCodec  string
	AudioCodec  string
	Preset      string
	Threads     int

	// Segmenting and slide timing
	MaxWordsPerSegment   int
	FallbackSlideSeconds float64
	TextWrapWidth        int
	FontPath             string
	TitleFontSize        int
	BodyFontSize         int

	// Background media
	BackgroundSource   string // local path or http(s) URL
	BackgroundIs9x16   bool
	BackgroundCacheDir string

	// TTS
	TTSProvider string
	TTSLanguage string
	TTSSlow     bool
	TTSTLD      string

	// Content selection
	Subreddits       []string
	AllowNSFW        bool
	ProcessedIDsFile string
	ScheduleSpec     string

	// Output
	TempDirBase    string
	OutputDir      string
	OutputPrefix   string
	OutputFormat   string
	CleanupTempDir bool

	// Reddit API
	RedditClientID     string
	RedditClientSecret string
	RedditUserAgent    string
	RedditUsername     string
	RedditPassword     string

	// Instagram Graph API
	InstagramAccessToken string
	InstagramUserID      string

	// Caption generation (optional)
	OpenAIAPIKey string
}

// Load reads the .env file (if present) and the environment into a Config.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	return Config{
		VideoWidth:  envInt("VIDEO_WIDTH", 1080),
		VideoHeight: envInt("VIDEO_HEIGHT", 1920),
		VideoFPS:    envInt("VIDEO_FPS", 30),
		VideoCodec:  envStr("VIDEO_CODEC", "libx264"),
		AudioCodec:  envStr("AUDIO_CODEC", "aac"),
		Preset:      envStr("FFMPEG_PRESET", "medium"),
		Threads:     envInt("FFMPEG_THREADS", 2),

		MaxWordsPerSegment:   envInt("MAX_WORDS_PER_SEGMENT", 15),
		FallbackSlideSeconds: envFloat("FALLBACK_SLIDE_SECONDS", 3.0),
		TextWrapWidth:        envInt("TEXT_WRAP_WIDTH", 25),
		FontPath:             envStr("SLIDE_FONT_PATH", "assets/fonts/Roboto-Regular.ttf"),
		TitleFontSize:        envInt("TITLE_FONT_SIZE", 70),
		BodyFontSize:         envInt("BODY_FONT_SIZE", 60),

		BackgroundSource:   envStr("BACKGROUND_SOURCE", ""),
		BackgroundIs9x16:   envBool("BACKGROUND_IS_9_16", false),
		BackgroundCacheDir: envStr("BACKGROUND_CACHE_DIR", "assets/backgrounds"),

		TTSProvider: envStr("TTS_PROVIDER", "gtranslate"),
		TTSLanguage: envStr("TTS_LANGUAGE", "en"),
		TTSSlow:     envBool("TTS_SLOW", false),
		TTSTLD:      envStr("TTS_TLD", "com"),

		Subreddits:       envList("REEL_SUBREDDITS", []string{"shortstories", "Showerthoughts", "LifeProTips", "explainlikeimfive", "todayilearned"}),
		AllowNSFW:        envBool("ALLOW_NSFW_CONTENT", false),
		ProcessedIDsFile: envStr("PROCESSED_IDS_FILE", "assets/processed_reel_posts.txt"),
		ScheduleSpec:     envStr("SCHEDULE_SPEC", "@daily"),

		TempDirBase:    envStr("TEMP_DIR_BASE", "assets/temp"),
		OutputDir:      envStr("OUTPUT_DIR", "generated_reels"),
		OutputPrefix:   envStr("OUTPUT_PREFIX", "reel"),
		OutputFormat:   envStr("OUTPUT_FORMAT", "mp4"),
		CleanupTempDir: envBool("CLEANUP_TEMP_DIR", false),

		RedditClientID:     os.Getenv("REDDIT_CLIENT_ID"),
		RedditClientSecret: os.Getenv("REDDIT_CLIENT_SECRET"),
		RedditUserAgent:    envStr("REDDIT_USER_AGENT", "reelbot/1.0"),
		RedditUsername:     os.Getenv("REDDIT_USERNAME"),
		RedditPassword:     os.Getenv("REDDIT_PASSWORD"),

		InstagramAccessToken: os.Getenv("INSTAGRAM_ACCESS_TOKEN"),
		InstagramUserID:      os.Getenv("INSTAGRAM_USER_ID"),

		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
	}
}

// ValidateReddit checks the settings the content fetcher needs.
func (c Config) ValidateReddit() error {
	if err := requireReal("REDDIT_CLIENT_ID", c.RedditClientID); err != nil {
		return err
	}
	if err := requireReal("REDDIT_CLIENT_SECRET", c.RedditClientSecret); err != nil {
		return err
	}
	if c.RedditUserAgent == "" {
		return &ConfigurationError{Field: "REDDIT_USER_AGENT", Reason: "must not be empty"}
	}
	return nil
}

// ValidateInstagram checks the settings the uploader needs.
func (c Config) ValidateInstagram() error {
	if err := requireReal("INSTAGRAM_ACCESS_TOKEN", c.InstagramAccessToken); err != nil {
		return err
	}
	return requireReal("INSTAGRAM_USER_ID", c.InstagramUserID)
}

// ValidatePipeline checks the settings every reel job needs regardless
// of which collaborators are wired in.
func (c Config) ValidatePipeline() error {
	if c.VideoWidth <= 0 || c.VideoHeight <= 0 {
		return &ConfigurationError{Field: "VIDEO_WIDTH/VIDEO_HEIGHT", Reason: "must be positive"}
	}
	if c.VideoFPS <= 0 {
		return &ConfigurationError{Field: "VIDEO_FPS", Reason: "must be positive"}
	}
	if c.MaxWordsPerSegment <= 0 {
		return &ConfigurationError{Field: "MAX_WORDS_PER_SEGMENT", Reason: "must be positive"}
	}
	if c.FallbackSlideSeconds <= 0 {
		return &ConfigurationError{Field: "FALLBACK_SLIDE_SECONDS", Reason: "must be positive, it substitutes for unreadable narration durations"}
	}
	if c.BackgroundSource == "" {
		return &ConfigurationError{Field: "BACKGROUND_SOURCE", Reason: "must be a local path or URL"}
	}
	return nil
}

func requireReal(field, value string) error {
	if value == "" {
		return &ConfigurationError{Field: field, Reason: "not set"}
	}
	if strings.Contains(value, "YOUR_") {
		return &ConfigurationError{Field: field, Reason: "still a placeholder value"}
	}
	return nil
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
