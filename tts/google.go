package tts

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/sumerpunjabi/reelbot-api/media"
)

func init() {
	Register("gtranslate", func() Engine { return &GoogleTranslate{HTTP: http.DefaultClient} })
}

// maxChunkChars is the longest text the translate endpoint accepts per
// request.
const maxChunkChars = 200

// GoogleTranslate synthesizes speech through the public Google
// Translate TTS endpoint. Long text is split into chunks and the
// resulting MP3 frames are appended into one file.
type GoogleTranslate struct {
	HTTP *http.Client
	// BaseURL overrides the endpoint, used in tests.
	BaseURL string
}

func (g *GoogleTranslate) Synthesize(ctx context.Context, text, outPath string, opts Options) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, errors.New("empty narration text")
	}

	f, err := os.Create(outPath)
	if err != nil {
		return 0, errors.Wrap(err, "create narration file")
	}
	for _, chunk := range chunkText(text, maxChunkChars) {
		if err := g.fetchChunk(ctx, chunk, opts, f); err != nil {
			f.Close()
			os.Remove(outPath)
			return 0, err
		}
	}
	if err := f.Close(); err != nil {
		return 0, errors.Wrap(err, "close narration file")
	}

	duration, err := media.ProbeDuration(outPath)
	if err != nil {
		log.Printf("Could not measure narration duration for %s: %v", outPath, err)
		return 0, nil
	}
	return duration, nil
}

func (g *GoogleTranslate) fetchChunk(ctx context.Context, chunk string, opts Options, w io.Writer) error {
	endpoint := g.BaseURL
	if endpoint == "" {
		tld := opts.TLD
		if tld == "" {
			tld = "com"
		}
		endpoint = fmt.Sprintf("https://translate.google.%s/translate_tts", tld)
	}

	lang := opts.Language
	if lang == "" {
		lang = "en"
	}
	speed := "1"
	if opts.Slow {
		speed = "0.3"
	}

	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", lang)
	q.Set("ttsspeed", speed)
	q.Set("q", chunk)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return errors.Wrap(err, "build tts request")
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := g.HTTP.Do(req)
	if err != nil {
		return errors.Wrap(err, "tts request")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("tts endpoint returned status %d", resp.StatusCode)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return errors.Wrap(err, "read tts response")
	}
	return nil
}

// chunkText splits text into pieces no longer than limit characters,
// breaking between words where possible.
func chunkText(text string, limit int) []string {
	if limit <= 0 || len(text) <= limit {
		return []string{text}
	}
	var chunks []string
	var current string
	for _, w := range strings.Fields(text) {
		switch {
		case current == "":
			current = w
		case len(current)+1+len(w) <= limit:
			current += " " + w
		default:
			chunks = append(chunks, current)
			current = w
		}
	}
	if current != "" {
		chunks = append(chunks, current)
	}
	return chunks
}
