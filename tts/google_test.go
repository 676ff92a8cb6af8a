package tts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestChunkTextShort(t *testing.T) {
	got := chunkText("short text", 200)
	if len(got) != 1 || got[0] != "short text" {
		t.Fatalf("short text should be one chunk, got %v", got)
	}
}

func TestChunkTextLimit(t *testing.T) {
	words := make([]string, 120)
	for i := range words {
		words[i] = "word"
	}
	chunks := chunkText(strings.Join(words, " "), 200)
	if len(chunks) < 2 {
		t.Fatalf("long text should split, got %d chunks", len(chunks))
	}
	total := 0
	for i, c := range chunks {
		if len(c) > 200 {
			t.Errorf("chunk %d exceeds limit: %d chars", i, len(c))
		}
		total += len(strings.Fields(c))
	}
	if total != 120 {
		t.Errorf("words lost during chunking: have %d, want 120", total)
	}
}

func TestNewUnknownProvider(t *testing.T) {
	if _, err := New("does-not-exist"); err == nil {
		t.Error("unknown provider accepted")
	}
}

func TestNewRegisteredProvider(t *testing.T) {
	engine, err := New("gtranslate")
	if err != nil {
		t.Fatalf("gtranslate should be registered: %v", err)
	}
	if _, ok := engine.(*GoogleTranslate); !ok {
		t.Errorf("unexpected engine type %T", engine)
	}
}

func TestGoogleTranslateSynthesizeWritesFile(t *testing.T) {
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.Query().Get("q"))
		w.Write([]byte("mp3-frames"))
	}))
	defer srv.Close()

	g := &GoogleTranslate{HTTP: srv.Client(), BaseURL: srv.URL}
	outPath := filepath.Join(t.TempDir(), "seg.mp3")

	_, err := g.Synthesize(context.Background(), "hello world", outPath, Options{Language: "en"})
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if string(data) != "mp3-frames" {
		t.Errorf("unexpected file contents %q", data)
	}
	if len(queries) != 1 || queries[0] != "hello world" {
		t.Errorf("unexpected queries %v", queries)
	}
}

func TestGoogleTranslateSynthesizeEmptyText(t *testing.T) {
	g := &GoogleTranslate{HTTP: http.DefaultClient}
	if _, err := g.Synthesize(context.Background(), "  ", "out.mp3", Options{}); err == nil {
		t.Error("empty text accepted")
	}
}

func TestGoogleTranslateSynthesizeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	}))
	defer srv.Close()

	g := &GoogleTranslate{HTTP: srv.Client(), BaseURL: srv.URL}
	outPath := filepath.Join(t.TempDir(), "seg.mp3")
	if _, err := g.Synthesize(context.Background(), "hello", outPath, Options{}); err == nil {
		t.Error("server error accepted")
	}
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Error("partial output left behind after failure")
	}
}
