package media

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestFetchBackgroundLocalPath(t *testing.T) {
	dir := t.TempDir()
	src := writeTemp(t, dir, "bg.mp4")

	got, err := FetchBackground(src, dir)
	if err != nil {
		t.Fatalf("local path failed: %v", err)
	}
	if got != src {
		t.Errorf("local path should pass through, got %q", got)
	}
}

func TestFetchBackgroundLocalMissing(t *testing.T) {
	if _, err := FetchBackground("/nope/missing.mp4", t.TempDir()); err == nil {
		t.Error("missing local file accepted")
	}
}

func TestFetchBackgroundDownloadsAndCaches(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("video-bytes"))
	}))
	defer srv.Close()

	cacheDir := t.TempDir()
	first, err := FetchBackground(srv.URL+"/bg.mp4", cacheDir)
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}
	data, err := os.ReadFile(first)
	if err != nil || string(data) != "video-bytes" {
		t.Fatalf("cached file wrong: %q, %v", data, err)
	}
	if filepath.Dir(first) != cacheDir {
		t.Errorf("cache file outside cache dir: %s", first)
	}

	second, err := FetchBackground(srv.URL+"/bg.mp4", cacheDir)
	if err != nil {
		t.Fatalf("cached fetch failed: %v", err)
	}
	if second != first {
		t.Errorf("cache path changed between calls: %q vs %q", first, second)
	}
	if hits != 1 {
		t.Errorf("expected a single download, server saw %d requests", hits)
	}
}

func TestFetchBackgroundServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := FetchBackground(srv.URL+"/bg.mp4", t.TempDir()); err == nil {
		t.Error("server error accepted")
	}
}
