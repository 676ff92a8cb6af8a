package media

import (
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// FetchBackground resolves the configured background source to a local
// file. Local paths are used as-is. URLs are downloaded into cacheDir
// under a name derived from the URL; an existing non-empty cache file
// is reused without checking freshness.
func FetchBackground(source, cacheDir string) (string, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		if err := requireFile(source); err != nil {
			return "", &MediaError{Op: "fetch", Path: source, Err: err}
		}
		return source, nil
	}

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", &MediaError{Op: "fetch", Path: cacheDir, Err: err}
	}
	cached := filepath.Join(cacheDir, fmt.Sprintf("bg_%x.mp4", sha1.Sum([]byte(source))))
	if info, err := os.Stat(cached); err == nil && info.Size() > 0 {
		return cached, nil
	}

	resp, err := http.Get(source)
	if err != nil {
		return "", &MediaError{Op: "fetch", Path: source, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", &MediaError{Op: "fetch", Path: source, Err: errors.Errorf("status %d", resp.StatusCode)}
	}

	tmp := cached + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return "", &MediaError{Op: "fetch", Path: tmp, Err: err}
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", &MediaError{Op: "fetch", Path: source, Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", &MediaError{Op: "fetch", Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, cached); err != nil {
		return "", &MediaError{Op: "fetch", Path: cached, Err: err}
	}
	return cached, nil
}
