package reddit

import (
	"path/filepath"
	"testing"
)

func TestProcessedIDsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed.txt")

	ids, err := LoadProcessedIDs(path)
	if err != nil {
		t.Fatalf("missing file should load empty: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty set, got %v", ids)
	}

	for _, id := range []string{"abc123", "def456"} {
		if err := AppendProcessedID(path, id); err != nil {
			t.Fatalf("append %s: %v", id, err)
		}
	}

	ids, err = LoadProcessedIDs(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(ids) != 2 || !ids["abc123"] || !ids["def456"] {
		t.Errorf("round trip lost ids: %v", ids)
	}
}
