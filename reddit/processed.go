package reddit

import (
	"bufio"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// LoadProcessedIDs reads the one-id-per-line ledger of posts already
// turned into reels. A missing file means nothing was processed yet.
func LoadProcessedIDs(path string) (map[string]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]bool{}, nil
		}
		return nil, errors.Wrap(err, "open processed ids")
	}
	defer f.Close()

	ids := map[string]bool{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		id := strings.TrimSpace(scanner.Text())
		if id != "" {
			ids[id] = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read processed ids")
	}
	return ids, nil
}

// AppendProcessedID records an id in the ledger, creating the file on
// first use.
func AppendProcessedID(path, id string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrap(err, "open processed ids")
	}
	defer f.Close()
	if _, err := f.WriteString(id + "\n"); err != nil {
		return errors.Wrap(err, "append processed id")
	}
	return nil
}
