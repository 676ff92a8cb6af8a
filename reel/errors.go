package reel

import "fmt"

// ContentError indicates the narration source is unusable: a bad URL,
// a failed fetch, or a post with no text to narrate.
type ContentError struct {
	Source string
	Reason string
	Err    error
}

func (e *ContentError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("content error for %s: %s", e.Source, e.Reason)
	}
	return fmt.Sprintf("content error for %s: %s: %v", e.Source, e.Reason, e.Err)
}

func (e *ContentError) Unwrap() error { return e.Err }
