package media

import "fmt"

// MediaError wraps failures from the media toolchain: probing,
// trimming, looping, cropping, downloading or concatenating.
type MediaError struct {
	Op   string
	Path string
	Err  error
}

func (e *MediaError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("media %s failed for %s", e.Op, e.Path)
	}
	return fmt.Sprintf("media %s failed for %s: %v", e.Op, e.Path, e.Err)
}

func (e *MediaError) Unwrap() error { return e.Err }

// AssemblyError wraps compositing failures and timing mismatches.
type AssemblyError struct {
	Reason string
	Err    error
}

func (e *AssemblyError) Error() string {
	if e.Err == nil {
		return "assembly failed: " + e.Reason
	}
	return fmt.Sprintf("assembly failed: %s: %v", e.Reason, e.Err)
}

func (e *AssemblyError) Unwrap() error { return e.Err }
