package tts

import (
	"context"
	"fmt"
	"sort"
)

// Options tune how a narration clip is synthesized.
type Options struct {
	Language string
	Slow     bool
	TLD      string
}

// Engine turns text into a narration clip on disk and reports its
// duration in seconds. A duration of zero means the engine could not
// measure the clip; callers substitute their own fallback.
type Engine interface {
	Synthesize(ctx context.Context, text, outPath string, opts Options) (float64, error)
}

var registry = map[string]func() Engine{}

// Register makes an engine constructor available under name. Engines
// register themselves from init.
func Register(name string, ctor func() Engine) {
	registry[name] = ctor
}

// New builds the engine registered under name.
func New(name string) (Engine, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown tts provider %q, have %v", name, names())
	}
	return ctor(), nil
}

func names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
