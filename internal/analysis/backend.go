package analysis

import (
	"context"
	"sort"
	"time"
)

// Backend names used by the CLI for selection.
const (
	BackendHTTP   = "http"
	BackendReplay = "replay"
)

// Backend is anything able to turn a grid and a selection into a response.
type Backend interface {
	Submit(ctx context.Context, src Source, indices []int) (*Response, error)
}

// BackendFactory builds a Backend from the generic config below.
type BackendFactory func(BackendConfig) Backend

// BackendConfig carries the knobs backends use.
type BackendConfig struct {
	// http
	Endpoint    string
	HTTPTimeout time.Duration
	// replay
	ReplayPath string
}

var registry = map[string]BackendFactory{}

// RegisterBackend registers a backend name with its factory.
func RegisterBackend(name string, f BackendFactory) { registry[name] = f }

// GetBackend creates the named backend if registered.
func GetBackend(name string, cfg BackendConfig) (Backend, bool) {
	if f, ok := registry[name]; ok {
		return f(cfg), true
	}
	return nil, false
}

// Backends lists registered backend names, sorted.
func Backends() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func init() {
	RegisterBackend(BackendHTTP, func(c BackendConfig) Backend {
		return NewClient(c.Endpoint, c.HTTPTimeout)
	})
	RegisterBackend(BackendReplay, func(c BackendConfig) Backend {
		return &Replay{Path: c.ReplayPath}
	})
}
