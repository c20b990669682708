package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
)

// Recorder captures log output in memory so tests can assert on it.
//
//	rec := logging.NewRecorder()
//	logging.SetLogger(rec.Logger())
//	defer logging.SetLogger(nil)
type Recorder struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder { return &Recorder{} }

// Write implements io.Writer.
func (r *Recorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.Write(p)
}

// Logger returns a debug-level text logger writing into the recorder.
func (r *Recorder) Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(r, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// String returns everything captured so far.
func (r *Recorder) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.String()
}

// Contains reports whether the captured output contains s.
func (r *Recorder) Contains(s string) bool {
	return strings.Contains(r.String(), s)
}

// Lines returns captured lines without the trailing empty one.
func (r *Recorder) Lines() []string {
	out := strings.TrimRight(r.String(), "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// Reset drops captured output.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf.Reset()
}
