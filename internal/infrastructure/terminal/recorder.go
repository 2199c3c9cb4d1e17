package terminal

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/gzip"

	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/shared/id"
)

// Recorder mirrors raw session output into a gzip-compressed transcript
// file. Transcripts are best effort: write errors never propagate back
// into the session, and writes after Close are dropped.
type Recorder struct {
	path string

	mu     sync.Mutex
	f      *os.File
	gz     *gzip.Writer
	closed bool
}

// NewRecorder creates a transcript file under dir, named after a fresh
// transcript id, creating dir when missing.
func NewRecorder(dir string) (*Recorder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create transcript dir: %w", err)
	}
	path := filepath.Join(dir, id.NewTranscriptID().String()+".log.gz")
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create transcript: %w", err)
	}
	return &Recorder{path: path, f: f, gz: gzip.NewWriter(f)}, nil
}

// Path returns the transcript file location.
func (r *Recorder) Path() string { return r.path }

// Write appends raw output bytes to the transcript.
func (r *Recorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return len(p), nil
	}
	return r.gz.Write(p)
}

// Flush pushes buffered bytes through the compressor to disk, so a
// transcript stays readable while its session is still alive.
func (r *Recorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	return r.gz.Flush()
}

// Close finalizes the gzip stream and closes the file. Idempotent.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	gzErr := r.gz.Close()
	if err := r.f.Close(); err != nil {
		return err
	}
	return gzErr
}
