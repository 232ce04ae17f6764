// Package telemetry writes a JSONL event stream for validation and import
// runs. Every event carries the run ID so several runs can share one file.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event kinds identify the type of telemetry event.
const (
	KindRunStart     = "run_start"
	KindFileChecked  = "file_checked"
	KindFileFailed   = "file_failed"
	KindFileImported = "file_imported"
	KindRunDone      = "run_done"
)

// Event represents a single telemetry record.
type Event struct {
	Timestamp time.Time `json:"ts"`
	Kind      string    `json:"kind"`
	RunID     string    `json:"run"`
	File      string    `json:"file,omitempty"`
	Data      any       `json:"data,omitempty"`
}

// Emitter writes telemetry events to a JSONL file. It is safe for concurrent
// use by multiple goroutines. A nil *Emitter is a valid no-op emitter.
type Emitter struct {
	runID string
	file  *os.File
	enc   *json.Encoder
	mu    sync.Mutex
	now   func() time.Time
}

// NewEmitter opens path for appending and assigns a fresh run ID.
func NewEmitter(path string) (*Emitter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	return &Emitter{
		runID: uuid.NewString(),
		file:  f,
		enc:   json.NewEncoder(f),
		now:   time.Now,
	}, nil
}

// RunID returns the ID stamped on every event, or "" for a nil Emitter.
func (e *Emitter) RunID() string {
	if e == nil {
		return ""
	}
	return e.runID
}

// Record stamps an event of kind with the current time and run ID and
// writes it.
func (e *Emitter) Record(kind, file string, data any) error {
	if e == nil {
		return nil
	}
	return e.Emit(Event{Timestamp: e.now(), Kind: kind, File: file, Data: data})
}

// Emit writes a single event. An empty RunID is filled in.
// Calling Emit on a nil Emitter is a no-op.
func (e *Emitter) Emit(evt Event) error {
	if e == nil {
		return nil
	}
	if evt.RunID == "" {
		evt.RunID = e.runID
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enc.Encode(evt); err != nil {
		return fmt.Errorf("telemetry: encode event: %w", err)
	}
	return nil
}

// Close closes the underlying file. Calling Close on a nil Emitter is a no-op.
func (e *Emitter) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.file.Close(); err != nil {
		return fmt.Errorf("telemetry: close: %w", err)
	}
	return nil
}
