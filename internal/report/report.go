// Package report writes Allure-compatible result files: one JSON result
// per scenario plus screenshot attachments, all in a single results
// directory picked up by the external report generator.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Statuses understood by the report sink.
const (
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusBroken  = "broken"
	StatusSkipped = "skipped"
)

// Label is a report taxonomy entry (feature, suite, host...).
type Label struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Attachment references a binary artifact stored next to the result.
type Attachment struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Type   string `json:"type"`
}

// StatusDetails carries the failure message for non-passing results.
type StatusDetails struct {
	Message string `json:"message,omitempty"`
	Trace   string `json:"trace,omitempty"`
}

// Result is one scenario outcome in the sink's JSON schema.
type Result struct {
	UUID          string         `json:"uuid"`
	HistoryID     string         `json:"historyId,omitempty"`
	Name          string         `json:"name"`
	Status        string         `json:"status"`
	StatusDetails *StatusDetails `json:"statusDetails,omitempty"`
	Stage         string         `json:"stage"`
	Start         int64          `json:"start"`
	Stop          int64          `json:"stop"`
	Labels        []Label        `json:"labels,omitempty"`
	Attachments   []Attachment   `json:"attachments,omitempty"`
}

// Writer appends results and attachments to a results directory. Safe
// for concurrent use from parallel scenario workers.
type Writer struct {
	dir string
	mu  sync.Mutex
}

// NewWriter creates the results directory if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating results directory: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// Dir returns the results directory.
func (w *Writer) Dir() string { return w.dir }

// WriteResult persists one scenario result as <uuid>-result.json.
func (w *Writer) WriteResult(r Result) error {
	if r.UUID == "" {
		r.UUID = uuid.New().String()
	}
	if r.Stage == "" {
		r.Stage = "finished"
	}

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding result for %q: %w", r.Name, err)
	}

	path := filepath.Join(w.dir, r.UUID+"-result.json")
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing result for %q: %w", r.Name, err)
	}
	return nil
}

// AttachScreenshot stores PNG bytes under a name derived from the
// scenario name and a timestamp, returning the attachment reference to
// embed in the result.
func (w *Writer) AttachScreenshot(scenario string, png []byte) (Attachment, error) {
	name := fmt.Sprintf("%s_%s_%s.png",
		sanitize(scenario),
		time.Now().Format("20060102_150405"),
		uuid.New().String()[:8])

	w.mu.Lock()
	err := os.WriteFile(filepath.Join(w.dir, name), png, 0o644)
	w.mu.Unlock()
	if err != nil {
		return Attachment{}, fmt.Errorf("writing screenshot for %q: %w", scenario, err)
	}

	log.Debug().Str("scenario", scenario).Str("file", name).Msg("screenshot attached")
	return Attachment{Name: "screenshot", Source: name, Type: "image/png"}, nil
}

// sanitize keeps scenario-derived file names filesystem-safe.
func sanitize(name string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, name)
	if mapped == "" {
		return "scenario"
	}
	const maxLen = 80
	if len(mapped) > maxLen {
		mapped = mapped[:maxLen]
	}
	return mapped
}
