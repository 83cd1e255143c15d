// Package testutil provides testing utilities for the meetmind project.
package testutil

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/pablasso/meetmind/internal/analysis"
	"github.com/pablasso/meetmind/internal/upload"
)

// SampleDocument is a complete analysis document as the server sends it.
const SampleDocument = `{
  "summary": "The team reviewed the Q3 roadmap.\nBudget concerns were raised.",
  "agenda_covered": ["Roadmap review", "Budget"],
  "key_decisions": ["Delay the mobile launch"],
  "action_items": [
    {"task": "Update roadmap", "assignee": "Priya", "deadline": "Friday", "priority": "High"},
    {"task": "Collect vendor quotes", "priority": "low"},
    {"task": "Book follow-up"}
  ],
  "timeline_events": [
    {"time": "00:00", "event": "Kickoff"},
    {"time": "05:30", "event": "Budget discussion"}
  ],
  "analyzed_requirements": {"scope": {"in": ["web"], "out": ["mobile"]}},
  "sentiment_analysis": "Constructive with some tension around budget",
  "follow_up_suggestions": ["Share updated roadmap", "Schedule budget review"]
}`

// SampleResult decodes SampleDocument.
func SampleResult(t testing.TB) *analysis.Result {
	t.Helper()
	r, err := analysis.Decode([]byte(SampleDocument))
	if err != nil {
		t.Fatalf("failed to decode sample document: %v", err)
	}
	return r
}

// MemoryFile returns an upload.File backed by content.
func MemoryFile(name, content string) upload.File {
	return upload.File{
		Name: name,
		Size: int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

// AnalyzerFunc adapts a function to upload.Analyzer.
type AnalyzerFunc func(ctx context.Context, file upload.File, hooks upload.Hooks) (*analysis.Result, error)

// Analyze implements upload.Analyzer.
func (f AnalyzerFunc) Analyze(ctx context.Context, file upload.File, hooks upload.Hooks) (*analysis.Result, error) {
	return f(ctx, file, hooks)
}

// BlockingAnalyzer fires OnSent, then waits for Release before returning
// its configured outcome. Started is closed once a call is in flight.
type BlockingAnalyzer struct {
	Result *analysis.Result
	Err    error

	Started chan struct{}
	release chan struct{}
	once    sync.Once
	mu      sync.Mutex
	calls   int
}

// NewBlockingAnalyzer creates a BlockingAnalyzer returning result and err.
func NewBlockingAnalyzer(result *analysis.Result, err error) *BlockingAnalyzer {
	return &BlockingAnalyzer{
		Result:  result,
		Err:     err,
		Started: make(chan struct{}),
		release: make(chan struct{}),
	}
}

// Analyze implements upload.Analyzer.
func (b *BlockingAnalyzer) Analyze(ctx context.Context, file upload.File, hooks upload.Hooks) (*analysis.Result, error) {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()

	if hooks.OnSent != nil {
		hooks.OnSent()
	}
	b.once.Do(func() { close(b.Started) })

	select {
	case <-b.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return b.Result, b.Err
}

// Release lets every pending and future call return.
func (b *BlockingAnalyzer) Release() {
	close(b.release)
}

// Calls returns how many times Analyze was invoked.
func (b *BlockingAnalyzer) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

// SetupTestDir creates a temp directory, resolves symlinks (for macOS),
// changes to it, and registers cleanup to restore the original working directory.
// Returns the resolved temp directory path.
func SetupTestDir(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	// Resolve symlinks for macOS (/var -> /private/var)
	if resolved, err := filepath.EvalSymlinks(tmpDir); err != nil {
		t.Logf("warning: could not resolve symlinks for temp dir: %v", err)
	} else {
		tmpDir = resolved
	}

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}

	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change to temp dir: %v", err)
	}

	t.Cleanup(func() {
		os.Chdir(originalWd)
	})

	return tmpDir
}
