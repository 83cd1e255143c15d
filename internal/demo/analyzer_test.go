package demo

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/pablasso/meetmind/internal/upload"
)

func memoryFile(content string) upload.File {
	return upload.File{
		Name: "demo.mp3",
		Size: int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

func TestLoadResult(t *testing.T) {
	r, err := LoadResult()
	if err != nil {
		t.Fatalf("LoadResult: %v", err)
	}
	if r.Summary == "" {
		t.Fatalf("expected a summary in the demo fixture")
	}
	if len(r.Items()) != 4 {
		t.Fatalf("expected 4 action items, got %d", len(r.Items()))
	}
	if !r.AnalyzedRequirements.IsStructured() {
		t.Fatalf("expected structured requirements in the demo fixture")
	}
}

func TestAnalyzer_Success(t *testing.T) {
	a, err := NewAnalyzer(Config{Scenario: ScenarioSuccess}, nil)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	sent := 0
	r, err := a.Analyze(context.Background(), memoryFile("bytes"), upload.Hooks{OnSent: func() { sent++ }})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if r == nil || r.Summary == "" {
		t.Fatalf("expected demo result")
	}
	if sent != 1 {
		t.Fatalf("OnSent fired %d times, want 1", sent)
	}
}

func TestAnalyzer_Fail(t *testing.T) {
	a, err := NewAnalyzer(Config{Scenario: ScenarioFail}, nil)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	_, err = a.Analyze(context.Background(), memoryFile("bytes"), upload.Hooks{})
	if !upload.IsServerError(err) {
		t.Fatalf("expected server error, got %v", err)
	}
	if upload.Message(err) != FailMessage {
		t.Fatalf("message = %q, want %q", upload.Message(err), FailMessage)
	}
}

func TestAnalyzer_Malformed(t *testing.T) {
	a, err := NewAnalyzer(Config{Scenario: ScenarioMalformed}, nil)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	_, err = a.Analyze(context.Background(), memoryFile("bytes"), upload.Hooks{})
	if !upload.IsDecodeError(err) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestAnalyzer_CanceledDuringDelay(t *testing.T) {
	a, err := NewAnalyzer(Config{Scenario: ScenarioSuccess, UploadDelay: time.Hour}, nil)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sent := false
	_, err = a.Analyze(ctx, memoryFile("bytes"), upload.Hooks{OnSent: func() { sent = true }})
	if !upload.IsTransportError(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if sent {
		t.Fatalf("OnSent should not fire when canceled before sending")
	}
}

func TestAnalyzer_NoFile(t *testing.T) {
	a, err := NewAnalyzer(Config{}, nil)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	if _, err := a.Analyze(context.Background(), upload.File{}, upload.Hooks{}); err == nil {
		t.Fatalf("expected error without a file")
	}
}
