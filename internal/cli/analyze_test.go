package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pablasso/meetmind/internal/config"
	"github.com/pablasso/meetmind/internal/demo"
	"github.com/pablasso/meetmind/internal/logging"
	"github.com/pablasso/meetmind/internal/render"
	"github.com/pablasso/meetmind/internal/session"
	"github.com/pablasso/meetmind/internal/stubserver"
	"github.com/pablasso/meetmind/internal/testutil"
	"github.com/pablasso/meetmind/internal/upload"
)

func TestParseTabs(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    []render.Tab
		wantErr bool
	}{
		{name: "all", value: "all", want: render.Tabs},
		{name: "all mixed case", value: " ALL ", want: render.Tabs},
		{name: "single tab", value: "timeline", want: []render.Tab{render.TabTimeline}},
		{name: "unknown tab", value: "minutes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTabs(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseTabs(%q) expected error", tt.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseTabs(%q) unexpected error: %v", tt.value, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseTabs(%q) = %v, want %v", tt.value, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("tab %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	for _, format := range []string{FormatText, FormatHTML, FormatJSON} {
		if err := validateFormat(format); err != nil {
			t.Errorf("validateFormat(%q) unexpected error: %v", format, err)
		}
	}
	if err := validateFormat("pdf"); err == nil {
		t.Error("validateFormat(\"pdf\") expected error")
	}
}

func newStub(t *testing.T, cfg stubserver.Config) *httptest.Server {
	t.Helper()
	if cfg.Document == nil && cfg.FailMessage == "" {
		doc, err := demo.Document()
		if err != nil {
			t.Fatalf("failed to load demo document: %v", err)
		}
		cfg.Document = doc
	}
	srv, err := stubserver.New(cfg, logging.NewNopLogger())
	if err != nil {
		t.Fatalf("failed to create stub server: %v", err)
	}
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts
}

func analyzeAgainst(t *testing.T, ts *httptest.Server) (*session.Session, error) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.ServerURL = ts.URL
	analyzer, err := newAnalyzer(cfg, "", logging.NewNopLogger())
	if err != nil {
		t.Fatalf("newAnalyzer() unexpected error: %v", err)
	}
	file := testutil.MemoryFile("standup.mp3", "ID3 fake audio")
	return analyzeFile(context.Background(), analyzer, file, io.Discard, logging.NewNopLogger(), cfg)
}

func TestAnalyzeFile_TextReport(t *testing.T) {
	ts := newStub(t, stubserver.Config{})

	sess, err := analyzeAgainst(t, ts)
	if err != nil {
		t.Fatalf("analyzeFile() unexpected error: %v", err)
	}
	if sess.Phase() != session.PhaseResults {
		t.Fatalf("phase = %q, want %q", sess.Phase(), session.PhaseResults)
	}

	var out bytes.Buffer
	if err := writeReport(&out, sess, render.Tabs, FormatText); err != nil {
		t.Fatalf("writeReport() unexpected error: %v", err)
	}

	got := out.String()
	for _, tab := range render.Tabs {
		header := "== " + tab.Title() + " =="
		if !strings.Contains(got, header) {
			t.Errorf("report missing header %q", header)
		}
	}
	if !strings.Contains(got, "Weekly product sync") {
		t.Errorf("report missing summary text, got:\n%s", got)
	}
}

func TestAnalyzeFile_JSONReportMatchesDocument(t *testing.T) {
	ts := newStub(t, stubserver.Config{})

	sess, err := analyzeAgainst(t, ts)
	if err != nil {
		t.Fatalf("analyzeFile() unexpected error: %v", err)
	}

	var out bytes.Buffer
	if err := writeReport(&out, sess, []render.Tab{render.TabSummary}, FormatJSON); err != nil {
		t.Fatalf("writeReport() unexpected error: %v", err)
	}

	doc, err := demo.Document()
	if err != nil {
		t.Fatalf("failed to load demo document: %v", err)
	}
	var want, got any
	if err := json.Unmarshal(doc, &want); err != nil {
		t.Fatalf("failed to decode demo document: %v", err)
	}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	wantJSON, _ := json.Marshal(want)
	gotJSON, _ := json.Marshal(got)
	if string(wantJSON) != string(gotJSON) {
		t.Errorf("JSON report differs from served document\ngot:  %s\nwant: %s", gotJSON, wantJSON)
	}
	if !strings.HasPrefix(out.String(), "{\n  \"") {
		t.Errorf("JSON report is not indented with two spaces: %q", out.String()[:10])
	}
}

func TestAnalyzeFile_HTMLReport(t *testing.T) {
	ts := newStub(t, stubserver.Config{})

	sess, err := analyzeAgainst(t, ts)
	if err != nil {
		t.Fatalf("analyzeFile() unexpected error: %v", err)
	}

	var out bytes.Buffer
	if err := writeReport(&out, sess, []render.Tab{render.TabTodos}, FormatHTML); err != nil {
		t.Fatalf("writeReport() unexpected error: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, `<section id="tab-todos">`) {
		t.Errorf("missing section wrapper, got:\n%s", got)
	}
	if !strings.Contains(got, "badge-high") {
		t.Errorf("missing priority badge, got:\n%s", got)
	}
}

func TestAnalyzeFile_ServerError(t *testing.T) {
	ts := newStub(t, stubserver.Config{FailMessage: "Transcription failed"})

	_, err := analyzeAgainst(t, ts)
	if err == nil {
		t.Fatal("analyzeFile() expected error")
	}
	if err.Error() != "Transcription failed" {
		t.Errorf("error = %q, want %q", err.Error(), "Transcription failed")
	}
}

func TestAnalyzeFile_DemoFailure(t *testing.T) {
	cfg := config.DefaultConfig()
	analyzer, err := newAnalyzer(cfg, "fail", logging.NewNopLogger())
	if err != nil {
		t.Fatalf("newAnalyzer() unexpected error: %v", err)
	}

	_, err = analyzeFile(context.Background(), analyzer, testutil.MemoryFile("a.wav", "RIFF"), io.Discard, logging.NewNopLogger(), cfg)
	if err == nil {
		t.Fatal("analyzeFile() expected error")
	}
	if err.Error() != demo.FailMessage {
		t.Errorf("error = %q, want %q", err.Error(), demo.FailMessage)
	}
}

func TestNewAnalyzer(t *testing.T) {
	cfg := config.DefaultConfig()

	a, err := newAnalyzer(cfg, "", logging.NewNopLogger())
	if err != nil {
		t.Fatalf("newAnalyzer() unexpected error: %v", err)
	}
	httpAnalyzer, ok := a.(*upload.HTTPAnalyzer)
	if !ok {
		t.Fatalf("newAnalyzer() = %T, want *upload.HTTPAnalyzer", a)
	}
	if want := cfg.ServerURL + upload.UploadPath; httpAnalyzer.Endpoint() != want {
		t.Errorf("Endpoint() = %q, want %q", httpAnalyzer.Endpoint(), want)
	}

	if _, err := newAnalyzer(cfg, "success", logging.NewNopLogger()); err != nil {
		t.Errorf("newAnalyzer(success) unexpected error: %v", err)
	}
	if _, err := newAnalyzer(cfg, "sometimes", logging.NewNopLogger()); err == nil {
		t.Error("newAnalyzer(sometimes) expected error")
	}
}

func TestWriteReport_NoResult(t *testing.T) {
	sess := session.New(testutil.AnalyzerFunc(nil))

	var out bytes.Buffer
	if err := writeReport(&out, sess, render.Tabs, FormatText); err != session.ErrNoResult {
		t.Errorf("writeReport() error = %v, want %v", err, session.ErrNoResult)
	}
}
