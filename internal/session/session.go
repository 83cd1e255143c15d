// Package session owns the client view-state machine: the upload phase, the
// status line, and the single analysis result shown to the user.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pablasso/meetmind/internal/analysis"
	"github.com/pablasso/meetmind/internal/logging"
	"github.com/pablasso/meetmind/internal/render"
	"github.com/pablasso/meetmind/internal/upload"
)

// Phase represents the UI phase of the session.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseUploading  Phase = "uploading"
	PhaseProcessing Phase = "processing"
	PhaseResults    Phase = "results"
	PhaseFailed     Phase = "failed"
)

// InFlight reports whether a request is outstanding in this phase.
func (p Phase) InFlight() bool {
	return p == PhaseUploading || p == PhaseProcessing
}

// Status messages shown while a request is in flight.
const (
	StatusUploading = "Uploading recording (this may take a moment)..."
	StatusAnalyzing = "Analyzing the meeting context..."
)

// DefaultResetDelay is how long a failure stays on screen before the
// session returns to idle.
const DefaultResetDelay = 3 * time.Second

var (
	// ErrBusy is returned by Submit when the session is not idle.
	ErrBusy = errors.New("an upload is already in progress")

	// ErrNoResult is returned by Export before any analysis is available.
	ErrNoResult = errors.New("no analysis available")
)

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	Phase     Phase
	Status    string
	IsError   bool
	FileName  string
	FileSize  int64
	BytesSent int64
	StartedAt time.Time
	ResetAt   time.Time
	ActiveTab render.Tab
	HasResult bool
}

// Session is the single upload/result session of the client. It is safe for
// concurrent use; the upload runs off the UI goroutine.
type Session struct {
	mu         sync.Mutex
	analyzer   upload.Analyzer
	log        logging.Logger
	now        func() time.Time
	resetDelay time.Duration
	onPhase    func(from, to Phase)

	phase     Phase
	status    string
	isError   bool
	fileName  string
	fileSize  int64
	bytesSent int64
	startedAt time.Time
	resetAt   time.Time
	attempt   int
	result    *analysis.Result
	activeTab render.Tab
}

// Option configures a Session.
type Option func(*Session)

// WithLogger attaches a logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// WithResetDelay overrides DefaultResetDelay.
func WithResetDelay(d time.Duration) Option {
	return func(s *Session) {
		s.resetDelay = d
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithPhaseListener registers a callback for every phase change. It is
// called with the session lock held and must not call back into the session.
func WithPhaseListener(fn func(from, to Phase)) Option {
	return func(s *Session) {
		s.onPhase = fn
	}
}

// New creates an idle session that submits recordings to analyzer.
func New(analyzer upload.Analyzer, opts ...Option) *Session {
	s := &Session{
		analyzer:   analyzer,
		log:        logging.NewNopLogger(),
		now:        time.Now,
		resetDelay: DefaultResetDelay,
		phase:      PhaseIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ResetDelay returns the delay between a failure and the automatic reset.
func (s *Session) ResetDelay() time.Duration {
	return s.resetDelay
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Phase:     s.phase,
		Status:    s.status,
		IsError:   s.isError,
		FileName:  s.fileName,
		FileSize:  s.fileSize,
		BytesSent: s.bytesSent,
		StartedAt: s.startedAt,
		ResetAt:   s.resetAt,
		ActiveTab: s.activeTab,
		HasResult: s.result != nil,
	}
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Result returns the accepted analysis, or nil.
func (s *Session) Result() *analysis.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Submit uploads file and blocks until the analysis succeeds or fails. It is
// only valid while idle; otherwise it returns ErrBusy without touching the
// attempt in flight. On failure the session moves to PhaseFailed and the
// returned error carries the user-facing message.
func (s *Session) Submit(ctx context.Context, file upload.File) (*analysis.Result, error) {
	wait, err := s.Start(ctx, file)
	if err != nil {
		return nil, err
	}
	return wait()
}

// Start is the synchronous half of Submit: it claims the idle session and
// enters PhaseUploading. The returned wait performs the upload and must be
// called once, typically off the UI goroutine.
func (s *Session) Start(ctx context.Context, file upload.File) (wait func() (*analysis.Result, error), err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseIdle {
		s.log.Warn("rejected upload while busy", logging.F("file", file.Name), logging.F("phase", string(s.phase)))
		return nil, ErrBusy
	}
	s.attempt++
	attempt := s.attempt
	s.fileName = file.Name
	s.fileSize = file.Size
	s.bytesSent = 0
	s.startedAt = s.now()
	s.status = StatusUploading
	s.isError = false
	s.setPhase(PhaseUploading)

	return func() (*analysis.Result, error) {
		return s.run(ctx, attempt, file)
	}, nil
}

func (s *Session) run(ctx context.Context, attempt int, file upload.File) (*analysis.Result, error) {
	result, err := s.analyzer.Analyze(ctx, file, upload.Hooks{
		OnSent:     func() { s.markSent(attempt) },
		OnProgress: func(n int64) { s.markProgress(attempt, n) },
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	if attempt != s.attempt || !s.phase.InFlight() {
		// Reset while the request was outstanding; the outcome is stale.
		s.log.Info("discarding stale upload outcome", logging.F("attempt", attempt))
		if err == nil {
			err = context.Canceled
		}
		return nil, err
	}

	if err != nil {
		s.fail(err)
		return nil, err
	}
	if result == nil {
		err = &upload.DecodeError{Err: errors.New("empty analysis response")}
		s.fail(err)
		return nil, err
	}

	s.accept(result)
	return s.result, nil
}

func (s *Session) markSent(attempt int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if attempt != s.attempt || s.phase != PhaseUploading {
		return
	}
	s.status = StatusAnalyzing
	s.setPhase(PhaseProcessing)
}

func (s *Session) markProgress(attempt int, n int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if attempt == s.attempt && s.phase.InFlight() {
		s.bytesSent = n
	}
}

func (s *Session) accept(result *analysis.Result) {
	s.result = analysis.Normalize(*result)
	s.status = ""
	s.isError = false
	s.activeTab = render.DefaultTab
	s.setPhase(PhaseResults)
	s.log.Info("analysis accepted",
		logging.F("file", s.fileName),
		logging.F("action_items", len(s.result.ActionItems)),
		logging.F("elapsed", s.now().Sub(s.startedAt)),
	)
}

func (s *Session) fail(err error) {
	s.result = nil
	s.status = "Error: " + upload.Message(err)
	s.isError = true
	s.resetAt = s.now().Add(s.resetDelay)
	s.setPhase(PhaseFailed)
	s.log.Error("analysis failed", logging.F("file", s.fileName), logging.Err(err))
}

// Reset discards the result and any pending state and returns to idle. It
// is the only way out of PhaseFailed and PhaseResults.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.result = nil
	s.status = ""
	s.isError = false
	s.fileName = ""
	s.fileSize = 0
	s.bytesSent = 0
	s.startedAt = time.Time{}
	s.resetAt = time.Time{}
	s.activeTab = ""
	s.setPhase(PhaseIdle)
}

// ResetIfDue resets a failed session whose reset delay has elapsed at now.
func (s *Session) ResetIfDue(now time.Time) bool {
	s.mu.Lock()
	due := s.phase == PhaseFailed && !now.Before(s.resetAt)
	s.mu.Unlock()

	if due {
		s.Reset()
	}
	return due
}

// RenderTab projects the result for tab and marks it active. Before results
// arrive it does nothing and reports false.
func (s *Session) RenderTab(tab render.Tab) (render.TabView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.result == nil {
		return render.TabView{}, false
	}
	s.activeTab = tab
	return render.Project(s.result, tab), true
}

// Export serializes the result with 2-space indentation. It returns
// ErrNoResult before results arrive.
func (s *Session) Export() ([]byte, error) {
	s.mu.Lock()
	result := s.result
	s.mu.Unlock()

	if result == nil {
		return nil, ErrNoResult
	}
	return render.Export(result)
}

func (s *Session) setPhase(to Phase) {
	from := s.phase
	s.phase = to
	if from == to {
		return
	}
	s.log.Debug("phase change", logging.F("from", string(from)), logging.F("to", string(to)))
	if s.onPhase != nil {
		s.onPhase(from, to)
	}
}
