// Package upload submits a recording to the analysis endpoint and decodes the
// resulting analysis document.
package upload

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptrace"
	"net/textproto"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pablasso/meetmind/internal/analysis"
	"github.com/pablasso/meetmind/internal/logging"
	"github.com/pablasso/meetmind/internal/version"
)

// UploadPath is the endpoint path relative to the server URL.
const UploadPath = "/api/upload"

// FormField is the multipart field carrying the recording.
const FormField = "file"

// maxErrorBody caps how much of a failure body is read for its error field.
const maxErrorBody = 64 << 10

// Hooks are callbacks fired while an analysis is in flight.
type Hooks struct {
	// OnSent is called once the request has been handed to the transport.
	OnSent func()

	// OnProgress is called with the running total of recording bytes
	// written to the request body.
	OnProgress func(sent int64)
}

func (h Hooks) sent() {
	if h.OnSent != nil {
		h.OnSent()
	}
}

// Analyzer turns a recording into an analysis result.
type Analyzer interface {
	Analyze(ctx context.Context, file File, hooks Hooks) (*analysis.Result, error)
}

// HTTPAnalyzer talks to the analysis endpoint over HTTP.
type HTTPAnalyzer struct {
	baseURL    string
	client     *http.Client
	timeout    time.Duration
	hasTimeout bool
	log        logging.Logger
}

// Option configures an HTTPAnalyzer.
type Option func(*HTTPAnalyzer)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) Option {
	return func(a *HTTPAnalyzer) {
		a.client = c
	}
}

// WithTimeout bounds the whole request. Zero means no timeout. A client
// passed to WithHTTPClient is copied, never modified.
func WithTimeout(d time.Duration) Option {
	return func(a *HTTPAnalyzer) {
		a.timeout = d
		a.hasTimeout = true
	}
}

// WithLogger attaches a logger.
func WithLogger(l logging.Logger) Option {
	return func(a *HTTPAnalyzer) {
		a.log = l
	}
}

// NewHTTPAnalyzer creates an analyzer for the server at baseURL.
func NewHTTPAnalyzer(baseURL string, opts ...Option) *HTTPAnalyzer {
	a := &HTTPAnalyzer{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		log:     logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.hasTimeout {
		c := *a.client
		c.Timeout = a.timeout
		a.client = &c
	}
	return a
}

// Endpoint returns the full upload URL.
func (a *HTTPAnalyzer) Endpoint() string {
	return a.baseURL + UploadPath
}

// Analyze uploads file as multipart form data and waits for the analysis.
func (a *HTTPAnalyzer) Analyze(ctx context.Context, file File, hooks Hooks) (*analysis.Result, error) {
	if file.Open == nil {
		return nil, errorf("no recording selected")
	}

	src, err := file.Open()
	if err != nil {
		return nil, errorf("failed to open recording: %w", err)
	}
	defer src.Close()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	// Stream the file into the request body; the transport reads from pr.
	go func() {
		part, err := mw.CreatePart(partHeader(file))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, &progressReader{r: src, report: hooks.OnProgress}); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.Endpoint(), pr)
	if err != nil {
		pr.Close()
		return nil, errorf("failed to build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "meetmind/"+version.Version)
	req.Header.Set("X-Request-ID", requestID)

	log := a.log.With(logging.F("request_id", requestID), logging.F("file", file.Name))
	log.Info("uploading recording", logging.F("size", file.Size), logging.F("endpoint", a.Endpoint()))

	// The status text switches to "analyzing" as soon as the request body has
	// been written; HTTP gives no signal separating receipt from analysis.
	var once sync.Once
	sent := func() { once.Do(hooks.sent) }
	req = req.WithContext(httptrace.WithClientTrace(ctx, &httptrace.ClientTrace{
		WroteRequest: func(info httptrace.WroteRequestInfo) {
			if info.Err == nil {
				sent()
			}
		},
	}))

	start := time.Now()
	resp, err := a.client.Do(req)
	if err != nil {
		log.Error("upload failed", logging.Err(err))
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()
	sent()

	log = log.With(logging.F("status", resp.StatusCode), logging.F("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := &ServerError{Status: resp.StatusCode, Message: errorMessage(resp.Body)}
		log.Warn("server rejected recording", logging.Err(serr))
		return nil, serr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read analysis", logging.Err(err))
		return nil, &TransportError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	result, err := analysis.Decode(body)
	if err != nil {
		log.Error("malformed analysis", logging.Err(err))
		return nil, &DecodeError{Err: err}
	}

	log.Info("analysis received")
	return result, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// partHeader describes the recording part, carrying its media type so the
// server can hand it to the transcriber.
func partHeader(file File) textproto.MIMEHeader {
	ct := file.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(FormField), quoteEscaper.Replace(file.Name)))
	h.Set("Content-Type", ct)
	return h
}

// progressReader reports cumulative bytes read from r.
type progressReader struct {
	r      io.Reader
	n      int64
	report func(int64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 && p.report != nil {
		p.n += int64(n)
		p.report(p.n)
	}
	return n, err
}

// errorMessage extracts the error field from a failure body, falling back to
// GenericFailureMessage.
func errorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil {
		return GenericFailureMessage
	}

	var payload struct {
		Error any `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return GenericFailureMessage
	}

	switch v := payload.Error.(type) {
	case string:
		if v != "" {
			return v
		}
	case nil:
	default:
		// Non-string error values are shown in their JSON form.
		if encoded, err := json.Marshal(v); err == nil {
			return string(encoded)
		}
	}
	return GenericFailureMessage
}
