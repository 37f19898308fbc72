package smoke

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/zhouzirui/avatar-smoke/internal/config"
	"github.com/zhouzirui/avatar-smoke/internal/model/avatar"
)

const (
	ttsPath    = "/tts"
	voicesPath = "/voices"

	requestIDHeader = "X-Request-Id"
)

// Options 配置 Runner。零值 Timeout 表示不设超时，Out 为空时写到标准输出。
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	PreviewLen int
	Out        io.Writer
	HTTPClient *http.Client
}

// Runner drives fixed smoke cases against one avatar backend, one request at a time.
type Runner struct {
	baseURL string
	client  *http.Client
	report  *Reporter
}

// NewRunner validates the base URL and builds a runner.
func NewRunner(opts Options) (*Runner, error) {
	baseURL, err := config.NormalizeBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	return &Runner{
		baseURL: baseURL,
		client:  client,
		report:  NewReporter(out, opts.PreviewLen),
	}, nil
}

// BaseURL returns the normalized backend address.
func (r *Runner) BaseURL() string {
	return r.baseURL
}

// Reporter exposes the runner's output so suites can print headers and summaries
// in the same stream as the case results.
func (r *Runner) Reporter() *Reporter {
	return r.report
}

// RunCase posts payload to /tts and prints the result in the default layout.
func (r *Runner) RunCase(ctx context.Context, payload any) Outcome {
	outcome := r.PostTTS(ctx, payload)
	r.report.Case(outcome, DefaultStyle)
	return outcome
}

// RunVoicesCheck issues GET /voices and prints whether it answered 200.
func (r *Runner) RunVoicesCheck(ctx context.Context) Outcome {
	outcome := r.GetVoices(ctx)
	r.report.Voices(outcome)
	return outcome
}

// PostTTS posts payload to /tts and classifies the response without printing.
func (r *Runner) PostTTS(ctx context.Context, payload any) Outcome {
	body, err := json.Marshal(payload)
	if err != nil {
		return transportOutcome(0, fmt.Errorf("encode payload: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+ttsPath, bytes.NewReader(body))
	if err != nil {
		return transportOutcome(0, err)
	}
	req.Header.Set("Content-Type", "application/json")

	status, raw, requestID, err := r.do(req)
	if err != nil {
		outcome := transportOutcome(status, err)
		outcome.RequestID = requestID
		return outcome
	}

	outcome := classifyTTS(status, raw)
	outcome.RequestID = requestID
	return outcome
}

// GetVoices issues GET /voices; only the status code matters.
func (r *Runner) GetVoices(ctx context.Context) Outcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+voicesPath, nil)
	if err != nil {
		return transportOutcome(0, err)
	}

	status, raw, requestID, err := r.do(req)
	var outcome Outcome
	switch {
	case err != nil:
		outcome = transportOutcome(status, err)
	case status != http.StatusOK:
		outcome = httpErrorOutcome(status, string(raw))
	default:
		outcome = Outcome{Kind: KindSuccess, Status: status}
	}
	outcome.RequestID = requestID
	return outcome
}

func (r *Runner) do(req *http.Request) (int, []byte, string, error) {
	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)

	resp, err := r.client.Do(req)
	if err != nil {
		log.Printf("[smoke] %s %s failed: request_id=%s err=%v", req.Method, req.URL.Path, requestID, err)
		return 0, nil, requestID, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, requestID, fmt.Errorf("read response body: %w", err)
	}
	return resp.StatusCode, raw, requestID, nil
}

// ttsEnvelope decodes message elements as pointers so a null element is visible.
type ttsEnvelope struct {
	Messages []*avatar.MessageUnit `json:"messages"`
}

// classifyTTS maps a /tts response onto an Outcome. A missing messages key decodes to
// an empty slice and counts as zero results; a null element is a malformed body.
func classifyTTS(status int, raw []byte) Outcome {
	if status != http.StatusOK {
		return httpErrorOutcome(status, string(raw))
	}

	var resp ttsEnvelope
	if err := json.Unmarshal(raw, &resp); err != nil {
		return transportOutcome(status, fmt.Errorf("%w: %v", ErrMalformedResponse, err))
	}

	if len(resp.Messages) == 0 {
		return emptyOutcome(status)
	}

	messages := make([]avatar.MessageUnit, 0, len(resp.Messages))
	for i, msg := range resp.Messages {
		if msg == nil {
			return transportOutcome(status, fmt.Errorf("%w: message %d is null", ErrMalformedResponse, i))
		}
		messages = append(messages, *msg)
	}
	return successOutcome(status, messages)
}
