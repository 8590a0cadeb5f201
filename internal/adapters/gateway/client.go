package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/AssiaOU26/Cars-front/internal/config"
	"github.com/AssiaOU26/Cars-front/internal/core/ports"
	"github.com/AssiaOU26/Cars-front/internal/logger"
)

const (
	MsgNetworkNotOK = "Network response was not ok"
	MsgUnknownError = "An unknown error occurred"
)

// RequestError is returned for every non-2xx answer and for 2xx answers
// whose body is not JSON.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// SessionExpired reports whether the backend rejected the session.
func (e *RequestError) SessionExpired() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// errServerStatus makes 5xx answers count as breaker failures.
type errServerStatus int

func (e errServerStatus) Error() string {
	return fmt.Sprintf("server answered %d", int(e))
}

type Options struct {
	BaseURL    string
	Tokens     ports.TokenSource
	HTTPClient *http.Client
	Timeout    time.Duration
	Metrics    *Metrics
	Logger     *logger.Logger
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  ports.TokenSource
	breaker *gobreaker.CircuitBreaker
	metrics *Metrics
	log     *logger.Logger
}

var _ ports.Backend = (*Client)(nil)

func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 20 * time.Second
		}
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	return &Client{
		baseURL: strings.TrimSuffix(opts.BaseURL, "/"),
		http:    httpClient,
		tokens:  opts.Tokens,
		breaker: config.NewCircuitBreaker(config.BreakerBackendAPI, breakerSuccess),
		metrics: opts.Metrics,
		log:     log,
	}
}

// breakerSuccess keeps client errors and cancellations from tripping the breaker.
func breakerSuccess(err error) bool {
	return err == nil || errors.Is(err, context.Canceled)
}

func (c *Client) BreakerState() gobreaker.State {
	return c.breaker.State()
}

type CallOptions struct {
	Method  string
	Body    any
	Headers http.Header
	// Operation names the call in metrics; defaults to the endpoint.
	Operation string
}

// Call sends a JSON request and returns the raw JSON answer. A 204 answer
// yields a nil payload.
func (c *Client) Call(ctx context.Context, endpoint string, opts CallOptions) (json.RawMessage, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	for k, v := range opts.Headers {
		headers[k] = v
	}

	var body io.Reader
	if opts.Body != nil {
		encoded, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", endpoint, err)
		}
		body = bytes.NewReader(encoded)
	}

	op := opts.Operation
	if op == "" {
		op = endpoint
	}
	return c.send(ctx, op, method, endpoint, body, headers)
}

type rawResponse struct {
	status int
	body   []byte
}

func (c *Client) send(ctx context.Context, op, method, endpoint string, body io.Reader, headers http.Header) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, endpoint, err)
	}
	for k, v := range headers {
		req.Header[k] = v
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		payload, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		raw := &rawResponse{status: resp.StatusCode, body: payload}
		if resp.StatusCode >= http.StatusInternalServerError {
			return raw, errServerStatus(resp.StatusCode)
		}
		return raw, nil
	})
	duration := time.Since(start)

	raw, _ := result.(*rawResponse)
	if raw == nil {
		c.metrics.observe(op, method, 0, duration)
		c.log.Errorf("gateway: request method=%s path=%s error=%q duration_ms=%d request_id=%s",
			method, endpoint, err, duration.Milliseconds(), requestID)
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}

	c.metrics.observe(op, method, raw.status, duration)
	c.log.Debugf("gateway: request method=%s path=%s status=%d duration_ms=%d request_id=%s",
		method, endpoint, raw.status, duration.Milliseconds(), requestID)

	return c.interpret(ctx, raw)
}

func (c *Client) interpret(ctx context.Context, raw *rawResponse) (json.RawMessage, error) {
	if raw.status < 200 || raw.status > 299 {
		if raw.status == http.StatusUnauthorized || raw.status == http.StatusForbidden {
			// The session is gone; drop it before the caller sees the error.
			if c.tokens != nil {
				c.tokens.Invalidate(context.WithoutCancel(ctx))
			}
		}
		return nil, &RequestError{Status: raw.status, Message: errorMessage(raw.body)}
	}

	if raw.status == http.StatusNoContent {
		return nil, nil
	}

	if !json.Valid(raw.body) {
		return nil, &RequestError{Status: raw.status, Message: MsgNetworkNotOK}
	}
	return json.RawMessage(raw.body), nil
}

func errorMessage(body []byte) string {
	var parsed struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return MsgNetworkNotOK
	}
	switch {
	case parsed.Error != "":
		return parsed.Error
	case parsed.Message != "":
		return parsed.Message
	default:
		return MsgUnknownError
	}
}
