package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/goliatone/go-orderform/pkg/model"
)

// DefaultEndpoint is the order endpoint of the local development backend.
const DefaultEndpoint = "http://localhost:9009/api/order"

const maxResponseBytes = 1 << 20

// Result is the outcome of an accepted submission.
type Result struct {
	Status  int
	Message string
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the order endpoint URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = strings.TrimSpace(endpoint)
	}
}

// WithHTTPClient swaps the HTTP client used for submissions.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithFallbackMessage overrides the banner text used when a failure carries
// no server message.
func WithFallbackMessage(message string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(message); trimmed != "" {
			c.fallback = trimmed
		}
	}
}

// WithHeader adds a header sent with every submission.
func WithHeader(name, value string) Option {
	return func(c *Client) {
		if strings.TrimSpace(name) == "" {
			return
		}
		c.headers.Add(name, value)
	}
}

// WithLogger attaches a logger for submission diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client submits orders to the order endpoint. It is safe for concurrent use.
type Client struct {
	endpoint string
	http     *http.Client
	fallback string
	headers  http.Header
	logger   *zap.Logger
}

// New constructs a Client. Without options it targets DefaultEndpoint using
// http.DefaultClient.
func New(options ...Option) (*Client, error) {
	c := &Client{
		endpoint: DefaultEndpoint,
		http:     http.DefaultClient,
		fallback: DefaultFallbackMessage,
		headers:  make(http.Header),
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.endpoint == "" {
		return nil, ErrEndpointRequired
	}
	return c, nil
}

// Endpoint reports the URL orders are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// FallbackMessage reports the banner text used for failures without a
// server message.
func (c *Client) FallbackMessage() string {
	return c.fallback
}

// Submit posts values to the order endpoint. A 2xx reply yields the server
// message; anything else yields a *SubmissionError whose Message is the
// server message or the fallback.
func (c *Client) Submit(ctx context.Context, values model.FormValues) (Result, error) {
	payload, err := json.Marshal(model.NewOrderRequest(values))
	if err != nil {
		return Result{}, fmt.Errorf("gateway: encode order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Result{}, fmt.Errorf("gateway: build request: %w", err)
	}
	for name, values := range c.headers {
		for _, value := range values {
			req.Header.Add(name, value)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("order submission failed",
			zap.String("endpoint", c.endpoint),
			zap.Error(err),
		)
		return Result{}, &SubmissionError{Message: c.fallback, Err: err}
	}
	defer resp.Body.Close()

	message := decodeMessage(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if message == "" {
			message = c.fallback
		}
		c.logger.Info("order rejected",
			zap.String("endpoint", c.endpoint),
			zap.Int("status", resp.StatusCode),
			zap.String("message", message),
		)
		return Result{}, &SubmissionError{Status: resp.StatusCode, Message: message}
	}

	c.logger.Debug("order accepted",
		zap.String("endpoint", c.endpoint),
		zap.Int("status", resp.StatusCode),
	)
	return Result{Status: resp.StatusCode, Message: message}, nil
}

func decodeMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxResponseBytes))
	if err != nil || len(bytes.TrimSpace(data)) == 0 {
		return ""
	}
	var reply model.OrderResponse
	if err := json.Unmarshal(data, &reply); err != nil {
		return ""
	}
	return strings.TrimSpace(reply.Message)
}
