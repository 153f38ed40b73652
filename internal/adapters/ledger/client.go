package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/bank_console/internal/apperrors"
	"github.com/SscSPs/bank_console/internal/core/ports/gateways"
	"github.com/SscSPs/bank_console/internal/dto"
	"github.com/SscSPs/bank_console/internal/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
)

const (
	defaultTimeout  = 15 * time.Second
	maxResponseSize = 4 << 20
)

// Client is the transport to the remote ledger service. It attaches the held
// bearer token to every request and normalises every failure into an
// *apperrors.APIError. It never retries.
type Client struct {
	httpClient *http.Client
	baseURL    string

	mu        sync.RWMutex
	token     *oauth2.Token
	onExpired gateways.SessionExpiredHandler
}

// Ensure Client implements the gateway contract
var _ gateways.LedgerGateway = (*Client)(nil)

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the instrumented default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient creates a ledger client rooted at baseURL (e.g. "http://localhost:8080/api").
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken installs the bearer token sent on subsequent requests. An empty token clears it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token == "" {
		c.token = nil
		return
	}
	c.token = &oauth2.Token{AccessToken: token, TokenType: "Bearer"}
}

// HasToken reports whether a bearer token is currently held.
func (c *Client) HasToken() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != nil
}

// OnSessionExpired registers the handler called after a 401 response.
func (c *Client) OnSessionExpired(handler gateways.SessionExpiredHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onExpired = handler
}

func (c *Client) currentToken() *oauth2.Token {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Send performs one request against endpoint. body, when non-nil, is sent as
// JSON; a successful response is decoded into out when out is non-nil and the
// response has a body.
func (c *Client) Send(ctx context.Context, method, endpoint string, body any, out any) error {
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.String("ledger_method", method), slog.String("ledger_endpoint", endpoint))

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode ledger request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build ledger request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	token := c.currentToken()
	if token != nil {
		token.SetAuthHeader(req)
	}

	logger.Debug("Ledger request")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("Ledger request failed", slog.String("error", err.Error()))
		return &apperrors.APIError{Kind: apperrors.ErrConnectionFailure, Message: apperrors.ConnectionFailureMessage, Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		logger.Warn("Failed to read ledger response", slog.String("error", err.Error()))
		return &apperrors.APIError{Kind: apperrors.ErrConnectionFailure, Message: apperrors.ConnectionFailureMessage, Cause: err}
	}

	if resp.StatusCode == http.StatusUnauthorized && token != nil {
		logger.Warn("Ledger rejected bearer token, clearing session")
		c.expire(ctx)
		return &apperrors.APIError{Kind: apperrors.ErrSessionExpired, StatusCode: resp.StatusCode, Message: apperrors.SessionExpiredMessage}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := remoteError(resp.StatusCode, data)
		logger.Info("Ledger rejected request", slog.Int("status", resp.StatusCode), slog.String("message", apiErr.Message))
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		logger.Error("Failed to decode ledger response", slog.String("error", err.Error()))
		return &apperrors.APIError{
			Kind:       apperrors.ErrRemoteRejected,
			StatusCode: resp.StatusCode,
			Message:    "Unexpected response from the bank",
			Cause:      err,
		}
	}
	return nil
}

func (c *Client) expire(ctx context.Context) {
	c.mu.Lock()
	c.token = nil
	handler := c.onExpired
	c.mu.Unlock()

	if handler != nil {
		handler(ctx)
	}
}

// remoteError builds the error for a non-success status, preferring the
// server's {message} and falling back to the status line.
func remoteError(status int, body []byte) *apperrors.APIError {
	var parsed dto.MessageResponse
	msg := ""
	if err := json.Unmarshal(body, &parsed); err == nil {
		msg = strings.TrimSpace(parsed.Message)
	}
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
	}
	return &apperrors.APIError{Kind: apperrors.ErrRemoteRejected, StatusCode: status, Message: msg}
}
