package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	StatsPath      = "/api/stats"
	GovernancePath = "/api/governance"
)

const requestIDHeader = "X-Request-Id"

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.StatusCode, e.URL)
}

// DecodeError reports a body that is not the expected JSON document.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient returns a client for the dashboard backend at baseURL. A zero
// timeout leaves requests unbounded.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
	}
}

func (c *Client) setHeaders(req *http.Request, requestID string) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
}

func (c *Client) get(ctx context.Context, path string, out any) (string, error) {
	url := c.baseURL + path
	requestID := uuid.NewString()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return requestID, err
	}
	c.setHeaders(req, requestID)

	c.logger.Debug("requesting dashboard data",
		zap.String("url", url),
		zap.String("requestId", requestID),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return requestID, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return requestID, &StatusError{StatusCode: resp.StatusCode, URL: url}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return requestID, ctx.Err()
		}
		return requestID, err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return requestID, &DecodeError{URL: url, Err: err}
	}
	if s, ok := out.(shaped); ok {
		if err := checkShape(body, s.requiredFields()); err != nil {
			return requestID, &DecodeError{URL: url, Err: err}
		}
	}
	return requestID, nil
}

// GetStats fetches the summary statistics. The returned request id is set
// even when the call fails.
func (c *Client) GetStats(ctx context.Context) (*StatsResponse, string, error) {
	var resp StatsResponse
	requestID, err := c.get(ctx, StatsPath, &resp)
	if err != nil {
		return nil, requestID, fmt.Errorf("getting stats: %w", err)
	}
	return &resp, requestID, nil
}

func (c *Client) GetGovernance(ctx context.Context) (*GovernanceResponse, string, error) {
	var resp GovernanceResponse
	requestID, err := c.get(ctx, GovernancePath, &resp)
	if err != nil {
		return nil, requestID, fmt.Errorf("getting governance: %w", err)
	}
	return &resp, requestID, nil
}
