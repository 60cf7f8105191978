// Package agent is the HTTP client for the local agent backend.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrMalformed reports a 2xx body that decoded but lacks its expected envelope.
var ErrMalformed = errors.New("agent: malformed response")

// StatusError is returned for any non-2xx reply.
type StatusError struct {
	Path string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("agent %s: status %d", e.Path, e.Code)
	}
	return fmt.Sprintf("agent %s: status %d: %s", e.Path, e.Code, e.Body)
}

// Client posts JSON requests to the agent backend. It never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
	newID      func() string
}

type Option func(*Client)

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTimeout bounds each request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithRequestIDs(fn func() string) Option {
	return func(c *Client) {
		if fn != nil {
			c.newID = fn
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		logger:  slog.Default(),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.httpClient = &http.Client{Timeout: c.timeout}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) Query(ctx context.Context, req QueryRequest) (Answer, error) {
	var resp QueryResponse
	if err := c.post(ctx, PathQuery, req, &resp); err != nil {
		return Answer{}, err
	}
	if resp.Error != "" {
		return Answer{Error: resp.Error}, nil
	}
	if resp.Answer == nil {
		return Answer{}, fmt.Errorf("%s: missing answer: %w", PathQuery, ErrMalformed)
	}
	return Answer{Text: *resp.Answer}, nil
}

func (c *Client) ProductListing(ctx context.Context, req ListingRequest) (Listing, error) {
	var resp ListingResponse
	if err := c.post(ctx, PathProductListing, req, &resp); err != nil {
		return Listing{}, err
	}
	if resp.Error != "" {
		return Listing{Error: resp.Error}, nil
	}
	if resp.Listing == nil {
		return Listing{}, fmt.Errorf("%s: missing listing: %w", PathProductListing, ErrMalformed)
	}
	return *resp.Listing, nil
}

func (c *Client) Budget(ctx context.Context, req BudgetRequest) (Advice, error) {
	var resp BudgetResponse
	if err := c.post(ctx, PathBudget, req, &resp); err != nil {
		return Advice{}, err
	}
	if resp.Error != "" {
		return Advice{Error: resp.Error}, nil
	}
	if resp.BudgetAdvice == nil {
		return Advice{}, fmt.Errorf("%s: missing budget_advice: %w", PathBudget, ErrMalformed)
	}
	return Advice{Text: *resp.BudgetAdvice}, nil
}

func (c *Client) ContractReview(ctx context.Context, req ContractRequest) (Review, error) {
	var resp ContractResponse
	if err := c.post(ctx, PathContractReview, req, &resp); err != nil {
		return Review{}, err
	}
	if resp.Error != "" {
		return Review{Error: resp.Error}, nil
	}
	if resp.Review == nil {
		return Review{}, fmt.Errorf("%s: missing review: %w", PathContractReview, ErrMalformed)
	}
	return *resp.Review, nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	id := c.newID()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", id)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("agent request failed", "path", path, "request_id", id, "error", err)
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn("agent request rejected", "path", path, "request_id", id, "status", resp.StatusCode)
		return &StatusError{Path: path, Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(out); err != nil {
		c.logger.Warn("agent response undecodable", "path", path, "request_id", id, "error", err)
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	// the body must be exactly one JSON value
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		c.logger.Warn("agent response has trailing data", "path", path, "request_id", id)
		return fmt.Errorf("decode %s response: trailing data: %w", path, ErrMalformed)
	}
	c.logger.Debug("agent request done", "path", path, "request_id", id, "duration", time.Since(start))
	return nil
}
