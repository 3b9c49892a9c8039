// Package backend is the HTTP client for the analysis service.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/PabloGalante/nuance-coach/internal/domain"
	"github.com/PabloGalante/nuance-coach/internal/observability"
)

const (
	PathInterpret = "/api/interpret"
	PathReplies   = "/api/replies"
	PathStyle     = "/api/style"
)

// Client implements domain.Analyzer over the backend's JSON endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient creates a client for baseURL. Requests have no timeout.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

type interpretRequest struct {
	Text string `json:"text"`
}

type repliesRequest struct {
	Text string `json:"text"`
	Goal string `json:"goal"`
}

type styleRequest struct {
	Preferences []string `json:"preferences"`
}

type errorResponse struct {
	Detail *string `json:"detail"`
}

func (c *Client) Interpret(ctx context.Context, text string) (*domain.Interpretation, error) {
	return post[domain.Interpretation](ctx, c, PathInterpret, interpretRequest{Text: text})
}

func (c *Client) Replies(ctx context.Context, text, goal string) (*domain.ReplyOptions, error) {
	return post[domain.ReplyOptions](ctx, c, PathReplies, repliesRequest{Text: text, Goal: goal})
}

func (c *Client) Style(ctx context.Context, preferences []string) (*domain.StyleVariants, error) {
	if preferences == nil {
		preferences = []string{}
	}
	return post[domain.StyleVariants](ctx, c, PathStyle, styleRequest{Preferences: preferences})
}

// post sends body as JSON and decodes a 2xx response into T. The response is
// not validated beyond being JSON.
func post[T any](ctx context.Context, c *Client, path string, body any) (*T, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", path, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	log := observability.LoggerFromContext(observability.WithRequestID(ctx, reqID)).With("path", path)
	start := time.Now()

	res, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s: %w", path, ctxErr)
		}
		log.Warn("backend unreachable", "error", err)
		return nil, &domain.APIError{Status: domain.StatusUnreachable, Message: domain.UnreachableMessage}
	}
	defer res.Body.Close()

	log = log.With("status", res.StatusCode, "elapsed_ms", time.Since(start).Milliseconds())

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &domain.APIError{Status: res.StatusCode, Message: errorDetail(res)}
		log.Warn("backend returned error", "detail", apiErr.Message)
		return nil, apiErr
	}

	var out T
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		log.Error("failed to decode response", "error", err)
		return nil, fmt.Errorf("decoding %s response: %w", path, err)
	}

	log.Debug("backend call completed")
	return &out, nil
}

// errorDetail extracts {"detail": "..."} from an error body, falling back to
// a status-coded message.
func errorDetail(res *http.Response) string {
	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return domain.ServerErrorMessage(res.StatusCode)
	}
	var body errorResponse
	if err := json.Unmarshal(raw, &body); err != nil || body.Detail == nil || *body.Detail == "" {
		return domain.ServerErrorMessage(res.StatusCode)
	}
	return *body.Detail
}
