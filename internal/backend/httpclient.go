package backend

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

	taskerrors "taskdeck/cli/internal/errors"
	"taskdeck/cli/internal/task"
)

// RequestIDHeader carries a per-request id so backend and client logs can be joined.
const RequestIDHeader = "X-Request-ID"

// HTTP implements API client over REST endpoints.
// It sends JSON bodies, decodes JSON responses and classifies failures as
// application errors (non-2xx with an error body) or transport errors.
type HTTP struct {
	// baseURL is the backend origin for all HTTP requests (e.g., "http://127.0.0.1:5000")
	baseURL string
	// endpoints contains the URL paths for the API endpoints
	endpoints Endpoints
	// client is the underlying HTTP client. It has no timeout: task execution
	// time is bounded by the backend, not the client.
	client *http.Client
	logger *slog.Logger
}

// newHTTP creates a new HTTP client with the given base URL and endpoints.
func newHTTP(baseURL string, endpoints Endpoints, logger *slog.Logger) *HTTP {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTP{
		baseURL:   strings.TrimRight(baseURL, "/"),
		endpoints: endpoints,
		client:    &http.Client{},
		logger:    logger,
	}
}

// BaseURL returns the backend origin this client talks to.
func (h *HTTP) BaseURL() string { return h.baseURL }

// APIError is a non-2xx backend response that carried a structured error body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err carries a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// do performs one JSON round trip. op names the operation in errors.
// On 2xx the body is decoded into out (when non-nil).
func (h *HTTP) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return taskerrors.Wrap(taskerrors.Transport, op, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reader)
	if err != nil {
		return taskerrors.Wrap(taskerrors.Transport, op, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		h.logger.Debug("backend request failed", "op", op, "request_id", requestID, "error", err)
		return taskerrors.Wrap(taskerrors.Transport, op, err)
	}
	defer resp.Body.Close()

	h.logger.Debug("backend request",
		"op", op,
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return taskerrors.Wrap(taskerrors.Transport, op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// The error body must be JSON; anything else is indistinguishable
		// from a broken transport.
		var eb task.ErrorBody
		if err := json.Unmarshal(data, &eb); err != nil {
			return taskerrors.Wrap(taskerrors.Transport, op,
				fmt.Errorf("%d response is not JSON: %w", resp.StatusCode, err))
		}
		msg := strings.TrimSpace(eb.Error)
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return taskerrors.Wrap(taskerrors.Application, op, &APIError{StatusCode: resp.StatusCode, Message: msg})
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return taskerrors.Wrap(taskerrors.Transport, op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}
