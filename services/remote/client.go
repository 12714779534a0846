// Package remote implements the HTTP contracts of the roster service, the demand service and the solver.
package remote

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

	"shiftdesk/services/errs"

	"go.uber.org/zap"
)

// maxErrorBody bounds how much of a failed response is kept in the error message.
const maxErrorBody = 512

type httpClient struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func newHTTPClient(baseURL string, timeout time.Duration, logger *zap.Logger) httpClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// do sends body as JSON and decodes a 2xx response into out (when out is non-nil).
// Transport failures and non-2xx statuses yield *errs.RemoteError; undecodable bodies yield
// *errs.MalformedResponseError.
func (c httpClient) do(ctx context.Context, op, method, path string, body any, out any, headers map[string]string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("remote call failed", zap.String("op", op), zap.Error(err))
		return &errs.RemoteError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("remote call",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var cause error
		if msg := strings.TrimSpace(string(snippet)); msg != "" {
			cause = errors.New(msg)
		}
		return &errs.RemoteError{Op: op, Status: resp.StatusCode, Err: cause}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &errs.MalformedResponseError{Op: op, Err: err}
	}
	return nil
}

// statusOf returns the HTTP status carried by a RemoteError, or 0.
func statusOf(err error) int {
	var remoteErr *errs.RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr.Status
	}
	return 0
}
