package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"time"

	"skybook/internal/shared/config"
	"skybook/pkg/logger"
)

const maxResponseBytes = 4 << 20

// Client talks to the remote REST backend. Every method takes the caller's
// context so an abandoned request (client gone, server shutdown) cancels the
// outbound call instead of leaving it orphaned. Calls are never retried.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// NewClient creates a backend client from configuration
func NewClient(cfg config.BackendConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		log:     logger.GetDefault(),
	}
}

// NewClientWithHTTP is used when the transport must be supplied (tests, proxies)
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		log:     logger.GetDefault(),
	}
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}, unwrap ...string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, path, token, out, unwrap)
}

func (c *Client) send(req *http.Request, path, token string, out interface{}, unwrap []string) error {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		be := transportError(req.Method, path, err)
		c.log.LogBackendCall(req.Context(), req.Method, path, 0, time.Since(start), be)
		return be
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		be := transportError(req.Method, path, err)
		c.log.LogBackendCall(req.Context(), req.Method, path, resp.StatusCode, time.Since(start), be)
		return be
	}

	if resp.StatusCode >= http.StatusBadRequest {
		be := &Error{
			Kind:       kindForStatus(resp.StatusCode),
			StatusCode: resp.StatusCode,
			Message:    errorMessage(raw, resp.StatusCode),
			Method:     req.Method,
			Path:       path,
		}
		c.log.LogBackendCall(req.Context(), req.Method, path, resp.StatusCode, time.Since(start), be)
		return be
	}
	c.log.LogBackendCall(req.Context(), req.Method, path, resp.StatusCode, time.Since(start), nil)

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := decodeBody(raw, out, unwrap); err != nil {
		return &Error{
			Kind:       KindServer,
			StatusCode: resp.StatusCode,
			Message:    "unexpected response format",
			Method:     req.Method,
			Path:       path,
			Err:        err,
		}
	}
	return nil
}

func (c *Client) upload(ctx context.Context, path, token, field, filename string, file io.Reader, out interface{}, unwrap ...string) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("copy upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.send(req, path, token, out, unwrap)
}

// decodeBody accepts the bare resource or the resource wrapped under one of
// the envelope keys the backend uses ("data", "flights", "booking", ...).
func decodeBody(raw []byte, out interface{}, unwrap []string) error {
	if len(unwrap) > 0 && bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(raw, &envelope); err == nil {
			for _, key := range unwrap {
				if inner, ok := envelope[key]; ok && len(inner) > 0 && string(inner) != "null" {
					return json.Unmarshal(inner, out)
				}
			}
		}
	}
	return json.Unmarshal(raw, out)
}

func transportError(method, path string, err error) *Error {
	kind := KindNoResponse
	var netErr net.Error
	switch {
	case errors.Is(err, context.Canceled):
		kind = KindCancelled
	case errors.Is(err, context.DeadlineExceeded):
		kind = KindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = KindTimeout
	}
	return &Error{Kind: kind, Method: method, Path: path, Err: err}
}
