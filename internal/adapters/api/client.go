// Package api implements the authenticated REST client for the LMS backend.
package api

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
	"go.trai.ch/courseware/internal/build"
	"go.trai.ch/courseware/internal/core/domain"
	"go.trai.ch/courseware/internal/core/ports"
	"go.trai.ch/zerr"
)

// maxBodyBytes bounds how much of a response is read.
const maxBodyBytes = 16 << 20

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-ID"

var _ ports.Requester = (*Client)(nil)

// Client implements ports.Requester over net/http.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  ports.TokenStore
	tracer  ports.Tracer
	logger  ports.Logger
	newID   func() string
}

// New creates a Client for cfg.APIURL whose requests time out after cfg.RequestTimeout.
func New(cfg domain.Config, tokens ports.TokenStore, tracer ports.Tracer, logger ports.Logger) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = domain.DefaultRequestTimeout
	}
	return NewWithHTTPClient(cfg.APIURL, &http.Client{Timeout: timeout}, tokens, tracer, logger)
}

// NewWithHTTPClient creates a Client over a caller-supplied http.Client.
func NewWithHTTPClient(
	baseURL string,
	hc *http.Client,
	tokens ports.TokenStore,
	tracer ports.Tracer,
	logger ports.Logger,
) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		tokens:  tokens,
		tracer:  tracer,
		logger:  logger,
		newID:   uuid.NewString,
	}
}

// BaseURL returns the URL paths are appended to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Send performs req and returns the body of a 2xx response.
//
//nolint:cyclop // status handling is a flat switch
func (c *Client) Send(ctx context.Context, req ports.Request) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "api "+req.Method+" "+req.Path)
	defer span.End()

	requestID := c.newID()
	span.SetAttribute("http.method", req.Method)
	span.SetAttribute("http.route", req.Path)
	span.SetAttribute("request_id", requestID)

	httpReq, err := c.newRequest(ctx, req, requestID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		err = zerr.With(zerr.With(zerr.Wrap(err, domain.ErrRequestFailed.Error()), "method", req.Method), "path", req.Path)
		span.RecordError(err)
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	span.SetAttribute("http.status_code", resp.StatusCode)
	span.SetAttribute("duration_ms", time.Since(start).Milliseconds())
	if err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrRequestFailed.Error()), "path", req.Path)
		span.RecordError(err)
		return nil, err
	}
	if len(body) > maxBodyBytes {
		err = zerr.With(zerr.With(zerr.Wrap(domain.ErrResponseTooLarge, fmt.Sprintf("more than %d bytes", maxBodyBytes)),
			"path", req.Path), "status_code", resp.StatusCode)
		span.RecordError(err)
		return nil, err
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil

	case resp.StatusCode == http.StatusUnauthorized:
		if clearErr := c.tokens.ClearToken(); clearErr != nil {
			c.logger.Warn(fmt.Sprintf("could not clear stored token: %v", clearErr))
		}
		err = zerr.With(zerr.Wrap(domain.ErrUnauthorized, serverMessage(body)), "path", req.Path)

	case resp.StatusCode == http.StatusNotFound:
		err = zerr.With(zerr.Wrap(domain.ErrNotFound, serverMessage(body)), "path", req.Path)

	default:
		err = zerr.With(
			zerr.With(zerr.Wrap(domain.ErrRequestFailed, serverMessage(body)), "status_code", resp.StatusCode),
			"path", req.Path,
		)
	}

	span.RecordError(err)
	return nil, err
}

func (c *Client) newRequest(ctx context.Context, req ports.Request, requestID string) (*http.Request, error) {
	var body io.Reader = http.NoBody
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrEncodeFailed.Error()), "path", req.Path)
		}
		body = bytes.NewReader(data)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+req.Path, body)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrRequestBuildFailed.Error()), "path", req.Path)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", build.UserAgent())
	httpReq.Header.Set(RequestIDHeader, requestID)
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token, ok := c.tokens.Token(); ok {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	return httpReq, nil
}

// serverMessage extracts a human readable reason from an error body:
// the "message" field, then "error". Non-JSON bodies yield "".
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   any    `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	switch v := payload.Error.(type) {
	case string:
		return v
	case map[string]any:
		if msg, ok := v["message"].(string); ok {
			return msg
		}
	}
	return ""
}
