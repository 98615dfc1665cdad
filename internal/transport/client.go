// Package transport is the HTTP boundary shared by every panel adapter.
//
// It owns connection settings (connect timeout, overall timeout, TLS
// verification), request logging and the classification of low-level
// failures into *Error values that the provisioning normalizer understands.
// Payload shapes stay with the adapters.
package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ksyq12/hostprov/internal/logger"
	"github.com/tidwall/gjson"
)

// Options configures a Client
type Options struct {
	Name           string            // provider name used in log lines
	BaseURL        string            // scheme://host:port[/prefix]
	Headers        map[string]string // sent with every request (auth, accept)
	Insecure       bool              // skip TLS verification for self-signed panels
	Debug          bool              // log every request at info level
	ConnectTimeout time.Duration
	Timeout        time.Duration

	// ErrorMessage extracts the panel's own error text from a non-2xx body.
	ErrorMessage func(body []byte) string

	// HTTPClient overrides the constructed client (tests).
	HTTPClient *http.Client
}

// Request describes one API call
type Request struct {
	Method      string
	Path        string
	Query       url.Values
	Body        []byte
	ContentType string
	Headers     map[string]string
}

// Response represents an API response
type Response struct {
	StatusCode int
	Body       []byte
}

// JSON parses the body for gjson field lookups
func (r *Response) JSON() gjson.Result {
	return gjson.ParseBytes(r.Body)
}

// Client issues panel API calls
type Client struct {
	name         string
	baseURL      string
	headers      map[string]string
	debug        bool
	errorMessage func(body []byte) string
	http         *http.Client
}

// NewClient creates a client. The underlying http.Client is built once here
// and reused for every call made by the adapter.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		connect := opts.ConnectTimeout
		if connect == 0 {
			connect = 10 * time.Second
		}
		total := opts.Timeout
		if total == 0 {
			total = 60 * time.Second
		}
		httpClient = &http.Client{
			Timeout: total,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				DialContext:         (&net.Dialer{Timeout: connect}).DialContext,
				TLSHandshakeTimeout: connect,
				TLSClientConfig:     &tls.Config{InsecureSkipVerify: opts.Insecure}, //nolint:gosec // panels commonly use self-signed certificates
			},
		}
	}

	return &Client{
		name:         opts.Name,
		baseURL:      strings.TrimSuffix(opts.BaseURL, "/"),
		headers:      opts.Headers,
		debug:        opts.Debug,
		errorMessage: opts.ErrorMessage,
		http:         httpClient,
	}
}

// Do executes an API request. Non-2xx statuses and transport failures are
// returned as *Error; context cancellation is returned unchanged.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	endpoint := c.baseURL + req.Path
	if len(req.Query) > 0 {
		endpoint += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}

	c.trace("panel request", map[string]interface{}{
		"provider": c.name,
		"method":   req.Method,
		"path":     req.Path,
	})

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, c.classifyError(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.classifyError(ctx, err)
	}

	c.trace("panel response", map[string]interface{}{
		"provider": c.name,
		"path":     req.Path,
		"status":   resp.StatusCode,
		"elapsed":  time.Since(start).Round(time.Millisecond),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		terr := &Error{
			Kind:       KindHTTP,
			StatusCode: resp.StatusCode,
			Body:       truncate(data),
		}
		if c.errorMessage != nil {
			terr.Message = c.errorMessage(data)
		}
		return nil, terr
	}

	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}

// DoJSON sends payload (if any) as JSON and parses the response body.
func (c *Client) DoJSON(ctx context.Context, method, path string, query url.Values, payload any) (gjson.Result, error) {
	req := Request{
		Method:  method,
		Path:    path,
		Query:   query,
		Headers: map[string]string{"Accept": "application/json"},
	}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return gjson.Result{}, fmt.Errorf("failed to marshal request: %w", err)
		}
		req.Body = data
		req.ContentType = "application/json"
	}

	resp, err := c.Do(ctx, req)
	if err != nil {
		return gjson.Result{}, err
	}
	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return gjson.Result{}, nil
	}
	if !gjson.ValidBytes(resp.Body) {
		return gjson.Result{}, DecodeError(resp.Body, errors.New("invalid JSON"))
	}
	return resp.JSON(), nil
}

func (c *Client) trace(msg string, fields map[string]interface{}) {
	if c.debug {
		logger.InfoFields(msg, fields)
		return
	}
	logger.DebugFields(msg, fields)
}

// classifyError converts net/http failures to transport errors
func (c *Client) classifyError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	// Caller cancellation is not a panel failure.
	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Underlying: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindTimeout, Underlying: err}
	}

	return &Error{Kind: KindConnection, Underlying: err}
}
