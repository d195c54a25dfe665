package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// UpstreamError is a non-2xx answer from a backing service.
type UpstreamError struct {
	Status  int
	Message string
	Body    []byte
}

func (e *UpstreamError) Error() string {
	return e.Message
}

// Response is an upstream reply relayed as-is.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

type Client struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient returns the process-wide client shared by every upstream.
func NewHTTPClient(timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 32
	transport.IdleConnTimeout = 90 * time.Second

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

func New(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: baseURL, http: httpClient}
}

// Forward sends the request verbatim and returns whatever status and body the
// upstream produced. Only transport failures are returned as errors.
func (c *Client) Forward(ctx context.Context, method, path string, body []byte, contentType string) (*Response, error) {
	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	if reader != nil {
		if contentType == "" {
			contentType = "application/json"
		}
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w", method, path, err)
	}

	return &Response{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        data,
	}, nil
}

// GetJSON decodes a 2xx body into out. Non-2xx answers become *UpstreamError.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	resp, err := c.Forward(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return err
	}

	if resp.Status < 200 || resp.Status > 299 {
		return &UpstreamError{
			Status:  resp.Status,
			Message: messageFromBody(resp.Status, resp.Body),
			Body:    resp.Body,
		}
	}

	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func messageFromBody(status int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return fmt.Sprintf("request failed with status code %d", status)
}
