package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"attraction-booking-portal/internal/config"
	"attraction-booking-portal/internal/models"
)

// BackendClient executes authenticated JSON requests against the external
// booking API. Every call is a single attempt; retries are left to the caller.
type BackendClient struct {
	baseURL   string
	authToken string
	client    *http.Client
}

// NewBackendClient creates a client for the configured booking backend.
func NewBackendClient(cfg config.BackendConfig) *BackendClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &BackendClient{
		baseURL:   cfg.BaseURL,
		authToken: cfg.AuthToken,
		client:    &http.Client{Timeout: timeout},
	}
}

// Get issues a GET request and decodes the JSON response into out.
func (c *BackendClient) Get(ctx context.Context, op, path string, query url.Values, out interface{}) error {
	return c.do(ctx, op, http.MethodGet, path, query, nil, out)
}

// Post issues a POST request with a JSON body and decodes the response into out.
func (c *BackendClient) Post(ctx context.Context, op, path string, body, out interface{}) error {
	return c.do(ctx, op, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT request with a JSON body and decodes the response into out.
func (c *BackendClient) Put(ctx context.Context, op, path string, body, out interface{}) error {
	return c.do(ctx, op, http.MethodPut, path, nil, body, out)
}

// Patch issues a PATCH request with a JSON body and decodes the response into out.
func (c *BackendClient) Patch(ctx context.Context, op, path string, body, out interface{}) error {
	return c.do(ctx, op, http.MethodPatch, path, nil, body, out)
}

// Delete issues a DELETE request.
func (c *BackendClient) Delete(ctx context.Context, op, path string) error {
	return c.do(ctx, op, http.MethodDelete, path, nil, nil, nil)
}

// GetRaw issues a GET request and returns the raw response body, for document
// endpoints such as invoices that do not answer with JSON.
func (c *BackendClient) GetRaw(ctx context.Context, op, path string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, "", &models.TransportError{Op: op, Err: err}
	}
	c.setHeaders(req, false)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", &models.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", &models.TransportError{Op: op, Status: resp.StatusCode, Err: readFailure(resp.Body)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &models.TransportError{Op: op, Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func (c *BackendClient) do(ctx context.Context, op, method, path string, query url.Values, body, out interface{}) error {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return &models.TransportError{Op: op, Err: fmt.Errorf("failed to marshal request body: %w", err)}
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return &models.TransportError{Op: op, Err: err}
	}
	c.setHeaders(req, body != nil)

	resp, err := c.client.Do(req)
	if err != nil {
		return &models.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &models.TransportError{Op: op, Status: resp.StatusCode, Err: readFailure(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &models.MalformedResponseError{Op: op, Reason: fmt.Sprintf("failed to decode response: %v", err)}
	}
	return nil
}

func (c *BackendClient) setHeaders(req *http.Request, hasBody bool) {
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
}

// readFailure extracts a short error message from a non-2xx response body.
// The backend usually answers with {"message": "..."} but nothing is assumed.
func readFailure(body io.Reader) error {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(data) == 0 {
		return fmt.Errorf("no error detail")
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Message != "" {
			return fmt.Errorf("%s", payload.Message)
		}
		if payload.Error != "" {
			return fmt.Errorf("%s", payload.Error)
		}
	}
	return fmt.Errorf("%s", string(data))
}
