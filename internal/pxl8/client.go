// Package pxl8 is the HTTP client for the PXL8 image-optimization API.
// It covers the two calls the bridge needs, uploads and account info, and
// retries transport-level failures internally so callers see one outcome
// per logical call.
package pxl8

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
)

// ErrNotConfigured signals a missing credential or endpoint. It is raised
// synchronously from New; the upload path downgrades it to a recorded
// failure instead of propagating it.
var ErrNotConfigured = errors.New("pxl8 client not configured")

// APIError is a non-2xx response from the API. Responses in the 5xx range
// are retried; everything else is permanent.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("pxl8 api: status %d: %s", e.Status, e.Message)
}

func (e *APIError) Retryable() bool {
	return e.Status >= 500
}

// UploadResult is the API's answer to a successful image upload.
type UploadResult struct {
	ImageID string `json:"imageId"`
	Size    int64  `json:"size,omitempty"`
	Format  string `json:"format,omitempty"`
}

// AccountInfo is the account usage snapshot returned by the API.
type AccountInfo struct {
	Name           string `json:"name"`
	StorageUsed    int64  `json:"storageUsed"`
	StorageLimit   int64  `json:"storageLimit"`
	BandwidthUsed  int64  `json:"bandwidthUsed"`
	BandwidthLimit int64  `json:"bandwidthLimit"`
	RequestsUsed   int64  `json:"requestsUsed"`
	RequestsLimit  int64  `json:"requestsLimit"`
}

// Config holds client settings. APIBaseURL and APIKey are required; the
// rest default to 3 retries, 1s base delay, and a 30s HTTP client.
type Config struct {
	APIBaseURL string
	APIKey     string
	MaxRetries uint64
	RetryDelay time.Duration
	HTTPClient *http.Client
}

type Client struct {
	baseURL    string
	apiKey     string
	maxRetries uint64
	retryDelay time.Duration
	hc         *http.Client
}

// New validates the configuration and builds a client. Validation failures
// here are the "configuration error" class: interactive callers surface
// them, the fire-and-forget upload path records them.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: api key is empty", ErrNotConfigured)
	}
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("%w: api base url is empty", ErrNotConfigured)
	}

	c := &Client{
		baseURL:    cfg.APIBaseURL,
		apiKey:     cfg.APIKey,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		hc:         cfg.HTTPClient,
	}
	if c.maxRetries == 0 {
		c.maxRetries = 3
	}
	if c.retryDelay == 0 {
		c.retryDelay = 1 * time.Second
	}
	if c.hc == nil {
		c.hc = &http.Client{Timeout: 30 * time.Second}
	}
	return c, nil
}

// Upload sends the file at localPath to the API and returns the remote
// image identifier. The multipart body is built once and replayed on each
// retry attempt.
func (c *Client) Upload(ctx context.Context, localPath string) (*UploadResult, error) {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", localPath, err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(localPath))
	if err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}

	result := &UploadResult{}
	err = c.doWithRetry(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/images", bytes.NewReader(body.Bytes()))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", mw.FormDataContentType())
		return c.do(req, result)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AccountInfo fetches the account usage snapshot.
func (c *Client) AccountInfo(ctx context.Context) (*AccountInfo, error) {
	info := &AccountInfo{}
	err := c.doWithRetry(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/account", nil)
		if err != nil {
			return err
		}
		return c.do(req, info)
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}

// Ping probes connectivity and credentials. Used by the interactive
// test-connection operation.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.AccountInfo(ctx)
	return err
}

// doWithRetry runs fn with fibonacci backoff, retrying transport errors and
// retryable API errors up to maxRetries additional attempts.
func (c *Client) doWithRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewFibonacci(c.retryDelay))
	return retry.Do(ctx, backoff, fn)
}

// do executes the request and decodes a 2xx JSON body into out. Network
// errors and 5xx responses come back marked retryable.
func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Request-Id", uuid.NewString())

	res, err := c.hc.Do(req)
	if err != nil {
		return retry.RetryableError(fmt.Errorf("request failed: %w", err))
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &APIError{Status: res.StatusCode, Message: readErrorMessage(res.Body)}
		if apiErr.Retryable() {
			return retry.RetryableError(apiErr)
		}
		return apiErr
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// errorBody is the API's error envelope.
type errorBody struct {
	Error string `json:"error"`
}

func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return "no response body"
	}
	eb := &errorBody{}
	if err := json.Unmarshal(raw, eb); err == nil && eb.Error != "" {
		return eb.Error
	}
	return string(raw)
}
