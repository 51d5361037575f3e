package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"wrenchking-billing/models"
	"wrenchking-billing/utils"
)

// Defaults mirror the front-end client this replaces: ten-second timeout,
// JSON both ways.
const (
	defaultBaseURL        = "http://localhost:5000/api"
	defaultTimeoutSeconds = 10
)

// APIError is the single failure shape that leaves the transport layer.
// Every network, timeout or non-2xx outcome is normalized to one of these.
type APIError struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *APIError) Error() string { return e.Message }

func apiErr(message string) *APIError {
	return &APIError{Message: message, Timestamp: time.Now().UTC()}
}

// Client talks to the remote invoice store. It is transport only: responses
// come back as loosely-typed JSON values for the caller to normalize.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the given base URL ("" for the default).
// A non-positive timeout falls back to the default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeoutSeconds * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// NewClientFromEnv reads API_BASE_URL and API_TIMEOUT_SECONDS, loading a
// .env file first when one exists.
func NewClientFromEnv() *Client {
	_ = godotenv.Load()
	timeout := utils.ParseIntDefault(os.Getenv("API_TIMEOUT_SECONDS"), defaultTimeoutSeconds)
	return NewClient(os.Getenv("API_BASE_URL"), time.Duration(timeout)*time.Second)
}

// GetAll fetches every invoice. A non-array response counts as empty.
func (c *Client) GetAll(ctx context.Context) ([]any, error) {
	out, err := c.do(ctx, http.MethodGet, "/invoices", nil)
	if err != nil {
		return nil, err
	}
	list, ok := out.([]any)
	if !ok {
		return []any{}, nil
	}
	return list, nil
}

// Get fetches a single invoice; nil without error means the store returned
// an empty body.
func (c *Client) Get(ctx context.Context, id string) (any, error) {
	return c.do(ctx, http.MethodGet, "/invoices/"+url.PathEscape(id), nil)
}

// Create persists a draft. The store assigns _id, createdAt and updatedAt.
func (c *Client) Create(ctx context.Context, draft models.Invoice) (any, error) {
	return c.do(ctx, http.MethodPost, "/invoices", draft)
}

// Update replaces the stored document. The store refreshes updatedAt.
func (c *Client) Update(ctx context.Context, id string, draft models.Invoice) (any, error) {
	return c.do(ctx, http.MethodPut, "/invoices/"+url.PathEscape(id), draft)
}

// Delete removes the invoice.
func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/invoices/"+url.PathEscape(id), nil)
	return err
}

// MarkAsPaid asks the store to set status "paid" and a paid timestamp.
func (c *Client) MarkAsPaid(ctx context.Context, id string) (any, error) {
	return c.do(ctx, http.MethodPatch, "/invoices/"+url.PathEscape(id)+"/paid", nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (any, error) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, apiErr("could not encode request: " + err.Error())
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, apiErr(err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apiErr("No response from server. Please check your connection.")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apiErr("No response from server. Please check your connection.")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apiErr(serverMessage(data, resp.StatusCode))
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, apiErr("Invalid response from server.")
	}
	return out, nil
}

// serverMessage prefers the server's own message field, then falls back to
// a generic status line.
func serverMessage(body []byte, status int) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return fmt.Sprintf("Server error: %d", status)
}
