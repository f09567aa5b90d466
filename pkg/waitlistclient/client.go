// Package waitlistclient submits addresses to the waitlist endpoint and drives the
// signup form through Idle, Submitting and Confirmed.
package waitlistclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/postie/waitlist/pkg/constants"
)

// RejectedError is a non-2xx answer from the endpoint.
type RejectedError struct {
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("waitlist rejected submission (%d): %s", e.StatusCode, e.Message)
}

// NetworkError covers transport failures and responses that are not JSON.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "waitlist request failed: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// UserMessage is the text shown to a person for a failed Join.
func UserMessage(err error) string {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return rejected.Message
	}
	return constants.WaitlistNetworkErrorMessage
}

type JoinResponse struct {
	Message string
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default client, which has no timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type joinRequest struct {
	Email string `json:"email"`
}

type joinResponseBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Join sends one POST to the waitlist endpoint. It never retries.
func (c *Client) Join(ctx context.Context, email string) (*JoinResponse, error) {
	payload, err := json.Marshal(joinRequest{Email: email})
	if err != nil {
		return nil, fmt.Errorf("encode waitlist request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+constants.WaitlistPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build waitlist request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	// The body is decoded before the status is looked at; anything that is not
	// JSON counts as a network failure whatever the status.
	var body joinResponseBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := body.Error
		if message == "" {
			message = constants.WaitlistFailureMessage
		}
		return nil, &RejectedError{StatusCode: resp.StatusCode, Message: message}
	}

	return &JoinResponse{Message: body.Message}, nil
}
