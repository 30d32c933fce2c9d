package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-formsubmissions/internal/transport"
	"github.com/goliatone/go-formsubmissions/pkg/model"
)

var (
	// ErrMissingToken is returned when the token endpoint answers without a
	// token.
	ErrMissingToken = errors.New("client: token endpoint returned no token")
	// ErrMissingFormID is returned when a form id argument is empty.
	ErrMissingFormID = errors.New("client: form id is required")
)

// StatusError reports a non-2xx response from the upstream service.
type StatusError = transport.StatusError

// Client is safe for concurrent use. The token is fetched lazily on the first
// authenticated call and shared by every subsequent call.
type Client struct {
	baseURL   string
	username  string
	password  string
	http      *http.Client
	timeout   time.Duration
	userAgent string

	mu    sync.Mutex
	token string
}

// New validates the base URL and returns a Client.
func New(baseURL, username, password string, options ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errors.New("client: base url is required")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("client: parse base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("client: base url %q must use http or https", trimmed)
	}

	c := &Client{
		baseURL:  trimmed,
		username: username,
		password: password,
		http:     &http.Client{},
		timeout:  DefaultRequestTimeout,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalised service root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Token returns the cached bearer token, acquiring one when needed. The lock
// is held across acquisition so concurrent callers share a single request.
func (c *Client) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" {
		return c.token, nil
	}

	var resp struct {
		Token string `json:"token"`
	}
	err := transport.DoJSON(ctx, c.http, transport.Request{
		Method:  http.MethodPost,
		URL:     c.baseURL + "/token",
		Headers: c.baseHeaders(),
		Body: map[string]string{
			"username": c.username,
			"password": c.password,
		},
		Timeout: c.timeout,
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("client: acquire token: %w", err)
	}
	if resp.Token == "" {
		return "", ErrMissingToken
	}
	c.token = resp.Token
	return c.token, nil
}

// invalidate drops the cached token if it still equals stale.
func (c *Client) invalidate(stale string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == stale {
		c.token = ""
	}
}

// Forms lists the forms visible to the configured account.
func (c *Client) Forms(ctx context.Context) ([]model.FormSummary, error) {
	var resp struct {
		Data []model.FormSummary `json:"data"`
	}
	if err := c.get(ctx, "/forms", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Form returns the details of one form. The upstream payload is kept in Raw.
func (c *Client) Form(ctx context.Context, formID string) (model.FormDetails, error) {
	if strings.TrimSpace(formID) == "" {
		return model.FormDetails{}, ErrMissingFormID
	}
	var raw json.RawMessage
	if err := c.get(ctx, "/forms/"+url.PathEscape(formID), &raw); err != nil {
		return model.FormDetails{}, err
	}

	var envelope struct {
		Data *model.FormDetails `json:"data"`
	}
	var details model.FormDetails
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Data != nil {
		details = *envelope.Data
	} else if err := json.Unmarshal(raw, &details); err != nil {
		return model.FormDetails{}, fmt.Errorf("client: decode form %s: %w", formID, err)
	}
	details.Raw = raw
	return details, nil
}

// Fields returns the raw field definitions of a form, in form order.
func (c *Client) Fields(ctx context.Context, formID string) ([]model.RawField, error) {
	if strings.TrimSpace(formID) == "" {
		return nil, ErrMissingFormID
	}
	var resp struct {
		Data struct {
			Controls struct {
				Data []model.RawField `json:"data"`
			} `json:"controls"`
		} `json:"data"`
	}
	if err := c.get(ctx, "/forms/"+url.PathEscape(formID)+"/fields", &resp); err != nil {
		return nil, err
	}
	return resp.Data.Controls.Data, nil
}

// Submissions returns the raw submissions of a form.
func (c *Client) Submissions(ctx context.Context, formID string) ([]model.RawSubmission, error) {
	if strings.TrimSpace(formID) == "" {
		return nil, ErrMissingFormID
	}
	var resp struct {
		Data []model.RawSubmission `json:"data"`
	}
	if err := c.get(ctx, "/forms/"+url.PathEscape(formID)+"/submissions", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// get performs an authenticated GET. A 401 invalidates the cached token and
// the request is retried once with a fresh one.
func (c *Client) get(ctx context.Context, path string, out any) error {
	for attempt := 0; ; attempt++ {
		token, err := c.Token(ctx)
		if err != nil {
			return err
		}

		headers := c.baseHeaders()
		headers["Authorization"] = "Bearer " + token

		err = transport.DoJSON(ctx, c.http, transport.Request{
			Method:  http.MethodGet,
			URL:     c.baseURL + path,
			Headers: headers,
			Timeout: c.timeout,
		}, out)

		var statusErr *StatusError
		if attempt == 0 && errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized {
			c.invalidate(token)
			continue
		}
		if err != nil {
			return fmt.Errorf("client: get %s: %w", path, err)
		}
		return nil
	}
}

func (c *Client) baseHeaders() map[string]string {
	headers := make(map[string]string, 2)
	if c.userAgent != "" {
		headers["User-Agent"] = c.userAgent
	}
	return headers
}
