package ultrahuman

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the Ultrahuman partner API root.
const DefaultBaseURL = "https://partner.ultrahuman.com/api/v1"

// fetchTimeout bounds the single upstream round trip per invocation.
const fetchTimeout = 30 * time.Second

// ErrorKind classifies a failed fetch.
type ErrorKind string

const (
	ErrHTTPStatus  ErrorKind = "http_status"
	ErrTransport   ErrorKind = "transport"
	ErrInvalidBody ErrorKind = "invalid_body"
	ErrUnexpected  ErrorKind = "unexpected"
)

// FetchError is a classified upstream failure. Any FetchError is terminal for
// the current request: the pipeline surfaces the kind and detail without
// attempting partial analysis.
type FetchError struct {
	Kind   ErrorKind
	Status int // HTTP status for ErrHTTPStatus, zero otherwise
	Detail string
}

func (e *FetchError) Error() string {
	if e.Kind == ErrHTTPStatus {
		return fmt.Sprintf("ultrahuman: upstream returned %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("ultrahuman: %s: %s", e.Kind, e.Detail)
}

// Client fetches nightly metric documents from the Ultrahuman partner API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a Client for the given API root and partner token.
// An empty baseURL falls back to DefaultBaseURL.
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: fetchTimeout},
	}
}

// FetchMetrics retrieves the raw metric document for one account and date
// (YYYY-MM-DD). Failures come back as *FetchError.
func (c *Client) FetchMetrics(ctx context.Context, email, date string) (*Document, error) {
	params := url.Values{}
	params.Set("email", email)
	params.Set("date", date)
	u := c.baseURL + "/metrics?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &FetchError{Kind: ErrUnexpected, Detail: "create request: " + err.Error()}
	}
	req.Header.Set("Authorization", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: ErrTransport, Detail: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Kind: ErrTransport, Detail: "reading body: " + err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{
			Kind:   ErrHTTPStatus,
			Status: resp.StatusCode,
			Detail: strings.TrimSpace(string(body)),
		}
	}

	doc, err := ParseDocument(body)
	if err != nil {
		return nil, &FetchError{Kind: ErrInvalidBody, Detail: err.Error()}
	}
	return doc, nil
}
