package feed

import (
	"io"
	"net/http"
	"time"
)

var defaultHTTPClient = &http.Client{Timeout: 60 * time.Second}

// Client downloads the raw feed document. One blocking fetch, no retries;
// retry policy lives at the scheduler boundary.
type Client struct {
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{httpClient: defaultHTTPClient}
}

// Fetch returns the response body for url, or a *FetchError on transport
// failure or a non-2xx status.
func (c *Client) Fetch(url string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	return string(b), nil
}
