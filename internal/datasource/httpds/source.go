package httpds

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Source fetches one extract URL with the package's retrying client.
type Source struct {
	url    string
	client *Client
}

// NewSource binds a URL to a retrying HTTP client built from cfg.
func NewSource(url string, cfg Config) *Source {
	return &Source{url: url, client: NewClient(cfg)}
}

// Open issues the GET and hands back the body stream. Any status other than
// 200 is an error; retryable statuses were already retried inside the client.
func (s *Source) Open(ctx context.Context) (io.ReadCloser, error) {
	resp, err := s.client.Get(ctx, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.url, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: status %s", s.url, resp.Status)
	}
	return resp.Body, nil
}
