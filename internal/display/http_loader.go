package display

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dikra-store/internal/catalog"
)

// HTTPLoader checks that an image is reachable under a base URL with a HEAD request.
type HTTPLoader struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPLoader(baseURL string) *HTTPLoader {
	return &HTTPLoader{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (l *HTTPLoader) Load(ctx context.Context, res catalog.Resource) error {
	target := l.baseURL + "/" + url.PathEscape(string(res))

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return err
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("image %s: unexpected status %d", res, resp.StatusCode)
	}
	return nil
}
