package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"waitlist/pkg/platform/sentinel"
)

// Lookuper resolves an IP address to a country name.
type Lookuper interface {
	Lookup(ctx context.Context, ip string) (string, error)
}

// HTTPClient queries an ip-api.com compatible endpoint:
//
//	GET {base}{ip}?fields=status,message,country
//	{"status":"success","country":"Germany"}
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient builds a lookup client. timeout bounds every request.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type lookupResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Country string `json:"country"`
}

func (c *HTTPClient) Lookup(ctx context.Context, ip string) (string, error) {
	endpoint := c.baseURL + url.PathEscape(ip) + "?fields=status,message,country"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build geo request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return "", fmt.Errorf("geo lookup: %w", sentinel.ErrTimeout)
		}
		// The *url.Error text carries the request URL, and with it the caller
		// address.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return "", fmt.Errorf("geo lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("geo lookup: upstream status %d: %w", resp.StatusCode, sentinel.ErrUnavailable)
	}

	var body lookupResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err != nil {
		return "", fmt.Errorf("decode geo response: %w", err)
	}
	if body.Status != "success" || body.Country == "" {
		return "", fmt.Errorf("geo lookup %q: %s: %w", body.Status, body.Message, sentinel.ErrNotFound)
	}
	return body.Country, nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
