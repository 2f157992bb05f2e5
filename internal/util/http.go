package util

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

var httpClient = resty.New().
	SetTimeout(12 * time.Second).
	SetRetryCount(2)

// GetBytes fetches url and returns the response body. Any status other than
// 200 is an error, as is a body longer than maxBytes (when maxBytes > 0).
func GetBytes(ctx context.Context, url string, maxBytes int) ([]byte, error) {
	resp, err := httpClient.R().
		SetContext(ctx).
		SetResponseBodyLimit(maxBytes).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("get %s: unexpected status %d", url, resp.StatusCode())
	}
	return resp.Body(), nil
}
