package bgremove

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-resty/resty/v2"

	imagepkg "github.com/youruser/creativestudio/internal/image"
)

const removePath = "/api/remove"

// HTTPRemover talks to a rembg-compatible server: the image is posted as the
// multipart field "file" and the cut-out comes back as PNG.
type HTTPRemover struct {
	client   *resty.Client
	endpoint string
}

func NewHTTPRemover(baseURL string, timeout time.Duration, retries int) (*HTTPRemover, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("bgremove: remover url is required")
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(retries).
		SetRetryWaitTime(500 * time.Millisecond)
	return &HTTPRemover{client: client, endpoint: baseURL + removePath}, nil
}

func (r *HTTPRemover) Remove(ctx context.Context, img image.Image) (image.Image, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("bgremove: encode input: %w", err)
	}
	resp, err := r.client.R().
		SetContext(ctx).
		SetFileReader("file", "input.png", bytes.NewReader(buf.Bytes())).
		Post(r.endpoint)
	if err != nil {
		return nil, fmt.Errorf("bgremove: request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("bgremove: server returned %d", resp.StatusCode())
	}
	out, err := imagepkg.Decode(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("bgremove: decode response: %w", err)
	}
	if err := checkSize(img, out); err != nil {
		return nil, err
	}
	return out, nil
}
