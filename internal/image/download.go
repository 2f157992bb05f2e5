package imagepkg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/youruser/creativestudio/internal/util"
)

// MaxPixels is the largest width*height Decode accepts.
const MaxPixels = 40_000_000

var (
	ErrEmptyImage    = errors.New("image: empty input")
	ErrTooManyPixels = errors.New("image: dimensions exceed pixel budget")
)

// DownloadImage downloads an image from URL and returns image.Image (decoded).
// Bodies longer than maxBytes are refused.
func DownloadImage(ctx context.Context, url string, maxBytes int) (image.Image, error) {
	body, err := util.GetBytes(ctx, url, maxBytes)
	if err != nil {
		return nil, err
	}
	return Decode(body)
}

// Decode decodes any registered raster format, applying EXIF orientation so
// phone photos come out upright. The header is checked against MaxPixels
// before any pixel memory is allocated.
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("image: decode header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, ErrEmptyImage
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooManyPixels, cfg.Width, cfg.Height)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return img, nil
}
