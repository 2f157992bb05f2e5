// Package bgremove wraps the background-removal capability. Callers build a
// Remover once during start-up and pass it to every render.
package bgremove

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"time"
)

// Remover returns img with the background made transparent. The result has
// the same dimensions as the input.
type Remover interface {
	Remove(ctx context.Context, img image.Image) (image.Image, error)
}

const (
	KindHTTP = "http"
	KindKey  = "key"
	KindNone = "none"
)

var ErrSizeMismatch = errors.New("bgremove: output size differs from input")

// Options select and configure a Remover.
type Options struct {
	Kind      string
	URL       string
	Timeout   time.Duration
	Retries   int
	Tolerance int
}

// New builds the remover named by opts.Kind.
func New(opts Options) (Remover, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Kind)) {
	case KindHTTP:
		return NewHTTPRemover(opts.URL, opts.Timeout, opts.Retries)
	case KindKey, "":
		return KeyRemover{Tolerance: opts.Tolerance}, nil
	case KindNone:
		return Passthrough{}, nil
	default:
		return nil, fmt.Errorf("bgremove: unknown remover %q", opts.Kind)
	}
}

// Passthrough returns its input untouched, for sources that already carry
// an alpha channel.
type Passthrough struct{}

func (Passthrough) Remove(ctx context.Context, img image.Image) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return img, nil
}

func checkSize(in, out image.Image) error {
	if in.Bounds().Size() != out.Bounds().Size() {
		return fmt.Errorf("%w: %v vs %v", ErrSizeMismatch, in.Bounds().Size(), out.Bounds().Size())
	}
	return nil
}
