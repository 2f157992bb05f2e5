package bgremove

import (
	"context"
	"image"

	"github.com/disintegration/imaging"
)

// DefaultTolerance is the per-channel distance treated as background.
const DefaultTolerance = 24

// KeyRemover clears every pixel close to the colour of the top-left corner.
// It suits studio shots on a plain backdrop and needs no model.
type KeyRemover struct {
	Tolerance int
}

func (k KeyRemover) Remove(ctx context.Context, img image.Image) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := imaging.Clone(img)
	b := out.Bounds()
	if b.Empty() {
		return out, nil
	}
	tol := k.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}
	key := out.NRGBAAt(b.Min.X, b.Min.Y)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := out.NRGBAAt(x, y)
			if absDiff(c.R, key.R) <= tol && absDiff(c.G, key.G) <= tol && absDiff(c.B, key.B) <= tol {
				c.A = 0
				out.SetNRGBA(x, y, c)
			}
		}
	}
	return out, nil
}

func absDiff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}
