package imagepkg

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// FillRect paints rect of dst with an opaque colour.
func FillRect(dst draw.Image, rect image.Rectangle, c color.Color) {
	draw.Draw(dst, rect, image.NewUniform(c), image.Point{}, draw.Src)
}

// VerticalGradient fills dst scanline by scanline, interpolating every
// channel linearly from top (first row) towards bottom (last row).
func VerticalGradient(dst draw.Image, top, bottom color.NRGBA) {
	b := dst.Bounds()
	h := b.Dy()
	for y := 0; y < h; y++ {
		row := image.Rect(b.Min.X, b.Min.Y+y, b.Max.X, b.Min.Y+y+1)
		FillRect(dst, row, Lerp(top, bottom, y, h))
	}
}

// Lerp returns the colour of row y in a run of h rows that starts at a and
// ends at b. Row 0 is a and row h-1 is b.
func Lerp(a, b color.NRGBA, y, h int) color.NRGBA {
	if h <= 1 {
		return a
	}
	last := h - 1
	ch := func(from, to uint8) uint8 {
		return uint8(int(from) + (int(to)-int(from))*y/last)
	}
	return color.NRGBA{R: ch(a.R, b.R), G: ch(a.G, b.G), B: ch(a.B, b.B), A: 0xff}
}

// LineHeight is the pixel height of one line of text set in face.
func LineHeight(face font.Face) int {
	m := face.Metrics()
	return (m.Ascent + m.Descent).Ceil()
}

// MeasureText returns the advance width of s in pixels.
func MeasureText(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// DrawText draws s with the top-left corner of its line box at (x, y) and
// returns that box.
func DrawText(dst draw.Image, face font.Face, s string, x, y int, c color.Color) image.Rectangle {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	w := d.MeasureString(s).Ceil()
	d.DrawString(s)
	return image.Rect(x, y, x+w, y+LineHeight(face))
}

// CenteredX returns the left edge that centres a span of width w inside
// [x0, x0+width).
func CenteredX(x0, width, w int) int {
	return x0 + (width-w)/2
}

// Flatten composites img over opaque white so the result carries no
// transparency.
func Flatten(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(out, b, img, b.Min, draw.Over)
	return out
}
