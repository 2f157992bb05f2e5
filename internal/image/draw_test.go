package imagepkg

import (
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"
)

func TestVerticalGradient(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 10))
	top := color.NRGBA{R: 0, G: 100, B: 200, A: 255}
	bottom := color.NRGBA{R: 100, G: 0, B: 200, A: 255}
	VerticalGradient(img, top, bottom)

	assert.Equal(t, top, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 55, G: 45, B: 200, A: 255}, img.NRGBAAt(3, 5))
	assert.Equal(t, bottom, img.NRGBAAt(2, 9), "last row reaches the end colour")
	// every pixel of a row is identical
	assert.Equal(t, img.NRGBAAt(0, 7), img.NRGBAAt(3, 7))
}

func TestLerpDegenerateHeights(t *testing.T) {
	a := color.NRGBA{R: 1, G: 2, B: 3, A: 255}
	assert.Equal(t, a, Lerp(a, color.NRGBA{}, 5, 0))
	assert.Equal(t, a, Lerp(a, color.NRGBA{}, 0, 1))
}

func TestDrawTextReturnsMeasuredBox(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 200, 50))
	face := basicfont.Face7x13
	box := DrawText(img, face, "TESCO", 10, 5, color.Black)

	assert.Equal(t, image.Rect(10, 5, 10+5*7, 5+13), box)
	assert.Equal(t, 35, MeasureText(face, "TESCO"))

	inked := 0
	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			if img.NRGBAAt(x, y).A != 0 {
				inked++
			}
		}
	}
	assert.Greater(t, inked, 0)
	assert.Equal(t, uint8(0), img.NRGBAAt(100, 40).A, "nothing drawn outside the box")
}

func TestCenteredX(t *testing.T) {
	x := CenteredX(100, 300, 120)
	left := x - 100
	right := 100 + 300 - (x + 120)
	assert.Equal(t, left, right)

	x = CenteredX(0, 300, 121)
	assert.InDelta(t, x-0, 300-(x+121), 1)
}

func TestFlattenIsOpaque(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 0})
	img.SetNRGBA(1, 0, color.NRGBA{R: 255, A: 255})

	out := Flatten(img)
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, out.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, out.RGBAAt(1, 0))
}

func TestDecode(t *testing.T) {
	_, err := Decode(nil)
	assert.ErrorIs(t, err, ErrEmptyImage)

	_, err = Decode([]byte("not an image"))
	assert.Error(t, err)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 3, 2))))
	img, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, image.Pt(3, 2), img.Bounds().Size())
}

// pngDeclaring returns a tiny PNG whose IHDR claims w x h pixels.
func pngDeclaring(t *testing.T, w, h uint32) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 1, 1))))
	data := buf.Bytes()
	// signature(8) length(4) "IHDR"(4) width(4) height(4) ... crc at 29
	binary.BigEndian.PutUint32(data[16:20], w)
	binary.BigEndian.PutUint32(data[20:24], h)
	binary.BigEndian.PutUint32(data[29:33], crc32.ChecksumIEEE(data[12:29]))
	return data
}

func TestDecodeRejectsOversizeHeader(t *testing.T) {
	_, err := Decode(pngDeclaring(t, 50000, 50000))
	assert.ErrorIs(t, err, ErrTooManyPixels)

	_, err = Decode(pngDeclaring(t, 40001, 1000))
	assert.ErrorIs(t, err, ErrTooManyPixels)
}

func TestDownloadImage(t *testing.T) {
	var small bytes.Buffer
	require.NoError(t, png.Encode(&small, image.NewNRGBA(image.Rect(0, 0, 4, 3))))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/big" {
			_, _ = w.Write(make([]byte, 4096))
			return
		}
		_, _ = w.Write(small.Bytes())
	}))
	defer srv.Close()

	img, err := DownloadImage(context.Background(), srv.URL+"/ok.png", 1024)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(4, 3), img.Bounds().Size())

	_, err = DownloadImage(context.Background(), srv.URL+"/big", 1024)
	assert.ErrorIs(t, err, resty.ErrResponseBodyTooLarge)
}

func TestGenerateQRImage(t *testing.T) {
	img, err := GenerateQRImage("https://example.com/offer", 160)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(160, 160), img.Bounds().Size())

	_, err = GenerateQRPNG("", 100)
	assert.Error(t, err)
	_, err = GenerateQRPNG("x", 0)
	assert.Error(t, err)
}
