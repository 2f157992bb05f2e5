package bgremove

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func studioShot() *image.NRGBA {
	img := imaging.New(20, 10, color.NRGBA{R: 250, G: 250, B: 250, A: 255})
	for y := 3; y < 7; y++ {
		for x := 5; x < 15; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 20, B: 20, A: 255})
		}
	}
	// slight backdrop noise still counts as background
	img.SetNRGBA(19, 9, color.NRGBA{R: 240, G: 245, B: 255, A: 255})
	return img
}

func TestKeyRemover(t *testing.T) {
	out, err := KeyRemover{}.Remove(context.Background(), studioShot())
	require.NoError(t, err)
	n := imaging.Clone(out)

	assert.Equal(t, uint8(0), n.NRGBAAt(0, 0).A)
	assert.Equal(t, uint8(0), n.NRGBAAt(19, 9).A)
	assert.Equal(t, color.NRGBA{R: 200, G: 20, B: 20, A: 255}, n.NRGBAAt(10, 5))
	assert.Equal(t, image.Pt(20, 10), n.Bounds().Size())
}

func TestKeyRemoverEmptyAndCancelled(t *testing.T) {
	out, err := KeyRemover{}.Remove(context.Background(), image.NewNRGBA(image.Rect(0, 0, 0, 0)))
	require.NoError(t, err)
	assert.True(t, out.Bounds().Empty())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = KeyRemover{}.Remove(ctx, studioShot())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPassthrough(t *testing.T) {
	in := studioShot()
	out, err := Passthrough{}.Remove(context.Background(), in)
	require.NoError(t, err)
	assert.Same(t, in, out)
}

func TestNewSelectsKind(t *testing.T) {
	r, err := New(Options{Kind: "none"})
	require.NoError(t, err)
	assert.IsType(t, Passthrough{}, r)

	r, err = New(Options{Kind: ""})
	require.NoError(t, err)
	assert.IsType(t, KeyRemover{}, r)

	r, err = New(Options{Kind: "HTTP", URL: "http://localhost:7000/"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:7000/api/remove", r.(*HTTPRemover).endpoint)

	_, err = New(Options{Kind: "http"})
	assert.Error(t, err)

	_, err = New(Options{Kind: "magic"})
	assert.Error(t, err)
}

func rembgStub(t *testing.T, resize bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/remove" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		f, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer f.Close()
		img, err := png.Decode(f)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		out, _ := KeyRemover{}.Remove(r.Context(), img)
		if resize {
			out = imaging.Resize(out, 5, 5, imaging.NearestNeighbor)
		}
		w.Header().Set("Content-Type", "image/png")
		_ = png.Encode(w, out)
	}))
}

func TestHTTPRemover(t *testing.T) {
	srv := rembgStub(t, false)
	defer srv.Close()

	r, err := NewHTTPRemover(srv.URL, 0, 0)
	require.NoError(t, err)
	out, err := r.Remove(context.Background(), studioShot())
	require.NoError(t, err)

	n := imaging.Clone(out)
	assert.Equal(t, uint8(0), n.NRGBAAt(0, 0).A)
	assert.Equal(t, uint8(255), n.NRGBAAt(10, 5).A)
}

func TestHTTPRemoverErrors(t *testing.T) {
	srv := rembgStub(t, true)
	defer srv.Close()

	r, err := NewHTTPRemover(srv.URL, 0, 0)
	require.NoError(t, err)
	_, err = r.Remove(context.Background(), studioShot())
	assert.ErrorIs(t, err, ErrSizeMismatch)

	bad, err := NewHTTPRemover(srv.URL+"/nowhere", 0, 0)
	require.NoError(t, err)
	_, err = bad.Remove(context.Background(), studioShot())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
