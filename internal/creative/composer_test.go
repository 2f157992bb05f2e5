package creative

import (
	"image"
	"image/color"
	"runtime"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/youruser/creativestudio/internal/brand"
	"github.com/youruser/creativestudio/internal/placement"
)

var productRed = color.NRGBA{R: 0xc0, G: 0x10, B: 0x10, A: 0xff}

func newProduct(w, h int) *image.NRGBA {
	return imaging.New(w, h, productRed)
}

func newRequest(platform string) Request {
	return Request{
		BackgroundStyle: "white",
		Slogan:          "Fresh every day",
		Platform:        placement.MustLookup(platform),
		Currency:        "£",
		Price:           "2.50",
	}
}

func bareComposer() *Composer {
	return NewComposer(brand.Assets{Logo: brand.AbsentLogo(), Font: brand.BuiltinFont()}, zerolog.Nop())
}

func countColor(img *image.NRGBA, r image.Rectangle, c color.NRGBA) int {
	n := 0
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.NRGBAAt(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestComposeCanvasMatchesPreset(t *testing.T) {
	c := bareComposer()
	for _, p := range placement.All() {
		t.Run(p.Name, func(t *testing.T) {
			out := c.Compose(newRequest(p.Name), newProduct(100, 200))
			require.NotNil(t, out.Image)
			assert.Equal(t, image.Pt(p.Width, p.Height), out.Image.Bounds().Size())
		})
	}
}

func TestProductPlacement(t *testing.T) {
	c := bareComposer()

	out := c.Compose(newRequest(placement.Story), newProduct(100, 200))
	centerY := (out.Layout.Product.Min.Y + out.Layout.Product.Max.Y) / 2
	assert.GreaterOrEqual(t, centerY, 200)
	assert.LessOrEqual(t, centerY, 1920-250)
	assert.Equal(t, image.Rect(391, 407, 688, 1463), out.Layout.Product)

	out = c.Compose(newRequest(placement.SquarePost), newProduct(100, 200))
	assert.Equal(t, image.Rect(391, 243, 688, 837), out.Layout.Product)
	assert.InDelta(t, 540, (out.Layout.Product.Min.Y+out.Layout.Product.Max.Y)/2, 1)

	out = c.Compose(newRequest(placement.WebBanner), newProduct(100, 200))
	assert.InDelta(t, 314, (out.Layout.Product.Min.Y+out.Layout.Product.Max.Y)/2, 1)
	assert.InDelta(t, 600, (out.Layout.Product.Min.X+out.Layout.Product.Max.X)/2, 1)
}

func TestProductSizePreservesAspect(t *testing.T) {
	sources := []image.Point{{100, 200}, {640, 480}, {333, 1000}, {1, 1}}
	for _, p := range placement.All() {
		for _, src := range sources {
			sz := ProductSize(src, p.Height)
			want := int(float64(p.Height)*0.55 + 0.5)
			assert.Equal(t, want, sz.Y, "%s %v", p.Name, src)
			assert.InDelta(t, float64(src.X)/float64(src.Y), float64(sz.X)/float64(sz.Y), 1/float64(sz.Y), "%s %v", p.Name, src)
		}
	}
	assert.Equal(t, image.Pt(173, 345), ProductSize(image.Pt(100, 200), 628))
}

func TestProductSizeZeroHeightGuard(t *testing.T) {
	sz := ProductSize(image.Pt(10, 0), 1080)
	assert.Equal(t, image.Pt(5940, 594), sz)

	out := bareComposer().Compose(newRequest(placement.SquarePost), image.NewNRGBA(image.Rect(0, 0, 10, 0)))
	assert.True(t, out.Layout.Product.Empty())
	assert.Equal(t, image.Pt(1080, 1080), out.Image.Bounds().Size())
}

func TestWideProductStaysBounded(t *testing.T) {
	c := bareComposer()
	p := placement.MustLookup(placement.SquarePost)
	strip := imaging.New(400, 1, color.NRGBA{R: 255, A: 255})

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	out := c.Compose(newRequest(p.Name), strip)
	runtime.ReadMemStats(&after)

	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(64<<20), "scaled product is clipped to the canvas")
	assert.Equal(t, image.Rect(-118260, 243, 119340, 837), out.Layout.Product)
	for _, x := range []int{0, p.Width / 2, p.Width - 1} {
		px := out.Image.NRGBAAt(x, 540)
		assert.Greater(t, px.R, uint8(250), "x=%d", x)
		assert.Less(t, px.G, uint8(5), "x=%d", x)
	}
}

func TestVisibleColumnsKeepsNarrowProducts(t *testing.T) {
	src := image.Rect(0, 0, 300, 600)
	sz := image.Pt(297, 594)
	origin := image.Pt(391, 243)
	crop, at, w := visibleColumns(src, sz, origin, 1080)
	assert.Equal(t, src, crop)
	assert.Equal(t, origin, at)
	assert.Equal(t, sz.X, w)
}

func TestProductAlphaBlend(t *testing.T) {
	product := image.NewNRGBA(image.Rect(0, 0, 100, 200))
	for y := 0; y < 200; y++ {
		for x := 50; x < 100; x++ {
			product.SetNRGBA(x, y, productRed)
		}
	}
	out := bareComposer().Compose(newRequest(placement.SquarePost), product)
	r := out.Layout.Product
	mid := (r.Min.Y + r.Max.Y) / 2
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, out.Image.NRGBAAt(r.Min.X+20, mid))
	assert.Equal(t, productRed, out.Image.NRGBAAt(r.Max.X-20, mid))
}

func TestLogoFallbackText(t *testing.T) {
	out := bareComposer().Compose(newRequest(placement.SquarePost), newProduct(100, 200))
	assert.True(t, out.Layout.LogoFallback)
	assert.Equal(t, image.Pt(1080-250, 50), out.Layout.Logo.Min)
	assert.Greater(t, countColor(out.Image, out.Layout.Logo, BrandBlue), 0, "fallback text is inked")
}

func TestLogoAsset(t *testing.T) {
	logo := imaging.New(100, 50, color.NRGBA{G: 0xff, A: 0xff})
	c := NewComposer(brand.Assets{Logo: brand.NewLogo(logo), Font: brand.BuiltinFont()}, zerolog.Nop())

	out := c.Compose(newRequest(placement.SquarePost), newProduct(100, 200))
	assert.False(t, out.Layout.LogoFallback)
	assert.Equal(t, image.Rect(770, 40, 1040, 175), out.Layout.Logo)
	assert.Equal(t, color.NRGBA{G: 0xff, A: 0xff}, out.Image.NRGBAAt(900, 100))

	out = c.Compose(newRequest(placement.WebBanner), newProduct(100, 200))
	assert.Equal(t, image.Rect(1200-300-40, 40, 1160, 190), out.Layout.Logo)
}

func TestPriceTile(t *testing.T) {
	out := bareComposer().Compose(newRequest(placement.SquarePost), newProduct(100, 200))
	tile := out.Layout.PriceTile
	assert.Equal(t, image.Rect(740, 820, 1040, 1040), tile)

	assert.Equal(t, BrandRed, out.Image.NRGBAAt(tile.Min.X+2, tile.Min.Y+2), "header covers the top edge")
	assert.Equal(t, BrandBlue, out.Image.NRGBAAt(tile.Min.X+2, tile.Min.Y+100), "left border")
	assert.Equal(t, BrandBlue, out.Image.NRGBAAt(tile.Max.X-1, tile.Max.Y-1), "bottom-right border")
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, out.Image.NRGBAAt(tile.Min.X+10, tile.Max.Y-10))

	text := out.Layout.PriceText
	assert.True(t, text.In(tile))
	assert.GreaterOrEqual(t, text.Min.Y, tile.Min.Y+60)
	left := text.Min.X - tile.Min.X
	right := tile.Max.X - text.Max.X
	assert.InDelta(t, left, right, 1)
}

func TestPriceTileCentredWithTrueType(t *testing.T) {
	f, err := brand.ParseFont(goregular.TTF)
	require.NoError(t, err)
	c := NewComposer(brand.Assets{Logo: brand.AbsentLogo(), Font: f}, zerolog.Nop())

	for _, price := range []string{"1", "9.99", "129.00"} {
		req := newRequest(placement.Story)
		req.Price = price
		out := c.Compose(req, newProduct(100, 200))
		tile, text := out.Layout.PriceTile, out.Layout.PriceText
		assert.InDelta(t, text.Min.X-tile.Min.X, tile.Max.X-text.Max.X, 1, price)
		assert.Greater(t, text.Dx(), 13, "measured width comes from the TrueType face")
	}
}

func TestSlogan(t *testing.T) {
	c := bareComposer()
	out := c.Compose(newRequest(placement.Story), newProduct(100, 200))
	assert.Equal(t, image.Pt(50, 1920-100), out.Layout.Slogan.Min)
	assert.Greater(t, countColor(out.Image, out.Layout.Slogan, BrandBlue), 0)

	req := newRequest(placement.Story)
	req.Slogan = ""
	out = c.Compose(req, newProduct(100, 200))
	assert.True(t, out.Layout.Slogan.Empty())
	assert.Equal(t, 0, countColor(out.Image, image.Rect(50, 1820, 400, 1833), BrandBlue))
}

func TestQRBadge(t *testing.T) {
	req := newRequest(placement.Story)
	req.QRText = "https://example.com/clubcard"
	out := bareComposer().Compose(req, newProduct(100, 200))
	assert.Equal(t, image.Rect(40, 240, 200, 400), out.Layout.QR)

	req = newRequest(placement.SquarePost)
	out = bareComposer().Compose(req, newProduct(100, 200))
	assert.True(t, out.Layout.QR.Empty())
}

func TestComposeIsDeterministic(t *testing.T) {
	c := bareComposer()
	req := newRequest(placement.WebBanner)
	req.BackgroundStyle = "Summer vibes"
	req.QRText = "offer"
	a := c.Compose(req, newProduct(120, 90))
	b := c.Compose(req, newProduct(120, 90))
	assert.Equal(t, a.Layout, b.Layout)
	assert.Equal(t, a.Image.Pix, b.Image.Pix)
}
