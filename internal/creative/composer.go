// Package creative lays out a branded marketing canvas around a cut-out
// product photo.
package creative

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
	"golang.org/x/image/font"

	"github.com/youruser/creativestudio/internal/brand"
	imagepkg "github.com/youruser/creativestudio/internal/image"
	"github.com/youruser/creativestudio/internal/placement"
)

var (
	BrandBlue = color.NRGBA{R: 0x00, G: 0x53, B: 0x9f, A: 0xff}
	BrandRed  = color.NRGBA{R: 0xee, G: 0x1c, B: 0x2e, A: 0xff}
)

const (
	productHeightRatio = 0.55
	logoWidthRatio     = 0.25
	edgeMargin         = 40

	fallbackLogoText    = "TESCO"
	fallbackLogoOffsetX = 250
	fallbackLogoY       = 50

	tileWidth   = 300
	tileHeight  = 220
	tileBorder  = 5
	tileHeader  = 60
	tileLabel   = "Clubcard Price"
	tileLabelX  = 20
	sloganX     = 50
	sloganAbove = 100
	qrSize      = 160

	sloganSize = 60
	priceSize  = 80
	labelSize  = 34
	logoSize   = 80
)

// Request carries everything about one creative except the product pixels.
type Request struct {
	BackgroundStyle string
	Slogan          string
	Platform        placement.Preset
	Currency        string
	Price           string
	QRText          string
}

// PriceText is the string shown in the price tile.
func (r Request) PriceText() string {
	return r.Currency + r.Price
}

// Layout records where each element landed on the canvas. Empty rectangles
// mean the element was not drawn.
type Layout struct {
	Background   Background
	Product      image.Rectangle
	Logo         image.Rectangle
	LogoFallback bool
	PriceTile    image.Rectangle
	PriceText    image.Rectangle
	Slogan       image.Rectangle
	QR           image.Rectangle
}

// Creative is a composited canvas at the preset's exact size.
type Creative struct {
	Image  *image.NRGBA
	Layout Layout
}

// Composer renders creatives from brand assets resolved once at start-up.
// It holds no per-request state and may be shared between goroutines.
type Composer struct {
	assets brand.Assets
	log    zerolog.Logger
}

func NewComposer(assets brand.Assets, log zerolog.Logger) *Composer {
	return &Composer{assets: assets, log: log}
}

type faces struct {
	slogan, price, label, logo font.Face
}

func (c *Composer) faces() faces {
	f := c.assets.Font
	return faces{
		slogan: f.Face(sloganSize),
		price:  f.Face(priceSize),
		label:  f.Face(labelSize),
		logo:   f.Face(logoSize),
	}
}

// Compose lays out background, product, logo, price tile, slogan and the
// optional QR badge, in that order. cutout is the background-removed product
// and is blended through its own alpha channel.
func (c *Composer) Compose(req Request, cutout image.Image) Creative {
	p := req.Platform
	ff := c.faces()
	var layout Layout

	layout.Background = ParseBackground(req.BackgroundStyle)
	canvas := newCanvas(p.Width, p.Height, layout.Background)

	canvas, layout.Product = placeProduct(canvas, p, cutout)
	canvas, layout.Logo, layout.LogoFallback = c.placeLogo(canvas, p, ff.logo)
	layout.PriceTile, layout.PriceText = drawPriceTile(canvas, p, req.PriceText(), ff.label, ff.price)

	if req.Slogan != "" {
		layout.Slogan = imagepkg.DrawText(canvas, ff.slogan, req.Slogan, sloganX, p.Height-sloganAbove, BrandBlue)
	}
	if req.QRText != "" {
		canvas, layout.QR = c.placeQR(canvas, p, req.QRText)
	}
	return Creative{Image: canvas, Layout: layout}
}

// ProductSize is the scaled size of a src-sized product on a canvas of
// canvasHeight: 55% of the height, aspect preserved. A zero source height
// is treated as 1.
func ProductSize(src image.Point, canvasHeight int) image.Point {
	h := int(math.Round(float64(canvasHeight) * productHeightRatio))
	srcH := src.Y
	if srcH <= 0 {
		srcH = 1
	}
	w := int(math.Round(float64(src.X) * float64(h) / float64(srcH)))
	return image.Pt(w, h)
}

// ProductOrigin centres a product of size sz horizontally and vertically
// within the preset's content band.
func ProductOrigin(p placement.Preset, sz image.Point) image.Point {
	top, bottom := p.ContentBand()
	return image.Pt((p.Width-sz.X)/2, top+(bottom-top-sz.Y)/2)
}

func placeProduct(canvas *image.NRGBA, p placement.Preset, cutout image.Image) (*image.NRGBA, image.Rectangle) {
	if cutout == nil || cutout.Bounds().Empty() {
		return canvas, image.Rectangle{}
	}
	sz := ProductSize(cutout.Bounds().Size(), p.Height)
	if sz.X <= 0 || sz.Y <= 0 {
		return canvas, image.Rectangle{}
	}
	origin := ProductOrigin(p, sz)
	logical := image.Rectangle{Min: origin, Max: origin.Add(sz)}

	src, at, w := visibleColumns(cutout.Bounds(), sz, origin, p.Width)
	if src != cutout.Bounds() {
		cutout = imaging.Crop(cutout, src)
	}
	scaled := imaging.Resize(cutout, w, sz.Y, imaging.Lanczos)
	canvas = imaging.Overlay(canvas, scaled, at, 1.0)
	return canvas, logical
}

// visibleColumns narrows src to the columns that land on a canvas of
// canvasWidth when src is scaled to sz at origin. It returns the source
// rectangle to keep, where its scaled copy goes and that copy's width, so
// the scaled bitmap never grows much wider than the canvas.
func visibleColumns(src image.Rectangle, sz, origin image.Point, canvasWidth int) (image.Rectangle, image.Point, int) {
	if sz.X <= canvasWidth {
		return src, origin, sz.X
	}
	scale := float64(sz.X) / float64(src.Dx())
	keep := int(math.Ceil(float64(canvasWidth)/scale)) + 1
	if keep >= src.Dx() {
		return src, origin, sz.X
	}
	left := (src.Dx() - keep) / 2
	crop := image.Rect(src.Min.X+left, src.Min.Y, src.Min.X+left+keep, src.Max.Y)
	at := image.Pt(origin.X+int(math.Round(float64(left)*scale)), origin.Y)
	return crop, at, int(math.Round(float64(keep) * scale))
}

func (c *Composer) placeLogo(canvas *image.NRGBA, p placement.Preset, face font.Face) (*image.NRGBA, image.Rectangle, bool) {
	switch c.assets.Logo.Kind {
	case brand.LogoLoaded:
		w := int(math.Round(float64(p.Width) * logoWidthRatio))
		logo := imaging.Resize(c.assets.Logo.Image, w, 0, imaging.Lanczos)
		origin := image.Pt(p.Width-logo.Bounds().Dx()-edgeMargin, edgeMargin)
		canvas = imaging.Overlay(canvas, logo, origin, 1.0)
		return canvas, logo.Bounds().Add(origin), false
	default:
		rect := imagepkg.DrawText(canvas, face, fallbackLogoText, p.Width-fallbackLogoOffsetX, fallbackLogoY, BrandBlue)
		return canvas, rect, true
	}
}

// PriceTileRect is the tile's rectangle, anchored bottom-right.
func PriceTileRect(p placement.Preset) image.Rectangle {
	x0 := p.Width - tileWidth - edgeMargin
	y0 := p.Height - tileHeight - edgeMargin
	return image.Rect(x0, y0, x0+tileWidth, y0+tileHeight)
}

func drawPriceTile(canvas *image.NRGBA, p placement.Preset, price string, labelFace, priceFace font.Face) (tile, text image.Rectangle) {
	tile = PriceTileRect(p)
	imagepkg.FillRect(canvas, tile, BrandBlue)
	imagepkg.FillRect(canvas, tile.Inset(tileBorder), color.White)

	header := image.Rect(tile.Min.X, tile.Min.Y, tile.Max.X, tile.Min.Y+tileHeader)
	imagepkg.FillRect(canvas, header, BrandRed)
	labelY := header.Min.Y + (tileHeader-imagepkg.LineHeight(labelFace))/2
	imagepkg.DrawText(canvas, labelFace, tileLabel, tile.Min.X+tileLabelX, labelY, color.White)

	bodyTop := header.Max.Y
	bodyHeight := tile.Max.Y - tileBorder - bodyTop
	x := imagepkg.CenteredX(tile.Min.X, tileWidth, imagepkg.MeasureText(priceFace, price))
	y := bodyTop + (bodyHeight-imagepkg.LineHeight(priceFace))/2
	text = imagepkg.DrawText(canvas, priceFace, price, x, y, BrandBlue)
	return tile, text
}

func (c *Composer) placeQR(canvas *image.NRGBA, p placement.Preset, text string) (*image.NRGBA, image.Rectangle) {
	qr, err := imagepkg.GenerateQRImage(text, qrSize)
	if err != nil {
		c.log.Warn().Err(err).Msg("qr badge skipped")
		return canvas, image.Rectangle{}
	}
	top, _ := p.ContentBand()
	origin := image.Pt(edgeMargin, top+edgeMargin)
	canvas = imaging.Paste(canvas, qr, origin)
	return canvas, qr.Bounds().Sub(qr.Bounds().Min).Add(origin)
}
