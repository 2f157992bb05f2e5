package creative

import (
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"

	imagepkg "github.com/youruser/creativestudio/internal/image"
)

type Background int

const (
	BackgroundNeutral Background = iota
	BackgroundWhite
	BackgroundSummer
	BackgroundKitchen
)

var (
	neutralColor = color.NRGBA{R: 0xf4, G: 0xf4, B: 0xf2, A: 0xff}
	summerTop    = color.NRGBA{R: 0x87, G: 0xce, B: 0xfa, A: 0xff}
	summerBottom = color.NRGBA{R: 0x00, G: 0x69, B: 0xb4, A: 0xff}
	kitchenTop   = color.NRGBA{R: 0xf5, G: 0xf5, B: 0xdc, A: 0xff}
	kitchenFloor = color.NRGBA{R: 0xd2, G: 0xb4, B: 0x8c, A: 0xff}
)

// ParseBackground maps a free-text style hint to a fill. The first matching
// keyword wins: white, then summer, then kitchen.
func ParseBackground(style string) Background {
	s := strings.ToLower(style)
	switch {
	case strings.Contains(s, "white"):
		return BackgroundWhite
	case strings.Contains(s, "summer"):
		return BackgroundSummer
	case strings.Contains(s, "kitchen"):
		return BackgroundKitchen
	default:
		return BackgroundNeutral
	}
}

func (b Background) String() string {
	switch b {
	case BackgroundWhite:
		return "white"
	case BackgroundSummer:
		return "summer"
	case BackgroundKitchen:
		return "kitchen"
	default:
		return "neutral"
	}
}

func newCanvas(width, height int, bg Background) *image.NRGBA {
	switch bg {
	case BackgroundWhite:
		return imaging.New(width, height, color.White)
	case BackgroundSummer:
		canvas := imaging.New(width, height, summerTop)
		imagepkg.VerticalGradient(canvas, summerTop, summerBottom)
		return canvas
	case BackgroundKitchen:
		canvas := imaging.New(width, height, kitchenTop)
		imagepkg.FillRect(canvas, image.Rect(0, height/2, width, height), kitchenFloor)
		return canvas
	default:
		return imaging.New(width, height, neutralColor)
	}
}
