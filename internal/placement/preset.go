// Package placement defines the fixed canvas presets creatives are rendered for.
package placement

import "fmt"

const (
	SquarePost = "square_post"
	Story      = "story"
	WebBanner  = "web_banner"
)

// SafeZone is a pair of horizontal bands at the top and bottom of a canvas
// that platform UI may cover.
type SafeZone struct {
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
}

// Preset identifies a target surface and its pixel dimensions.
type Preset struct {
	Name     string   `json:"name"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	SafeZone SafeZone `json:"safe_zone"`
}

// HasSafeZone reports whether any band is reserved.
func (p Preset) HasSafeZone() bool {
	return p.SafeZone.Top > 0 || p.SafeZone.Bottom > 0
}

// ContentBand returns the vertical range [top, bottom) that key visuals are
// centred in: the area between the safe-zone bands, or the full height.
func (p Preset) ContentBand() (top, bottom int) {
	if !p.HasSafeZone() {
		return 0, p.Height
	}
	return p.SafeZone.Top, p.Height - p.SafeZone.Bottom
}

var order = []string{SquarePost, Story, WebBanner}

var presets = map[string]Preset{
	SquarePost: {Name: SquarePost, Width: 1080, Height: 1080},
	Story:      {Name: Story, Width: 1080, Height: 1920, SafeZone: SafeZone{Top: 200, Bottom: 250}},
	WebBanner:  {Name: WebBanner, Width: 1200, Height: 628},
}

// Lookup returns the preset registered under name.
func Lookup(name string) (Preset, bool) {
	p, ok := presets[name]
	return p, ok
}

// MustLookup is Lookup for names that were validated upstream. An unknown
// name is a programming error and panics.
func MustLookup(name string) Preset {
	p, ok := presets[name]
	if !ok {
		panic(fmt.Sprintf("placement: unknown preset %q", name))
	}
	return p
}

// Names lists preset names in display order.
func Names() []string {
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// All lists every preset in display order.
func All() []Preset {
	out := make([]Preset, 0, len(order))
	for _, n := range order {
		out = append(out, presets[n])
	}
	return out
}
