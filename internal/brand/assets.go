// Package brand resolves the optional logo and font assets a creative uses.
// Each loader returns an explicit variant instead of an error: a missing
// asset is a valid state that composition handles with a fallback.
package brand

import (
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

// LogoCandidates are tried in order inside the assets directory.
var LogoCandidates = []string{"logo_hd.png", "logo.png"}

type LogoKind int

const (
	LogoAbsent LogoKind = iota
	LogoLoaded
)

type Logo struct {
	Kind  LogoKind
	Image image.Image
	Path  string
}

func AbsentLogo() Logo { return Logo{Kind: LogoAbsent} }

// NewLogo wraps an already-decoded logo image.
func NewLogo(img image.Image) Logo {
	if img == nil || img.Bounds().Empty() {
		return AbsentLogo()
	}
	return Logo{Kind: LogoLoaded, Image: img}
}

// LoadLogo returns the first decodable candidate in dir, or an absent logo.
func LoadLogo(dir string, log zerolog.Logger) Logo {
	if dir == "" {
		return AbsentLogo()
	}
	for _, name := range LogoCandidates {
		path := filepath.Join(dir, name)
		img, err := imaging.Open(path)
		if err != nil {
			log.Debug().Err(err).Str("path", path).Msg("logo candidate skipped")
			continue
		}
		logo := NewLogo(img)
		if logo.Kind == LogoLoaded {
			logo.Path = path
			log.Info().Str("path", path).Msg("logo loaded")
			return logo
		}
	}
	log.Warn().Str("dir", dir).Msg("no logo asset found, using text fallback")
	return AbsentLogo()
}

type FontKind int

const (
	FontBuiltin FontKind = iota
	FontTrueType
)

// Font is either a parsed TrueType/OpenType font or the built-in bitmap face.
type Font struct {
	Kind FontKind
	Path string
	otf  *opentype.Font
}

func BuiltinFont() Font { return Font{Kind: FontBuiltin} }

// BundledFont is Go Bold, compiled into the binary. It is the face used
// when no font file is configured.
func BundledFont() Font {
	f, err := ParseFont(gobold.TTF)
	if err != nil {
		return BuiltinFont()
	}
	return f
}

// ParseFont parses font file data.
func ParseFont(data []byte) (Font, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return BuiltinFont(), err
	}
	return Font{Kind: FontTrueType, otf: f}, nil
}

// LoadFont reads the font at path. An empty path selects the bundled font;
// a path that cannot be read or parsed falls back to the built-in bitmap face.
func LoadFont(path string, log zerolog.Logger) Font {
	if path == "" {
		return BundledFont()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("font unavailable, using built-in face")
		return BuiltinFont()
	}
	f, err := ParseFont(data)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("font unreadable, using built-in face")
		return BuiltinFont()
	}
	f.Path = path
	return f
}

// Face returns a face at size pixels. The built-in face has a single size.
// TrueType faces are not safe for concurrent use; callers create their own.
func (f Font) Face(size float64) font.Face {
	if f.Kind != FontTrueType || f.otf == nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(f.otf, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}

// Assets bundles everything brand-specific a composer needs.
type Assets struct {
	Logo Logo
	Font Font
}

// Load resolves the logo from dir and the font from fontPath.
func Load(dir, fontPath string, log zerolog.Logger) Assets {
	return Assets{
		Logo: LoadLogo(dir, log),
		Font: LoadFont(fontPath, log),
	}
}
