// Package export turns creatives into deliverable files and writes them to
// a sink.
package export

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	imagepkg "github.com/youruser/creativestudio/internal/image"
	"github.com/youruser/creativestudio/internal/util"
)

const (
	JPEGQuality = 95
	FilePrefix  = "tesco"
	ContentType = "image/jpeg"
)

// EncodeJPEG flattens img onto an opaque background and encodes it.
func EncodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imagepkg.Flatten(img), imaging.JPEG, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return nil, fmt.Errorf("export: encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename is the deterministic output name for the input at index
// (zero-based): tesco_001_<stem>.jpg.
func Filename(index int, source string) string {
	stem := util.FileStem(source)
	if stem == "" {
		return fmt.Sprintf("%s_%03d.jpg", FilePrefix, index+1)
	}
	return fmt.Sprintf("%s_%03d_%s.jpg", FilePrefix, index+1, stem)
}
