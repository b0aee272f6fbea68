package document

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"

	"github.com/FloresJesus/Pharmacy/pkg/models/domain"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Logo is a decoded raster asset normalised to an 8-bit PNG.
type Logo struct {
	Data   []byte
	Width  int
	Height int
}

// DecodeLogo validates raw image bytes and re-encodes them as a
// non-interlaced 8-bit PNG that the serializer can always embed.
// Empty input yields a nil logo and no error.
func DecodeLogo(data []byte) (*Logo, error) {
	if len(data) == 0 {
		return nil, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAssetDecode, err)
	}

	bounds := src.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("%w: empty image", domain.ErrAssetDecode)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAssetDecode, err)
	}

	return &Logo{
		Data:   buf.Bytes(),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

// Fit scales the logo to at most maxHeight points, preserving aspect ratio.
// It never enlarges the image.
func (l *Logo) Fit(maxHeight float64) (w, h float64) {
	scale := 1.0
	if float64(l.Height) > maxHeight {
		scale = maxHeight / float64(l.Height)
	}
	return float64(l.Width) * scale, float64(l.Height) * scale
}
