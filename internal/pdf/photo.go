package pdf

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// PreparePhoto decodes an image (JPEG, PNG, GIF, BMP, TIFF), applies EXIF
// orientation, fits it into maxPx x maxPx and re-encodes it as JPEG.
func PreparePhoto(raw []byte, maxPx int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode photo: %w", err)
	}

	b := img.Bounds()
	if b.Dx() > maxPx || b.Dy() > maxPx {
		img = imaging.Fit(img, maxPx, maxPx, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("encode photo: %w", err)
	}
	return buf.Bytes(), nil
}
