package utils

import (
	"bytes"
	"image/png"

	"github.com/skip2/go-qrcode"
)

// DefaultQRSize is the pixel size used when the caller passes size <= 0.
const DefaultQRSize = 256

// GenerateQRCode renders content as a PNG of the given pixel size. Order
// codes end up on printed receipts, so the code uses high error correction
// to stay scannable after smudging.
func GenerateQRCode(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}

	qr, err := qrcode.New(content, qrcode.High)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	err = png.Encode(buf, qr.Image(size))
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
