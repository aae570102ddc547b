package profile

import (
	"github.com/skip2/go-qrcode"
	apperrors "linkhub/internal/pkg/errors"
)

const defaultQRSize = 512

// QRCode renders url as a PNG. A zero size means the default.
func QRCode(url string, size int) ([]byte, error) {
	if size == 0 {
		size = defaultQRSize
	}
	if size < 128 || size > 2048 {
		return nil, apperrors.Validation("Invalid size: must be between 128 and 2048")
	}

	qr, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	return qr.PNG(size)
}
