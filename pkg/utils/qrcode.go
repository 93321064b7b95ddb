package utils

import (
	"errors"

	qrcode "github.com/skip2/go-qrcode"
)

const qrSize = 256

// GenerateQRCode encodes content into a PNG image.
func GenerateQRCode(content string) ([]byte, error) {
	if content == "" {
		return nil, errors.New("qr code content is empty")
	}
	return qrcode.Encode(content, qrcode.Medium, qrSize)
}
