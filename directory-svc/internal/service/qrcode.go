package service

import (
	"fmt"
	"net/url"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(businessID string) ([]byte, error)
}

// DefaultQRGenerator encodes the public business page link as a PNG.
type DefaultQRGenerator struct {
	BaseURL string
	Size    int
}

func (g DefaultQRGenerator) Generate(businessID string) ([]byte, error) {
	size := g.Size
	if size <= 0 {
		size = 256
	}
	link := fmt.Sprintf("%s/business/%s", g.BaseURL, url.PathEscape(businessID))
	return qrcode.Encode(link, qrcode.Medium, size)
}
