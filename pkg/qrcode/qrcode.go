package qrcode

import (
	"errors"
	"fmt"

	goqrcode "github.com/skip2/go-qrcode"
)

const defaultSize = 256

// Renderer encodes redemption links as PNG QR codes.
type Renderer struct {
	size int
}

func NewRenderer(size int) *Renderer {
	if size <= 0 {
		size = defaultSize
	}
	return &Renderer{size: size}
}

// Render returns the PNG image for content.
func (r *Renderer) Render(content string) ([]byte, error) {
	if content == "" {
		return nil, errors.New("qr code content is empty")
	}
	png, err := goqrcode.Encode(content, goqrcode.Medium, r.size)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return png, nil
}
