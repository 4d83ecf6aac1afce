package qrcode

import (
	"bytes"
	"image/png"
	"testing"
)

func TestRenderProducesPNG(t *testing.T) {
	r := NewRenderer(128)

	data, err := r.Render("http://localhost:8080/api/offers/redeem/0123456789abcdef0123456789abcdef")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("expected png output: %v", err)
	}
	if img.Bounds().Dx() != 128 {
		t.Fatalf("expected 128px image, got %d", img.Bounds().Dx())
	}
}

func TestRenderRejectsEmpty(t *testing.T) {
	if _, err := NewRenderer(0).Render(""); err == nil {
		t.Fatalf("expected empty content to fail")
	}
}
