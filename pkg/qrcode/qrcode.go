package qrcode

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

const (
	DefaultSize = 256
	MaxSize     = 1024
)

// QRService renders arbitrary links as PNG QR codes.
type QRService struct {
	level qrcode.RecoveryLevel
}

func NewQRService() *QRService {
	return &QRService{level: qrcode.Medium}
}

// Encode returns a size×size PNG. Sizes outside (0, MaxSize] fall back to
// DefaultSize.
func (s *QRService) Encode(content string, size int) ([]byte, error) {
	if size <= 0 || size > MaxSize {
		size = DefaultSize
	}

	png, err := qrcode.Encode(content, s.level, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code PNG: %w", err)
	}
	return png, nil
}
