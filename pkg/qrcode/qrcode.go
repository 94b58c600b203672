package qr

import (
	"fmt"
	"image/color"

	"github.com/skip2/go-qrcode"
)

type Config struct {
	Content       string
	Size          int
	Background    color.Color
	Foreground    color.Color
	RecoveryLevel int // 0 (low) .. 3 (highest)
	NoBorder      bool
}

// Generate creates a PNG QR code for c.Content.
func (c Config) Generate() ([]byte, error) {
	if c.Content == "" {
		return nil, fmt.Errorf("qr: empty content")
	}
	if c.RecoveryLevel < 0 || c.RecoveryLevel > 3 {
		return nil, fmt.Errorf("qr: invalid recovery level %d", c.RecoveryLevel)
	}

	code, err := qrcode.New(c.Content, qrcode.RecoveryLevel(c.RecoveryLevel))
	if err != nil {
		return nil, err
	}
	if c.Background != nil {
		code.BackgroundColor = c.Background
	}
	if c.Foreground != nil {
		code.ForegroundColor = c.Foreground
	}
	code.DisableBorder = c.NoBorder

	return code.PNG(c.Size)
}

// WithContent returns a copy of c encoding content.
func (c Config) WithContent(content string) Config {
	c.Content = content
	return c
}
