package qr

import "image/color"

// Default is the look used for post join links.
var Default = Config{
	Size:          512,
	Background:    color.RGBA{R: 255, G: 255, B: 255, A: 255},
	Foreground:    color.RGBA{R: 20, G: 20, B: 20, A: 255},
	RecoveryLevel: 1,
}
