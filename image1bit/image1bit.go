// Package image1bit implements a one bit color model image as used by
// the SSD1306 display RAM.
//
// Pixels are packed the way the controller stores them: horizontal
// bands (pages) of 8 rows, one byte per column within a band, least
// significant bit on top. A VerticalLSB's Pix slice can therefore be
// handed to the driver's frame buffer transfer as-is.
package image1bit

import (
	"image"
	"image/color"
	"image/draw"
)

// Bit implements a 1 bit color.
type Bit bool

// Possible bitness.
const (
	On  Bit = true
	Off Bit = false
)

// RGBA returns either all white or all black.
func (b Bit) RGBA() (uint32, uint32, uint32, uint32) {
	if b {
		return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
	}
	return 0, 0, 0, 0xFFFF
}

func (b Bit) String() string {
	if b {
		return "On"
	}
	return "Off"
}

// BitModel is the color model for Bit.
var BitModel = color.ModelFunc(convert)

func convert(c color.Color) color.Color {
	return convertBit(c)
}

// convertBit tests the luminance against the mid point.
func convertBit(c color.Color) Bit {
	switch t := c.(type) {
	case Bit:
		return t
	default:
		r, g, b, _ := c.RGBA()
		// Use the fast vision perception weights.
		y := (299*r + 587*g + 114*b) / 1000
		return Bit(y >= 0x8000)
	}
}

// VerticalLSB is a 1 bit (black and white) image with pixels packed
// vertically, least significant bit first.
type VerticalLSB struct {
	// Pix holds the image's pixels. Pixel at (x, y) is at
	// Pix[(y/8)*Stride + x], bit y%8.
	Pix []byte
	// Stride is the Pix stride (in bytes) between vertically adjacent
	// 8 pixel bands.
	Stride int
	// Rect is the image's bounds.
	Rect image.Rectangle
}

// NewVerticalLSB returns an initialized VerticalLSB instance.
func NewVerticalLSB(r image.Rectangle) *VerticalLSB {
	w := r.Dx()
	bands := (r.Dy() + 7) / 8
	return &VerticalLSB{
		Pix:    make([]byte, w*bands),
		Stride: w,
		Rect:   r,
	}
}

// ColorModel implements image.Image.
func (i *VerticalLSB) ColorModel() color.Model {
	return BitModel
}

// Bounds implements image.Image.
func (i *VerticalLSB) Bounds() image.Rectangle {
	return i.Rect
}

// At implements image.Image.
func (i *VerticalLSB) At(x, y int) color.Color {
	return i.BitAt(x, y)
}

// BitAt is the optimized version of At().
func (i *VerticalLSB) BitAt(x, y int) Bit {
	if !(image.Point{X: x, Y: y}.In(i.Rect)) {
		return Off
	}
	pos, mask := i.offset(x, y)
	return Bit(i.Pix[pos]&mask != 0)
}

// Set implements draw.Image.
func (i *VerticalLSB) Set(x, y int, c color.Color) {
	i.SetBit(x, y, convertBit(c))
}

// SetBit is the optimized version of Set().
func (i *VerticalLSB) SetBit(x, y int, b Bit) {
	if !(image.Point{X: x, Y: y}.In(i.Rect)) {
		return
	}
	pos, mask := i.offset(x, y)
	if b {
		i.Pix[pos] |= mask
	} else {
		i.Pix[pos] &^= mask
	}
}

func (i *VerticalLSB) offset(x, y int) (int, byte) {
	x -= i.Rect.Min.X
	y -= i.Rect.Min.Y
	return (y/8)*i.Stride + x, 1 << uint(y&7)
}

var _ draw.Image = &VerticalLSB{}
var _ color.Color = On
