package ssd1306

import (
	"image"
	"image/color"
	"image/draw"

	"periph.io/x/conn/v3/display"

	"github.com/oledkit/ssd1306/image1bit"
)

// ColorModel implements display.Drawer.
//
// It is a one bit color model, as implemented by image1bit.Bit.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer. Min is guaranteed to be {0, 0}.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw implements display.Drawer.
//
// It draws synchronously; once this function returns, the display is
// updated. On a slow bus (I²C) it may be preferable to defer Draw()
// calls to a background goroutine.
//
// A full-frame *image1bit.VerticalLSB source is sent without any
// conversion. Anything else is composited into an internal buffer
// first, allocated on first use.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if img, ok := src.(*image1bit.VerticalLSB); ok && r == d.rect && img.Rect == d.rect && sp.X == 0 && sp.Y == 0 {
		// Exact size, full frame, image1bit encoding: fast path!
		return d.LoadFrameBuffer(img.Pix)
	}
	if d.next == nil {
		d.next = image1bit.NewVerticalLSB(d.rect)
	}
	draw.Src.Draw(d.next, r, src, sp)
	return d.LoadFrameBuffer(d.next.Pix)
}

// Write writes a frame buffer of pixels to the display.
//
// The format is unusual as each byte represents 8 vertical pixels at a
// time; the format is horizontal bands of 8 pixels high. This function
// accepts the content of image1bit.VerticalLSB.Pix.
func (d *Dev) Write(pixels []byte) (int, error) {
	if err := d.LoadFrameBuffer(pixels); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

var _ display.Drawer = &Dev{}
