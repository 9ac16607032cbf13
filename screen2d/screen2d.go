// Package screen2d implements a display.Drawer that renders a
// monochrome OLED frame to the terminal (stdout) using ANSI color
// codes.
//
// Useful to exercise drawing code while you are waiting for your OLED
// panel to come by mail, or to eyeball a frame buffer in tests.
package screen2d

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"

	"github.com/oledkit/ssd1306/image1bit"
)

// Opts represents the options available for this display.
type Opts struct {
	// W and H are the emulated panel geometry in pixels.
	W int
	H int
	// Palette overrides the ANSI palette used for rendering.
	Palette *ansi256.Palette
	// To overrides the output; defaults to a colorable stdout.
	To io.Writer

	_ struct{}
}

// Dev is a 2D monochrome panel emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	rect    image.Rectangle
	palette ansi256.Palette

	img *image1bit.VerticalLSB
	buf bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.To
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	r := image.Rect(0, 0, opts.W, opts.H)
	return &Dev{
		w:       w,
		rect:    r,
		palette: *p,
		img:     image1bit.NewVerticalLSB(r),
	}
}

func (d *Dev) String() string {
	return fmt.Sprintf("Screen2D{%dx%d}", d.rect.Dx(), d.rect.Dy())
}

// Halt implements conn.Resource.
//
// It resets the terminal attributes so the console is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// Write accepts a page-packed vertical-LSB pixel stream, the same
// layout the SSD1306 driver sends on the wire, and renders it.
func (d *Dev) Write(pixels []byte) (int, error) {
	if len(pixels) != len(d.img.Pix) {
		return 0, fmt.Errorf("screen2d: invalid pixel stream length %d, expected %d", len(pixels), len(d.img.Pix))
	}
	copy(d.img.Pix, pixels)
	if err := d.refresh(); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw implements display.Drawer.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	r = r.Intersect(d.rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			d.img.Set(x, y, src.At(sp.X+x-r.Min.X, sp.Y+y-r.Min.Y))
		}
	}
	return d.refresh()
}

var (
	on  = color.NRGBA{255, 255, 255, 255}
	off = color.NRGBA{0, 0, 0, 255}
)

func (d *Dev) refresh() error {
	// This code is designed to minimize the amount of memory allocated
	// per call.
	d.buf.Reset()
	_, _ = d.buf.WriteString("\033[0m")
	for y := 0; y < d.rect.Dy(); y++ {
		for x := 0; x < d.rect.Dx(); x++ {
			c := off
			if d.img.BitAt(x, y) {
				c = on
			}
			_, _ = io.WriteString(&d.buf, d.palette.Block(c))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
