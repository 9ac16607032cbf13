// Command ssd1306demo exercises a SSD1306 OLED panel.
//
// It renders a line of text over a sine wave and pushes the frame over
// I²C or SPI. With -terminal the frame is previewed in the console
// instead, so no hardware is needed.
package main

import (
	"flag"
	"image"
	"image/draw"
	"log"
	"math"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/oledkit/ssd1306"
	"github.com/oledkit/ssd1306/image1bit"
	"github.com/oledkit/ssd1306/screen2d"
)

func main() {
	i2cName := flag.String("i2c", "", "I²C bus to use (default: first available)")
	spiName := flag.String("spi", "", "SPI port to use instead of I²C")
	dcName := flag.String("dc", "", "data/command GPIO pin name (SPI only)")
	csName := flag.String("cs", "", "software chip-select GPIO pin name (SPI only, optional)")
	addr := flag.Uint("addr", uint(ssd1306.I2CAddr0), "I²C address")
	width := flag.Int("w", 128, "panel width")
	height := flag.Int("h", 64, "panel height")
	text := flag.String("text", "Hello from ssd1306!", "text to display")
	terminal := flag.Bool("terminal", false, "preview in the terminal instead of driving hardware")
	flag.Parse()

	img, err := render(*width, *height, *text)
	if err != nil {
		log.Fatal(err)
	}

	if *terminal {
		scr := screen2d.New(&screen2d.Opts{W: *width, H: *height})
		if err := scr.Draw(scr.Bounds(), img, image.Point{}); err != nil {
			log.Fatal(err)
		}
		_ = scr.Halt()
		return
	}

	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	dev, err := open(*spiName, *i2cName, *dcName, *csName, &ssd1306.Opts{
		W:    *width,
		H:    *height,
		Addr: uint16(*addr),
	})
	if err != nil {
		log.Fatal(err)
	}
	if err := dev.Init(); err != nil {
		log.Fatalf("init failed: %s", err)
	}
	if err := dev.Draw(dev.Bounds(), img, image.Point{}); err != nil {
		log.Fatal(err)
	}
	time.Sleep(5 * time.Second)
	if err := dev.Halt(); err != nil {
		log.Fatal(err)
	}
}

func open(spiName, i2cName, dcName, csName string, opts *ssd1306.Opts) (*ssd1306.Dev, error) {
	if spiName != "" {
		p, err := spireg.Open(spiName)
		if err != nil {
			return nil, err
		}
		dc := gpioreg.ByName(dcName)
		var cs gpio.PinOut
		if csName != "" {
			cs = gpioreg.ByName(csName)
		}
		return ssd1306.NewSPI(p, dc, cs, opts)
	}
	b, err := i2creg.Open(i2cName)
	if err != nil {
		return nil, err
	}
	return ssd1306.NewI2C(b, opts)
}

// render draws the demo frame: axes, one period of a sine wave and the
// text, converted to the panel's 1-bit layout.
func render(w, h int, text string) (*image1bit.VerticalLSB, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	face := truetype.NewFace(f, &truetype.Options{Size: 13})

	c := gg.NewContext(w, h)
	c.SetRGB(0, 0, 0)
	c.Clear()
	c.SetRGB(1, 1, 1)
	c.SetFontFace(face)
	for x := 0; x < w; x++ {
		y := float64(h)/2 - math.Sin(2*math.Pi*float64(x)/float64(w))*float64(h)/4
		c.SetPixel(x, int(y))
	}
	c.DrawString(text, 2, 13)

	img := image1bit.NewVerticalLSB(image.Rect(0, 0, w, h))
	draw.Src.Draw(img, img.Bounds(), c.Image(), image.Point{})
	return img, nil
}
