package ssd1306

import (
	"errors"
	"fmt"
	"image"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/oledkit/ssd1306/image1bit"
)

// Err3WireUnsupported is returned by every operation on a device opened
// in 3-wire SPI mode. The 9-bit framing it requires is not implemented;
// no bytes are ever clocked out on such a device.
var Err3WireUnsupported = errors.New("ssd1306: 3-wire SPI mode is not supported")

// protocol selects how logical command and data bytes are framed on the
// wire. It is fixed at construction time.
type protocol int

const (
	protoI2C protocol = iota
	protoSPI4
	protoSPI3
)

// I²C slave addresses the controller responds to, selected by the D/C#
// pin strapping on the module.
const (
	I2CAddr0 uint16 = 0x3C
	I2CAddr1 uint16 = 0x3D
)

// Default transaction payload bounds. I²C buses commonly limit
// transaction sizes to tens of bytes; SPI controllers take much larger
// bursts.
const (
	defaultI2CTxMax = 32
	defaultSPITxMax = 4096
)

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	W:    128,
	H:    64,
	Addr: I2CAddr0,
}

// Opts defines the options for the device.
type Opts struct {
	// W is the panel width in pixels. Supported values are 96 and 128.
	W int
	// H is the panel height in pixels. Supported values are 16, 32 and 64.
	H int
	// Addr is the I²C address of the display. Ignored on SPI.
	Addr uint16
	// ExternalVCC must be set for panels wired to an external panel
	// supply. Init then leaves the internal charge pump disabled.
	ExternalVCC bool
	// TxMaxSize bounds the payload of a single data transaction during
	// frame transfers. Zero selects a per-bus default (32 bytes on I²C,
	// 4096 on SPI). Chunk boundaries are bus-transaction boundaries
	// only; the controller's RAM pointer is unaffected.
	TxMaxSize int
}

// Dev is an open handle to the display controller.
//
// A Dev holds no mutable display state: everything lives in the
// controller's registers and RAM. Concurrent use of one Dev requires
// external locking.
type Dev struct {
	c     conn.Conn
	dc    gpio.PinOut
	cs    gpio.PinOut
	proto protocol

	rect        image.Rectangle
	txMax       int
	externalVCC bool

	// next is lazily allocated on the first Draw() that cannot use the
	// caller's pixels directly.
	next *image1bit.VerticalLSB
}

// NewI2C returns a Dev that communicates over I²C to a SSD1306 display
// controller.
//
// The panel is not touched until Init is called.
func NewI2C(b i2c.Bus, opts *Opts) (*Dev, error) {
	if opts.Addr == 0 {
		opts.Addr = DefaultOpts.Addr
	}
	// Maximum bus clock is 1/2.5µs = 400kHz.
	return newDev(&i2c.Dev{Bus: b, Addr: opts.Addr}, protoI2C, nil, nil, opts)
}

// NewSPI returns a Dev that communicates over SPI to a SSD1306 display
// controller.
//
// Connect SDA to SPI_MOSI, SCK to SPI_CLK. dc is the data/command pin;
// passing nil selects the 9-bit 3-wire variant, which is not supported:
// the returned device fails every operation with Err3WireUnsupported.
// Pass gpio.INVALID for dc only by mistake; it is rejected.
//
// cs is an optional software chip-select pin. Pass nil when the port
// drives CS in hardware. When set, the pin is asserted (low) for the
// duration of each logical transfer and released on every exit path,
// including bus errors.
//
// The panel is not touched until Init is called.
func NewSPI(p spi.Port, dc, cs gpio.PinOut, opts *Opts) (*Dev, error) {
	if dc == gpio.INVALID {
		return nil, errors.New("ssd1306: use nil for dc to select 3-wire mode, do not use gpio.INVALID")
	}
	proto := protoSPI4
	bits := 8
	if dc == nil {
		// 3-wire SPI uses 9 bits per word.
		proto = protoSPI3
		bits = 9
	} else if err := dc.Out(gpio.Low); err != nil {
		return nil, err
	}
	// The SSD1306 can operate at up to 3.3MHz, much higher than I²C.
	c, err := p.Connect(3300*physic.KiloHertz, spi.Mode0, bits)
	if err != nil {
		return nil, err
	}
	return newDev(c, proto, dc, cs, opts)
}

// newDev is the common construction code that is independent of the
// communication protocol being used.
func newDev(c conn.Conn, proto protocol, dc, cs gpio.PinOut, opts *Opts) (*Dev, error) {
	switch opts.W {
	case 96, 128:
	default:
		return nil, fmt.Errorf("ssd1306: unsupported width %d", opts.W)
	}
	switch opts.H {
	case 16, 32, 64:
	default:
		return nil, fmt.Errorf("ssd1306: unsupported height %d", opts.H)
	}
	txMax := opts.TxMaxSize
	if txMax <= 0 {
		if proto == protoI2C {
			txMax = defaultI2CTxMax
		} else {
			txMax = defaultSPITxMax
		}
	}
	return &Dev{
		c:           c,
		dc:          dc,
		cs:          cs,
		proto:       proto,
		rect:        image.Rect(0, 0, opts.W, opts.H),
		txMax:       txMax,
		externalVCC: opts.ExternalVCC,
	}, nil
}

func (d *Dev) String() string {
	if d.proto != protoI2C {
		return fmt.Sprintf("ssd1306.Dev{%s, %s, %s}", d.c, d.dc, d.rect.Max)
	}
	return fmt.Sprintf("ssd1306.Dev{%s, %s}", d.c, d.rect.Max)
}

// Halt turns the display panel off. It implements conn.Resource; the
// controller keeps its RAM content and configuration.
func (d *Dev) Halt() error {
	return d.DisplayOn(false)
}

// sendCommand delivers a stream of command bytes, framed for the active
// protocol.
func (d *Dev) sendCommand(c []byte) error {
	switch d.proto {
	case protoSPI3:
		return Err3WireUnsupported
	case protoSPI4:
		return d.withCS(func() error {
			if err := d.dc.Out(gpio.Low); err != nil {
				return err
			}
			return d.c.Tx(c, nil)
		})
	default:
		return d.c.Tx(append([]byte{i2cCmd}, c...), nil)
	}
}

// sendData delivers a stream of display RAM bytes, framed for the
// active protocol. The stream is split into transactions of at most
// txMax payload bytes; byte order is preserved so the controller's
// auto-increment addressing sees one contiguous write.
func (d *Dev) sendData(c []byte) error {
	switch d.proto {
	case protoSPI3:
		return Err3WireUnsupported
	case protoSPI4:
		return d.withCS(func() error {
			if err := d.dc.Out(gpio.High); err != nil {
				return err
			}
			return d.writeChunked(c, func(chunk []byte) error {
				return d.c.Tx(chunk, nil)
			})
		})
	default:
		return d.writeChunked(c, func(chunk []byte) error {
			return d.c.Tx(append([]byte{i2cData}, chunk...), nil)
		})
	}
}

// withCS runs fn with the software chip-select pin asserted. The pin is
// released on every exit path; a release failure is only reported when
// fn itself succeeded, so bus errors propagate verbatim.
func (d *Dev) withCS(fn func() error) error {
	if d.cs == nil {
		return fn()
	}
	if err := d.cs.Out(gpio.Low); err != nil {
		return err
	}
	err := fn()
	if rerr := d.cs.Out(gpio.High); err == nil {
		err = rerr
	}
	return err
}

func (d *Dev) writeChunked(c []byte, tx func([]byte) error) error {
	for len(c) > 0 {
		n := len(c)
		if n > d.txMax {
			n = d.txMax
		}
		if err := tx(c[:n]); err != nil {
			return err
		}
		c = c[n:]
	}
	return nil
}

const (
	i2cCmd  = 0x00 // I²C transaction has a stream of command bytes
	i2cData = 0x40 // I²C transaction has a stream of data bytes
)
