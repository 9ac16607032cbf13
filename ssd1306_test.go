package ssd1306

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/spi/spitest"
)

// recordingPin captures every level driven on a GPIO pin.
type recordingPin struct {
	gpiotest.Pin
	levels []gpio.Level
}

func (p *recordingPin) Out(l gpio.Level) error {
	p.levels = append(p.levels, l)
	return p.Pin.Out(l)
}

func TestNewI2CGeometry(t *testing.T) {
	for _, tc := range []struct {
		name    string
		opts    Opts
		wantErr bool
	}{
		{"128x64", Opts{W: 128, H: 64}, false},
		{"128x32", Opts{W: 128, H: 32}, false},
		{"96x16", Opts{W: 96, H: 16}, false},
		{"96x64", Opts{W: 96, H: 64}, false},
		{"zero", Opts{}, true},
		{"bad width", Opts{W: 64, H: 64}, true},
		{"bad height", Opts{W: 128, H: 48}, true},
		{"height 8", Opts{W: 128, H: 8}, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			bus := i2ctest.Record{}
			d, err := NewI2C(&bus, &tc.opts)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got := d.Bounds(); got != image.Rect(0, 0, tc.opts.W, tc.opts.H) {
				t.Errorf("Bounds() = %v", got)
			}
			if got := d.FrameBufferLen(); got != tc.opts.W*tc.opts.H/8 {
				t.Errorf("FrameBufferLen() = %d, want %d", got, tc.opts.W*tc.opts.H/8)
			}
		})
	}
}

func TestNewI2CDefaultAddr(t *testing.T) {
	bus := i2ctest.Record{}
	opts := Opts{W: 128, H: 64}
	if _, err := NewI2C(&bus, &opts); err != nil {
		t.Fatal(err)
	}
	if opts.Addr != I2CAddr0 {
		t.Errorf("Addr = %#x, want %#x", opts.Addr, I2CAddr0)
	}
}

func TestNewSPIInvalidDC(t *testing.T) {
	if _, err := NewSPI(&spitest.Record{}, gpio.INVALID, nil, &Opts{W: 128, H: 64}); err == nil {
		t.Fatal("gpio.INVALID dc must be rejected")
	}
}

func TestString(t *testing.T) {
	bus := i2ctest.Record{}
	d, err := NewI2C(&bus, &Opts{W: 128, H: 64, Addr: 0x3C})
	if err != nil {
		t.Fatal(err)
	}
	got := d.String()
	if !strings.HasPrefix(got, "ssd1306.Dev{") || !strings.HasSuffix(got, "(128,64)}") {
		t.Errorf("String() = %q", got)
	}
}

// The 3-wire SPI variant is deliberately unsupported: every operation
// must fail without a single byte reaching the bus.
func Test3WireSPIUnsupported(t *testing.T) {
	record := &spitest.Record{}
	d, err := NewSPI(record, nil, nil, &Opts{W: 128, H: 64})
	if err != nil {
		t.Fatal(err)
	}
	fb := make([]byte, d.FrameBufferLen())
	xbm := make([]byte, d.FrameBufferLen())
	for name, op := range map[string]func() error{
		"Command":         func() error { return d.Command(0xAF) },
		"Init":            d.Init,
		"LoadFrameBuffer": func() error { return d.LoadFrameBuffer(nil) },
		"LoadXBM":         func() error { return d.LoadXBM(xbm, fb) },
		"DisplayOn":       func() error { return d.DisplayOn(true) },
		"SetContrast":     func() error { return d.SetContrast(0x10) },
		"Halt":            d.Halt,
	} {
		if err := op(); !errors.Is(err, Err3WireUnsupported) {
			t.Errorf("%s: error = %v, want Err3WireUnsupported", name, err)
		}
	}
	if len(record.Ops) != 0 {
		t.Errorf("%d bytes leaked to the bus: %v", len(record.Ops), record.Ops)
	}
}

func TestSPIDCPinSequencing(t *testing.T) {
	record := &spitest.Record{}
	dc := &recordingPin{Pin: gpiotest.Pin{N: "dc"}}
	d, err := NewSPI(record, dc, nil, &Opts{W: 128, H: 32, TxMaxSize: 4096})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.LoadFrameBuffer(nil); err != nil {
		t.Fatal(err)
	}
	// One initial Low from NewSPI, Low per window/mode command, then
	// High for the pixel stream.
	want := []gpio.Level{gpio.Low, gpio.Low, gpio.Low, gpio.Low, gpio.High}
	if diff := cmp.Diff(dc.levels, want); diff != "" {
		t.Errorf("dc levels difference (-got +want):\n%s", diff)
	}
	wantOps := []conntest.IO{
		{W: []byte{_COLUMNADDR, 0, 127}},
		{W: []byte{_PAGEADDR, 0, 3}},
		{W: []byte{_MEMORYMODE, 0x00}},
		{W: make([]byte, 128*32/8)},
	}
	if diff := cmp.Diff(record.Ops, wantOps, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("ops difference (-got +want):\n%s", diff)
	}
}

// A software chip-select must be released on every exit path, bus
// errors included.
func TestSPICSReleasedOnCommandFailure(t *testing.T) {
	cs := &recordingPin{Pin: gpiotest.Pin{N: "cs"}}
	d := &Dev{
		c:     &conntest.Playback{DontPanic: true},
		dc:    &gpiotest.Pin{N: "dc"},
		cs:    cs,
		proto: protoSPI4,
		rect:  image.Rect(0, 0, 128, 64),
		txMax: 32,
	}
	if err := d.Command(_DISPLAYON); err == nil {
		t.Fatal("expected a bus error")
	}
	want := []gpio.Level{gpio.Low, gpio.High}
	if diff := cmp.Diff(cs.levels, want); diff != "" {
		t.Errorf("cs levels difference (-got +want):\n%s", diff)
	}
}

func TestSPICSReleasedOnMidTransferFailure(t *testing.T) {
	cs := &recordingPin{Pin: gpiotest.Pin{N: "cs"}}
	// Enough playback for the three window commands and two data
	// chunks; the third chunk hits the end of the script and fails.
	pb := &conntest.Playback{
		DontPanic: true,
		Ops: []conntest.IO{
			{W: []byte{_COLUMNADDR, 0, 127}},
			{W: []byte{_PAGEADDR, 0, 7}},
			{W: []byte{_MEMORYMODE, 0x00}},
			{W: make([]byte, 256)},
			{W: make([]byte, 256)},
		},
	}
	d := &Dev{
		c:     pb,
		dc:    &gpiotest.Pin{N: "dc"},
		cs:    cs,
		proto: protoSPI4,
		rect:  image.Rect(0, 0, 128, 64),
		txMax: 256,
	}
	if err := d.LoadFrameBuffer(nil); err == nil {
		t.Fatal("expected a bus error")
	}
	if len(cs.levels) == 0 || cs.levels[len(cs.levels)-1] != gpio.High {
		t.Errorf("cs left asserted after failure: %v", cs.levels)
	}
}
