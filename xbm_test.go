package ssd1306

import (
	"testing"

	"periph.io/x/conn/v3/i2c/i2ctest"
)

// setXBMPixel sets (row, col) in a row-major LSB-first bitmap.
func setXBMPixel(xbm []byte, w, row, col int) {
	stride := (w + 7) / 8
	xbm[row*stride+col/8] |= 1 << uint(col%8)
}

// A single source pixel must land at page row/8, column col, bit row%8,
// and nowhere else. Any off-by-one in stride or bit direction corrupts
// the image silently, so the whole output is scanned.
func TestConvertXBMSinglePixel(t *testing.T) {
	for _, w := range []int{96, 128} {
		for _, h := range []int{16, 32, 64} {
			for _, px := range [][2]int{
				{0, 0},
				{0, w - 1},
				{h - 1, 0},
				{h - 1, w - 1},
				{7, 8},
				{8, 7},
				{h/2 + 1, w/2 + 3},
			} {
				row, col := px[0], px[1]
				xbm := make([]byte, (w+7)/8*h)
				fb := make([]byte, w*h/8)
				setXBMPixel(xbm, w, row, col)
				if err := ConvertXBM(w, h, xbm, fb); err != nil {
					t.Fatal(err)
				}
				wantIdx := (row/8)*w + col
				wantByte := byte(1) << uint(row%8)
				for i, b := range fb {
					switch {
					case i == wantIdx && b != wantByte:
						t.Fatalf("%dx%d px(%d,%d): fb[%d] = %#02x, want %#02x", w, h, row, col, i, b, wantByte)
					case i != wantIdx && b != 0:
						t.Fatalf("%dx%d px(%d,%d): stray bits in fb[%d] = %#02x", w, h, row, col, i, b)
					}
				}
			}
		}
	}
}

// Widths that are not byte multiples pad each row to a whole byte; the
// padding bits must be ignored.
func TestConvertXBMRowPadding(t *testing.T) {
	const w, h = 12, 8
	// Stride is 2 bytes; set the 4 padding bits of every row.
	xbm := make([]byte, 2*h)
	for row := 0; row < h; row++ {
		xbm[row*2+1] |= 0xF0
	}
	fb := make([]byte, w*h/8)
	if err := ConvertXBM(w, h, xbm, fb); err != nil {
		t.Fatal(err)
	}
	for i, b := range fb {
		if b != 0 {
			t.Fatalf("padding bits leaked into fb[%d] = %#02x", i, b)
		}
	}
}

func TestConvertXBMAllOn(t *testing.T) {
	const w, h = 96, 16
	xbm := make([]byte, w/8*h)
	for i := range xbm {
		xbm[i] = 0xFF
	}
	fb := make([]byte, w*h/8)
	if err := ConvertXBM(w, h, xbm, fb); err != nil {
		t.Fatal(err)
	}
	for i, b := range fb {
		if b != 0xFF {
			t.Fatalf("fb[%d] = %#02x, want 0xFF", i, b)
		}
	}
}

func TestConvertXBMLengthValidation(t *testing.T) {
	if err := ConvertXBM(128, 64, make([]byte, 10), make([]byte, 1024)); err == nil {
		t.Error("short xbm must be rejected")
	}
	if err := ConvertXBM(128, 64, make([]byte, 1024), make([]byte, 10)); err == nil {
		t.Error("short fb must be rejected")
	}
}

// LoadXBM converts and then streams the converted buffer to the panel.
func TestLoadXBM(t *testing.T) {
	const w, h = 128, 32
	bus := i2ctest.Record{}
	d, err := NewI2C(&bus, &Opts{W: w, H: h, TxMaxSize: 4096})
	if err != nil {
		t.Fatal(err)
	}
	xbm := make([]byte, w/8*h)
	fb := make([]byte, w*h/8)
	setXBMPixel(xbm, w, 10, 77)
	if err := d.LoadXBM(xbm, fb); err != nil {
		t.Fatal(err)
	}
	payload := dataPayload(t, bus.Ops, 4096)
	if len(payload) != w*h/8 {
		t.Fatalf("streamed %d bytes, want %d", len(payload), w*h/8)
	}
	if got, want := payload[(10/8)*w+77], byte(1)<<(10%8); got != want {
		t.Errorf("wire byte = %#02x, want %#02x", got, want)
	}
	if fb[(10/8)*w+77] != payload[(10/8)*w+77] {
		t.Error("fb was not left holding the converted image")
	}
}
