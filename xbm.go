package ssd1306

import "fmt"

// ConvertXBM gathers an XBM bitmap into the controller's native
// page-packed layout.
//
// xbm is row-major with each row padded to whole bytes
// (ceil(w/8) bytes per row) and bit 0 of each byte the leftmost pixel
// of its 8-pixel span. fb receives one byte per (page, column) pair,
// page-major, with output bit b holding the pixel at row page*8+b.
// Both buffers are caller-owned; only the described ranges are read
// and written.
func ConvertXBM(w, h int, xbm, fb []byte) error {
	stride := (w + 7) / 8
	if len(xbm) != stride*h {
		return fmt.Errorf("ssd1306: invalid xbm length %d, expected %d", len(xbm), stride*h)
	}
	if len(fb) != w*h/8 {
		return fmt.Errorf("ssd1306: invalid frame buffer length %d, expected %d", len(fb), w*h/8)
	}
	for p := 0; p < h/8; p++ {
		for x := 0; x < w; x++ {
			var out byte
			for b := 0; b < 8; b++ {
				row := p*8 + b
				if xbm[row*stride+x/8]&(1<<(uint(x)&7)) != 0 {
					out |= 1 << uint(b)
				}
			}
			fb[p*w+x] = out
		}
	}
	return nil
}

// LoadXBM converts an XBM bitmap into fb and writes it into the
// controller's display RAM. fb must be FrameBufferLen() bytes; it holds
// the converted image after the call.
func (d *Dev) LoadXBM(xbm, fb []byte) error {
	if err := ConvertXBM(d.rect.Dx(), d.rect.Dy(), xbm, fb); err != nil {
		return err
	}
	return d.LoadFrameBuffer(fb)
}
