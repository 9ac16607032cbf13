package ssd1306

import "fmt"

// FrameBufferLen returns the size in bytes of a frame buffer for the
// configured geometry: one byte per column per page.
func (d *Dev) FrameBufferLen() int {
	return d.rect.Dx() * d.rect.Dy() / 8
}

// LoadFrameBuffer writes a local frame buffer into the controller's
// display RAM. buf must be FrameBufferLen() bytes in the native
// page-packed layout: page-major, one byte per column, bit 0 on top.
// A nil buf clears the RAM.
//
// The column and page address windows and horizontal addressing mode
// are re-asserted on every call, so the transfer does not depend on any
// prior controller state. The pixel stream is pushed in bounded-size
// transactions; a failing transaction aborts the transfer with that
// error and the RAM content up to that point is left as written.
func (d *Dev) LoadFrameBuffer(buf []byte) error {
	size := d.FrameBufferLen()
	if buf != nil && len(buf) != size {
		return fmt.Errorf("ssd1306: invalid frame buffer length %d, expected %d", len(buf), size)
	}
	if err := d.SetColumnAddr(0, byte(d.rect.Dx()-1)); err != nil {
		return err
	}
	if err := d.SetPageAddr(0, byte(d.rect.Dy()/8-1)); err != nil {
		return err
	}
	if err := d.SetMemAddrMode(AddrModeHorizontal); err != nil {
		return err
	}
	if buf == nil {
		buf = make([]byte, size)
	}
	return d.sendData(buf)
}

// ClearScreen clears the controller's display RAM.
func (d *Dev) ClearScreen() error {
	return d.LoadFrameBuffer(nil)
}
