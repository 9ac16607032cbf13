package ssd1306

// Controller command opcodes. See the SSD1306 datasheet, section 9.
// The encodings are bit-exact; they are what the panel hardware parses.
const (
	_DISPLAYOFF          = 0xAE
	_DISPLAYON           = 0xAF
	_SETSTARTLINE        = 0x40
	_SETDISPLAYOFFSET    = 0xD3
	_CHARGEPUMP          = 0x8D
	_MEMORYMODE          = 0x20
	_SEGREMAP            = 0xA0
	_COMSCANINC          = 0xC0
	_COMSCANDEC          = 0xC8
	_SETCOMPINS          = 0xDA
	_SETCONTRAST         = 0x81
	_NORMALDISPLAY       = 0xA6
	_INVERTDISPLAY       = 0xA7
	_SETDISPLAYCLOCKDIV  = 0xD5
	_SETMULTIPLEX        = 0xA8
	_COLUMNADDR          = 0x21
	_PAGEADDR            = 0x22
	_SETPRECHARGE        = 0xD9
	_SETVCOMDETECT       = 0xDB
	_DISPLAYALLON_RESUME = 0xA4
	_DISPLAYALLON        = 0xA5
)

// AddrMode selects how the controller's RAM write pointer
// auto-increments after each data byte.
type AddrMode byte

const (
	// AddrModeHorizontal increments the column, wrapping to the next
	// page at the end of the column window. Frame transfers use it.
	AddrModeHorizontal AddrMode = 0
	// AddrModeVertical increments the page, wrapping to the next column.
	AddrModeVertical AddrMode = 1
	// AddrModePage increments the column within a single page.
	AddrModePage AddrMode = 2
)

// Numeric arguments are passed through to the hardware as-is: the
// controller tolerates the raw opcode encodings and ignores or masks
// out-of-range values itself. Ranges in the doc comments are the
// datasheet's, not enforced here.

// Command issues a single raw command byte.
func (d *Dev) Command(cmd byte) error {
	return d.sendCommand([]byte{cmd})
}

// DisplayOn turns the display panel on or off.
func (d *Dev) DisplayOn(on bool) error {
	if on {
		return d.Command(_DISPLAYON)
	}
	return d.Command(_DISPLAYOFF)
}

// SetDisplayStartLine maps RAM row start (0..63) to COM0, effectively
// scrolling the panel to that row.
func (d *Dev) SetDisplayStartLine(start byte) error {
	return d.Command(_SETSTARTLINE | start&0x3F)
}

// SetDisplayOffset sets the vertical COM shift (0..63).
func (d *Dev) SetDisplayOffset(offset byte) error {
	return d.sendCommand([]byte{_SETDISPLAYOFFSET, offset & 0x3F})
}

// SetChargePumpEnabled enables or disables the internal charge pump
// regulator. Panels without an external VCC supply need it enabled
// before the display is turned on.
func (d *Dev) SetChargePumpEnabled(enabled bool) error {
	arg := byte(0x10)
	if enabled {
		arg = 0x14
	}
	return d.sendCommand([]byte{_CHARGEPUMP, arg})
}

// SetMemAddrMode sets the memory addressing mode.
func (d *Dev) SetMemAddrMode(mode AddrMode) error {
	return d.sendCommand([]byte{_MEMORYMODE, byte(mode) & 0x03})
}

// SetSegmentRemappingEnabled changes the mapping between display data
// column addresses and segment drivers, mirroring the panel
// horizontally.
func (d *Dev) SetSegmentRemappingEnabled(on bool) error {
	cmd := byte(_SEGREMAP)
	if on {
		cmd |= 0x01
	}
	return d.Command(cmd)
}

// SetScanDirectionFwd sets the COM output scan direction. Backward scan
// mirrors the panel vertically; the change is visible immediately.
func (d *Dev) SetScanDirectionFwd(fwd bool) error {
	if fwd {
		return d.Command(_COMSCANINC)
	}
	return d.Command(_COMSCANDEC)
}

// SetCOMPinHWConfig sets the COM signals pin configuration to match the
// OLED panel hardware layout. Init picks the value for the panel
// height; override only for unusual panel wirings.
func (d *Dev) SetCOMPinHWConfig(config byte) error {
	return d.sendCommand([]byte{_SETCOMPINS, config})
}

// SetContrast sets the display contrast.
func (d *Dev) SetContrast(contrast byte) error {
	return d.sendCommand([]byte{_SETCONTRAST, contrast})
}

// SetInversion sets inverse display mode: a RAM bit of 0 lights the
// pixel instead of 1.
func (d *Dev) SetInversion(on bool) error {
	if on {
		return d.Command(_INVERTDISPLAY)
	}
	return d.Command(_NORMALDISPLAY)
}

// SetOscFreq sets the display clock: lower nibble is the DCLK divide
// ratio, upper nibble the oscillator frequency.
func (d *Dev) SetOscFreq(oscFreq byte) error {
	return d.sendCommand([]byte{_SETDISPLAYCLOCKDIV, oscFreq})
}

// SetMuxRatio sets the multiplex ratio (16..63): the number of COM
// lines driven, which is the panel height minus one.
func (d *Dev) SetMuxRatio(ratio byte) error {
	return d.sendCommand([]byte{_SETMULTIPLEX, ratio & 0x3F})
}

// SetColumnAddr sets the column address window for RAM access and moves
// the column pointer to start. In horizontal mode the pointer wraps
// from stop back to start, advancing one page.
func (d *Dev) SetColumnAddr(start, stop byte) error {
	return d.sendCommand([]byte{_COLUMNADDR, start, stop})
}

// SetPageAddr sets the page address window for RAM access and moves the
// page pointer to start.
func (d *Dev) SetPageAddr(start, stop byte) error {
	return d.sendCommand([]byte{_PAGEADDR, start, stop})
}

// SetPrechargePeriod sets the pre-charge period, counted in DCLKs.
func (d *Dev) SetPrechargePeriod(prchrg byte) error {
	return d.sendCommand([]byte{_SETPRECHARGE, prchrg})
}

// SetDeselectLevel adjusts the VCOMH regulator deselect level.
func (d *Dev) SetDeselectLevel(lvl byte) error {
	return d.sendCommand([]byte{_SETVCOMDETECT, lvl})
}

// SetWholeDisplayLighting forces every pixel on regardless of RAM
// content when light is true, and resumes RAM display otherwise.
func (d *Dev) SetWholeDisplayLighting(light bool) error {
	if light {
		return d.Command(_DISPLAYALLON)
	}
	return d.Command(_DISPLAYALLON_RESUME)
}
