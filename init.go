package ssd1306

// Datasheet power-on defaults used by Init.
const (
	defaultOscFreq    = 0x80
	defaultContrast   = 0x7F
	defaultPrecharge  = 0x22
	defaultVCOMHLevel = 0x20
)

// comPinHWConfig maps panel height to the COM pins hardware
// configuration (datasheet table 10-3). 16 and 32 row panels use
// sequential COM wiring without left/right remap; 64 row panels use the
// alternative configuration. Keyed explicitly so new geometries can be
// audited against the datasheet.
var comPinHWConfig = map[int]byte{
	16: 0x02,
	32: 0x02,
	64: 0x12,
}

// Init brings the controller from power-up to a known operating state:
// display running, horizontal addressing, RAM-driven output, default
// contrast and timing, geometry matching the descriptor.
//
// The first failing step aborts the sequence and returns its error.
// There is no partial-success recovery; retry the whole sequence.
// Orientation defaults (segment remap on, backward scan) can be
// overridden afterwards.
func (d *Dev) Init() error {
	chargePump := !d.externalVCC
	steps := []func() error{
		func() error { return d.DisplayOn(false) },
		func() error { return d.SetOscFreq(defaultOscFreq) },
		func() error { return d.SetMuxRatio(byte(d.rect.Dy() - 1)) },
		func() error { return d.SetDisplayOffset(0) },
		func() error { return d.SetDisplayStartLine(0) },
		func() error { return d.SetChargePumpEnabled(chargePump) },
		func() error { return d.SetSegmentRemappingEnabled(true) },
		func() error { return d.SetScanDirectionFwd(false) },
		func() error { return d.SetCOMPinHWConfig(comPinHWConfig[d.rect.Dy()]) },
		func() error { return d.SetContrast(defaultContrast) },
		func() error { return d.SetPrechargePeriod(defaultPrecharge) },
		func() error { return d.SetDeselectLevel(defaultVCOMHLevel) },
		func() error { return d.SetWholeDisplayLighting(false) },
		func() error { return d.SetMemAddrMode(AddrModeHorizontal) },
		func() error { return d.SetInversion(false) },
		func() error { return d.DisplayOn(true) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
