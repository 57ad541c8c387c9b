// sid_external_filter.go - C64 output stage RC network

package sidplayfp

// ExternalFilter models the passive network between the SID's audio output
// pin and the A/V connector: a low-pass RC (10kOhm, 1000pF) that tames the
// spectrum above ~16 kHz and a high-pass RC (1kOhm, 10uF) that blocks the
// large DC level the chip idles at. Clocked once per chip cycle.
type ExternalFilter struct {
	vlp, vhp   float32
	w0lp, w0hp float32
}

func NewExternalFilter(clockHz int) *ExternalFilter {
	f := &ExternalFilter{}
	f.SetClockFrequency(clockHz)
	return f
}

func (f *ExternalFilter) SetClockFrequency(clockHz int) {
	dt := 1.0 / float64(clockHz)
	f.w0lp = float32(dt / (dt + 10e3*1000e-12))
	f.w0hp = float32(dt / (dt + 1e3*10e-6))
}

// Clock advances both poles and returns the AC-coupled output.
func (f *ExternalFilter) Clock(vi float32) float32 {
	dVlp := f.w0lp * (vi - f.vlp)
	dVhp := f.w0hp * (f.vlp - f.vhp)
	f.vlp += dVlp
	f.vhp += dVhp
	return f.vlp - f.vhp
}

func (f *ExternalFilter) Reset() {
	f.vlp = 0
	f.vhp = 0
}
