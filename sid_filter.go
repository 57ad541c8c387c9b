// sid_filter.go - filter stage contract shared by the two SID revisions

package sidplayfp

// Filter is the capability contract of the SID filter stage. The two chip
// revisions implement it with different analog topologies; the concrete
// implementation is chosen once when the chip is built, never per sample.
// Voice and output levels are carried in the normalized 16-bit code scale.
type Filter interface {
	WriteFcLo(value uint8)
	WriteFcHi(value uint8)
	WriteResFilt(value uint8)
	WriteModeVol(value uint8)

	// Input feeds the EXT IN pin for the current tick.
	Input(sample float32)

	// Clock advances the filter by one chip cycle with the three voice
	// levels and returns the mixed output.
	Clock(v1, v2, v3 float32) float32

	Reset()
}

// filterRouting tallies how many sources feed the summer and the mixer for
// the current routing and mode bits. The summer always sees the resonance
// and low-pass feedback paths on top of the routed sources; the mixer sees
// the bypassed sources plus one input per selected filter response.
func filterRouting(filt, mode uint8, voice3off bool) (summerInputs, mixerInputs int) {
	summerInputs = 2
	for _, bit := range []uint8{SID_FILT_V1, SID_FILT_V2, SID_FILT_V3, SID_FILT_EXT} {
		if filt&bit != 0 {
			summerInputs++
		} else if bit != SID_FILT_V3 || !voice3off {
			mixerInputs++
		}
	}
	if mode&SID_MODE_LP != 0 {
		mixerInputs++
	}
	if mode&SID_MODE_BP != 0 {
		mixerInputs++
	}
	if mode&SID_MODE_HP != 0 {
		mixerInputs++
	}
	return summerInputs, mixerInputs
}
