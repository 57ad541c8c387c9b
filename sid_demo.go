// sid_demo.go - built-in demo tune for running the player without a file

/*
The demo is a short looping pattern assembled as a SIDDump: a bass pulse on
voice 1 through a swept low-pass filter, an arpeggiated sawtooth lead on
voice 2 and a noise hat on voice 3. Everything is scheduled on 50 Hz frames
the way a C64 raster interrupt would drive the chip.
*/

package sidplayfp

import "sort"

// Equal-tempered note periods as SID frequency words for a PAL clock
// (freq = note_hz * 2^24 / clock).
var demoNoteFreqs = map[string]uint16{
	"C2": 0x0892, "G2": 0x0ce3, "A2": 0x0e6b, "F2": 0x0b72,
	"C4": 0x2249, "E4": 0x2b34, "G4": 0x338f, "A4": 0x39ac,
	"C5": 0x4495, "E5": 0x5669, "G5": 0x671f, "A5": 0x7358,
}

type demoWriter struct {
	events          []SIDEvent
	samplesPerFrame uint64
}

func (d *demoWriter) write(frame uint64, reg, value uint8) {
	d.events = append(d.events, SIDEvent{
		Sample: frame * d.samplesPerFrame,
		Reg:    reg,
		Value:  value,
	})
}

func (d *demoWriter) note(frame uint64, voice int, name string) {
	base := uint8(voice) * SID_VOICE_REG_COUNT
	freq := demoNoteFreqs[name]
	d.write(frame, base+SID_REG_FREQ_LO, uint8(freq))
	d.write(frame, base+SID_REG_FREQ_HI, uint8(freq>>8))
}

func (d *demoWriter) gate(frame uint64, voice int, ctrl uint8) {
	base := uint8(voice) * SID_VOICE_REG_COUNT
	d.write(frame, base+SID_REG_CONTROL, ctrl)
}

// DemoTune builds the looping demo pattern at the given output sample rate.
func DemoTune(model ChipModel, sampleRate int) *SIDDump {
	const framesPerBar = 32
	const bars = 4
	totalFrames := uint64(bars * framesPerBar)

	d := &demoWriter{samplesPerFrame: uint64(sampleRate) / 50}

	// Voice setup on frame 0. Bass: wide pulse, punchy envelope. Lead:
	// sawtooth with a little sustain. Hat: noise, instant decay.
	d.write(0, 0*SID_VOICE_REG_COUNT+SID_REG_PW_HI, 0x04)
	d.write(0, 0*SID_VOICE_REG_COUNT+SID_REG_AD, 0x09)
	d.write(0, 0*SID_VOICE_REG_COUNT+SID_REG_SR, 0xa8)
	d.write(0, 1*SID_VOICE_REG_COUNT+SID_REG_AD, 0x0a)
	d.write(0, 1*SID_VOICE_REG_COUNT+SID_REG_SR, 0x89)
	d.write(0, 2*SID_VOICE_REG_COUNT+SID_REG_AD, 0x02)
	d.write(0, 2*SID_VOICE_REG_COUNT+SID_REG_SR, 0x00)

	// Filter on voice 1 only, low-pass, medium resonance, full volume.
	d.write(0, SID_REG_RES_FILT, 0x80|SID_FILT_V1)
	d.write(0, SID_REG_MODE_VOL, SID_MODE_LP|0x0f)

	bassLine := []string{"C2", "C2", "G2", "F2"}
	arpRoots := [][3]string{
		{"C4", "E4", "G4"},
		{"C5", "E5", "G5"},
		{"G4", "C5", "E5"},
		{"A4", "C5", "F2"},
	}

	for bar := uint64(0); bar < bars; bar++ {
		start := bar * framesPerBar

		// Bass: one note per bar, gated in eighth pulses.
		d.note(start, 0, bassLine[bar])
		for step := uint64(0); step < framesPerBar; step += 8 {
			d.gate(start+step, 0, SID_CTRL_PULSE|SID_CTRL_GATE)
			d.gate(start+step+6, 0, SID_CTRL_PULSE)
		}

		// Lead: arpeggio cycling every two frames.
		d.gate(start, 1, SID_CTRL_SAWTOOTH|SID_CTRL_GATE)
		for step := uint64(0); step < framesPerBar; step += 2 {
			d.note(start+step, 1, arpRoots[bar][(step/2)%3])
		}
		d.gate(start+framesPerBar-2, 1, SID_CTRL_SAWTOOTH)

		// Hat on the off-beats.
		for step := uint64(4); step < framesPerBar; step += 8 {
			d.note(start+step, 2, "A5")
			d.gate(start+step, 2, SID_CTRL_NOISE|SID_CTRL_GATE)
			d.gate(start+step+1, 2, SID_CTRL_NOISE)
		}

		// Filter sweep: cutoff rises through each bar, resets at the top.
		for step := uint64(0); step < framesPerBar; step += 2 {
			fc := uint16(0x100 + step*0x50)
			d.write(start+step, SID_REG_FC_LO, uint8(fc&0x07))
			d.write(start+step, SID_REG_FC_HI, uint8(fc>>3))
		}
	}

	// Tracks are laid down one after another; put the stream back in tick
	// order, keeping write order within a tick.
	sort.SliceStable(d.events, func(i, j int) bool {
		return d.events[i].Sample < d.events[j].Sample
	})

	return &SIDDump{
		Model:        model,
		ClockHz:      SID_CLOCK_PAL,
		SampleRate:   uint32(sampleRate),
		TotalSamples: totalFrames * d.samplesPerFrame,
		LoopSample:   0,
		Loop:         true,
		Events:       d.events,
	}
}
