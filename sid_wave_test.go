// sid_wave_test.go - oscillator output and sync behavior

package sidplayfp

import "testing"

// newWaveTrio wires three oscillators in the chip's sync ring.
func newWaveTrio() [3]*WaveformGenerator {
	var w [3]*WaveformGenerator
	for i := range w {
		w[i] = NewWaveformGenerator()
	}
	for i := range w {
		w[i].SetSyncChain(w[(i+2)%3], w[(i+1)%3])
	}
	return w
}

func TestSIDWave_AccumulatorAdvancesAndWraps(t *testing.T) {
	w := NewWaveformGenerator()
	w.WriteFreqLo(0x00)
	w.WriteFreqHi(0x10) // 0x1000 per cycle

	for i := 0; i < 4096; i++ {
		w.Clock()
	}
	if w.accumulator != 0 { // 4096 * 0x1000 = 2^24 wraps to zero
		t.Errorf("accumulator = %#x, want 0 after full wrap", w.accumulator)
	}

	w.Clock()
	if w.accumulator != 0x1000 {
		t.Errorf("accumulator = %#x, want 0x1000", w.accumulator)
	}
}

func TestSIDWave_SawtoothTracksAccumulator(t *testing.T) {
	w := NewWaveformGenerator()
	w.WriteControl(SID_CTRL_SAWTOOTH)
	w.accumulator = 0xabc123
	if got := w.Output(); got != 0xabc {
		t.Errorf("sawtooth = %#x, want 0xabc", got)
	}
}

func TestSIDWave_TriangleFoldsAtMSB(t *testing.T) {
	w := NewWaveformGenerator()
	w.WriteControl(SID_CTRL_TRIANGLE)

	w.accumulator = 0x400000 // rising half
	if got := w.Output(); got != 0x800 {
		t.Errorf("rising triangle = %#x, want 0x800", got)
	}
	w.accumulator = 0xc00000 // falling half mirrors
	if got := w.Output(); got != 0x7ff {
		t.Errorf("falling triangle = %#x, want 0x7ff", got)
	}
}

func TestSIDWave_PulseThreshold(t *testing.T) {
	w := NewWaveformGenerator()
	w.WriteControl(SID_CTRL_PULSE)
	w.WritePwLo(0x00)
	w.WritePwHi(0x08) // pw = 0x800

	w.accumulator = 0x7ff000
	if got := w.Output(); got != 0 {
		t.Errorf("below threshold = %#x, want 0", got)
	}
	w.accumulator = 0x800000
	if got := w.Output(); got != 0xfff {
		t.Errorf("at threshold = %#x, want 0xfff", got)
	}
}

func TestSIDWave_NoiseUsesTapBitsOnly(t *testing.T) {
	w := NewWaveformGenerator()
	w.WriteControl(SID_CTRL_NOISE)
	w.WriteFreqHi(0x40) // fast accumulator, frequent LFSR shifts

	seen := map[uint16]bool{}
	for i := 0; i < 10000; i++ {
		w.Clock()
		out := w.Output()
		if out&0x00f != 0 {
			t.Fatalf("noise output %#x has low bits set", out)
		}
		seen[out] = true
	}
	if len(seen) < 16 {
		t.Errorf("noise produced only %d distinct levels", len(seen))
	}
}

func TestSIDWave_TestBitHoldsAndReseeds(t *testing.T) {
	w := NewWaveformGenerator()
	w.WriteFreqHi(0x10)
	for i := 0; i < 100; i++ {
		w.Clock()
	}

	w.WriteControl(SID_CTRL_TEST)
	if w.accumulator != 0 || w.shiftReg != 0 {
		t.Error("test bit did not clear oscillator state")
	}
	w.Clock()
	if w.accumulator != 0 {
		t.Error("accumulator moved while test bit held")
	}

	w.WriteControl(0)
	if w.shiftReg != 0x7ffff8 {
		t.Errorf("shift register = %#x, want reseeded 0x7ffff8", w.shiftReg)
	}
}

func TestSIDWave_HardSyncResetsTarget(t *testing.T) {
	w := newWaveTrio()
	w[0].WriteFreqHi(0xff)
	w[0].accumulator = 0x7fff00 // MSB rises on the next clock
	w[1].WriteControl(SID_CTRL_SYNC) // voice 1 syncs to voice 0
	w[1].WriteFreqLo(0x34)
	w[1].WriteFreqHi(0x12)
	for i := 0; i < 5; i++ {
		w[1].Clock()
	}

	for i := range w {
		w[i].Clock()
	}
	for i := range w {
		w[i].Synchronize()
	}
	if w[1].accumulator != 0 {
		t.Errorf("sync target accumulator = %#x, want 0", w[1].accumulator)
	}
}

func TestSIDWave_RingModInvertsTriangleHalf(t *testing.T) {
	w := newWaveTrio()
	w[1].WriteControl(SID_CTRL_TRIANGLE | SID_CTRL_RINGMOD)
	w[1].accumulator = 0x400000

	w[0].accumulator = 0 // source MSB clear: plain triangle
	plain := w[1].Output()
	w[0].accumulator = 0x800000 // source MSB set: folded
	rung := w[1].Output()
	if plain == rung {
		t.Error("ring modulation had no effect on the triangle")
	}
	if rung != 0x7ff {
		t.Errorf("ring modulated output = %#x, want 0x7ff", rung)
	}
}

func TestSIDWave_CombinedWaveformsPullDown(t *testing.T) {
	w := NewWaveformGenerator()
	w.accumulator = 0x654321

	w.WriteControl(SID_CTRL_TRIANGLE)
	tri := w.Output()
	w.WriteControl(SID_CTRL_SAWTOOTH)
	saw := w.Output()
	w.WriteControl(SID_CTRL_TRIANGLE | SID_CTRL_SAWTOOTH)
	both := w.Output()

	if both > tri || both > saw {
		t.Errorf("combined output %#x exceeds components %#x/%#x", both, tri, saw)
	}
}
