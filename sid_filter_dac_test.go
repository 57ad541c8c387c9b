// sid_filter_dac_test.go - DAC ladder linearity and kink behavior

package sidplayfp

import (
	"math"
	"testing"
)

func TestSIDDAC_8580Linear(t *testing.T) {
	d := newDACLadder(11, MODEL_8580)

	full := float64((1 << 11) - 1)
	for _, code := range []uint32{0, 1, 0x155, 0x3ff, 0x400, 0x7fe, 0x7ff} {
		want := float64(code) / full
		got := d.Output(code)
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("code %#x: got %g, want %g", code, got, want)
		}
	}
}

func TestSIDDAC_8580Monotone(t *testing.T) {
	d := newDACLadder(11, MODEL_8580)
	prev := -1.0
	for code := uint32(0); code < 1<<11; code++ {
		v := d.Output(code)
		if v <= prev {
			t.Fatalf("output not increasing at code %#x: %g -> %g", code, prev, v)
		}
		prev = v
	}
}

func TestSIDDAC_6581Kink(t *testing.T) {
	d := newDACLadder(11, MODEL_6581)

	// The unterminated, drifting ladder makes the MSB weigh less than the
	// sum of all lower bits, so 0x3ff reads above 0x400.
	low := d.Output(0x3ff)
	high := d.Output(0x400)
	if high >= low {
		t.Errorf("missing kink: Output(0x400)=%g >= Output(0x3ff)=%g", high, low)
	}
	t.Logf("kink depth: %g", low-high)
}

func TestSIDDAC_6581FullScale(t *testing.T) {
	d := newDACLadder(11, MODEL_6581)
	if got := d.Output((1 << 11) - 1); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("full scale = %g, want 1.0", got)
	}
	if got := d.Output(0); got != 0 {
		t.Errorf("zero code = %g, want 0", got)
	}
}
