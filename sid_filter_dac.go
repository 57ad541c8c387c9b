// sid_filter_dac.go - R-2R ladder DAC bit-weight model

/*
The SID's DACs are R-2R ladders built from MOSFET resistors. The 8580 ladder
is terminated and close to ideal. The 6581 ladder is missing its termination
resistor and its FET resistances drift with ladder position, which produces
the famous "kinked" response where the MSB weighs less than the sum of the
bits below it (audible as missing codes in cutoff sweeps).
*/

package sidplayfp

// mosNonLinearity6581 is the per-bit resistance drift factor of the 6581's
// FET ladder, measured against real chips.
const mosNonLinearity6581 = 0.9614

type dacLadder struct {
	weights []float64
}

// newDACLadder computes the analog weight of each ladder bit for the given
// chip model. Output codes map to [0, 1] with all-ones at full scale.
func newDACLadder(bits int, model ChipModel) *dacLadder {
	terminated := model != MODEL_6581

	weights := make([]float64, bits)
	for bit := 0; bit < bits; bit++ {
		weights[bit] = ladderBitWeight(bits, bit, terminated)
	}

	if model == MODEL_6581 {
		scale := 1.0
		for bit := 0; bit < bits; bit++ {
			weights[bit] *= scale
			scale *= mosNonLinearity6581
		}
	}

	var sum float64
	for _, w := range weights {
		sum += w
	}
	for bit := range weights {
		weights[bit] /= sum
	}
	return &dacLadder{weights: weights}
}

// ladderBitWeight walks the ladder from the termination end with successive
// Thevenin reductions, driving only the given bit high, and returns the open
// circuit voltage at the output node.
func ladderBitWeight(bits, setBit int, terminated bool) float64 {
	const r = 1.0
	const r2 = 2.0

	var veq, req float64
	if terminated {
		req = r2
	} else {
		// No path to ground below node 0; the first bit branch stands alone.
		req = 0
	}

	for node := 0; node < bits; node++ {
		var vbit float64
		if node == setBit {
			vbit = 1.0
		}
		if node == 0 && !terminated {
			veq, req = vbit, r2
		} else {
			// Bit branch (2R to the bit source) in parallel with the
			// equivalent network below this node.
			g := 1/req + 1/r2
			veq = (veq/req + vbit/r2) / g
			req = 1 / g
		}
		if node < bits-1 {
			req += r
		}
	}
	return veq
}

// Output converts a digital code to its analog level in [0, 1].
func (d *dacLadder) Output(code uint32) float64 {
	var v float64
	for bit, w := range d.weights {
		if code&(1<<uint(bit)) != 0 {
			v += w
		}
	}
	return v
}
