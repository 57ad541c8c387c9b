// sid_filter_lut.go - interpolated lookup tables for the SID filter model

package sidplayfp

// LUT is a read-only sampled transfer function. Implementations are immutable
// after construction and safe to share between voices and goroutines.
type LUT interface {
	Output(x float32) float32
}

// InterpolatedLUT holds n+1 samples of a transfer function spanning the input
// domain [0, domain) and interpolates linearly between adjacent entries.
// Inputs outside the domain clamp to the end entries.
type InterpolatedLUT struct {
	scale float32
	last  int
	table []float32
}

// NewInterpolatedLUT wraps a sample table. The table must have at least two
// entries; the caller keeps no ownership of the slice after this call.
func NewInterpolatedLUT(table []float32, domain float32) *InterpolatedLUT {
	return &InterpolatedLUT{
		scale: float32(len(table)-1) / domain,
		last:  len(table) - 1,
		table: table,
	}
}

func (l *InterpolatedLUT) Output(x float32) float32 {
	pos := x * l.scale
	if pos <= 0 {
		return l.table[0]
	}
	if pos >= float32(l.last) {
		return l.table[l.last]
	}
	i := int(pos)
	frac := pos - float32(i)
	return l.table[i] + frac*(l.table[i+1]-l.table[i])
}

// ConstantLUT short-circuits a table whose entries are all identical, which
// happens for degenerate op-amp configurations (single-input summers at the
// rail). Output ignores its input.
type ConstantLUT struct {
	value float32
}

func NewConstantLUT(value float32) *ConstantLUT {
	return &ConstantLUT{value: value}
}

func (l *ConstantLUT) Output(x float32) float32 {
	return l.value
}
