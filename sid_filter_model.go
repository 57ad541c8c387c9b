// sid_filter_model.go - 6581 filter calibration constants and table construction

/*
Everything the 6581 filter path needs at runtime is precomputed here from the
physical properties of the chip: capacitor value, supply and threshold
voltages, FET geometry and the measured op-amp voltage transfer curve. The
tables carry voltages in a normalized 16-bit scale where code 0 is vmin (the
bottom of the op-amp swing) and code 65535 is vmax, so the per-tick solver
can stay in cheap float32 arithmetic with integer-like table indexing.

Construction is pure and deterministic; one instance per chip clock is
cached and shared by every chip, since all tables are read-only.
*/

package sidplayfp

import (
	"math"
	"sync"
)

// Measured op-amp voltage transfer on a real MOS 6581 (input volts at the
// summing node against output volts).
var opampVoltage6581 = []splinePoint{
	{0.81, 10.31}, {2.40, 10.31}, {2.60, 10.30}, {2.70, 10.29},
	{2.80, 10.26}, {2.90, 10.17}, {3.00, 10.04}, {3.10, 9.83},
	{3.20, 9.58}, {3.30, 9.32}, {3.50, 8.69}, {3.70, 8.00},
	{4.00, 6.89}, {4.40, 5.21}, {4.54, 4.54}, {4.60, 4.19},
	{4.80, 3.00}, {4.90, 2.30}, {4.95, 2.03}, {5.00, 1.88},
	{5.05, 1.77}, {5.10, 1.69}, {5.20, 1.58}, {5.40, 1.44},
	{5.60, 1.33}, {5.80, 1.26}, {6.00, 1.21}, {6.40, 1.12},
	{7.00, 1.02}, {7.50, 0.97}, {8.50, 0.89}, {10.00, 0.81},
	{10.31, 0.81},
}

// FilterModelConfig6581 holds the precomputed tables and scale factors for
// the 6581 analog filter path at one chip clock frequency.
type FilterModelConfig6581 struct {
	clockHz int

	// integrator tables
	opampRev    LUT
	vcrKVg      LUT
	vcrNIdsTerm LUT
	kVddt       float32
	nSnake      float32

	// op-amp stage tables
	summer [5]LUT  // 2 to 6 summed inputs
	mixer  [8]LUT  // 0 to 7 mixed inputs
	gain   [16]LUT // 4-bit volume/resonance ladder

	// FC register code to VCR bias voltage
	cutoffDAC [1 << SID_CUTOFF_DAC_BITS]float32

	voiceScale float32
	voiceDC    float32
}

var (
	filterModelMutex sync.Mutex
	filterModels     = map[int]*FilterModelConfig6581{}
)

// GetFilterModelConfig6581 returns the shared calibration for a chip clock,
// building it on first use. The result is immutable.
func GetFilterModelConfig6581(clockHz int) *FilterModelConfig6581 {
	filterModelMutex.Lock()
	defer filterModelMutex.Unlock()
	if cfg, ok := filterModels[clockHz]; ok {
		return cfg
	}
	cfg := buildFilterModelConfig6581(clockHz)
	filterModels[clockHz] = cfg
	return cfg
}

func buildFilterModelConfig6581(clockHz int) *FilterModelConfig6581 {
	// Physical properties of the 6581 filter circuit.
	const (
		capC    = 470e-12      // filter capacitor (F)
		vdd     = 12.18        // positive supply (V)
		vth     = 1.31         // FET threshold voltage (V)
		ut      = 26e-3        // thermal voltage (V)
		kGate   = 1.0          // gate coupling coefficient
		uCox    = 20e-6        // transconductance coefficient (A/V^2)
		wlVCR   = 9.0          // VCR FET width/length ratio
		wlSnake = 1.0 / 115.0  // snake FET width/length ratio
		dacZero = 6.65         // cutoff DAC output at code zero (V)
		dacScal = 2.63         // cutoff DAC full-scale span (V)

		voiceVoltageRange = 1.5 // p-p voice swing at the filter input (V)
		voiceDCVoltage    = 5.0 // voice DC level (V)
	)

	vddt := vdd - vth
	vmin := opampVoltage6581[0].x
	vmax := math.Max(vddt, opampVoltage6581[0].y)
	denorm := vmax - vmin
	norm := 1.0 / denorm
	n16 := norm * 65535.0

	// One solver step per chip cycle; the step length is baked into the
	// current factors so the solver itself stays rate-agnostic.
	dt := 1.0 / float64(clockHz)

	cfg := &FilterModelConfig6581{
		clockHz:    clockHz,
		kVddt:      float32(n16 * (vddt - vmin)),
		nSnake:     float32(denorm * uCox / (2 * kGate) * wlSnake * dt / capC),
		voiceScale: float32(n16 * voiceVoltageRange / (0xfff * 0xff)),
		voiceDC:    float32(n16 * (voiceDCVoltage - vmin)),
	}

	// Reverse op-amp transfer for the integrator: capacitor voltage vc to
	// op-amp output vx. The measured curve is recast with the voltage
	// difference (input - output) on the x axis, which is what vc is.
	{
		scaled := make([]splinePoint, len(opampVoltage6581))
		for i, p := range opampVoltage6581 {
			scaled[i] = splinePoint{x: (p.x - p.y) * norm, y: (p.x - vmin) * n16}
		}
		s := newSpline(scaled)
		tab := make([]float32, 257)
		for i := range tab {
			v, _ := s.evaluate(float64(i)/128 - 1)
			tab[i] = float32(v)
		}
		cfg.opampRev = NewInterpolatedLUT(tab, 65536)
	}

	// VCR gate voltage from the mean of the squared bias and drain terms.
	// Table input is that mean divided by 65536, so entry i stands for a
	// mean square of i*2^24 in code units.
	{
		nVddt := n16 * (vddt - vmin)
		tab := make([]float32, 257)
		for i := range tab {
			tab[i] = float32(kGate * (nVddt - 4096*math.Sqrt(float64(i))))
		}
		cfg.vcrKVg = NewInterpolatedLUT(tab, 65536)
	}

	// VCR channel current, EKV model in moderate inversion. Entries hold the
	// charge moved in one solver step per squared log term, in code units.
	{
		is := 2 * uCox * ut * ut / kGate * wlVCR
		nIs := n16 * dt / capC * is
		kVt := kGate * vth
		tab := make([]float32, 257)
		for i := range tab {
			v := float64(i) * 256 / n16 // gate overdrive in volts
			x := (v - kVt) / (2 * ut)
			var logTerm float64
			if x < 50 {
				logTerm = math.Log1p(math.Exp(x))
			} else {
				logTerm = x // log1p(exp(x)) is x to double precision here
			}
			tab[i] = float32(nIs * logTerm * logTerm)
		}
		cfg.vcrNIdsTerm = NewInterpolatedLUT(tab, 65536)
	}

	// Summer, mixer and gain stages share one op-amp solver over the
	// measured transfer curve.
	opamp := newOpAmp(newSpline(opampVoltage6581), vddt, vmin, vmax)

	for idiv := 2; idiv <= 6; idiv++ {
		opamp.reset()
		n := idiv * 256
		tab := make([]float32, n+1)
		for i := range tab {
			vin := vmin + float64(i)*256/(float64(idiv)*n16)
			vo := opamp.solve(float64(idiv), vin)
			tab[i] = float32((vo - vmin) * n16)
		}
		cfg.summer[idiv-2] = NewInterpolatedLUT(tab, float32(idiv)*65536)
	}

	for k := 0; k < 8; k++ {
		if k == 0 {
			// No inputs: the op-amp settles on its own transfer curve.
			opamp.reset()
			vo := opamp.solve(0, vmin)
			cfg.mixer[0] = NewConstantLUT(float32((vo - vmin) * n16))
			continue
		}
		opamp.reset()
		n := k * 256
		tab := make([]float32, n+1)
		for i := range tab {
			vin := vmin + float64(i)*256/(float64(k)*n16)
			vo := opamp.solve(float64(k)*8.0/6.0, vin)
			tab[i] = float32((vo - vmin) * n16)
		}
		cfg.mixer[k] = NewInterpolatedLUT(tab, float32(k)*65536)
	}

	for vol := 0; vol < 16; vol++ {
		opamp.reset()
		tab := make([]float32, 257)
		for i := range tab {
			vin := vmin + float64(i)*256/n16
			vo := opamp.solve(float64(vol)/8, vin)
			tab[i] = float32((vo - vmin) * n16)
		}
		cfg.gain[vol] = NewInterpolatedLUT(tab, 65536)
	}

	// Cutoff DAC: FC register code to VCR bias voltage through the kinked
	// 11-bit ladder.
	dac := newDACLadder(SID_CUTOFF_DAC_BITS, MODEL_6581)
	for i := range cfg.cutoffDAC {
		cfg.cutoffDAC[i] = float32(n16 * (dacZero + dac.Output(uint32(i))*dacScal - vmin))
	}

	return cfg
}

// BuildIntegrator returns a fresh filter pole wired to the shared tables.
func (cfg *FilterModelConfig6581) BuildIntegrator() *Integrator6581 {
	return NewIntegrator6581(cfg.vcrKVg, cfg.vcrNIdsTerm, cfg.opampRev,
		cfg.kVddt, cfg.nSnake)
}

// CutoffVw maps an 11-bit FC register code to the VCR bias voltage.
func (cfg *FilterModelConfig6581) CutoffVw(fc uint16) float32 {
	return cfg.cutoffDAC[fc&(1<<SID_CUTOFF_DAC_BITS-1)]
}

// VoiceScale converts the wave*envelope product to the code scale.
func (cfg *FilterModelConfig6581) VoiceScale() float32 { return cfg.voiceScale }

// VoiceDC is the voice DC level in the code scale.
func (cfg *FilterModelConfig6581) VoiceDC() float32 { return cfg.voiceDC }
