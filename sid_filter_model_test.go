// sid_filter_model_test.go - calibration table construction checks

package sidplayfp

import (
	"math"
	"testing"
)

func TestSIDFilterModel_SharedPerClock(t *testing.T) {
	a := GetFilterModelConfig6581(SID_CLOCK_PAL)
	b := GetFilterModelConfig6581(SID_CLOCK_PAL)
	if a != b {
		t.Error("expected one shared calibration instance per clock")
	}
	c := GetFilterModelConfig6581(SID_CLOCK_NTSC)
	if a == c {
		t.Error("distinct clocks must not share calibration")
	}
}

func TestSIDFilterModel_DeterministicBuild(t *testing.T) {
	a := buildFilterModelConfig6581(SID_CLOCK_PAL)
	b := buildFilterModelConfig6581(SID_CLOCK_PAL)

	for x := float32(0); x < 65536; x += 997 {
		if a.opampRev.Output(x) != b.opampRev.Output(x) {
			t.Fatalf("opampRev differs at %f", x)
		}
		if a.vcrNIdsTerm.Output(x) != b.vcrNIdsTerm.Output(x) {
			t.Fatalf("vcrNIdsTerm differs at %f", x)
		}
	}
	if a.kVddt != b.kVddt || a.nSnake != b.nSnake {
		t.Error("calibration scalars differ between identical builds")
	}
}

func TestSIDFilterModel_TablesFiniteAndInRange(t *testing.T) {
	cfg := GetFilterModelConfig6581(SID_CLOCK_PAL)

	check := func(name string, lut LUT, domain float32, lo, hi float32) {
		t.Helper()
		for i := 0; i <= 512; i++ {
			x := domain * float32(i) / 512
			v := lut.Output(x)
			if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
				t.Fatalf("%s: non-finite output at %f", name, x)
			}
			if v < lo || v > hi {
				t.Errorf("%s: output %f at %f outside [%f, %f]", name, v, x, lo, hi)
			}
		}
	}

	// The reverse op-amp table may extrapolate slightly past the measured
	// swing at the extreme capacitor voltages.
	check("opampRev", cfg.opampRev, 65536, -8000, 66000)
	check("vcrKVg", cfg.vcrKVg, 65536, -100, 65536)
	check("vcrNIdsTerm", cfg.vcrNIdsTerm, 65536, 0, 1e9)
	for i, s := range cfg.summer {
		check("summer", s, float32(i+2)*65536, -1000, 66000)
	}
	for i := 1; i < 8; i++ {
		check("mixer", cfg.mixer[i], float32(i)*65536, -1000, 66000)
	}
	for _, g := range cfg.gain {
		check("gain", g, 65536, -1000, 66000)
	}
}

func TestSIDFilterModel_VCRGateVoltageFallsWithBias(t *testing.T) {
	cfg := GetFilterModelConfig6581(SID_CLOCK_PAL)
	prev := cfg.vcrKVg.Output(0)
	for x := float32(256); x < 65536; x += 256 {
		cur := cfg.vcrKVg.Output(x)
		if cur >= prev {
			t.Fatalf("kVg not decreasing at %f: %f -> %f", x, prev, cur)
		}
		prev = cur
	}
}

func TestSIDFilterModel_VCRCurrentMonotone(t *testing.T) {
	cfg := GetFilterModelConfig6581(SID_CLOCK_PAL)
	prev := cfg.vcrNIdsTerm.Output(0)
	for x := float32(64); x < 65536; x += 64 {
		cur := cfg.vcrNIdsTerm.Output(x)
		if cur < prev {
			t.Fatalf("channel current decreased at overdrive %f", x)
		}
		prev = cur
	}
}

func TestSIDFilterModel_SummerInverts(t *testing.T) {
	cfg := GetFilterModelConfig6581(SID_CLOCK_PAL)
	for i, s := range cfg.summer {
		domain := float32(i+2) * 65536
		lo := s.Output(domain / 8)
		hi := s.Output(domain / 2)
		if hi >= lo {
			t.Errorf("summer[%d]: rising input did not lower output (%f -> %f)", i, lo, hi)
		}
	}
}

func TestSIDFilterModel_GainLadderOrdering(t *testing.T) {
	cfg := GetFilterModelConfig6581(SID_CLOCK_PAL)

	// Higher volume settings swing further from the zero-volume operating
	// point for the same input.
	in := float32(20000)
	ref := cfg.gain[0].Output(in)
	prevDev := float32(-1)
	for vol := 1; vol < 16; vol++ {
		dev := float32(math.Abs(float64(cfg.gain[vol].Output(in) - ref)))
		if dev+1.0 < prevDev {
			t.Errorf("gain[%d] deviation %f below gain[%d]", vol, dev, vol-1)
		}
		prevDev = dev
	}
}

func TestSIDFilterModel_CutoffDACRangeAndKink(t *testing.T) {
	cfg := GetFilterModelConfig6581(SID_CLOCK_PAL)

	if cfg.CutoffVw(0) >= cfg.CutoffVw(2047) {
		t.Error("cutoff DAC span collapsed")
	}
	for fc := uint16(0); fc < 2048; fc++ {
		vw := cfg.CutoffVw(fc)
		if vw <= 0 || vw >= cfg.kVddt {
			t.Fatalf("Vw %f at fc=%d outside the bias range", vw, fc)
		}
	}
	// 6581 ladder kink: the MSB transition steps backwards.
	if cfg.CutoffVw(0x400) >= cfg.CutoffVw(0x3ff) {
		t.Error("expected the kinked DAC dip at the MSB transition")
	}
}

func TestSIDFilterModel_IntegratorSettlesAtLowCutoff(t *testing.T) {
	cfg := GetFilterModelConfig6581(SID_CLOCK_PAL)
	in := cfg.BuildIntegrator()
	in.SetVw(cfg.CutoffVw(0))

	vi := cfg.VoiceDC()
	var out, prev float32
	for i := 0; i < 20000; i++ {
		prev = out
		out = in.Solve(vi)
	}
	if math.IsNaN(float64(out)) || math.IsInf(float64(out), 0) {
		t.Fatal("integrator output not finite")
	}
	if delta := math.Abs(float64(out - prev)); delta > 1.0 {
		t.Errorf("integrator did not settle: last step moved %f codes", delta)
	}
	if in.vx >= in.kVddt {
		t.Errorf("vx %f escaped the triode bound %f", in.vx, in.kVddt)
	}
}

func TestSIDFilterModel_VCRTermsStayInTableDomain(t *testing.T) {
	cfg := GetFilterModelConfig6581(SID_CLOCK_PAL)

	// For every valid input voltage the clamped VCR gate-source and
	// gate-drain overdrives must index the channel current table inside its
	// declared domain, across the whole cutoff ladder.
	for fc := 0; fc < 2048; fc += 73 {
		in := cfg.BuildIntegrator()
		in.SetVw(cfg.CutoffVw(uint16(fc)))

		for vi := float32(0); vi < in.kVddt; vi += 4093 {
			for step := 0; step < 4; step++ {
				vgdt := in.kVddt - vi
				kVg := in.vcrKVg.Output(((in.vddtVw2 + vgdt*vgdt) / 2) / 65536)

				var vgs, vgd float32
				if in.vx < kVg {
					vgs = kVg - in.vx
				}
				if vi < kVg {
					vgd = kVg - vi
				}
				if vgs < 0 || vgs >= 65536 {
					t.Fatalf("fc=%d vi=%f: Vgs %f outside table domain", fc, vi, vgs)
				}
				if vgd < 0 || vgd >= 65536 {
					t.Fatalf("fc=%d vi=%f: Vgd %f outside table domain", fc, vi, vgd)
				}

				in.Solve(vi)
			}
		}
	}
}

func TestSIDFilterModel_VoiceScaleCoversSwing(t *testing.T) {
	cfg := GetFilterModelConfig6581(SID_CLOCK_PAL)

	// Full digital swing must stay inside the op-amp voltage range around
	// the DC operating point.
	peak := cfg.VoiceScale() * 0x7ff * 0xff
	if top := cfg.VoiceDC() + peak; top >= cfg.kVddt {
		t.Errorf("voice peak %f reaches the supply bound %f", top, cfg.kVddt)
	}
	if bottom := cfg.VoiceDC() - peak; bottom <= 0 {
		t.Errorf("voice trough %f underflows the table domain", bottom)
	}
}
