// sid_demo_test.go - demo tune structure and end-to-end render

package sidplayfp

import (
	"math"
	"testing"
)

func TestSIDDemo_EventsOrderedAndEncodable(t *testing.T) {
	d := DemoTune(MODEL_6581, 44100)
	if len(d.Events) == 0 {
		t.Fatal("demo has no events")
	}
	if !d.Loop {
		t.Error("demo should loop")
	}

	prev := uint64(0)
	for i, ev := range d.Events {
		if ev.Sample < prev {
			t.Fatalf("event %d out of order: %d after %d", i, ev.Sample, prev)
		}
		if ev.Sample >= d.TotalSamples {
			t.Fatalf("event %d at %d beyond stream end %d", i, ev.Sample, d.TotalSamples)
		}
		prev = ev.Sample
	}

	if _, err := EncodeSIDDump(d); err != nil {
		t.Errorf("demo does not encode: %v", err)
	}
}

func TestSIDDemo_RendersAudibleAudio(t *testing.T) {
	for _, model := range []ChipModel{MODEL_6581, MODEL_8580} {
		d := DemoTune(model, 44100)
		p, err := NewSIDPlayer(model, int(d.ClockHz), 44100)
		if err != nil {
			t.Fatalf("%v: NewSIDPlayer: %v", model, err)
		}
		p.LoadDump(d)
		p.SetPlaying(true)

		lo, hi := float32(math.Inf(1)), float32(math.Inf(-1))
		for i := 0; i < 44100; i++ {
			out := p.GenerateSample()
			if math.IsNaN(float64(out)) || math.IsInf(float64(out), 0) {
				t.Fatalf("%v: non-finite sample at %d", model, i)
			}
			if out < lo {
				lo = out
			}
			if out > hi {
				hi = out
			}
		}
		if hi-lo < 0.01 {
			t.Errorf("%v: demo swing %f too small", model, hi-lo)
		}
		if !p.IsPlaying() {
			t.Errorf("%v: looping demo stopped", model)
		}
	}
}
