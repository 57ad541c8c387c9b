// sid_player.go - register-event playback engine driving one SID chip

/*
Playback is a timed stream of register writes: each SIDEvent lands on an
exact output sample tick, which keeps replay bit-identical regardless of the
audio backend's buffer sizes. The player owns the chip; the audio backend
pulls samples through GenerateSample and every control surface call takes the
engine mutex, so register state never tears against the pull goroutine.
*/

package sidplayfp

import (
	"fmt"
	"sync"
)

// SIDEvent is one timed register write. Sample is an absolute output-sample
// tick from the start of the stream.
type SIDEvent struct {
	Sample uint64
	Reg    uint8
	Value  uint8
}

// SIDPlayer replays SIDEvent streams through a chip and exposes the sample
// pull the audio backends consume.
type SIDPlayer struct {
	mutex sync.Mutex

	chip       *SID
	sampleRate int

	events         []SIDEvent
	eventIndex     int
	currentSample  uint64
	totalSamples   uint64
	loop           bool
	loopSample     uint64
	loopEventIndex int
	playing        bool
	forceLoop      bool

	// scope ring for visualization, written on the pull path
	scope    []float32
	scopePos int
}

const scopeRingSize = 2048

func NewSIDPlayer(model ChipModel, clockHz, sampleRate int) (*SIDPlayer, error) {
	chip, err := NewSID(model, clockHz, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("sid player: %w", err)
	}
	return &SIDPlayer{
		chip:       chip,
		sampleRate: sampleRate,
		scope:      make([]float32, scopeRingSize),
	}, nil
}

func (p *SIDPlayer) SampleRate() int  { return p.sampleRate }
func (p *SIDPlayer) Model() ChipModel { return p.chip.Model() }

// SetEvents installs a new event stream and rewinds to its start. The slice
// is copied; the caller may reuse it.
func (p *SIDPlayer) SetEvents(events []SIDEvent, totalSamples uint64, loop bool, loopSample uint64) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.events = make([]SIDEvent, len(events))
	copy(p.events, events)
	p.eventIndex = 0
	p.currentSample = 0
	p.totalSamples = totalSamples
	p.loop = loop || p.forceLoop
	p.loopSample = loopSample
	p.loopEventIndex = 0
	for i, ev := range p.events {
		if ev.Sample >= loopSample {
			p.loopEventIndex = i
			break
		}
	}
	p.chip.Reset()
}

// LoadDump installs a parsed register dump.
func (p *SIDPlayer) LoadDump(d *SIDDump) {
	p.SetEvents(d.Events, d.TotalSamples, d.Loop, d.LoopSample)
}

func (p *SIDPlayer) SetPlaying(playing bool) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.playing = playing
}

func (p *SIDPlayer) IsPlaying() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.playing
}

// SetForceLoop loops from the start of the stream even without a loop point.
func (p *SIDPlayer) SetForceLoop(enable bool) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.forceLoop = enable
	if enable {
		p.loop = true
		p.loopSample = 0
		p.loopEventIndex = 0
	}
}

func (p *SIDPlayer) StopPlayback() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.playing = false
	p.events = nil
	p.eventIndex = 0
	p.currentSample = 0
	p.totalSamples = 0
	p.chip.Reset()
}

// WriteRegister lets a host drive the chip directly, outside event playback.
func (p *SIDPlayer) WriteRegister(reg, value uint8) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.chip.Write(reg, value)
}

// ReadRegister exposes the chip's readable ports.
func (p *SIDPlayer) ReadRegister(reg uint8) uint8 {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.chip.Read(reg)
}

// GenerateSample applies all events due on the current tick, advances the
// chip by one output sample and returns it. Called by the audio backends.
func (p *SIDPlayer) GenerateSample() float32 {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.playing {
		for p.eventIndex < len(p.events) && p.events[p.eventIndex].Sample == p.currentSample {
			ev := p.events[p.eventIndex]
			p.chip.Write(ev.Reg, ev.Value)
			p.eventIndex++
		}
	}

	sample := p.chip.Sample()

	p.scope[p.scopePos] = sample
	p.scopePos = (p.scopePos + 1) % len(p.scope)

	if p.playing {
		p.currentSample++
		if p.totalSamples > 0 && p.currentSample >= p.totalSamples {
			if p.loop {
				p.currentSample = p.loopSample
				p.eventIndex = p.loopEventIndex
			} else {
				p.playing = false
				// Kill the output stage so the tail does not ring on.
				p.chip.Write(SID_REG_MODE_VOL, 0)
			}
		}
	}
	return sample
}

// Position returns the current sample tick and the total stream length.
func (p *SIDPlayer) Position() (uint64, uint64) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.currentSample, p.totalSamples
}

// CopyScope snapshots the most recent output samples, oldest first, into
// dst and returns how many were written.
func (p *SIDPlayer) CopyScope(dst []float32) int {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	n := len(dst)
	if n > len(p.scope) {
		n = len(p.scope)
	}
	start := p.scopePos - n
	if start < 0 {
		start += len(p.scope)
	}
	for i := 0; i < n; i++ {
		dst[i] = p.scope[(start+i)%len(p.scope)]
	}
	return n
}
