// sid_envelope.go - SID ADSR envelope generator

/*
The envelope is an 8-bit counter stepped by a 15-bit rate counter and an
exponential prescaler. The rate counter compare values come straight from the
chip's LFSR periods, including the famous ADSR delay bug: a compare value
lowered below the current count forces the counter to wrap through 0x8000
before the next step fires. Decay and release pass through the exponential
prescaler whose period grows as the level falls, bending the ramp into the
characteristic piecewise-exponential shape.
*/

package sidplayfp

type envelopeState uint8

const (
	envAttack envelopeState = iota
	envDecaySustain
	envRelease
)

// rateCounterPeriods holds the rate counter compare values for each of the
// 16 attack/decay/release register settings.
var rateCounterPeriods = [16]uint16{
	9, 32, 63, 95, 149, 220, 267, 313,
	392, 977, 1954, 3126, 3907, 11720, 19532, 31251,
}

// sustainLevels doubles the 4-bit sustain nibble into both halves of the
// 8-bit envelope counter, as the chip's comparator does.
var sustainLevels = [16]uint8{
	0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77,
	0x88, 0x99, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff,
}

type EnvelopeGenerator struct {
	rateCounter uint16
	ratePeriod  uint16

	exponentialCounter       uint8
	exponentialCounterPeriod uint8

	envelopeCounter uint8
	holdZero        bool

	attack  uint8
	decay   uint8
	sustain uint8
	release uint8

	gate  bool
	state envelopeState
}

func NewEnvelopeGenerator() *EnvelopeGenerator {
	e := &EnvelopeGenerator{}
	e.Reset()
	return e
}

func (e *EnvelopeGenerator) WriteControl(value uint8) {
	gate := value&SID_CTRL_GATE != 0
	if gate && !e.gate {
		e.state = envAttack
		e.ratePeriod = rateCounterPeriods[e.attack]
		// Attack restarts even from a frozen zero level.
		e.holdZero = false
	} else if !gate && e.gate {
		e.state = envRelease
		e.ratePeriod = rateCounterPeriods[e.release]
	}
	e.gate = gate
}

func (e *EnvelopeGenerator) WriteAttackDecay(value uint8) {
	e.attack = value >> 4
	e.decay = value & 0x0f
	if e.state == envAttack {
		e.ratePeriod = rateCounterPeriods[e.attack]
	} else if e.state == envDecaySustain {
		e.ratePeriod = rateCounterPeriods[e.decay]
	}
}

func (e *EnvelopeGenerator) WriteSustainRelease(value uint8) {
	e.sustain = value >> 4
	e.release = value & 0x0f
	if e.state == envRelease {
		e.ratePeriod = rateCounterPeriods[e.release]
	}
}

// Clock advances the envelope by one chip cycle.
func (e *EnvelopeGenerator) Clock() {
	// ADSR delay bug: the counter is 15 bits wide, so a missed compare
	// costs a full 0x8000-cycle wrap.
	e.rateCounter++
	if e.rateCounter&0x8000 != 0 {
		e.rateCounter = (e.rateCounter + 1) & 0x7fff
	}
	if e.rateCounter != e.ratePeriod {
		return
	}
	e.rateCounter = 0

	// Attack bypasses the exponential prescaler.
	if e.state == envAttack {
		e.exponentialCounter = 0
	} else {
		e.exponentialCounter++
		if e.exponentialCounter != e.exponentialCounterPeriod {
			return
		}
		e.exponentialCounter = 0
	}

	if e.holdZero {
		return
	}

	switch e.state {
	case envAttack:
		e.envelopeCounter++
		if e.envelopeCounter == 0xff {
			e.state = envDecaySustain
			e.ratePeriod = rateCounterPeriods[e.decay]
		}
	case envDecaySustain:
		if e.envelopeCounter != sustainLevels[e.sustain] {
			e.envelopeCounter--
		}
	case envRelease:
		e.envelopeCounter--
	}

	// Exponential prescaler periods switch at fixed counter levels.
	switch e.envelopeCounter {
	case 0xff:
		e.exponentialCounterPeriod = 1
	case 0x5d:
		e.exponentialCounterPeriod = 2
	case 0x36:
		e.exponentialCounterPeriod = 4
	case 0x1a:
		e.exponentialCounterPeriod = 8
	case 0x0e:
		e.exponentialCounterPeriod = 16
	case 0x06:
		e.exponentialCounterPeriod = 30
	case 0x00:
		e.exponentialCounterPeriod = 1
		e.holdZero = true
	}
}

// Output is the current 8-bit envelope level (the ENV3 register view).
func (e *EnvelopeGenerator) Output() uint8 {
	return e.envelopeCounter
}

func (e *EnvelopeGenerator) Reset() {
	e.envelopeCounter = 0
	e.attack = 0
	e.decay = 0
	e.sustain = 0
	e.release = 0
	e.gate = false
	e.rateCounter = 0
	e.ratePeriod = rateCounterPeriods[0]
	e.exponentialCounter = 0
	e.exponentialCounterPeriod = 1
	e.state = envRelease
	e.holdZero = true
}
