// sid_constants.go - MOS 6581/8580 SID register map, chip models and clocks

package sidplayfp

// ChipModel selects one of the two SID revisions. The set is closed: model
// specific behavior is bound at construction time, never per sample.
type ChipModel int

const (
	MODEL_6581 ChipModel = iota // original NMOS chip (non-linear filter, warmer sound)
	MODEL_8580                  // HMOS-II revision (near-linear filter, cleaner sound)
)

func (m ChipModel) String() string {
	if m == MODEL_8580 {
		return "MOS8580"
	}
	return "MOS6581"
}

// C64 system clock frequencies
const (
	SID_CLOCK_PAL  = 985248  // PAL C64 clock (Hz)
	SID_CLOCK_NTSC = 1022727 // NTSC C64 clock (Hz)
)

// Register file layout: three voices of seven registers each, then the
// filter registers and the read-only ports.
const (
	SID_REG_COUNT       = 29
	SID_VOICE_REG_COUNT = 7

	// Per-voice register offsets (0x00-0x06, voice n at n*7)
	SID_REG_FREQ_LO = 0x00 // frequency low byte
	SID_REG_FREQ_HI = 0x01 // frequency high byte
	SID_REG_PW_LO   = 0x02 // pulse width low byte
	SID_REG_PW_HI   = 0x03 // pulse width high byte (bits 0-3 only)
	SID_REG_CONTROL = 0x04 // control register
	SID_REG_AD      = 0x05 // attack/decay
	SID_REG_SR      = 0x06 // sustain/release

	// Filter registers (0x15-0x18)
	SID_REG_FC_LO    = 0x15 // filter cutoff low (bits 0-2 only)
	SID_REG_FC_HI    = 0x16 // filter cutoff high byte
	SID_REG_RES_FILT = 0x17 // resonance (bits 4-7) and routing (bits 0-3)
	SID_REG_MODE_VOL = 0x18 // volume (bits 0-3), filter mode (bits 4-7)

	// Read-only registers (0x19-0x1C)
	SID_REG_POTX = 0x19 // potentiometer X (not implemented)
	SID_REG_POTY = 0x1A // potentiometer Y (not implemented)
	SID_REG_OSC3 = 0x1B // oscillator 3 output
	SID_REG_ENV3 = 0x1C // envelope 3 output
)

// Voice control register bits
const (
	SID_CTRL_GATE     = 0x01 // Bit 0: gate (trigger envelope)
	SID_CTRL_SYNC     = 0x02 // Bit 1: hard sync with previous voice
	SID_CTRL_RINGMOD  = 0x04 // Bit 2: ring modulation with previous voice
	SID_CTRL_TEST     = 0x08 // Bit 3: test bit (resets and holds oscillator)
	SID_CTRL_TRIANGLE = 0x10 // Bit 4: triangle waveform
	SID_CTRL_SAWTOOTH = 0x20 // Bit 5: sawtooth waveform
	SID_CTRL_PULSE    = 0x40 // Bit 6: pulse waveform
	SID_CTRL_NOISE    = 0x80 // Bit 7: noise waveform
)

// Filter resonance/routing register bits
const (
	SID_FILT_V1  = 0x01 // Bit 0: route voice 1 through filter
	SID_FILT_V2  = 0x02 // Bit 1: route voice 2 through filter
	SID_FILT_V3  = 0x04 // Bit 2: route voice 3 through filter
	SID_FILT_EXT = 0x08 // Bit 3: route external input through filter
	SID_FILT_RES = 0xF0 // Bits 4-7: filter resonance (0-15)
)

// Mode/volume register bits
const (
	SID_MODE_VOL_MASK = 0x0F // Bits 0-3: master volume (0-15)
	SID_MODE_LP       = 0x10 // Bit 4: low-pass output
	SID_MODE_BP       = 0x20 // Bit 5: band-pass output
	SID_MODE_HP       = 0x40 // Bit 6: high-pass output
	SID_MODE_3OFF     = 0x80 // Bit 7: voice 3 off (unless routed through filter)
)

// Writes park their value on the internal data bus, where reads of
// write-only registers pick it up until it fades after roughly 0x2000 cycles.
const SID_BUS_VALUE_TTL = 0x2000

// Cutoff DAC width shared by both chip models (11-bit FC register).
const SID_CUTOFF_DAC_BITS = 11
