// audio_output.go - audio backend selection

package sidplayfp

import "fmt"

const (
	AUDIO_BACKEND_OTO      = "oto"
	AUDIO_BACKEND_HEADLESS = "headless"
)

// AudioOutput is the playback surface the engine drives. Backends pull
// samples from the attached player on their own goroutine.
type AudioOutput interface {
	SetSource(player *SIDPlayer)
	Start()
	Stop()
	Close()
	IsStarted() bool
}

// NewAudioOutput builds the requested backend at the given sample rate.
func NewAudioOutput(backend string, sampleRate int) (AudioOutput, error) {
	switch backend {
	case AUDIO_BACKEND_OTO:
		return NewOtoOutput(sampleRate)
	case AUDIO_BACKEND_HEADLESS:
		return NewHeadlessOutput(), nil
	default:
		return nil, fmt.Errorf("unknown audio backend %q", backend)
	}
}
