//go:build headless

// audio_backend_headless.go - no-op audio output for headless builds

package sidplayfp

type OtoOutput struct {
	started bool
	source  *SIDPlayer
}

func NewOtoOutput(sampleRate int) (*OtoOutput, error) {
	return &OtoOutput{}, nil
}

func (o *OtoOutput) SetSource(player *SIDPlayer) {
	o.source = player
}

func (o *OtoOutput) Start() {
	o.started = true
}

func (o *OtoOutput) Stop() {
	o.started = false
}

func (o *OtoOutput) Close() {
	o.started = false
}

func (o *OtoOutput) IsStarted() bool {
	return o.started
}
