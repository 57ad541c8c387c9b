// audio_backend_null.go - discard audio output for rendering and tests

package sidplayfp

// HeadlessOutput satisfies AudioOutput without touching any audio device.
// Rendering paths pull from the player directly instead.
type HeadlessOutput struct {
	started bool
	source  *SIDPlayer
}

func NewHeadlessOutput() *HeadlessOutput {
	return &HeadlessOutput{}
}

func (h *HeadlessOutput) SetSource(player *SIDPlayer) {
	h.source = player
}

func (h *HeadlessOutput) Start() {
	h.started = true
}

func (h *HeadlessOutput) Stop() {
	h.started = false
}

func (h *HeadlessOutput) Close() {
	h.started = false
}

func (h *HeadlessOutput) IsStarted() bool {
	return h.started
}
