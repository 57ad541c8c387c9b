//go:build !headless

// audio_backend_oto.go - oto v3 audio output

package sidplayfp

import (
	"encoding/binary"
	"math"
	"sync"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
)

// OtoOutput streams player samples to the system mixer. The source pointer
// is atomic so the pull path never contends with setup calls.
type OtoOutput struct {
	ctx       *oto.Context
	player    *oto.Player
	source    atomic.Pointer[SIDPlayer]
	sampleBuf []float32
	started   bool
	mutex     sync.Mutex
}

func NewOtoOutput(sampleRate int) (*OtoOutput, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   4,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	return &OtoOutput{
		ctx:       ctx,
		sampleBuf: make([]float32, 4096),
	}, nil
}

func (o *OtoOutput) SetSource(player *SIDPlayer) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.source.Store(player)
	if o.player == nil {
		o.player = o.ctx.NewPlayer(o)
	}
}

// Read is the oto pull callback: one mono float32 per four output bytes.
func (o *OtoOutput) Read(p []byte) (n int, err error) {
	source := o.source.Load()
	if source == nil {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	numSamples := len(p) / 4
	if len(o.sampleBuf) < numSamples {
		o.sampleBuf = make([]float32, numSamples)
	}
	samples := o.sampleBuf[:numSamples]

	for i := 0; i < numSamples; i++ {
		samples[i] = source.GenerateSample()
	}
	for i, s := range samples {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(s))
	}
	return numSamples * 4, nil
}

func (o *OtoOutput) Start() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if !o.started && o.player != nil {
		o.player.Play()
		o.started = true
	}
}

func (o *OtoOutput) Stop() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if o.started && o.player != nil {
		o.player.Pause()
		o.started = false
	}
}

func (o *OtoOutput) Close() {
	o.Stop()
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if o.player != nil {
		o.player.Close()
		o.player = nil
	}
}

func (o *OtoOutput) IsStarted() bool {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	return o.started
}
