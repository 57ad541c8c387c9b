// audio_wav_writer.go - offline rendering to a wav file

package sidplayfp

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// RenderWAV pulls the given number of seconds from the player and writes a
// 16-bit mono wav file. The player should already hold a stream and be set
// playing; rendering advances it exactly as realtime playback would.
func RenderWAV(player *SIDPlayer, path string, seconds float64) error {
	if seconds <= 0 {
		return fmt.Errorf("wav render: non-positive duration %g", seconds)
	}
	sampleRate := player.SampleRate()
	numSamples := int(seconds * float64(sampleRate))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wav render: %w", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: 16,
		Data:           make([]int, 4096),
	}

	for numSamples > 0 {
		n := len(buf.Data)
		if n > numSamples {
			n = numSamples
		}
		chunk := buf.Data[:n]
		for i := range chunk {
			s := player.GenerateSample()
			if s > 1 {
				s = 1
			} else if s < -1 {
				s = -1
			}
			chunk[i] = int(s * 32767)
		}
		buf.Data = chunk
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("wav render: %w", err)
		}
		buf.Data = buf.Data[:cap(buf.Data)]
		numSamples -= n
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("wav render: %w", err)
	}
	return nil
}
