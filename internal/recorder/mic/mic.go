// Package mic captures audio from the default input device through PortAudio.
package mic

import (
	"context"
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// framesPerBuffer is how many samples one blocking read returns.
const framesPerBuffer = 1024

// Microphone implements recorder.Capturer on the default input device,
// one channel, 16-bit samples.
type Microphone struct{}

func New() *Microphone {
	return &Microphone{}
}

func (m *Microphone) Capture(ctx context.Context, sampleRate int, frames int) ([]int16, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize portaudio: %w", err)
	}
	defer portaudio.Terminate()

	buf := make([]int16, framesPerBuffer)
	stream, err := portaudio.OpenDefaultStream(1, 0, float64(sampleRate), len(buf), buf)
	if err != nil {
		return nil, fmt.Errorf("open input stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return nil, fmt.Errorf("start input stream: %w", err)
	}
	defer stream.Stop()

	samples := make([]int16, 0, frames)
	for len(samples) < frames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := stream.Read(); err != nil {
			return nil, fmt.Errorf("read input stream: %w", err)
		}
		remaining := frames - len(samples)
		if remaining > len(buf) {
			remaining = len(buf)
		}
		samples = append(samples, buf[:remaining]...)
	}
	return samples, nil
}
