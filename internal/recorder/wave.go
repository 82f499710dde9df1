package recorder

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWave stores samples as a mono 16-bit PCM WAV file at path,
// replacing any existing file.
func WriteWave(path string, samples []int16, sampleRate int) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}

	encoder := wav.NewEncoder(out, sampleRate, bitDepth, channels, 1)

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	if err := encoder.Write(buf); err != nil {
		out.Close()
		return fmt.Errorf("write samples: %w", err)
	}
	// Close patches the RIFF header sizes; it must run before the file closes.
	if err := encoder.Close(); err != nil {
		out.Close()
		return fmt.Errorf("finalize header: %w", err)
	}
	return out.Close()
}
