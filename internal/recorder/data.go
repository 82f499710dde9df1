package recorder

import (
	"context"
	"time"
)

const (
	DefaultDuration   = 5 * time.Second
	DefaultSampleRate = 16000
	DefaultDir        = "resources/audio_recordings"

	fileNamePrefix = "recording_"
	fileNameExt    = ".wav"
	bitDepth       = 16
	channels       = 1
)

// Capturer reads mono 16-bit samples from an input device.
// Capture blocks until frames samples were read or ctx is done.
type Capturer interface {
	Capture(ctx context.Context, sampleRate int, frames int) ([]int16, error)
}
