package recorder

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rohmanhakim/digester/internal/metadata"
	"github.com/rohmanhakim/digester/pkg/failure"
	"github.com/rohmanhakim/digester/pkg/fileutil"
	"github.com/rohmanhakim/digester/pkg/timeutil"
)

/*
Responsibilities
- Make sure the output directory exists
- Capture duration x sampleRate mono frames from the Capturer
- Store them as recording_<yyyymmdd_hhmmss>.wav
- Report the path of the written file

Two recordings started within the same second share a file name; the later
one replaces the earlier.
*/

type Recorder struct {
	metadataSink metadata.MetadataSink
	capturer     Capturer
	sampleRate   int
	clock        timeutil.Clock
}

func NewRecorder(
	metadataSink metadata.MetadataSink,
	capturer Capturer,
	sampleRate int,
	clock timeutil.Clock,
) Recorder {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if clock == nil {
		clock = timeutil.SystemClock
	}
	return Recorder{
		metadataSink: metadataSink,
		capturer:     capturer,
		sampleRate:   sampleRate,
		clock:        clock,
	}
}

// Record captures duration worth of audio and returns the written file path.
func (r *Recorder) Record(ctx context.Context, duration time.Duration, outputDir string) (string, failure.ClassifiedError) {
	frames := int(duration.Seconds() * float64(r.sampleRate))
	if frames <= 0 {
		return "", r.fail(outputDir, &RecordingError{
			Message:   fmt.Sprintf("duration must be positive, got %s", duration),
			Retryable: false,
			Cause:     ErrCauseInvalidDuration,
		})
	}

	if err := fileutil.EnsureDir(outputDir); err != nil {
		return "", r.fail(outputDir, &RecordingError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseDirectory,
		})
	}

	startedAt := r.clock()
	path := filepath.Join(outputDir, fileNamePrefix+timeutil.FileStamp(startedAt)+fileNameExt)

	samples, err := r.capturer.Capture(ctx, r.sampleRate, frames)
	if err != nil {
		return "", r.fail(path, &RecordingError{
			Message:   err.Error(),
			Retryable: true,
			Cause:     ErrCauseCapture,
		})
	}

	if err := WriteWave(path, samples, r.sampleRate); err != nil {
		return "", r.fail(path, &RecordingError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseEncode,
		})
	}

	r.metadataSink.RecordArtifact(
		metadata.ArtifactRecording,
		path,
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrCount, fmt.Sprintf("%d", len(samples))),
		},
	)
	return path, nil
}

func (r *Recorder) fail(path string, err *RecordingError) *RecordingError {
	r.metadataSink.RecordError(
		time.Now(),
		"recorder",
		"Recorder.Record",
		mapRecordingErrorToMetadataCause(err),
		err.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrPath, path),
		},
	)
	return err
}
