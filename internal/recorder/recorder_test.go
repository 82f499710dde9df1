package recorder_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-audio/wav"
	"github.com/rohmanhakim/digester/internal/metadata"
	"github.com/rohmanhakim/digester/internal/recorder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCapturer struct {
	err        error
	sampleRate int
	frames     int
}

func (f *fakeCapturer) Capture(ctx context.Context, sampleRate int, frames int) ([]int16, error) {
	f.sampleRate = sampleRate
	f.frames = frames
	if f.err != nil {
		return nil, f.err
	}
	samples := make([]int16, frames)
	for i := range samples {
		samples[i] = int16(i%200 - 100)
	}
	return samples, nil
}

type artifactSink struct {
	metadata.NoopSink
	artifacts []string
	causes    []metadata.ErrorCause
}

func (a *artifactSink) RecordArtifact(kind metadata.ArtifactKind, path string, attrs []metadata.Attribute) {
	a.artifacts = append(a.artifacts, path)
}

func (a *artifactSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	a.causes = append(a.causes, cause)
}

func fixedClock() time.Time {
	return time.Date(2025, 1, 31, 14, 25, 1, 0, time.Local)
}

func readWave(t *testing.T, path string) (*wav.Decoder, []int) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	decoder := wav.NewDecoder(f)
	require.True(t, decoder.IsValidFile())
	buf, err := decoder.FullPCMBuffer()
	require.NoError(t, err)
	return decoder, buf.Data
}

func TestRecorder_Record_WritesWave(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "resources", "audio_recordings")
	capturer := &fakeCapturer{}
	sink := &artifactSink{}
	r := recorder.NewRecorder(sink, capturer, 16000, fixedClock)

	path, err := r.Record(context.Background(), 2*time.Second, outputDir)

	require.Nil(t, err)
	assert.Equal(t, filepath.Join(outputDir, "recording_20250131_142501.wav"), path)
	assert.Equal(t, 16000, capturer.sampleRate)
	assert.Equal(t, 32000, capturer.frames)
	assert.Equal(t, []string{path}, sink.artifacts)

	decoder, data := readWave(t, path)
	assert.EqualValues(t, 16000, decoder.SampleRate)
	assert.EqualValues(t, 1, decoder.NumChans)
	assert.EqualValues(t, 16, decoder.BitDepth)
	require.Len(t, data, 32000)
	assert.Equal(t, -100, data[0])
	assert.Equal(t, 99, data[199])
}

func TestRecorder_Record_DefaultsSampleRate(t *testing.T) {
	capturer := &fakeCapturer{}
	r := recorder.NewRecorder(&metadata.NoopSink{}, capturer, 0, fixedClock)

	_, err := r.Record(context.Background(), time.Second, t.TempDir())

	require.Nil(t, err)
	assert.Equal(t, recorder.DefaultSampleRate, capturer.sampleRate)
	assert.Equal(t, recorder.DefaultSampleRate, capturer.frames)
}

func TestRecorder_Record_InvalidDuration(t *testing.T) {
	capturer := &fakeCapturer{}
	sink := &artifactSink{}
	r := recorder.NewRecorder(sink, capturer, 16000, fixedClock)

	_, err := r.Record(context.Background(), 0, t.TempDir())

	var recErr *recorder.RecordingError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, recorder.ErrCauseInvalidDuration, recErr.Cause)
	assert.Zero(t, capturer.frames, "capturer must not be called")
	assert.Equal(t, []metadata.ErrorCause{metadata.CauseConfiguration}, sink.causes)
}

func TestRecorder_Record_CaptureFailure(t *testing.T) {
	outputDir := t.TempDir()
	capturer := &fakeCapturer{err: errors.New("no input device")}
	sink := &artifactSink{}
	r := recorder.NewRecorder(sink, capturer, 16000, fixedClock)

	path, err := r.Record(context.Background(), time.Second, outputDir)

	assert.Empty(t, path)
	var recErr *recorder.RecordingError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, recorder.ErrCauseCapture, recErr.Cause)
	assert.Contains(t, recErr.Message, "no input device")
	assert.Empty(t, sink.artifacts)
	assert.Equal(t, []metadata.ErrorCause{metadata.CauseDeviceFailure}, sink.causes)

	entries, readErr := os.ReadDir(outputDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestRecorder_Record_DirectoryIsAFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	r := recorder.NewRecorder(&metadata.NoopSink{}, &fakeCapturer{}, 16000, fixedClock)
	_, err := r.Record(context.Background(), time.Second, blocker)

	var recErr *recorder.RecordingError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, recorder.ErrCauseDirectory, recErr.Cause)
}

func TestWriteWave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.wav")
	samples := []int16{0, 1, -1, 32767, -32768}

	require.NoError(t, recorder.WriteWave(path, samples, 8000))

	decoder, data := readWave(t, path)
	assert.EqualValues(t, 8000, decoder.SampleRate)
	assert.Equal(t, []int{0, 1, -1, 32767, -32768}, data)
}
