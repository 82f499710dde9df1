package metadata

import (
	"time"

	"github.com/rs/zerolog"
)

/*
Metadata Collected
- Fetch URLs, status codes, attempt counts, durations
- Vendor API calls (language model, speech) and their durations
- Artifacts written to disk (recordings, reports)
- Classified errors

Metadata is write-only.
No component may read metadata to influence control flow.
*/

/*
Recorder captures structured session events on a zerolog logger.
It must not:
- perform I/O decisions
- affect control flow
Every event carries the session id, so the output of several runs can share
one log file and still be told apart.
*/
type Recorder struct {
	sessionId string
	logger    zerolog.Logger
}

func NewRecorder(logger zerolog.Logger, sessionId string) Recorder {
	return Recorder{
		sessionId: sessionId,
		logger:    logger.With().Str("session_id", sessionId).Logger(),
	}
}

func (r *Recorder) SessionID() string {
	return r.sessionId
}

func (r *Recorder) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {
	evt := r.logger.Error().
		Time("observed_at", observedAt).
		Str("package", packageName).
		Str("action", action).
		Stringer("cause", cause)
	withAttrs(evt, attrs).Msg(errorString)
}

func (r *Recorder) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	contentType string,
	attempts int,
) {
	r.logger.Info().
		Str("event", "fetch").
		Str(string(AttrURL), fetchUrl).
		Int(string(AttrHTTPStatus), httpStatus).
		Dur("duration", duration).
		Str("content_type", contentType).
		Int("attempts", attempts).
		Send()
}

func (r *Recorder) RecordCall(
	service string,
	action string,
	duration time.Duration,
	attrs []Attribute,
) {
	evt := r.logger.Info().
		Str("event", "call").
		Str("service", service).
		Str("action", action).
		Dur("duration", duration)
	withAttrs(evt, attrs).Send()
}

func (r *Recorder) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {
	evt := r.logger.Info().
		Str("event", "artifact").
		Str("kind", string(kind)).
		Str(string(AttrPath), path)
	withAttrs(evt, attrs).Send()
}

func withAttrs(evt *zerolog.Event, attrs []Attribute) *zerolog.Event {
	for _, attr := range attrs {
		evt = evt.Str(string(attr.Key), attr.Value)
	}
	return evt
}

type MetadataSink interface {
	RecordError(
		observedAt time.Time,
		packageName string,
		action string,
		cause ErrorCause,
		details string,
		attrs []Attribute,
	)

	RecordFetch(
		fetchUrl string,
		httpStatus int,
		duration time.Duration,
		contentType string,
		attempts int,
	)

	RecordCall(
		service string,
		action string,
		duration time.Duration,
		attrs []Attribute,
	)

	RecordArtifact(kind ArtifactKind, path string, attrs []Attribute)
}

// NoopSink, struct that implements MetadataSink but does nothing
// Callers (or tests) can decide whether to inject Recorder or NoopSink
// Purpose is to make metadata orthogonal
type NoopSink struct{}

func (n *NoopSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {
}

func (n *NoopSink) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	contentType string,
	attempts int,
) {
}

func (n *NoopSink) RecordCall(service string, action string, duration time.Duration, attrs []Attribute) {
}

func (n *NoopSink) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {}
