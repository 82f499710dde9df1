package recorder

import (
	"fmt"

	"github.com/rohmanhakim/digester/internal/metadata"
	"github.com/rohmanhakim/digester/pkg/failure"
)

type RecordingErrorCause string

const (
	ErrCauseInvalidDuration RecordingErrorCause = "invalid duration"
	ErrCauseDirectory       RecordingErrorCause = "output directory unavailable"
	ErrCauseCapture         RecordingErrorCause = "capture failed"
	ErrCauseEncode          RecordingErrorCause = "wav encoding failed"
)

type RecordingError struct {
	Message   string
	Retryable bool
	Cause     RecordingErrorCause
}

func (e *RecordingError) Error() string {
	return fmt.Sprintf("recorder error: %s: %s", e.Cause, e.Message)
}

func (e *RecordingError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func (e *RecordingError) IsRetryable() bool {
	return e.Retryable
}

// mapRecordingErrorToMetadataCause maps recorder-local error semantics
// to the canonical metadata.ErrorCause table.
func mapRecordingErrorToMetadataCause(err *RecordingError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseInvalidDuration:
		return metadata.CauseConfiguration
	case ErrCauseDirectory, ErrCauseEncode:
		return metadata.CauseStorageFailure
	case ErrCauseCapture:
		return metadata.CauseDeviceFailure
	default:
		return metadata.CauseUnknown
	}
}
