package transcriber

import (
	"fmt"

	"github.com/rohmanhakim/digester/internal/metadata"
	"github.com/rohmanhakim/digester/pkg/failure"
)

type TranscriptionErrorCause string

const (
	ErrCauseFileMissing TranscriptionErrorCause = "audio file missing"
	ErrCauseReadFile    TranscriptionErrorCause = "audio file unreadable"
	ErrCauseClientInit  TranscriptionErrorCause = "speech client unavailable"
	ErrCauseRecognize   TranscriptionErrorCause = "recognition failed"
)

type TranscriptionError struct {
	Message   string
	Retryable bool
	Cause     TranscriptionErrorCause
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcriber error: %s: %s", e.Cause, e.Message)
}

func (e *TranscriptionError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func (e *TranscriptionError) IsRetryable() bool {
	return e.Retryable
}

// mapTranscriptionErrorToMetadataCause maps transcriber-local error semantics
// to the canonical metadata.ErrorCause table.
func mapTranscriptionErrorToMetadataCause(err *TranscriptionError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseFileMissing, ErrCauseReadFile:
		return metadata.CauseStorageFailure
	case ErrCauseClientInit:
		return metadata.CauseConfiguration
	case ErrCauseRecognize:
		return metadata.CauseServiceFailure
	default:
		return metadata.CauseUnknown
	}
}
