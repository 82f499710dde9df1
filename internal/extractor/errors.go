package extractor

import (
	"fmt"

	"github.com/rohmanhakim/digester/internal/metadata"
	"github.com/rohmanhakim/digester/pkg/failure"
)

type ExtractionErrorCause string

const (
	ErrCauseDecode ExtractionErrorCause = "charset decoding failed"
	ErrCauseParse  ExtractionErrorCause = "html parsing failed"
)

type ExtractionError struct {
	Message   string
	Retryable bool
	Cause     ExtractionErrorCause
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extractor error: %s: %s", e.Cause, e.Message)
}

func (e *ExtractionError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func (e *ExtractionError) IsRetryable() bool {
	return e.Retryable
}

// mapExtractionErrorToMetadataCause maps extractor-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapExtractionErrorToMetadataCause(err *ExtractionError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseDecode, ErrCauseParse:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
