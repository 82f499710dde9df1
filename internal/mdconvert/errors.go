package mdconvert

import (
	"fmt"

	"github.com/rohmanhakim/digester/internal/metadata"
	"github.com/rohmanhakim/digester/pkg/failure"
)

type ConversionErrorCause string

const (
	ErrCauseParseFailure      ConversionErrorCause = "parse failed"
	ErrCauseConversionFailure ConversionErrorCause = "conversion failed"
)

type ConversionError struct {
	Message   string
	Retryable bool
	Cause     ConversionErrorCause
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("conversion error: %s: %s", e.Cause, e.Message)
}

func (e *ConversionError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func (e *ConversionError) IsRetryable() bool {
	return e.Retryable
}

func mapConversionErrorToMetadataCause(err *ConversionError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseParseFailure, ErrCauseConversionFailure:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
