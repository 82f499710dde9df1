package llm

import (
	"fmt"

	"github.com/rohmanhakim/digester/internal/metadata"
	"github.com/rohmanhakim/digester/pkg/failure"
)

type LLMErrorCause string

const (
	ErrCauseMissingAPIKey LLMErrorCause = "missing api key"
	ErrCauseClientInit    LLMErrorCause = "client init failed"
	ErrCauseRequest       LLMErrorCause = "request failed"
	ErrCauseBadResponse   LLMErrorCause = "unparsable response"
)

// LLMError's Message is written for the end user and is printed as-is.
type LLMError struct {
	Message   string
	Retryable bool
	Cause     LLMErrorCause
}

func (e *LLMError) Error() string {
	return fmt.Sprintf("llm error: %s: %s", e.Cause, e.Message)
}

func (e *LLMError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func (e *LLMError) IsRetryable() bool {
	return e.Retryable
}

// mapLLMErrorToMetadataCause maps llm-local error semantics
// to the canonical metadata.ErrorCause table.
func mapLLMErrorToMetadataCause(err *LLMError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseMissingAPIKey, ErrCauseClientInit:
		return metadata.CauseConfiguration
	case ErrCauseRequest:
		return metadata.CauseServiceFailure
	case ErrCauseBadResponse:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
