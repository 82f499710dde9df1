package fetcher

import (
	"fmt"

	"github.com/rohmanhakim/digester/internal/metadata"
	"github.com/rohmanhakim/digester/pkg/failure"
)

type FetchErrorCause string

const (
	ErrCauseTimeout               FetchErrorCause = "timeout"
	ErrCauseNetworkFailure        FetchErrorCause = "network issues"
	ErrCauseHTTPStatus            FetchErrorCause = "bad status"
	ErrCauseReadResponseBodyError FetchErrorCause = "failed to read response body"
	ErrCauseCancelled             FetchErrorCause = "cancelled"
	ErrCauseUnexpected            FetchErrorCause = "unexpected"
)

type FetchError struct {
	Message   string
	Retryable bool
	Cause     FetchErrorCause
	// StatusCode is set for ErrCauseHTTPStatus.
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetcher error: %s: %s", e.Cause, e.Message)
}

func (e *FetchError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// IsRetryable returns whether this error is retryable
func (e *FetchError) IsRetryable() bool {
	return e.Retryable
}

// mapFetchErrorToMetadataCause maps fetcher-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapFetchErrorToMetadataCause(err *FetchError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseTimeout, ErrCauseNetworkFailure, ErrCauseHTTPStatus, ErrCauseReadResponseBodyError:
		return metadata.CauseNetworkFailure
	default:
		return metadata.CauseUnknown
	}
}
