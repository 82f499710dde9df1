package fileutil

import (
	"fmt"

	"github.com/rohmanhakim/digester/pkg/failure"
)

type FileErrorCause string

const (
	ErrCausePathError  FileErrorCause = "path error"
	ErrCauseNotExist   FileErrorCause = "file does not exist"
	ErrCauseNotRegular FileErrorCause = "not a regular file"
)

type FileError struct {
	Message   string
	Retryable bool
	Cause     FileErrorCause
}

func (e *FileError) Error() string {
	return fmt.Sprintf("file error: %s: %s", e.Cause, e.Message)
}

func (e *FileError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func (e *FileError) IsRetryable() bool {
	return e.Retryable
}
