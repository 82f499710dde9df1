package config

import "errors"

var ErrFileDoesNotExist = errors.New("config file does not exist")
var ErrReadConfigFail = errors.New("failed to read config file")
var ErrConfigParsingFail = errors.New("failed to parse config file")

// ErrInvalidConfig wraps every validation failure, whether the value came
// from a file, a flag or a default.
var ErrInvalidConfig = errors.New("invalid config")
