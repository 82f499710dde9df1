package cmd

import (
	"strconv"
	"strings"
	"time"

	"github.com/rohmanhakim/digester/pkg/fileutil"
)

// Truncate keeps the first limit characters of text and marks the cut with
// "...". Text that fits is returned unchanged.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

// ParseDuration reads a whole number of seconds. Anything else, including
// zero and negative numbers, yields fallback.
func ParseDuration(answer string, fallback time.Duration) time.Duration {
	seconds, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil || seconds <= 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

func fileExists(path string) bool {
	return fileutil.RequireFile(path) == nil
}
