package extractor

import "strings"

// chunkDelimiter is a literal two-space run. It splits a line into chunks;
// it is not a general whitespace collapse, so single spaces and tabs survive.
const chunkDelimiter = "  "

// NormalizeText turns raw document text into newline-separated chunks:
//  1. split into lines
//  2. trim every line
//  3. split every line on two consecutive spaces
//  4. trim every chunk and drop the empty ones
//  5. join the survivors with "\n"
func NormalizeText(text string) string {
	var chunks []string
	for _, line := range splitLines(text) {
		line = strings.TrimSpace(line)
		for _, phrase := range strings.Split(line, chunkDelimiter) {
			if chunk := strings.TrimSpace(phrase); chunk != "" {
				chunks = append(chunks, chunk)
			}
		}
	}
	return strings.Join(chunks, "\n")
}

// splitLines breaks text on every line boundary, the Unicode separators
// included. Empty lines are dropped here since they yield no chunks anyway.
func splitLines(text string) []string {
	return strings.FieldsFunc(text, isLineBoundary)
}

func isLineBoundary(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f',
		'\x1c', '\x1d', '\x1e',
		'\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
