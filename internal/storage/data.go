package storage

import "time"

type SourceKind string

const (
	SourceWeb   SourceKind = "web"
	SourceAudio SourceKind = "audio"
)

// Report is one analysis run worth keeping: where the text came from, the
// text itself and what the language model made of it.
type Report struct {
	Kind      SourceKind
	Source    string
	Text      string
	Analysis  string
	CreatedAt time.Time
	// SourceMarkdown is the web page converted to Markdown. Optional.
	SourceMarkdown string
}

type WriteResult struct {
	sourceHash   string // identity part of the file names
	markdownPath string
	htmlPath     string
	contentHash  string
}

func NewWriteResult(
	sourceHash string,
	markdownPath string,
	htmlPath string,
	contentHash string,
) WriteResult {
	return WriteResult{
		sourceHash:   sourceHash,
		markdownPath: markdownPath,
		htmlPath:     htmlPath,
		contentHash:  contentHash,
	}
}

func (w *WriteResult) SourceHash() string {
	return w.sourceHash
}

func (w *WriteResult) MarkdownPath() string {
	return w.markdownPath
}

func (w *WriteResult) HTMLPath() string {
	return w.htmlPath
}

func (w *WriteResult) ContentHash() string {
	return w.contentHash
}
