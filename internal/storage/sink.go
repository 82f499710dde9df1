package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/rohmanhakim/digester/internal/metadata"
	"github.com/rohmanhakim/digester/pkg/failure"
	"github.com/rohmanhakim/digester/pkg/fileutil"
	"github.com/rohmanhakim/digester/pkg/hashutil"
	"github.com/rohmanhakim/digester/pkg/timeutil"
)

/*
Responsibilities
- Persist analysis reports as Markdown
- Render the same report to a standalone HTML page
- Derive file names from the creation time and the source identity

Output Characteristics
- <yyyymmdd_hhmmss>_<source hash>.md and .html side by side
- Rerunning the same source in the same second overwrites the pair
*/

// sourceHashLength is how many hex characters of the source hash go into
// file names.
const sourceHashLength = 12

type Sink interface {
	Write(
		outputDir string,
		report Report,
		hashAlgo hashutil.HashAlgo,
	) (WriteResult, failure.ClassifiedError)
}

type LocalSink struct {
	metadataSink metadata.MetadataSink
}

func NewLocalSink(
	metadataSink metadata.MetadataSink,
) LocalSink {
	return LocalSink{
		metadataSink: metadataSink,
	}
}

func (s *LocalSink) Write(
	outputDir string,
	report Report,
	hashAlgo hashutil.HashAlgo,
) (WriteResult, failure.ClassifiedError) {
	writeResult, err := write(outputDir, report, hashAlgo)
	if err != nil {
		s.metadataSink.RecordError(
			time.Now(),
			"storage",
			"LocalSink.Write",
			mapStorageErrorToMetadataCause(err),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrURL, report.Source),
				metadata.NewAttr(metadata.AttrWritePath, err.Path),
			},
		)
		return WriteResult{}, err
	}
	s.metadataSink.RecordArtifact(
		metadata.ArtifactReport,
		writeResult.MarkdownPath(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrURL, report.Source),
			metadata.NewAttr(metadata.AttrWritePath, writeResult.HTMLPath()),
			metadata.NewAttr(metadata.AttrHash, writeResult.ContentHash()),
		},
	)
	return writeResult, nil
}

func write(
	outputDir string,
	report Report,
	hashAlgo hashutil.HashAlgo,
) (WriteResult, *StorageError) {
	sourceHashFull, err := hashutil.HashBytes([]byte(report.Source), hashAlgo)
	if err != nil {
		return WriteResult{}, &StorageError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseHashComputationFailed,
		}
	}
	sourceHash := sourceHashFull[:sourceHashLength]

	contentHash, err := hashutil.HashBytes([]byte(report.Text), hashAlgo)
	if err != nil {
		return WriteResult{}, &StorageError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseHashComputationFailed,
		}
	}

	if err := fileutil.EnsureDir(outputDir); err != nil {
		return WriteResult{}, &StorageError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCausePathError,
			Path:      outputDir,
		}
	}

	createdAt := report.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	baseName := timeutil.FileStamp(createdAt) + "_" + sourceHash
	markdownPath := filepath.Join(outputDir, baseName+".md")
	htmlPath := filepath.Join(outputDir, baseName+".html")

	md := renderMarkdown(report, createdAt, contentHash)
	if err := writeFile(markdownPath, md); err != nil {
		return WriteResult{}, err
	}
	if err := writeFile(htmlPath, renderHTML(md, "Digest of "+report.Source)); err != nil {
		return WriteResult{}, err
	}

	return NewWriteResult(sourceHash, markdownPath, htmlPath, contentHash), nil
}

func writeFile(path string, content []byte) *StorageError {
	if err := os.WriteFile(path, content, 0644); err != nil {
		cause := ErrCauseWriteFailure
		retryable := false
		if errors.Is(err, syscall.ENOSPC) {
			cause = ErrCauseDiskFull
			retryable = true
		}
		return &StorageError{
			Message:   err.Error(),
			Retryable: retryable,
			Cause:     cause,
			Path:      path,
		}
	}
	return nil
}

func renderMarkdown(report Report, createdAt time.Time, contentHash string) []byte {
	var b strings.Builder
	b.WriteString("# Digest\n\n")
	fmt.Fprintf(&b, "- Kind: %s\n", report.Kind)
	fmt.Fprintf(&b, "- Source: %s\n", report.Source)
	fmt.Fprintf(&b, "- Created: %s\n", createdAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "- Content hash: %s\n\n", contentHash)
	b.WriteString("## Analysis\n\n")
	b.WriteString(strings.TrimSpace(report.Analysis))
	b.WriteString("\n\n## Source text\n\n")
	b.WriteString("```text\n")
	b.WriteString(report.Text)
	b.WriteString("\n```\n")
	if md := strings.TrimSpace(report.SourceMarkdown); md != "" {
		b.WriteString("\n## Source page\n\n")
		b.WriteString(md)
		b.WriteString("\n")
	}
	return []byte(b.String())
}

func renderHTML(md []byte, title string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: title,
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.ToHTML(md, p, renderer)
}
