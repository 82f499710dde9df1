package extractor

import (
	"bytes"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rohmanhakim/digester/internal/metadata"
	"github.com/rohmanhakim/digester/pkg/failure"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

/*
Responsibilities
- Decode the response body to UTF-8
- Parse HTML into a DOM tree, with scripting disabled so <noscript>
  children are elements rather than raw text
- Drop <script> and <style> subtrees
- Flatten what is left into normalized plain text

Extraction is tag stripping only: no main-content detection and no
boilerplate removal. The output is a pure function of the body bytes and the
declared content type.
*/

// nonVisibleSelector lists the elements whose text never reaches the output.
const nonVisibleSelector = "script, style"

type TextExtractor struct {
	metadataSink metadata.MetadataSink
}

func NewTextExtractor(
	metadataSink metadata.MetadataSink,
) TextExtractor {
	return TextExtractor{
		metadataSink: metadataSink,
	}
}

func (t *TextExtractor) Extract(
	sourceUrl string,
	htmlByte []byte,
	contentType string,
) (string, failure.ClassifiedError) {
	text, err := Extract(htmlByte, contentType)
	if err != nil {
		t.metadataSink.RecordError(
			time.Now(),
			"extractor",
			"TextExtractor.Extract",
			mapExtractionErrorToMetadataCause(err),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrURL, sourceUrl),
			},
		)
		return "", err
	}
	return text, nil
}

// Extract returns the normalized visible text of an HTML body.
// contentType may be empty; the charset is then sniffed from the body.
func Extract(htmlByte []byte, contentType string) (string, *ExtractionError) {
	if len(htmlByte) == 0 {
		return "", nil
	}

	doc, err := ParseVisible(htmlByte, contentType)
	if err != nil {
		return "", err
	}

	return NormalizeText(doc.Text()), nil
}

// ParseVisible decodes and parses an HTML body and drops its non-visible
// subtrees. The returned document is owned by the caller.
func ParseVisible(htmlByte []byte, contentType string) (*goquery.Document, *ExtractionError) {
	reader, err := charset.NewReader(bytes.NewReader(htmlByte), contentType)
	if err != nil {
		return nil, &ExtractionError{
			Message:   fmt.Sprintf("failed to decode body: %v", err),
			Retryable: false,
			Cause:     ErrCauseDecode,
		}
	}

	root, err := html.ParseWithOptions(reader, html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, &ExtractionError{
			Message:   fmt.Sprintf("failed to parse HTML: %v", err),
			Retryable: false,
			Cause:     ErrCauseParse,
		}
	}

	doc := goquery.NewDocumentFromNode(root)
	doc.Find(nonVisibleSelector).Remove()
	return doc, nil
}
