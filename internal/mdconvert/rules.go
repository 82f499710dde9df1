package mdconvert

import (
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/rohmanhakim/digester/internal/extractor"
	"github.com/rohmanhakim/digester/internal/metadata"
	"github.com/rohmanhakim/digester/pkg/failure"
)

/*
Design Principles
- Semantic fidelity over visual fidelity
- No inferred structure
- GitHub-Flavored Markdown tables

The Markdown rendition is a companion of the plain text, kept for reports.
It never feeds the language model; the analysis prompt always carries the
normalized text.
*/

// ConvertRule turns a fetched HTML body into Markdown.
type ConvertRule interface {
	Convert(sourceUrl string, htmlByte []byte, contentType string) (ConversionResult, failure.ClassifiedError)
}

// Compile-time interface check
var _ ConvertRule = (*StrictConversionRule)(nil)

type StrictConversionRule struct {
	metadataSink metadata.MetadataSink
}

func NewRule(metadataSink metadata.MetadataSink) *StrictConversionRule {
	return &StrictConversionRule{
		metadataSink: metadataSink,
	}
}

func (s *StrictConversionRule) Convert(
	sourceUrl string,
	htmlByte []byte,
	contentType string,
) (ConversionResult, failure.ClassifiedError) {
	conversionResult, err := Convert(htmlByte, contentType)
	if err != nil {
		s.metadataSink.RecordError(
			time.Now(),
			"mdconvert",
			"StrictConversionRule.Convert",
			mapConversionErrorToMetadataCause(err),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrURL, sourceUrl),
			},
		)
		return ConversionResult{}, err
	}
	return conversionResult, nil
}

// Convert is a pure function from an HTML body to Markdown. Script and style
// subtrees are dropped the same way text extraction drops them.
func Convert(htmlByte []byte, contentType string) (ConversionResult, *ConversionError) {
	if len(htmlByte) == 0 {
		return NewConversionResult(nil), nil
	}

	doc, parseErr := extractor.ParseVisible(htmlByte, contentType)
	if parseErr != nil {
		return ConversionResult{}, &ConversionError{
			Message:   parseErr.Message,
			Retryable: false,
			Cause:     ErrCauseParseFailure,
		}
	}

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)

	markdown, err := conv.ConvertNode(doc.Nodes[0])
	if err != nil {
		return ConversionResult{}, &ConversionError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseConversionFailure,
		}
	}

	return NewConversionResult(markdown), nil
}
