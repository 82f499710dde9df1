package extractor_test

import (
	"strings"
	"testing"
	"time"

	"github.com/rohmanhakim/digester/internal/extractor"
	"github.com/rohmanhakim/digester/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorEvent struct {
	packageName string
	action      string
	cause       metadata.ErrorCause
}

type mockMetadataSink struct {
	metadata.NoopSink
	errorEvents []errorEvent
}

func (m *mockMetadataSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	m.errorEvents = append(m.errorEvents, errorEvent{packageName: packageName, action: action, cause: cause})
}

func TestExtract_RemovesScriptAndStyle(t *testing.T) {
	body := []byte(`<html><body><script>ignored()</script><style>.x{}</style><p>Hello  World</p></body></html>`)

	text, err := extractor.Extract(body, "text/html")
	require.Nil(t, err)

	chunks := strings.Split(text, "\n")
	assert.Contains(t, chunks, "Hello")
	assert.Contains(t, chunks, "World")
	assert.NotContains(t, text, "ignored()")
	assert.NotContains(t, text, ".x{}")
	assert.Equal(t, "Hello\nWorld", text)
}

func TestExtract_ScriptInHeadAndNested(t *testing.T) {
	body := []byte(`<!DOCTYPE html>
<html>
<head>
  <title>Page Title</title>
  <script type="text/javascript">var a = "<p>not text</p>";</script>
  <style>body { color: red; }</style>
</head>
<body>
  <div>
    <h1>Heading</h1>
    <div><script>track();</script>Inline text</div>
  </div>
  <!-- a comment -->
</body>
</html>`)

	text, err := extractor.Extract(body, "")
	require.Nil(t, err)

	assert.Equal(t, "Page Title\nHeading\nInline text", text)
}

func TestExtract_SiblingTextIsNotSeparated(t *testing.T) {
	// Adjacent inline elements concatenate exactly as the tree yields them.
	body := []byte(`<p><b>Bold</b><i>Italic</i> tail</p>`)

	text, err := extractor.Extract(body, "text/html")
	require.Nil(t, err)

	assert.Equal(t, "BoldItalic tail", text)
}

func TestExtract_BlankAndWhitespaceLinesDropped(t *testing.T) {
	body := []byte("<body><p>first</p>\n\n   \n\t\n<p>second</p></body>")

	text, err := extractor.Extract(body, "text/html")
	require.Nil(t, err)

	assert.Equal(t, "first\nsecond", text)
}

func TestExtract_Idempotent(t *testing.T) {
	body := []byte(`<html><body><nav>Menu  Item</nav><article><p>Para one.</p><p>Para  two.</p></article></body></html>`)

	first, err := extractor.Extract(body, "text/html; charset=utf-8")
	require.Nil(t, err)
	second, err := extractor.Extract(body, "text/html; charset=utf-8")
	require.Nil(t, err)

	assert.Equal(t, first, second)
}

func TestExtract_DecodesDeclaredCharset(t *testing.T) {
	body := []byte("<p>caf\xe9</p>")

	text, err := extractor.Extract(body, "text/html; charset=iso-8859-1")
	require.Nil(t, err)

	assert.Equal(t, "café", text)
}

func TestExtract_DecodesMetaCharset(t *testing.T) {
	body := []byte("<html><head><meta charset=\"windows-1252\"></head><body><p>na\xefve</p></body></html>")

	text, err := extractor.Extract(body, "")
	require.Nil(t, err)

	assert.Equal(t, "naïve", text)
}

func TestExtract_EmptyBody(t *testing.T) {
	text, err := extractor.Extract(nil, "text/html")
	require.Nil(t, err)
	assert.Equal(t, "", text)
}

func TestExtract_NoscriptChildrenParsedAsTags(t *testing.T) {
	body := []byte(`<html><body><p>Hello</p><noscript><img height="1" src="https://t.example/px"></noscript></body></html>`)

	text, err := extractor.Extract(body, "text/html")
	require.Nil(t, err)
	assert.Equal(t, "Hello", text)
}

func TestExtract_NoscriptTextIsKept(t *testing.T) {
	body := []byte(`<html><body><p>Hello</p><noscript><p>Enable JS</p></noscript></body></html>`)

	text, err := extractor.Extract(body, "text/html")
	require.Nil(t, err)
	assert.Equal(t, "HelloEnable JS", text)
	assert.NotContains(t, text, "<p>")
}

func TestExtract_PlainTextBody(t *testing.T) {
	text, err := extractor.Extract([]byte("just text  and more"), "text/plain")
	require.Nil(t, err)
	assert.Equal(t, "just text\nand more", text)
}

func TestExtract_EntitiesDecoded(t *testing.T) {
	text, err := extractor.Extract([]byte(`<p>Fish &amp; Chips&nbsp;</p>`), "text/html")
	require.Nil(t, err)
	assert.Equal(t, "Fish & Chips", text)
}

func TestTextExtractor_Extract(t *testing.T) {
	sink := &mockMetadataSink{}
	ext := extractor.NewTextExtractor(sink)

	text, err := ext.Extract("https://example.com", []byte(`<p>ok</p>`), "text/html")

	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Empty(t, sink.errorEvents)
}
