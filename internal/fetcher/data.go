package fetcher

import (
	"time"
)

const (
	DefaultMaxRetries = 3
	DefaultRetryDelay = 5 * time.Second
	DefaultTimeout    = 10 * time.Second
	// A desktop browser UA; some sites refuse obvious bots outright.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// FetchRequest describes one fetch-and-extract call.
type FetchRequest struct {
	// Target page. A missing scheme is filled in with https.
	URL string
	// Total number of attempts, at least 1.
	MaxRetries int
	// Fixed wait between two attempts.
	RetryDelay time.Duration
}

// NewFetchRequest returns a request for url with the default retry budget.
func NewFetchRequest(url string) FetchRequest {
	return FetchRequest{
		URL:        url,
		MaxRetries: DefaultMaxRetries,
		RetryDelay: DefaultRetryDelay,
	}
}

// FetchOutcome is either a success carrying the page text or a failure
// carrying a message meant for the user.
type FetchOutcome struct {
	success  bool
	text     string
	markdown string
	message  string
	url      string
	attempts int
}

func NewSuccess(url string, attempts int, text string) FetchOutcome {
	return FetchOutcome{
		success:  true,
		text:     text,
		url:      url,
		attempts: attempts,
	}
}

func NewFailure(url string, attempts int, message string) FetchOutcome {
	return FetchOutcome{
		success:  false,
		message:  message,
		url:      url,
		attempts: attempts,
	}
}

func (f FetchOutcome) IsSuccess() bool {
	return f.success
}

// Text is the normalized page text; empty on failure.
func (f FetchOutcome) Text() string {
	return f.text
}

// Markdown is the page converted to Markdown, empty when the conversion
// failed or the fetch did.
func (f FetchOutcome) Markdown() string {
	return f.markdown
}

// WithMarkdown returns a copy of a success outcome carrying md.
func (f FetchOutcome) WithMarkdown(md string) FetchOutcome {
	if f.success {
		f.markdown = md
	}
	return f
}

// Message describes what went wrong; empty on success.
func (f FetchOutcome) Message() string {
	return f.message
}

// URL is the effective URL, after scheme defaulting.
func (f FetchOutcome) URL() string {
	return f.url
}

// Attempts is how many HTTP requests were issued.
func (f FetchOutcome) Attempts() int {
	return f.attempts
}

// page is what a successful attempt hands to extraction.
type page struct {
	body        []byte
	statusCode  int
	contentType string
}
