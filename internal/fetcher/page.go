package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rohmanhakim/digester/internal/extractor"
	"github.com/rohmanhakim/digester/internal/mdconvert"
	"github.com/rohmanhakim/digester/internal/metadata"
	"github.com/rohmanhakim/digester/pkg/failure"
	"github.com/rohmanhakim/digester/pkg/retry"
	"github.com/rohmanhakim/digester/pkg/timeutil"
	"github.com/rohmanhakim/digester/pkg/urlutil"
)

/*
Responsibilities

- Default the URL scheme to https
- Perform the GET with a fixed user agent and timeout
- Retry failed attempts with a fixed delay
- Hand 2xx bodies to the text extractor
- Keep a Markdown rendition of the page next to the text
- Fold every failure into a FetchOutcome message

Fetch Semantics

- Any non-2xx status fails the attempt and is retried like a network error
- Request construction problems are not retried
- Extraction problems are not retried; the page did download
- A failed Markdown conversion is recorded but never fails the fetch
- Nothing escapes Fetch as an error or a panic
*/

type PageFetcher struct {
	metadataSink metadata.MetadataSink
	httpClient   *http.Client
	userAgent    string
	sleeper      timeutil.Sleeper
	extractor    extractor.TextExtractor
	converter    mdconvert.ConvertRule
}

func NewPageFetcher(
	metadataSink metadata.MetadataSink,
	sleeper timeutil.Sleeper,
	userAgent string,
	timeout time.Duration,
) PageFetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return PageFetcher{
		metadataSink: metadataSink,
		httpClient:   &http.Client{Timeout: timeout},
		userAgent:    userAgent,
		sleeper:      sleeper,
		extractor:    extractor.NewTextExtractor(metadataSink),
		converter:    mdconvert.NewRule(metadataSink),
	}
}

// Init swaps the HTTP client, e.g. for one that trusts a test certificate.
// The caller owns the client's timeout.
func (p *PageFetcher) Init(httpClient *http.Client) {
	p.httpClient = httpClient
}

func (p *PageFetcher) Fetch(ctx context.Context, request FetchRequest) (outcome FetchOutcome) {
	callerMethod := "PageFetcher.Fetch"

	if strings.TrimSpace(request.URL) == "" {
		return NewFailure("", 0, "No URL provided.")
	}
	if request.MaxRetries < 1 {
		return NewFailure(request.URL, 0, fmt.Sprintf("Invalid retry budget: max retries must be at least 1, got %d.", request.MaxRetries))
	}

	targetUrl := urlutil.EnsureScheme(request.URL)

	defer func() {
		if r := recover(); r != nil {
			p.metadataSink.RecordError(
				time.Now(),
				"fetcher",
				callerMethod,
				metadata.CauseUnknown,
				fmt.Sprintf("panic: %v", r),
				[]metadata.Attribute{metadata.NewAttr(metadata.AttrURL, targetUrl)},
			)
			outcome = NewFailure(targetUrl, outcome.attempts, fmt.Sprintf("An unexpected error occurred: %v", r))
		}
	}()

	startTime := time.Now()
	var lastStatus int
	var lastContentType string

	fetchTask := func() (page, failure.ClassifiedError) {
		result, err := p.performFetch(ctx, targetUrl)
		lastStatus = result.statusCode
		lastContentType = result.contentType
		if err != nil {
			var fetchErr *FetchError
			if errors.As(err, &fetchErr) {
				lastStatus = fetchErr.StatusCode
				p.recordFetchError(callerMethod, targetUrl, fetchErr)
			}
		}
		return result, err
	}

	retryParam := retry.NewRetryParam(request.RetryDelay, request.MaxRetries)
	result := retry.Retry(ctx, retryParam, p.sleeper, fetchTask)

	p.metadataSink.RecordFetch(
		targetUrl,
		lastStatus,
		time.Since(startTime),
		lastContentType,
		result.Attempts(),
	)

	if result.IsFailure() {
		p.recordRetryError(callerMethod, targetUrl, result.Err())
		return NewFailure(targetUrl, result.Attempts(), failureMessage(result.Err(), request.MaxRetries))
	}

	fetched := result.Value()
	text, err := p.extractor.Extract(targetUrl, fetched.body, fetched.contentType)
	if err != nil {
		return NewFailure(targetUrl, result.Attempts(), fmt.Sprintf("An unexpected error occurred during parsing: %v", err))
	}

	outcome = NewSuccess(targetUrl, result.Attempts(), text)
	if conversion, convErr := p.converter.Convert(targetUrl, fetched.body, fetched.contentType); convErr == nil {
		outcome = outcome.WithMarkdown(string(conversion.GetMarkdownContent()))
	}
	return outcome
}

func (p *PageFetcher) performFetch(ctx context.Context, targetUrl string) (page, failure.ClassifiedError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetUrl, nil)
	if err != nil {
		return page{}, &FetchError{
			Message:   fmt.Sprintf("failed to create request: %v", err),
			Retryable: false,
			Cause:     ErrCauseUnexpected,
		}
	}

	for key, value := range requestHeaders(p.userAgent) {
		req.Header.Set(key, value)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return page{}, classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return page{statusCode: resp.StatusCode, contentType: contentType}, &FetchError{
			Message:    fmt.Sprintf("%d %s for url: %s", resp.StatusCode, http.StatusText(resp.StatusCode), targetUrl),
			Retryable:  true,
			Cause:      ErrCauseHTTPStatus,
			StatusCode: resp.StatusCode,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return page{statusCode: resp.StatusCode, contentType: contentType}, &FetchError{
			Message:    fmt.Sprintf("failed to read response body: %v", err),
			Retryable:  true,
			Cause:      ErrCauseReadResponseBodyError,
			StatusCode: resp.StatusCode,
		}
	}

	return page{
		body:        body,
		statusCode:  resp.StatusCode,
		contentType: contentType,
	}, nil
}

func classifyTransportError(ctx context.Context, err error) *FetchError {
	if ctx.Err() != nil {
		return &FetchError{
			Message:   fmt.Sprintf("request aborted: %v", ctx.Err()),
			Retryable: false,
			Cause:     ErrCauseCancelled,
		}
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &FetchError{
			Message:   fmt.Sprintf("request timed out: %v", err),
			Retryable: true,
			Cause:     ErrCauseTimeout,
		}
	}

	return &FetchError{
		Message:   fmt.Sprintf("request failed: %v", err),
		Retryable: true,
		Cause:     ErrCauseNetworkFailure,
	}
}

// failureMessage renders the error that ended the retry loop for the user.
func failureMessage(err failure.ClassifiedError, maxRetries int) string {
	var retryErr *retry.RetryError
	if errors.As(err, &retryErr) {
		detail := retryErr.Message
		var fetchErr *FetchError
		if errors.As(retryErr, &fetchErr) {
			detail = fetchErr.Message
		}
		switch retryErr.Cause {
		case retry.ErrExhaustedAttempts:
			return fmt.Sprintf("All %d attempts failed. An error occurred while fetching the URL: %s", maxRetries, detail)
		case retry.ErrCancelled:
			return fmt.Sprintf("Fetch cancelled before all %d attempts were made. Last error: %s", maxRetries, detail)
		}
		return fmt.Sprintf("An unexpected error occurred: %s", retryErr.Message)
	}

	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		if fetchErr.Cause == ErrCauseCancelled {
			return fmt.Sprintf("Fetch cancelled: %s", fetchErr.Message)
		}
		return fmt.Sprintf("An unexpected error occurred: %s", fetchErr.Message)
	}

	return fmt.Sprintf("An unexpected error occurred: %v", err)
}

func (p *PageFetcher) recordFetchError(callerMethod string, targetUrl string, err *FetchError) {
	p.metadataSink.RecordError(
		time.Now(),
		"fetcher",
		callerMethod,
		mapFetchErrorToMetadataCause(err),
		err.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrURL, targetUrl),
		},
	)
}

func (p *PageFetcher) recordRetryError(callerMethod string, targetUrl string, err failure.ClassifiedError) {
	var retryError *retry.RetryError
	if errors.As(err, &retryError) {
		p.metadataSink.RecordError(
			time.Now(),
			"fetcher",
			callerMethod,
			metadata.CauseRetryFailure,
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrURL, targetUrl),
			},
		)
	}
}

// requestHeaders leaves Accept-Encoding to net/http so that gzip bodies are
// decoded transparently.
func requestHeaders(userAgent string) map[string]string {
	return map[string]string{
		"User-Agent":      userAgent,
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.5",
	}
}
