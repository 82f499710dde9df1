package fetcher

import (
	"context"
)

// Fetcher turns a URL into page text. Implementations never return an
// error value: every failure is folded into the FetchOutcome.
type Fetcher interface {
	Fetch(ctx context.Context, request FetchRequest) FetchOutcome
}
