package types

import (
	"context"

	"jobscout-engine/internal/domain"
)

type ScrapeResult struct {
	Source   string
	Postings []domain.JobPosting
}

// Fetcher is one source of postings (an ATS adapter, the email ingester).
// Fetch fails soft per company; it returns an error only when the whole
// source produced nothing usable, so the caller can tell "board is quiet"
// from "board is unreachable".
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) (ScrapeResult, error)
}
