package ai

import (
	"context"

	"github.com/mataconnect/communitypipe/core"
)

// Enricher derives structured community metadata for a URL via an external
// text-generation service. Implementations must be thread-safe for
// concurrent use, though the pipeline itself calls strictly sequentially.
type Enricher interface {
	// EnrichCommunity fetches and analyzes the community website at url
	// and returns its structured metadata. The returned payload is
	// normalized (no nil collections) and validated against the domain
	// rules in core. The service is invoked at most once per call; no
	// retry policy is applied here.
	// Returns an error if the service call fails, times out, or returns
	// an unparseable or invalid payload.
	EnrichCommunity(ctx context.Context, url string) (*core.Community, error)
}
