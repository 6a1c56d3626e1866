package mock

import (
	"context"
	"strings"

	"github.com/mataconnect/communitypipe/core"
)

// MockEnricher is a test double for ai.Enricher.
// It allows custom behavior injection via function fields.
type MockEnricher struct {
	// EnrichCommunityFunc is called by EnrichCommunity if set.
	// If nil, uses a default synthesized payload derived from the URL.
	EnrichCommunityFunc func(ctx context.Context, url string) (*core.Community, error)

	callCount int
}

// NewMockEnricher creates a mock enricher with default behavior.
// Note: Returns concrete type to allow call count assertions in tests.
func NewMockEnricher() *MockEnricher {
	return &MockEnricher{}
}

// EnrichCommunity returns a synthesized community payload for the URL.
// Default behavior: derives a name from the host portion of the URL and
// fills required fields with plausible values.
func (m *MockEnricher) EnrichCommunity(ctx context.Context, url string) (*core.Community, error) {
	m.callCount++

	if m.EnrichCommunityFunc != nil {
		return m.EnrichCommunityFunc(ctx, url)
	}

	name := url
	name = strings.TrimPrefix(name, "https://")
	name = strings.TrimPrefix(name, "http://")
	name = strings.TrimPrefix(name, "www.")
	if i := strings.IndexByte(name, '/'); i >= 0 {
		name = name[:i]
	}

	c := &core.Community{
		Name:             name,
		Description:      "A community discovered at " + url,
		ShortDescription: "Community at " + name,
		Tags:             []string{"Community"},
		Website:          url,
	}
	c.Normalize()
	return c, nil
}

// CallCount returns the number of times EnrichCommunity was called.
func (m *MockEnricher) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockEnricher) Reset() {
	m.callCount = 0
	m.EnrichCommunityFunc = nil
}
