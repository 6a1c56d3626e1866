package migrate

import (
	"testing"
	"time"

	"github.com/mataconnect/communitypipe/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	at := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func strptr(s string) *string { return &s }

func TestTransform_LanguageCollapsing(t *testing.T) {
	tr := newTransformerAt(fixedClock())

	doc := tr.Transform(&core.Community{
		Name:     "Test",
		Website:  "https://test.example.org",
		Language: []string{"English", "German", "French"},
	}, "https://test.example.org")

	require.NotNil(t, doc.Language)
	assert.Equal(t, "English", *doc.Language)
	assert.Equal(t, []string{"English", "German", "French"}, doc.Languages)
}

func TestTransform_EmptyLanguageList(t *testing.T) {
	tr := newTransformerAt(fixedClock())

	doc := tr.Transform(&core.Community{Name: "Test"}, "https://test.example.org")
	assert.Nil(t, doc.Language)
	assert.NotNil(t, doc.Languages)
	assert.Empty(t, doc.Languages)
}

func TestTransform_Virtuality(t *testing.T) {
	tr := newTransformerAt(fixedClock())

	cases := []struct {
		name    string
		country *string
		city    *string
		virtual bool
	}{
		{"no location", nil, nil, true},
		{"country only", strptr("Germany"), nil, false},
		{"city only", nil, strptr("Berlin"), false},
		{"both", strptr("Germany"), strptr("Berlin"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := tr.Transform(&core.Community{
				Name:    "Test",
				Country: tc.country,
				City:    tc.city,
			}, "https://test.example.org")
			assert.Equal(t, tc.virtual, doc.IsVirtual)
		})
	}
}

func TestTransform_PricingNormalization(t *testing.T) {
	tr := newTransformerAt(fixedClock())

	cases := []struct {
		input string
		want  string
	}{
		{"free", core.PricingFree},
		{"Free", core.PricingFree},
		{"FREE", core.PricingFree},
		{"Freemium", core.PricingFreemium},
		{"paid", core.PricingPaid},
		{"free membership available", core.PricingFree},
		{"Subscription", core.PricingPaid},
		{"donation-based", core.PricingPaid},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			doc := tr.Transform(&core.Community{
				Name:         "Test",
				PricingModel: strptr(tc.input),
			}, "https://test.example.org")
			require.NotNil(t, doc.PricingModel)
			assert.Equal(t, tc.want, *doc.PricingModel)
		})
	}
}

func TestTransform_PricingAbsent(t *testing.T) {
	tr := newTransformerAt(fixedClock())

	doc := tr.Transform(&core.Community{Name: "Test"}, "https://test.example.org")
	assert.Nil(t, doc.PricingModel)
}

func TestTransform_PricingEmptyString(t *testing.T) {
	tr := newTransformerAt(fixedClock())

	// An empty pricing value means the enrichment found nothing
	doc := tr.Transform(&core.Community{
		Name:         "Test",
		PricingModel: strptr(""),
	}, "https://test.example.org")
	assert.Nil(t, doc.PricingModel)
}

func TestTransform_WebsiteFallback(t *testing.T) {
	tr := newTransformerAt(fixedClock())

	doc := tr.Transform(&core.Community{Name: "Test"}, "https://source.example.org")
	assert.Equal(t, "https://source.example.org", doc.Website)

	doc = tr.Transform(&core.Community{
		Name:    "Test",
		Website: "https://official.example.org",
	}, "https://source.example.org")
	assert.Equal(t, "https://official.example.org", doc.Website)
}

func TestTransform_Defaults(t *testing.T) {
	tr := newTransformerAt(fixedClock())

	doc := tr.Transform(&core.Community{Name: "Test"}, "https://test.example.org")

	assert.NotNil(t, doc.Tags)
	assert.Empty(t, doc.Tags)
	assert.Equal(t, "", doc.FocusAreas)
	assert.NotNil(t, doc.SocialLinks)
	assert.NotNil(t, doc.CommunityInfo)

	// Reserved fields hold neutral defaults
	assert.Empty(t, doc.TopicsSupported)
	assert.NotNil(t, doc.TopicsSupported)
	assert.Empty(t, doc.AudienceType)
	assert.Empty(t, doc.EventTypes)
	assert.Nil(t, doc.YearFounded)
	assert.False(t, doc.Verified)
	assert.NotNil(t, doc.Embedding)
	assert.Empty(t, doc.Embedding)
}

func TestTransform_Timestamps(t *testing.T) {
	tr := newTransformerAt(fixedClock())

	doc := tr.Transform(&core.Community{Name: "Test"}, "https://test.example.org")

	assert.Equal(t, "2025-06-15", doc.CreatedAt)
	assert.Equal(t, "2025-06-15", doc.UpdatedAt)
	assert.Equal(t, "2025-06-15T14:30:00Z", doc.LastVerifiedAt)
}

func TestTransform_DataSource(t *testing.T) {
	tr := newTransformerAt(fixedClock())

	doc := tr.Transform(&core.Community{
		Name:    "Test",
		Website: "https://official.example.org",
	}, "https://listed.example.org")

	// Provenance always records the store key, not the payload's website
	assert.Equal(t, "https://listed.example.org", doc.DataSource)
}

func TestTransform_Deterministic(t *testing.T) {
	tr := newTransformerAt(fixedClock())

	payload := &core.Community{
		Name:     "Test",
		Website:  "https://test.example.org",
		Tags:     []string{"Tech"},
		Language: []string{"English"},
	}

	first := tr.Transform(payload, "https://test.example.org")
	second := tr.Transform(payload, "https://test.example.org")
	assert.Equal(t, first, second)
}
