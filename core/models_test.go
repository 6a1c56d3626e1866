package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_NilCollections(t *testing.T) {
	c := &Community{Name: "Test", Website: "https://test.example"}
	c.Normalize()

	assert.NotNil(t, c.Tags)
	assert.NotNil(t, c.Language)
	assert.NotNil(t, c.SocialLinks)
	assert.NotNil(t, c.CommunityInfo)
	assert.Empty(t, c.Tags)
	assert.Empty(t, c.SocialLinks)
}

func TestNormalize_PreservesExisting(t *testing.T) {
	c := &Community{
		Tags:        []string{"Tech"},
		SocialLinks: map[string]string{"linkedin": "https://linkedin.com/company/test"},
	}
	c.Normalize()

	assert.Equal(t, []string{"Tech"}, c.Tags)
	assert.Len(t, c.SocialLinks, 1)
}

func TestCommunity_SerializedKeysAlwaysPresent(t *testing.T) {
	c := &Community{Name: "Test", Website: "https://test.example"}
	c.Normalize()

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))

	for _, key := range []string{
		"name", "description", "short_description", "tags", "website",
		"country", "city", "language", "contact_email", "social_links",
		"community_info", "member_count", "pricing_model", "focus_areas",
	} {
		assert.Contains(t, raw, key)
	}

	// Collections serialize to empty structures, never null
	assert.Equal(t, "[]", string(raw["tags"]))
	assert.Equal(t, "{}", string(raw["social_links"]))
	// Absent optionals are null
	assert.Equal(t, "null", string(raw["country"]))
	assert.Equal(t, "null", string(raw["member_count"]))
}
