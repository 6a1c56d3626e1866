package core

import "time"

// CommunityTags is the closed vocabulary of tags a community may carry.
// The enrichment prompt embeds this list and the ingest boundary rejects
// payloads that stray from it.
var CommunityTags = []string{
	"Tech",
	"Career",
	"Community",
	"Health",
	"Finance",
	"Business",
	"Parenting",
	"Arts",
	"Education",
	"Science",
	"Engineering",
	"Fitness",
	"Wellness",
}

// Canonical pricing model values on destination documents.
const (
	PricingFree     = "FREE"
	PricingFreemium = "FREEMIUM"
	PricingPaid     = "PAID"
)

// MaxHighlights is the maximum number of community_info highlight entries.
const MaxHighlights = 3

// MinTags and MaxTags bound the tags list on an enriched community.
const (
	MinTags = 1
	MaxTags = 3
)

// Community is the structured result of enriching a single community URL.
// Every field is always present in the serialized form: optional scalars
// are pointers that marshal to null, collections marshal to [] or {}.
type Community struct {
	Name             string             `json:"name"`
	Description      string             `json:"description"`
	ShortDescription string             `json:"short_description"`
	Tags             []string           `json:"tags"`
	Website          string             `json:"website"`
	Country          *string            `json:"country"`
	City             *string            `json:"city"`
	Language         []string           `json:"language"`
	ContactEmail     *string            `json:"contact_email"`
	SocialLinks      map[string]string  `json:"social_links"`
	CommunityInfo    map[string]*string `json:"community_info"`
	MemberCount      *int               `json:"member_count"`
	PricingModel     *string            `json:"pricing_model"`
	FocusAreas       *string            `json:"focus_areas"`
}

// Normalize replaces nil collections with empty ones so the serialized
// form always carries every key ([] and {} rather than null).
func (c *Community) Normalize() {
	if c.Tags == nil {
		c.Tags = []string{}
	}
	if c.Language == nil {
		c.Language = []string{}
	}
	if c.SocialLinks == nil {
		c.SocialLinks = map[string]string{}
	}
	if c.CommunityInfo == nil {
		c.CommunityInfo = map[string]*string{}
	}
}

// StoredRecord is the cached enrichment result for a single URL.
// Payload holds the community serialized to canonical JSON text.
// CreatedAt is set on first enrichment and preserved across upserts;
// UpdatedAt is refreshed whenever the payload is replaced.
type StoredRecord struct {
	URL       string    `json:"url"`
	Payload   []byte    `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Document is the normalized destination form of a stored record.
// It is constructed fresh per migration run, never mutated afterwards,
// and written once to the destination collection.
type Document struct {
	Name             string             `bson:"name"`
	Description      string             `bson:"description"`
	ShortDescription string             `bson:"short_description"`
	Website          string             `bson:"website"`
	Tags             []string           `bson:"tags"`
	FocusAreas       string             `bson:"focus_areas"`
	Country          *string            `bson:"country"`
	City             *string            `bson:"city"`
	Language         *string            `bson:"language"`
	Languages        []string           `bson:"languages"`
	ContactEmail     *string            `bson:"contact_email"`
	IsVirtual        bool               `bson:"is_virtual"`
	SocialLinks      map[string]string  `bson:"social_links"`
	CommunityInfo    map[string]*string `bson:"community_info"`
	PricingModel     *string            `bson:"pricing_model"`
	MemberCount      *int               `bson:"member_count"`

	// Reserved for later enrichment stages; always initialized to
	// neutral defaults by the transformer.
	TopicsSupported []string  `bson:"topics_supported"`
	AudienceType    []string  `bson:"audience_type"`
	EventTypes      []string  `bson:"event_types"`
	YearFounded     *int      `bson:"year_founded"`
	Verified        bool      `bson:"verified"`
	Embedding       []float64 `bson:"embedding"`

	DataSource     string `bson:"data_source"`
	CreatedAt      string `bson:"created_at"`
	UpdatedAt      string `bson:"updated_at"`
	LastVerifiedAt string `bson:"last_verified_at"`
}
