// Copyright 2025 MataConnect
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package migrate

import (
	"strings"
	"time"

	"github.com/mataconnect/communitypipe/core"
)

// Transformer maps an enriched payload plus its source URL into a
// normalized destination document. Apart from the stamped timestamps the
// mapping is a pure function of its inputs.
type Transformer struct {
	now func() time.Time
}

// NewTransformer creates a transformer using the wall clock.
func NewTransformer() *Transformer {
	return &Transformer{now: time.Now}
}

// newTransformerAt creates a transformer with a fixed clock, for tests.
func newTransformerAt(now func() time.Time) *Transformer {
	return &Transformer{now: now}
}

// Transform builds the destination document for a payload. It always
// succeeds for a well-formed payload; excluding malformed input is the
// caller's responsibility.
//
// Rules, each independent of the others:
//  1. The scalar language is the first entry of the language list, or
//     null when the list is empty; the full list is preserved alongside.
//  2. A community with neither country nor city is virtual.
//  3. The pricing model is collapsed onto {FREE, FREEMIUM, PAID}.
//  4. Missing website falls back to the source URL; collections default
//     to empty, focus areas to "".
//  5. created_at/updated_at carry the current date (date-only) and
//     last_verified_at the full timestamp, all stamped at transform time,
//     never copied from the stored record.
//  6. Fields reserved for later enrichment stages hold neutral defaults.
func (t *Transformer) Transform(payload *core.Community, url string) *core.Document {
	now := t.now()
	currentDate := now.Format("2006-01-02")
	currentTimestamp := now.Format(time.RFC3339Nano)

	var language *string
	if len(payload.Language) > 0 {
		first := payload.Language[0]
		language = &first
	}
	languages := payload.Language
	if languages == nil {
		languages = []string{}
	}

	isVirtual := payload.Country == nil && payload.City == nil

	website := payload.Website
	if website == "" {
		website = url
	}

	tags := payload.Tags
	if tags == nil {
		tags = []string{}
	}

	focusAreas := ""
	if payload.FocusAreas != nil {
		focusAreas = *payload.FocusAreas
	}

	socialLinks := payload.SocialLinks
	if socialLinks == nil {
		socialLinks = map[string]string{}
	}
	communityInfo := payload.CommunityInfo
	if communityInfo == nil {
		communityInfo = map[string]*string{}
	}

	return &core.Document{
		Name:             payload.Name,
		Description:      payload.Description,
		ShortDescription: payload.ShortDescription,
		Website:          website,
		Tags:             tags,
		FocusAreas:       focusAreas,
		Country:          payload.Country,
		City:             payload.City,
		Language:         language,
		Languages:        languages,
		ContactEmail:     payload.ContactEmail,
		IsVirtual:        isVirtual,
		SocialLinks:      socialLinks,
		CommunityInfo:    communityInfo,
		PricingModel:     normalizePricing(payload.PricingModel),
		MemberCount:      payload.MemberCount,

		TopicsSupported: []string{},
		AudienceType:    []string{},
		EventTypes:      []string{},
		YearFounded:     nil,
		Verified:        false,
		Embedding:       []float64{},

		DataSource:     url,
		CreatedAt:      currentDate,
		UpdatedAt:      currentDate,
		LastVerifiedAt: currentTimestamp,
	}
}

// normalizePricing collapses a free-text pricing model onto the canonical
// set. An upper-cased exact match is kept; otherwise anything mentioning
// "free" becomes FREE and the rest PAID. Absent or empty stays absent.
func normalizePricing(pricing *string) *string {
	if pricing == nil || *pricing == "" {
		return nil
	}

	upper := strings.ToUpper(*pricing)
	switch upper {
	case core.PricingFree, core.PricingFreemium, core.PricingPaid:
		return &upper
	}

	normalized := core.PricingPaid
	if strings.Contains(strings.ToLower(*pricing), "free") {
		normalized = core.PricingFree
	}
	return &normalized
}
