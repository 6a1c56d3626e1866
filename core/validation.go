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


package core

import (
	"fmt"
	"slices"
)

// ValidateCommunity validates a Community according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Website must not be empty
//   - Tags must contain 1-3 entries, all from CommunityTags
//   - CommunityInfo may hold at most MaxHighlights entries
//   - MemberCount, if present, must not be negative
//
// NOT validated (optional by contract):
//   - Country, City, Language, ContactEmail, PricingModel, FocusAreas
func ValidateCommunity(c *Community) error {
	if c == nil {
		return fmt.Errorf("%w: community is nil", ErrInvalidCommunity)
	}

	if c.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCommunity, ErrEmptyName)
	}

	if c.Website == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCommunity, ErrEmptyWebsite)
	}

	if len(c.Tags) < MinTags || len(c.Tags) > MaxTags {
		return fmt.Errorf("%w: %w (got %d)", ErrInvalidCommunity, ErrTagCount, len(c.Tags))
	}
	for _, tag := range c.Tags {
		if !IsValidTag(tag) {
			return fmt.Errorf("%w: %w: %q", ErrInvalidCommunity, ErrUnknownTag, tag)
		}
	}

	if len(c.CommunityInfo) > MaxHighlights {
		return fmt.Errorf("%w: %w (got %d)", ErrInvalidCommunity, ErrTooManyHighlights, len(c.CommunityInfo))
	}

	if c.MemberCount != nil && *c.MemberCount < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidCommunity, ErrNegativeMemberCount)
	}

	return nil
}

// IsValidTag reports whether tag belongs to the closed vocabulary.
func IsValidTag(tag string) bool {
	return slices.Contains(CommunityTags, tag)
}
