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

import "errors"

// Domain validation errors
var (
	// ErrInvalidCommunity indicates a Community failed validation.
	ErrInvalidCommunity = errors.New("invalid community")

	// ErrEmptyName indicates the Name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrEmptyWebsite indicates the Website field is empty.
	ErrEmptyWebsite = errors.New("website cannot be empty")

	// ErrTagCount indicates the tags list is outside the 1-3 range.
	ErrTagCount = errors.New("tags must contain between 1 and 3 entries")

	// ErrUnknownTag indicates a tag outside the closed vocabulary.
	ErrUnknownTag = errors.New("tag is not in the allowed vocabulary")

	// ErrTooManyHighlights indicates more than 3 community_info entries.
	ErrTooManyHighlights = errors.New("community info allows at most 3 highlights")

	// ErrNegativeMemberCount indicates a negative member count.
	ErrNegativeMemberCount = errors.New("member count cannot be negative")
)
