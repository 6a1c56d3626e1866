package openai

import (
	"fmt"
	"strings"

	"github.com/mataconnect/communitypipe/core"
)

const enrichmentResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "name": {"type": "string"},
    "description": {"type": "string"},
    "short_description": {"type": "string"},
    "tags": {"type": "array", "items": {"type": "string"}, "minItems": 1, "maxItems": 3},
    "website": {"type": "string"},
    "country": {"type": ["string", "null"]},
    "city": {"type": ["string", "null"]},
    "language": {"type": "array", "items": {"type": "string"}},
    "contact_email": {"type": ["string", "null"]},
    "social_links": {"type": "object", "additionalProperties": {"type": "string"}},
    "community_info": {"type": "object", "additionalProperties": {"type": ["string", "null"]}, "maxProperties": 3},
    "member_count": {"type": ["integer", "null"]},
    "pricing_model": {"type": ["string", "null"]},
    "focus_areas": {"type": ["string", "null"]}
  },
  "required": ["name", "description", "short_description", "tags", "website",
    "country", "city", "language", "contact_email", "social_links",
    "community_info", "member_count", "pricing_model", "focus_areas"],
  "additionalProperties": false
}`

const enrichmentPromptTemplate = `You are a specialized community enrichment agent. Your task is to extract
and structure comprehensive community information from a community website.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Field rules:
- "name": the full name of the community.
- "description": a descriptive paragraph about what the community is and does.
- "short_description": a single, concise sentence summarizing the community's purpose.
- "website": the official website URL of the community.
- "tags": an array of 1-3 relevant tags that best describe the community's focus.
  Pick ONLY the most accurate tags from this exact list: %s.
  Use 1 tag if that's the best fit, 2 if two are most relevant, or 3 if three are most
  appropriate. Do not create custom tags or use any other values.
- "country": the primary country where the community is based or focused. If a community
  has more than one country focus, choose the most relevant one or use Global where
  appropriate. Set to Global if it's a virtual-only community.
- "city": the primary city where the community is based or focused. Set to null if it's
  a virtual-only community.
- "language": an array of languages spoken or supported by the community.
- "contact_email": the primary email address for contacting the community.
- "social_links": a JSON object where keys are social media platform names
  (e.g. 'twitter', 'linkedin', 'facebook', 'youtube', 'github') and values are the URLs
  to the community's profiles.
- "community_info": the best 3 key achievements, statistics, or unique features, as a
  JSON object with 0-3 items maximum. If you find 3 clear highlights, use all 3. If you
  find only 1-2 clear highlights, use only those. If no specific highlights are found,
  return an empty object {}.
  Number formatting rules: if a number is 10,000 or above, round and convert it to a
  short form (10,000 -> "10K", 258,191 -> "250K", 2,735,902 -> "2.7M"). Round to 1
  significant digit unless the number rounds cleanly (12,345 -> "12K", 248,999 -> "250K",
  3,400,000 -> "3.4M").
  Use these formats:
  - Numbers/stats: {"90%%": "graduation rate", "75K": "members"}
  - Features: {"Global Reach": null, "Resource Library": null}
  - Mixed: {"179": "countries", "remote-first": null}
  Only include information clearly stated on the website. Do not make up statistics.
- "member_count": the number of members in the community, if explicitly mentioned on the
  site. Extract the numeric value only.
- "pricing_model": the pricing model, if specified (e.g. 'free', 'freemium', 'paid').
- "focus_areas": a comprehensive paragraph describing the specific areas, services, and
  specializations this community focuses on. Include key programs, target demographics,
  main offerings, and unique features that make this community distinctive. Write 2-4
  sentences that capture the essence of what members can expect and what problems the
  community solves. Make it detailed enough for semantic search while keeping it concise
  and focused on the community's core value propositions.

Be thorough and return a value for every field. If a piece of information is not found,
use a value of null for strings and numbers, and [] or {} for arrays and objects,
respectively, to maintain the strict JSON structure.`

// buildSystemPrompt creates the system prompt with the response schema and
// closed tag vocabulary embedded.
func buildSystemPrompt() string {
	return fmt.Sprintf(enrichmentPromptTemplate,
		enrichmentResponseSchema,
		strings.Join(core.CommunityTags, ", "))
}

// buildUserPrompt creates the user message carrying the target URL and any
// fetched page text. The page text may be empty when fetching failed.
func buildUserPrompt(url, pageText string) string {
	var b strings.Builder
	b.WriteString("Enrich this community site: ")
	b.WriteString(url)
	if pageText != "" {
		b.WriteString("\n\nVisible text of the page:\n\n")
		b.WriteString(pageText)
	}
	return b.String()
}
