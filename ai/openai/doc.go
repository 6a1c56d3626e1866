// Package openai implements the enrichment service against
// OpenAI-compatible chat APIs via langchaingo.
//
// The enricher fetches the visible text of the community page, embeds it
// in a structured-output prompt together with the closed tag vocabulary,
// and parses the model's JSON response into a validated core.Community.
package openai
