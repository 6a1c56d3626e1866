// Package ai defines the enrichment service abstraction.
//
// The Enricher interface hides the external text-generation collaborator
// behind a single call; the openai subpackage provides the production
// implementation against OpenAI-compatible chat APIs, and the mock
// subpackage provides test doubles with call counting.
package ai
