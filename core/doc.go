// Package core defines the domain model for the community enrichment
// pipeline: the enriched Community payload, the cached StoredRecord, the
// destination Document, the closed tag vocabulary, and validation rules
// applied at the ingest boundary.
package core
