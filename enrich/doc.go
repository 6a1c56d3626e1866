// Package enrich provides the enrichment phase orchestration.
//
// The Runner walks an ordered URL list, skipping URLs already present in
// the record store so the external enrichment service is called at most
// once per URL per store lifetime. A failed enrichment is counted and the
// run continues; the migration phase is a separate, explicitly invoked
// step (see the migrate package).
package enrich
