// Package migrate provides the migration phase: draining the enrichment
// cache, transforming each record into its destination document form, and
// bulk-inserting the documents in fixed-size batches.
//
// Failure isolation is per item or per batch, never per run: a record
// whose payload cannot be parsed is dropped from its batch, a batch the
// destination partially rejects keeps its accepted documents, and a batch
// that fails entirely (connectivity) is counted and the run moves on.
// Nothing is retried.
//
// Migration performs unconditional inserts, not keyed upserts: re-running
// it against an already populated destination collection will create
// duplicate documents.
package migrate
