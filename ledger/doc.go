// Package ledger records which chunks have been durably inserted into the
// vector store, so interrupted loads can resume without re-embedding.
//
// The Ledger interface is implemented by the badger subpackage. Entries are
// keyed by chunk ID, which is content-derived, so re-running a load over the
// same source skips everything already committed. A named checkpoint records
// per-source progress for reporting.
package ledger
