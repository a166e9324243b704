// Package badger implements the ledger.Ledger interface on BadgerDB.
//
// Entries are tiny and write-heavy during a load, which fits Badger's LSM
// layout well. The database can be opened in-memory for tests via
// NewMemoryLedger.
package badger
