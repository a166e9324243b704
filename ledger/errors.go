package ledger

import "errors"

var (
	// ErrLedgerClosed indicates the ledger backend is closed.
	ErrLedgerClosed = errors.New("ledger is closed")

	// ErrSerializationFailed indicates a serialization/deserialization failure.
	ErrSerializationFailed = errors.New("serialization failed")
)
