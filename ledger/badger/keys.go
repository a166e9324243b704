package badger

import "fmt"

// Key prefixes for different data types
const (
	entryPrefix      = "chunk"
	checkpointPrefix = "chkpt"
)

// makeEntryKey generates a key for an ingested-chunk entry.
func makeEntryKey(chunkID string) []byte {
	return []byte(fmt.Sprintf("%s:%s", entryPrefix, chunkID))
}

// makeCheckpointKey generates a key for a per-source checkpoint.
func makeCheckpointKey(source string) []byte {
	return []byte(fmt.Sprintf("%s:%s", checkpointPrefix, source))
}
