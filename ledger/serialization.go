// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ledger

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// EntryMUS serializes Entry values in the MUS format.
// Timestamps are stored as Unix microseconds.
var EntryMUS = entryMUS{}

type entryMUS struct{}

func (entryMUS) Marshal(e Entry, bs []byte) (n int) {
	n = ord.String.Marshal(e.ChunkID, bs)
	n += ord.String.Marshal(e.GroupKey, bs[n:])
	n += ord.String.Marshal(e.RunID, bs[n:])
	n += varint.Int64.Marshal(e.InsertedAt.UnixMicro(), bs[n:])
	return n
}

func (entryMUS) Unmarshal(bs []byte) (e Entry, n int, err error) {
	var n1 int
	if e.ChunkID, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if e.GroupKey, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return e, n + n1, err
	}
	n += n1
	if e.RunID, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return e, n + n1, err
	}
	n += n1
	var micros int64
	if micros, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return e, n + n1, err
	}
	n += n1
	e.InsertedAt = time.UnixMicro(micros).UTC()
	return e, n, nil
}

func (entryMUS) Size(e Entry) int {
	return ord.String.Size(e.ChunkID) +
		ord.String.Size(e.GroupKey) +
		ord.String.Size(e.RunID) +
		varint.Int64.Size(e.InsertedAt.UnixMicro())
}

// CheckpointMUS serializes Checkpoint values in the MUS format.
var CheckpointMUS = checkpointMUS{}

type checkpointMUS struct{}

func (checkpointMUS) Marshal(c Checkpoint, bs []byte) (n int) {
	n = ord.String.Marshal(c.Source, bs)
	n += ord.String.Marshal(c.RunID, bs[n:])
	n += varint.Int.Marshal(c.Ingested, bs[n:])
	n += varint.Int64.Marshal(c.UpdatedAt.UnixMicro(), bs[n:])
	return n
}

func (checkpointMUS) Unmarshal(bs []byte) (c Checkpoint, n int, err error) {
	var n1 int
	if c.Source, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if c.RunID, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	if c.Ingested, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	var micros int64
	if micros, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	c.UpdatedAt = time.UnixMicro(micros).UTC()
	return c, n, nil
}

func (checkpointMUS) Size(c Checkpoint) int {
	return ord.String.Size(c.Source) +
		ord.String.Size(c.RunID) +
		varint.Int.Size(c.Ingested) +
		varint.Int64.Size(c.UpdatedAt.UnixMicro())
}

// MarshalEntry serializes an Entry to bytes.
func MarshalEntry(entry *Entry) []byte {
	buf := make([]byte, EntryMUS.Size(*entry))
	EntryMUS.Marshal(*entry, buf)
	return buf
}

// UnmarshalEntry deserializes an Entry from bytes.
func UnmarshalEntry(data []byte) (*Entry, error) {
	entry, _, err := EntryMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: entry: %w", ErrSerializationFailed, err)
	}
	return &entry, nil
}

// MarshalCheckpoint serializes a Checkpoint to bytes.
func MarshalCheckpoint(checkpoint *Checkpoint) []byte {
	buf := make([]byte, CheckpointMUS.Size(*checkpoint))
	CheckpointMUS.Marshal(*checkpoint, buf)
	return buf
}

// UnmarshalCheckpoint deserializes a Checkpoint from bytes.
func UnmarshalCheckpoint(data []byte) (*Checkpoint, error) {
	checkpoint, _, err := CheckpointMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: checkpoint: %w", ErrSerializationFailed, err)
	}
	return &checkpoint, nil
}
