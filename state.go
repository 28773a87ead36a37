package router

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// State is the slot store for one batch: an ordered, fixed-length
// sequence of opaque byte blobs addressed by descriptor bytes.
//
// The store is supplied by the caller, threaded through the whole batch,
// and handed back when the batch completes. Its length never changes
// mid-execution; only slots already present are read.
type State [][]byte

// Get returns the blob in the given slot. Referencing a slot beyond the
// store's length or one that was never populated is a caller error, not
// a recoverable condition.
func (s State) Get(index uint8) ([]byte, error) {
	if int(index) >= len(s) {
		return nil, ErrSlotOutOfRange
	}
	if s[index] == nil {
		return nil, ErrSlotEmpty
	}
	return s[index], nil
}

// Set overwrites the blob in the given slot.
func (s State) Set(index uint8, blob []byte) error {
	if int(index) >= len(s) {
		return ErrSlotOutOfRange
	}
	s[index] = blob
	return nil
}

// Len returns the number of slots.
func (s State) Len() int {
	return len(s)
}

// Snapshot deep-copies the store so a failed batch can be rolled back.
func (s State) Snapshot() State {
	snap := make(State, len(s))
	for i, blob := range s {
		if blob == nil {
			continue
		}
		cp := make([]byte, len(blob))
		copy(cp, blob)
		snap[i] = cp
	}
	return snap
}

// Restore copies a snapshot back into the store in place. The snapshot
// must come from Snapshot on a store of the same length.
func (s State) Restore(snap State) {
	for i := range s {
		s[i] = snap[i]
	}
}

// AddressWord encodes an address as a 32-byte right-aligned word blob.
func AddressWord(a common.Address) []byte {
	return common.LeftPadBytes(a.Bytes(), WordSize)
}

// AmountWord encodes an amount as a 32-byte big-endian word blob.
func AmountWord(v *uint256.Int) []byte {
	word := v.Bytes32()
	return word[:]
}
