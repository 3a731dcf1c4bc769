// Package target holds the digest every search is racing to reproduce.
//
// A Holder is a compute-once, read-many value: the digest is derived lazily
// on the first call to Digest and cached for the lifetime of the Holder.
// Holders are passed explicitly to searchers rather than read from globals.
package target

import (
	"sync"

	"github.com/agbru/hashrace/internal/digest"
)

// DemoValue is the fixed integer whose digest the benchmark suite searches for.
const DemoValue uint64 = 100_000_000

// Holder lazily computes and caches the digest of a fixed integer.
// It is safe for concurrent use.
type Holder struct {
	value  uint64
	digest func() digest.Digest
}

// New returns a Holder for value. The digest is not computed until the first
// call to Digest.
func New(value uint64) *Holder {
	return newWithFunc(value, digest.Of)
}

// Demo returns a Holder for DemoValue.
func Demo() *Holder {
	return New(DemoValue)
}

// newWithFunc builds a Holder around an arbitrary digest function.
func newWithFunc(value uint64, fn func(uint64) digest.Digest) *Holder {
	return &Holder{
		value: value,
		digest: sync.OnceValue(func() digest.Digest {
			return fn(value)
		}),
	}
}

// Digest returns the cached target digest, computing it on first use.
// Concurrent first callers block until the single computation finishes.
func (h *Holder) Digest() digest.Digest {
	return h.digest()
}

// Value returns the integer the target digest was derived from. Searchers
// must not consult it; it exists for reporting and verification.
func (h *Holder) Value() uint64 {
	return h.value
}
