package digest

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strconv"
)

// Size is the length of a Digest in bytes.
const Size = md5.Size

// Digest is a fixed-size MD5 digest.
type Digest [Size]byte

// String returns the lower-case hexadecimal form of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Of returns the digest of the canonical decimal representation of candidate
// (no sign, no leading zeros).
//
// Parameters:
//   - candidate: The integer to digest.
//
// Returns:
//   - Digest: md5(strconv.FormatUint(candidate, 10)).
func Of(candidate uint64) Digest {
	var scratch [20]byte
	return Digest(md5.Sum(AppendCandidate(scratch[:0], candidate)))
}

// Sum digests candidate using buf as scratch space and returns the buffer so
// hot loops can reuse it without allocating.
func Sum(buf []byte, candidate uint64) (Digest, []byte) {
	buf = AppendCandidate(buf[:0], candidate)
	return Digest(md5.Sum(buf)), buf
}

// AppendCandidate appends the canonical decimal form of candidate to dst.
func AppendCandidate(dst []byte, candidate uint64) []byte {
	return strconv.AppendUint(dst, candidate, 10)
}

// Equal reports whether a and b are the same digest.
func Equal(a, b Digest) bool {
	return a == b
}

// Parse decodes a hexadecimal digest string.
//
// Returns:
//   - Digest: The decoded digest.
//   - error: An error if s is not exactly Size bytes of hexadecimal.
func Parse(s string) (Digest, error) {
	var d Digest
	raw, err := hex.DecodeString(s)
	if err != nil {
		return d, fmt.Errorf("invalid digest %q: %w", s, err)
	}
	if len(raw) != Size {
		return d, fmt.Errorf("invalid digest %q: got %d bytes, want %d", s, len(raw), Size)
	}
	copy(d[:], raw)
	return d, nil
}
