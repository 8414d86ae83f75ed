// Package hash defines the fixed-width digest type the light client core
// uses to identify headers, commits, and validator sets without ever
// looking past their hash.
package hash

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/pkg/errors"
)

// Algorithm tags the hash function that produced a Hash's bytes.
type Algorithm uint8

const (
	// SHA256 is currently the only supported algorithm.
	SHA256 Algorithm = iota + 1
)

// Size returns the digest size, in bytes, for the algorithm.
func (a Algorithm) Size() int {
	switch a {
	case SHA256:
		return 32
	default:
		return 0
	}
}

func (a Algorithm) String() string {
	switch a {
	case SHA256:
		return "sha256"
	default:
		return fmt.Sprintf("algorithm(%d)", uint8(a))
	}
}

// Hash is an algorithm-tagged, fixed-width digest.
//
// The zero value is not a valid Hash; construct one with New.
type Hash struct {
	alg   Algorithm
	bytes [32]byte
}

// New builds a Hash from raw digest bytes. It fails if len(b) does not
// match alg's digest size.
func New(alg Algorithm, b []byte) (Hash, error) {
	size := alg.Size()
	if size == 0 || len(b) != size {
		return Hash{}, errors.Wrapf(errParse{alg: alg, gotLen: len(b)}, "hash.New")
	}
	var h Hash
	h.alg = alg
	copy(h.bytes[:size], b)
	return h, nil
}

// MustNew is like New but panics on error. Intended for tests and
// compile-time constants, never for untrusted input.
func MustNew(alg Algorithm, b []byte) Hash {
	h, err := New(alg, b)
	if err != nil {
		panic(err)
	}
	return h
}

// Algorithm reports which algorithm produced this digest.
func (h Hash) Algorithm() Algorithm { return h.alg }

// Bytes returns the digest bytes, sized to the algorithm's digest size.
func (h Hash) Bytes() []byte {
	size := h.alg.Size()
	out := make([]byte, size)
	copy(out, h.bytes[:size])
	return out
}

// IsZero reports whether h is the unconstructed zero value.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// Equal compares two hashes for equality.
//
// The comparison always inspects every byte of both digests and never
// branches on the first mismatch: it is built on crypto/subtle so that an
// attacker timing repeated verification attempts cannot learn which byte of
// a guessed hash diverges from the real one. Two hashes tagged with
// different algorithms are never equal, regardless of their bytes.
func (h Hash) Equal(other Hash) bool {
	algEqual := subtle.ConstantTimeByteEq(uint8(h.alg), uint8(other.alg))
	bytesEqual := subtle.ConstantTimeCompare(h.bytes[:], other.bytes[:])
	return algEqual&bytesEqual == 1
}

func (h Hash) String() string {
	return fmt.Sprintf("%s:%s", h.alg, hex.EncodeToString(h.Bytes()))
}

type errParse struct {
	alg    Algorithm
	gotLen int
}

func (e errParse) Error() string {
	return fmt.Sprintf("hash: expected %d bytes for %s, got %d", e.alg.Size(), e.alg, e.gotLen)
}
