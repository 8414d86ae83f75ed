// Package lctest provides minimal Header/Commit/ValidatorSet
// implementations shared by this module's own test suites. It is not part
// of the public API.
package lctest

import (
	"context"
	"encoding/binary"
	"time"

	"github.com/bftlite/lightclient/lite/errors"
	"github.com/bftlite/lightclient/lite/hash"
	"github.com/bftlite/lightclient/lite/types"
)

// HashFromInt derives a deterministic, distinguishable Hash from a small
// integer, for use as test fixture data.
func HashFromInt(n int) hash.Hash {
	var b [32]byte
	binary.BigEndian.PutUint64(b[24:], uint64(n))
	return hash.MustNew(hash.SHA256, b[:])
}

// ValidatorSet is a minimal types.ValidatorSet.
type ValidatorSet struct {
	HashVal hash.Hash
	Power   uint64
}

func (v ValidatorSet) Hash() hash.Hash  { return v.HashVal }
func (v ValidatorSet) TotalPower() uint64 { return v.Power }

// Header is a minimal types.Header.
type Header struct {
	HeightVal       types.Height
	Time            time.Time
	ValsHash        hash.Hash
	NextValsHash    hash.Hash
	HashVal         hash.Hash
}

func (h Header) Height() types.Height            { return h.HeightVal }
func (h Header) BFTTime() time.Time               { return h.Time }
func (h Header) ValidatorsHash() hash.Hash        { return h.ValsHash }
func (h Header) NextValidatorsHash() hash.Hash    { return h.NextValsHash }
func (h Header) Hash() hash.Hash                  { return h.HashVal }

// Commit is a minimal types.Commit. VotingPowerIn returns SignedPower
// verbatim unless PowerIn carries an entry for the queried validator set's
// hash, which lets a single commit model "enough overlap with set A but
// not set B" without modeling actual signatures.
type Commit struct {
	HeaderHashVal  hash.Hash
	SignedPower    uint64
	PowerIn        map[hash.Hash]uint64
	VotingPowerErr error
	ValidateErr    error
}

func (c Commit) HeaderHash() hash.Hash { return c.HeaderHashVal }

func (c Commit) VotingPowerIn(vals types.ValidatorSet) (uint64, error) {
	if c.VotingPowerErr != nil {
		return 0, c.VotingPowerErr
	}
	if c.PowerIn != nil {
		if p, ok := c.PowerIn[vals.Hash()]; ok {
			return p, nil
		}
	}
	return c.SignedPower, nil
}

func (c Commit) Validate(vals types.ValidatorSet) error {
	return c.ValidateErr
}

// Requester is an in-memory types.Requester backed by a fixed map, for
// exercising VerifyBisection without any real transport.
type Requester struct {
	Headers      map[types.Height]types.SignedHeader[Header, Commit]
	ValidatorSets map[types.Height]types.ValidatorSet
}

func NewRequester() *Requester {
	return &Requester{
		Headers:       make(map[types.Height]types.SignedHeader[Header, Commit]),
		ValidatorSets: make(map[types.Height]types.ValidatorSet),
	}
}

func (r *Requester) Put(h Header, c Commit, vals ValidatorSet) {
	r.Headers[h.HeightVal] = types.NewSignedHeader[Header, Commit](h, c)
	r.ValidatorSets[h.HeightVal] = vals
}

func (r *Requester) SignedHeader(ctx context.Context, h types.Height) (types.SignedHeader[Header, Commit], error) {
	sh, ok := r.Headers[h]
	if !ok {
		return types.SignedHeader[Header, Commit]{}, errors.ErrRequestFailed(nil)
	}
	return sh, nil
}

func (r *Requester) ValidatorSet(ctx context.Context, h types.Height) (types.ValidatorSet, error) {
	vs, ok := r.ValidatorSets[h]
	if !ok {
		return nil, errors.ErrRequestFailed(nil)
	}
	return vs, nil
}
