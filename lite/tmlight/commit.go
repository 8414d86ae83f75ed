package tmlight

import (
	tmtypes "github.com/tendermint/tendermint/types"

	"github.com/bftlite/lightclient/lite/errors"
	"github.com/bftlite/lightclient/lite/hash"
	"github.com/bftlite/lightclient/lite/types"
)

// Commit adapts *tendermint/types.Commit to this module's types.Commit.
// It is the one place crypto actually happens: VotingPowerIn verifies
// each present signature against the supplied validator set's public
// keys via tendermint's own crypto.PubKey.VerifySignature, and sums the
// voting power of validators whose signature checks out. This module
// never implements a signature scheme itself.
type Commit struct {
	chainID string
	c       *tmtypes.Commit
}

// NewCommit wraps c, which must be the commit for a header on chainID.
func NewCommit(chainID string, c *tmtypes.Commit) Commit {
	return Commit{chainID: chainID, c: c}
}

func (c Commit) HeaderHash() hash.Hash { return mustHash(c.c.BlockID.Hash) }

// VotingPowerIn sums the voting power, within vals, of validators whose
// signature on this commit verifies. A signer absent from vals (by
// address) is silently skipped, not rejected — this is the documented
// "cannot detect foreign signers" limitation of the trusting check (see
// package types' Commit.VotingPowerIn doc comment).
func (c Commit) VotingPowerIn(vals types.ValidatorSet) (uint64, error) {
	tmVals, ok := vals.(ValidatorSet)
	if !ok {
		return 0, errors.ErrImplementationSpecific("tmlight.Commit.VotingPowerIn requires a tmlight.ValidatorSet")
	}

	var talliedPower int64
	for idx, commitSig := range c.c.Signatures {
		if commitSig.Absent() {
			continue
		}
		_, validator := tmVals.vs.GetByAddress(commitSig.ValidatorAddress)
		if validator == nil {
			continue
		}

		signBytes := c.c.VoteSignBytes(c.chainID, int32(idx))
		if !validator.PubKey.VerifySignature(signBytes, commitSig.Signature) {
			continue
		}
		talliedPower += validator.VotingPower
	}
	return uint64(talliedPower), nil
}

// Validate runs tendermint's own structural sanity checks on the commit.
func (c Commit) Validate(types.ValidatorSet) error {
	if err := c.c.ValidateBasic(); err != nil {
		return errors.ErrInvalidCommitValue()
	}
	return nil
}

// Unwrap returns the underlying tendermint commit.
func (c Commit) Unwrap() *tmtypes.Commit { return c.c }
