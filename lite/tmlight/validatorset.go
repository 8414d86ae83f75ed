package tmlight

import (
	tmtypes "github.com/tendermint/tendermint/types"

	"github.com/bftlite/lightclient/lite/hash"
)

// ValidatorSet adapts *tendermint/types.ValidatorSet to this module's
// types.ValidatorSet. It carries the full validator set, not just its
// hash and total power, because Commit.VotingPowerIn (below) needs to
// look signers up by address — the generic verifier core never needs
// more than Hash and TotalPower, but the concrete collaborator does.
type ValidatorSet struct {
	vs *tmtypes.ValidatorSet
}

// NewValidatorSet wraps vs.
func NewValidatorSet(vs *tmtypes.ValidatorSet) ValidatorSet {
	return ValidatorSet{vs: vs}
}

func (v ValidatorSet) Hash() hash.Hash     { return mustHash(v.vs.Hash()) }
func (v ValidatorSet) TotalPower() uint64  { return uint64(v.vs.TotalVotingPower()) }

// Unwrap returns the underlying tendermint validator set.
func (v ValidatorSet) Unwrap() *tmtypes.ValidatorSet { return v.vs }
