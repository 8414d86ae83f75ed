package verifier_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lerrors "github.com/bftlite/lightclient/lite/errors"
	"github.com/bftlite/lightclient/lite/hash"
	"github.com/bftlite/lightclient/lite/internal/lctest"
	"github.com/bftlite/lightclient/lite/threshold"
	"github.com/bftlite/lightclient/lite/types"
	"github.com/bftlite/lightclient/lite/verifier"
)

func trustedAt(height int, bftTime time.Time, nextValsHash lctest.ValidatorSet) types.TrustedState[lctest.Header, lctest.Commit] {
	h := lctest.Header{
		HeightVal:    types.Height(height - 1),
		Time:         bftTime,
		NextValsHash: nextValsHash.Hash(),
		HashVal:      lctest.HashFromInt(1000 + height),
	}
	c := lctest.Commit{HeaderHashVal: h.HashVal}
	sh := types.NewSignedHeader[lctest.Header, lctest.Commit](h, c)
	return types.NewTrustedState[lctest.Header, lctest.Commit](sh, nextValsHash)
}

// Scenario 1: adjacent happy path.
func TestVerifySingle_AdjacentHappyPath(t *testing.T) {
	valsAtH := lctest.ValidatorSet{HashVal: lctest.HashFromInt(42), Power: 100}
	trusted := trustedAt(11, time.Unix(1000, 0), valsAtH)

	untrustedHeader := lctest.Header{
		HeightVal:    11,
		Time:         time.Unix(1001, 0),
		ValsHash:     valsAtH.Hash(),
		NextValsHash: lctest.HashFromInt(43),
		HashVal:      lctest.HashFromInt(2011),
	}
	untrustedCommit := lctest.Commit{HeaderHashVal: untrustedHeader.HashVal, SignedPower: 100}
	untrustedSH := types.NewSignedHeader[lctest.Header, lctest.Commit](untrustedHeader, untrustedCommit)
	untrustedNextVals := lctest.ValidatorSet{HashVal: lctest.HashFromInt(43), Power: 100}

	newState, err := verifier.VerifySingle[lctest.Header, lctest.Commit](
		trusted, untrustedSH, valsAtH, untrustedNextVals,
		threshold.DefaultFraction, 3600*time.Second, time.Unix(1500, 0),
	)
	require.NoError(t, err)
	assert.Equal(t, types.Height(11), newState.LastHeader().Header().Height())
}

// Scenario 2: expired trust.
func TestVerifySingle_Expired(t *testing.T) {
	valsAtH := lctest.ValidatorSet{HashVal: lctest.HashFromInt(42), Power: 100}
	trusted := trustedAt(11, time.Unix(1000, 0), valsAtH)

	untrustedHeader := lctest.Header{
		HeightVal: 11, Time: time.Unix(1001, 0),
		ValsHash: valsAtH.Hash(), NextValsHash: lctest.HashFromInt(43),
		HashVal: lctest.HashFromInt(2011),
	}
	untrustedCommit := lctest.Commit{HeaderHashVal: untrustedHeader.HashVal, SignedPower: 100}
	untrustedSH := types.NewSignedHeader[lctest.Header, lctest.Commit](untrustedHeader, untrustedCommit)
	untrustedNextVals := lctest.ValidatorSet{HashVal: lctest.HashFromInt(43), Power: 100}

	_, err := verifier.VerifySingle[lctest.Header, lctest.Commit](
		trusted, untrustedSH, valsAtH, untrustedNextVals,
		threshold.DefaultFraction, 3600*time.Second, time.Unix(4601, 0),
	)
	require.Error(t, err)
	assert.True(t, lerrors.IsErrExpired(err))
}

// Scenario 3: non-increasing time.
func TestVerifySingle_NonIncreasingTime(t *testing.T) {
	valsAtH := lctest.ValidatorSet{HashVal: lctest.HashFromInt(42), Power: 100}
	trusted := trustedAt(11, time.Unix(1000, 0), valsAtH)

	untrustedHeader := lctest.Header{
		HeightVal: 11, Time: time.Unix(1000, 0), // not after trusted's time
		ValsHash: valsAtH.Hash(), NextValsHash: lctest.HashFromInt(43),
		HashVal: lctest.HashFromInt(2011),
	}
	untrustedCommit := lctest.Commit{HeaderHashVal: untrustedHeader.HashVal, SignedPower: 100}
	untrustedSH := types.NewSignedHeader[lctest.Header, lctest.Commit](untrustedHeader, untrustedCommit)
	untrustedNextVals := lctest.ValidatorSet{HashVal: lctest.HashFromInt(43), Power: 100}

	_, err := verifier.VerifySingle[lctest.Header, lctest.Commit](
		trusted, untrustedSH, valsAtH, untrustedNextVals,
		threshold.DefaultFraction, 3600*time.Second, time.Unix(1500, 0),
	)
	require.Error(t, err)
	assert.True(t, lerrors.IsErrNonIncreasingTime(err))
}

// Scenario 6: invalid next-validator hash on adjacent step.
func TestVerifySingle_InvalidNextValidatorSetOnAdjacent(t *testing.T) {
	valsA := lctest.ValidatorSet{HashVal: lctest.HashFromInt(1), Power: 100}
	trusted := trustedAt(11, time.Unix(1000, 0), valsA) // trusted.next_validators_hash = A

	valsB := lctest.ValidatorSet{HashVal: lctest.HashFromInt(2), Power: 100}
	untrustedHeader := lctest.Header{
		HeightVal: 11, Time: time.Unix(1001, 0),
		ValsHash: valsB.Hash(), // B, mismatched against trusted's A
		NextValsHash: lctest.HashFromInt(3),
		HashVal:      lctest.HashFromInt(2011),
	}
	untrustedCommit := lctest.Commit{HeaderHashVal: untrustedHeader.HashVal, SignedPower: 100}
	untrustedSH := types.NewSignedHeader[lctest.Header, lctest.Commit](untrustedHeader, untrustedCommit)
	untrustedNextVals := lctest.ValidatorSet{HashVal: lctest.HashFromInt(3), Power: 100}

	_, err := verifier.VerifySingle[lctest.Header, lctest.Commit](
		trusted, untrustedSH, valsB, untrustedNextVals,
		threshold.DefaultFraction, 3600*time.Second, time.Unix(1500, 0),
	)
	require.Error(t, err)
	assert.True(t, lerrors.IsErrInvalidNextValidatorSet(err))
}

// Scenario 4: skip success. Uses 151/300 rather than the spec's own
// worked 150/300 example, since 150*2 == 300*1 fails the strict
// inequality §3 invariant 2 actually requires.
func TestVerifyCommitTrusting_SkipSucceeds(t *testing.T) {
	trustedVals := lctest.ValidatorSet{HashVal: lctest.HashFromInt(1), Power: 300}
	commit := lctest.Commit{SignedPower: 151}
	half, err := threshold.New(1, 2)
	require.NoError(t, err)

	err = verifier.VerifyCommitTrusting(trustedVals, commit, half)
	assert.NoError(t, err)
}

// Scenario 5 (first half): skip fails.
func TestVerifyCommitTrusting_SkipFails(t *testing.T) {
	trustedVals := lctest.ValidatorSet{HashVal: lctest.HashFromInt(1), Power: 300}
	commit := lctest.Commit{SignedPower: 50}

	err := verifier.VerifyCommitTrusting(trustedVals, commit, threshold.DefaultFraction)
	require.Error(t, err)
	assert.True(t, lerrors.IsErrInsufficientVotingPower(err))
}

// Boundary: full check, exactly 2/3 must fail (strict inequality).
func TestVerifyCommitFull_ExactlyTwoThirdsFails(t *testing.T) {
	vals := lctest.ValidatorSet{HashVal: lctest.HashFromInt(1), Power: 300}
	commit := lctest.Commit{SignedPower: 200} // 3*200 == 2*300
	err := verifier.VerifyCommitFull(vals, commit)
	require.Error(t, err)
	assert.True(t, lerrors.IsErrInvalidCommit(err))
}

func TestVerifyCommitFull_JustOverTwoThirdsSucceeds(t *testing.T) {
	vals := lctest.ValidatorSet{HashVal: lctest.HashFromInt(1), Power: 300}
	commit := lctest.Commit{SignedPower: 201}
	assert.NoError(t, verifier.VerifyCommitFull(vals, commit))
}

// VerifySingle is pure: identical inputs produce identical outcomes.
func TestVerifySingle_Idempotent(t *testing.T) {
	valsAtH := lctest.ValidatorSet{HashVal: lctest.HashFromInt(42), Power: 100}
	trusted := trustedAt(11, time.Unix(1000, 0), valsAtH)
	untrustedHeader := lctest.Header{
		HeightVal: 11, Time: time.Unix(1001, 0),
		ValsHash: valsAtH.Hash(), NextValsHash: lctest.HashFromInt(43),
		HashVal: lctest.HashFromInt(2011),
	}
	untrustedCommit := lctest.Commit{HeaderHashVal: untrustedHeader.HashVal, SignedPower: 100}
	untrustedSH := types.NewSignedHeader[lctest.Header, lctest.Commit](untrustedHeader, untrustedCommit)
	untrustedNextVals := lctest.ValidatorSet{HashVal: lctest.HashFromInt(43), Power: 100}

	s1, err1 := verifier.VerifySingle[lctest.Header, lctest.Commit](
		trusted, untrustedSH, valsAtH, untrustedNextVals, threshold.DefaultFraction, 3600*time.Second, time.Unix(1500, 0))
	s2, err2 := verifier.VerifySingle[lctest.Header, lctest.Commit](
		trusted, untrustedSH, valsAtH, untrustedNextVals, threshold.DefaultFraction, 3600*time.Second, time.Unix(1500, 0))

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, s1, s2)
}

// Scenario 5: skip fails then bisects. Chain is 10 -> 15 -> 20. The direct
// skip 10->20 has insufficient overlap with vals10, forcing a pivot to 15;
// 10->15 succeeds as a skip against vals10, and the retried 15->20 then
// succeeds as a skip against vals20 (the commit's signers overlap enough
// with vals20 but not with vals10, modeling a validator-set rotation the
// direct skip could not see through).
func TestVerifyBisection_SkipFailsThenBisects(t *testing.T) {
	req := lctest.NewRequester()

	vals10 := lctest.ValidatorSet{HashVal: lctest.HashFromInt(10), Power: 300}
	header10 := lctest.Header{
		HeightVal: 10, Time: time.Unix(1000, 0),
		NextValsHash: lctest.HashFromInt(10), HashVal: lctest.HashFromInt(9010),
	}
	trusted := types.NewTrustedState[lctest.Header, lctest.Commit](
		types.NewSignedHeader[lctest.Header, lctest.Commit](header10, lctest.Commit{HeaderHashVal: header10.HashVal}),
		vals10,
	)

	vals15 := lctest.ValidatorSet{HashVal: lctest.HashFromInt(15), Power: 300}
	vals20 := lctest.ValidatorSet{HashVal: lctest.HashFromInt(20), Power: 300}
	vals21 := lctest.ValidatorSet{HashVal: lctest.HashFromInt(21), Power: 300}

	header15 := lctest.Header{
		HeightVal: 15, Time: time.Unix(1500, 0),
		ValsHash: lctest.HashFromInt(15), NextValsHash: lctest.HashFromInt(20),
		HashVal: lctest.HashFromInt(9015),
	}
	commit15 := lctest.Commit{
		HeaderHashVal: header15.HashVal,
		PowerIn: map[hash.Hash]uint64{
			vals10.Hash(): 300, // enough overlap with the trusted (vals10) set to skip
			vals15.Hash(): 300, // full self-signature, for the adjacent-style full check
		},
	}
	req.Put(header15, commit15, vals15)
	req.ValidatorSets[16] = vals20

	header20 := lctest.Header{
		HeightVal: 20, Time: time.Unix(2000, 0),
		ValsHash: lctest.HashFromInt(20), NextValsHash: lctest.HashFromInt(21),
		HashVal: lctest.HashFromInt(9020),
	}
	commit20 := lctest.Commit{
		HeaderHashVal: header20.HashVal,
		PowerIn: map[hash.Hash]uint64{
			vals10.Hash(): 10,  // insufficient: 10*3 <= 300*1
			vals20.Hash(): 300, // sufficient:   300*3 > 300*1
		},
	}
	req.Put(header20, commit20, vals20)
	req.ValidatorSets[21] = vals21

	states, err := verifier.VerifyBisection[lctest.Header, lctest.Commit](
		context.Background(), trusted, 20, threshold.DefaultFraction,
		3600*time.Second, time.Unix(2500, 0), req,
	)
	require.NoError(t, err)
	require.Len(t, states, 2)
	assert.Equal(t, types.Height(15), states[0].LastHeader().Header().Height())
	assert.Equal(t, types.Height(20), states[1].LastHeader().Header().Height())
}

func TestVerifyBisection_TrustPeriodCheckedOnce(t *testing.T) {
	req := lctest.NewRequester()
	vals := lctest.ValidatorSet{HashVal: lctest.HashFromInt(1), Power: 100}
	header := lctest.Header{HeightVal: 10, Time: time.Unix(1000, 0), NextValsHash: lctest.HashFromInt(1), HashVal: lctest.HashFromInt(1)}
	trusted := types.NewTrustedState[lctest.Header, lctest.Commit](
		types.NewSignedHeader[lctest.Header, lctest.Commit](header, lctest.Commit{HeaderHashVal: header.HashVal}),
		vals,
	)

	_, err := verifier.VerifyBisection[lctest.Header, lctest.Commit](
		context.Background(), trusted, 11, threshold.DefaultFraction,
		1*time.Second, time.Unix(5000, 0), req,
	)
	require.Error(t, err)
	assert.True(t, lerrors.IsErrExpired(err))
}
