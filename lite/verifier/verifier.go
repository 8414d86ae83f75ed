// Package verifier is the verification core: the single-step verifier that
// enforces all safety predicates on one header transition, and the
// skipping/bisection verifier that bridges non-adjacent trusted->untrusted
// gaps under a configurable trust threshold.
//
// Every function here is pure and synchronous. The package does not read a
// clock, does not make network calls, and does not persist anything — all
// three are supplied by the caller (see package types' Requester, and this
// function's now time.Time parameters).
package verifier

import (
	"context"
	"time"

	lerrors "github.com/bftlite/lightclient/lite/errors"
	"github.com/bftlite/lightclient/lite/internal/safemath"
	"github.com/bftlite/lightclient/lite/threshold"
	"github.com/bftlite/lightclient/lite/types"
)

// IsWithinTrustPeriod returns nil if header is still usable as a trust
// anchor: its BFT time plus trustingPeriod must be strictly after now, and
// its BFT time must not be after now (a trusted header from the future
// indicates either a corrupted trusted state or clock skew beyond
// tolerance).
//
// Overflow of header.BFTTime()+trustingPeriod is treated as
// ErrDurationOutOfRange rather than silently saturating, per the stricter
// of the two options the design allows.
func IsWithinTrustPeriod(header types.Header, trustingPeriod time.Duration, now time.Time) error {
	headerTime := header.BFTTime()
	expiresAt := headerTime.Add(trustingPeriod)

	// time.Time.Add saturates at the limits of time.Time instead of
	// failing; a saturated sum no longer lies exactly trustingPeriod after
	// headerTime, so treat that as the overflow signal.
	if expiresAt.Sub(headerTime) != trustingPeriod {
		return lerrors.ErrDurationOutOfRange()
	}

	if !expiresAt.After(now) {
		return lerrors.ErrExpired(expiresAt, now)
	}
	if headerTime.After(now) {
		return lerrors.ErrDurationOutOfRange()
	}
	return nil
}

// validate cross-checks a signed header against the validator sets it
// claims to be signed by, in the order specified: validators_hash, then
// next_validators_hash, then the commit's own header_hash, then the
// commit's structural validation. Each predicate is independently
// necessary; the order only determines which error surfaces when more
// than one fails.
func validate[H types.Header, C types.Commit](
	sh types.SignedHeader[H, C],
	vals, nextVals types.ValidatorSet,
) error {
	header := sh.Header()
	commit := sh.Commit()

	if !header.ValidatorsHash().Equal(vals.Hash()) {
		return lerrors.ErrInvalidValidatorSet()
	}
	if !header.NextValidatorsHash().Equal(nextVals.Hash()) {
		return lerrors.ErrInvalidNextValidatorSet()
	}
	if !header.Hash().Equal(commit.HeaderHash()) {
		return lerrors.ErrInvalidCommitValue()
	}
	if err := commit.Validate(vals); err != nil {
		return err
	}
	return nil
}

// VerifyCommitFull checks that more than two thirds of vals' total voting
// power signed commit. This is the check that makes a header trustworthy
// on its own terms, independent of any previously trusted state.
func VerifyCommitFull(vals types.ValidatorSet, commit types.Commit) error {
	total := vals.TotalPower()
	signed, err := commit.VotingPowerIn(vals)
	if err != nil {
		return err
	}

	threeS, ok1 := safemath.MulUint64(3, signed)
	twoT, ok2 := safemath.MulUint64(2, total)
	if !ok1 || !ok2 {
		return lerrors.ErrImplementationSpecific("voting power product overflow in full commit check")
	}
	if threeS <= twoT {
		return lerrors.ErrInvalidCommit(total, signed)
	}
	return nil
}

// VerifyCommitTrusting checks whether enough of validators' voting power
// (per trustLevel, more than 1/3 by default) vouches for commit. validators
// is the currently *trusted* set, not necessarily the set that actually
// signed commit — this is the skipping primitive: "does enough of the old,
// trusted voting power vouch for the new commit?"
//
// commit.VotingPowerIn cannot detect signers outside validators, so a
// commit containing foreign signatures is not rejected here; full
// verification of the untrusted header's own validator set (via
// VerifyCommitFull) catches this for adjacent steps, but a skip that later
// turns out to rely on foreign signatures would not be caught until the
// chain is replayed. This is an accepted limitation of the protocol, not a
// bug in this check.
func VerifyCommitTrusting(validators types.ValidatorSet, commit types.Commit, trustLevel threshold.Fraction) error {
	total := validators.TotalPower()
	signed, err := commit.VotingPowerIn(validators)
	if err != nil {
		return err
	}

	enough, ok := trustLevel.IsEnoughPower(signed, total)
	if !ok {
		return lerrors.ErrImplementationSpecific("voting power product overflow in trusting commit check")
	}
	if !enough {
		return lerrors.ErrInsufficientVotingPower(total, signed)
	}
	return nil
}

// verifySingleInner performs every safety check for a single header
// transition except the trust-period check, which the caller is assumed
// to have already performed against trusted. It is unexported because
// skipping it makes it possible to use incorrectly (accepting an expired
// trusted state).
func verifySingleInner[H types.Header, C types.Commit](
	trusted types.TrustedState[H, C],
	untrustedSH types.SignedHeader[H, C],
	untrustedVals, untrustedNextVals types.ValidatorSet,
	trustLevel threshold.Fraction,
) error {
	if err := validate[H, C](untrustedSH, untrustedVals, untrustedNextVals); err != nil {
		return err
	}

	trustedHeader := trusted.LastHeader().Header()
	untrustedHeader := untrustedSH.Header()

	if !untrustedHeader.BFTTime().After(trustedHeader.BFTTime()) {
		return lerrors.ErrNonIncreasingTime()
	}

	trustedHeight := uint64(trustedHeader.Height())
	untrustedHeight := uint64(untrustedHeader.Height())

	expectedHeight, ok := safemath.AddUint64(trustedHeight, 1)
	if !ok {
		return lerrors.ErrImplementationSpecific("trusted height + 1 overflow")
	}

	switch {
	case untrustedHeight < expectedHeight:
		return lerrors.ErrNonIncreasingHeight(untrustedHeight, expectedHeight)

	case untrustedHeight == expectedHeight:
		// Adjacent step: the trusted state already committed to this exact
		// validator set, so no trust-threshold check is needed — it would
		// be weaker than this exact-hash match anyway.
		if !trustedHeader.NextValidatorsHash().Equal(untrustedHeader.ValidatorsHash()) {
			return lerrors.ErrInvalidNextValidatorSet()
		}

	default:
		// Skipping step.
		if err := VerifyCommitTrusting(trusted.Validators(), untrustedSH.Commit(), trustLevel); err != nil {
			return err
		}
	}

	return VerifyCommitFull(untrustedVals, untrustedSH.Commit())
}

// VerifySingle verifies a single untrusted header against a trusted
// state, first checking that the trusted state has not expired, then
// running every safety predicate in verifySingleInner. On success it
// returns the new TrustedState the caller should persist; it never
// mutates its inputs.
func VerifySingle[H types.Header, C types.Commit](
	trusted types.TrustedState[H, C],
	untrustedSH types.SignedHeader[H, C],
	untrustedVals, untrustedNextVals types.ValidatorSet,
	trustLevel threshold.Fraction,
	trustingPeriod time.Duration,
	now time.Time,
) (types.TrustedState[H, C], error) {
	if err := IsWithinTrustPeriod(trusted.LastHeader().Header(), trustingPeriod, now); err != nil {
		return types.TrustedState[H, C]{}, err
	}

	if err := verifySingleInner[H, C](trusted, untrustedSH, untrustedVals, untrustedNextVals, trustLevel); err != nil {
		return types.TrustedState[H, C]{}, err
	}

	return types.NewTrustedState[H, C](untrustedSH, untrustedNextVals), nil
}

// VerifyBisection verifies that targetHeight can be trusted starting from
// trusted, fetching whatever intermediate headers and validator sets it
// needs from req. It returns every newly trusted state along the way, in
// strictly increasing height order, ending at targetHeight.
//
// The trust-period check is performed exactly once, at entry, against the
// initial trusted state — never rechecked against intermediate states.
// trustingPeriod must therefore be generous enough to cover the entire
// bisection, including the network latency of every fetch it triggers;
// this is a deliberate, not-revisited design choice (see DESIGN.md).
//
// Internally this uses an explicit work list rather than recursion, so a
// bisection spanning many thousands of blocks cannot exhaust the call
// stack; the observable behavior — including the exact order in which
// states are appended to the result — is identical to the naturally
// recursive formulation.
func VerifyBisection[H types.Header, C types.Commit](
	ctx context.Context,
	trusted types.TrustedState[H, C],
	targetHeight types.Height,
	trustLevel threshold.Fraction,
	trustingPeriod time.Duration,
	now time.Time,
	req types.Requester[H, C],
) ([]types.TrustedState[H, C], error) {
	if err := IsWithinTrustPeriod(trusted.LastHeader().Header(), trustingPeriod, now); err != nil {
		return nil, err
	}

	var cache []types.TrustedState[H, C]
	current := trusted
	// pending is a stack of heights still awaiting verification, with the
	// final target always at index 0 and each subsequently pushed height a
	// strictly-smaller pivot that must be resolved first.
	pending := []types.Height{targetHeight}

	for len(pending) > 0 {
		top := pending[len(pending)-1]

		untrustedSH, err := req.SignedHeader(ctx, top)
		if err != nil {
			return nil, err
		}
		untrustedVals, err := req.ValidatorSet(ctx, top)
		if err != nil {
			return nil, err
		}
		nextHeight, ok := safemath.AddUint64(uint64(top), 1)
		if !ok {
			return nil, lerrors.ErrImplementationSpecific("target height + 1 overflow")
		}
		untrustedNextVals, err := req.ValidatorSet(ctx, types.Height(nextHeight))
		if err != nil {
			return nil, err
		}

		err = verifySingleInner[H, C](current, untrustedSH, untrustedVals, untrustedNextVals, trustLevel)
		if err == nil {
			newState := types.NewTrustedState[H, C](untrustedSH, untrustedNextVals)
			cache = append(cache, newState)
			current = newState
			pending = pending[:len(pending)-1]
			continue
		}

		if !lerrors.IsErrInsufficientVotingPower(err) {
			return nil, err
		}

		currentHeight := uint64(current.LastHeader().Header().Height())
		sum, ok := safemath.AddUint64(currentHeight, uint64(top))
		if !ok {
			return nil, lerrors.ErrImplementationSpecific("bisection pivot sum overflow")
		}
		pivot := sum / 2
		pending = append(pending, types.Height(pivot))
	}

	return cache, nil
}
