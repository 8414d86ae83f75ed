// Package errors enumerates every failure kind the verification core (and
// its surrounding store/rpc layers) can return. Each kind is its own
// unexported type implementing error, constructed through an Err*
// function that wraps it with github.com/pkg/errors so callers can still
// Cause() down to the concrete kind after it has passed through several
// layers of context, and an Is* predicate is provided for every kind so
// callers never need a type switch. This mirrors the
// errFoo/ErrFoo/IsErrFoo triad the client.go/provider.go layer already
// used for its own, narrower set of errors.
package errors

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// -----------------------------------------------------------------------
// Collaborator-surfaced kinds (propagated unchanged from Header/Commit/
// ValidatorSet implementations).

type errCrypto struct{ cause error }

func (e errCrypto) Error() string { return fmt.Sprintf("crypto operation failed: %v", e.cause) }

// ErrCrypto wraps a cryptographic failure surfaced by a Commit
// implementation (e.g. signature aggregation failed).
func ErrCrypto(cause error) error { return errors.Wrap(errCrypto{cause}, "") }

func IsErrCrypto(err error) bool { _, ok := errors.Cause(err).(errCrypto); return ok }

type errInvalidKey struct{}

func (errInvalidKey) Error() string { return "malformed or otherwise invalid cryptographic key" }

func ErrInvalidKey() error { return errors.Wrap(errInvalidKey{}, "") }

func IsErrInvalidKey(err error) bool { _, ok := errors.Cause(err).(errInvalidKey); return ok }

type errSignatureInvalid struct{}

func (errSignatureInvalid) Error() string { return "signature invalid" }

func ErrSignatureInvalid() error { return errors.Wrap(errSignatureInvalid{}, "") }

func IsErrSignatureInvalid(err error) bool {
	_, ok := errors.Cause(err).(errSignatureInvalid)
	return ok
}

// -----------------------------------------------------------------------
// Structural kinds, mostly from Hash construction.

type errParse struct{ detail string }

func (e errParse) Error() string { return fmt.Sprintf("parse error: %s", e.detail) }

func ErrParse(detail string) error { return errors.Wrap(errParse{detail}, "") }

func IsErrParse(err error) bool { _, ok := errors.Cause(err).(errParse); return ok }

type errLength struct{ detail string }

func (e errLength) Error() string { return fmt.Sprintf("length incorrect: %s", e.detail) }

func ErrLength(detail string) error { return errors.Wrap(errLength{detail}, "") }

func IsErrLength(err error) bool { _, ok := errors.Cause(err).(errLength); return ok }

type errOutOfRange struct{ detail string }

func (e errOutOfRange) Error() string { return fmt.Sprintf("value out of range: %s", e.detail) }

func ErrOutOfRange(detail string) error { return errors.Wrap(errOutOfRange{detail}, "") }

func IsErrOutOfRange(err error) bool { _, ok := errors.Cause(err).(errOutOfRange); return ok }

// -----------------------------------------------------------------------
// Requester-surfaced kinds.

type errIO struct{ cause error }

func (e errIO) Error() string { return fmt.Sprintf("i/o error: %v", e.cause) }

func ErrIO(cause error) error { return errors.Wrap(errIO{cause}, "") }

func IsErrIO(err error) bool { _, ok := errors.Cause(err).(errIO); return ok }

type errRequestFailed struct{ cause error }

func (e errRequestFailed) Error() string {
	if e.cause == nil {
		return "request failed"
	}
	return fmt.Sprintf("request failed: %v", e.cause)
}

// ErrRequestFailed indicates a Requester's transport/parse attempt failed.
// cause may be nil.
func ErrRequestFailed(cause error) error { return errors.Wrap(errRequestFailed{cause}, "") }

func IsErrRequestFailed(err error) bool { _, ok := errors.Cause(err).(errRequestFailed); return ok }

// -----------------------------------------------------------------------
// Trust-period predicate failures.

type errExpired struct {
	at, now time.Time
}

func (e errExpired) Error() string {
	return fmt.Sprintf("header expired at %v, now is %v", e.at, e.now)
}

// ErrExpired indicates the trusted header's trusting period has elapsed
// relative to now. The verifier must be reset subjectively.
func ErrExpired(at, now time.Time) error { return errors.Wrap(errExpired{at, now}, "") }

func IsErrExpired(err error) bool { _, ok := errors.Cause(err).(errExpired); return ok }

// ExpiredAt extracts the (at, now) pair from an ErrExpired, if err wraps one.
func ExpiredAt(err error) (at, now time.Time, ok bool) {
	e, isExpired := errors.Cause(err).(errExpired)
	if !isExpired {
		return time.Time{}, time.Time{}, false
	}
	return e.at, e.now, true
}

type errDurationOutOfRange struct{}

func (errDurationOutOfRange) Error() string {
	return "trusted header's time is in the future relative to now"
}

func ErrDurationOutOfRange() error { return errors.Wrap(errDurationOutOfRange{}, "") }

func IsErrDurationOutOfRange(err error) bool {
	_, ok := errors.Cause(err).(errDurationOutOfRange)
	return ok
}

// -----------------------------------------------------------------------
// Monotonicity failures.

type errNonIncreasingHeight struct {
	got, expected uint64
}

func (e errNonIncreasingHeight) Error() string {
	return fmt.Sprintf("header height %d smaller than expected %d", e.got, e.expected)
}

func ErrNonIncreasingHeight(got, expected uint64) error {
	return errors.Wrap(errNonIncreasingHeight{got, expected}, "")
}

func IsErrNonIncreasingHeight(err error) bool {
	_, ok := errors.Cause(err).(errNonIncreasingHeight)
	return ok
}

// NonIncreasingHeightDetail extracts (got, expected) if err wraps one.
func NonIncreasingHeightDetail(err error) (got, expected uint64, ok bool) {
	e, isKind := errors.Cause(err).(errNonIncreasingHeight)
	if !isKind {
		return 0, 0, false
	}
	return e.got, e.expected, true
}

type errNonIncreasingTime struct{}

func (errNonIncreasingTime) Error() string {
	return "header time is not after the previously trusted header's time"
}

func ErrNonIncreasingTime() error { return errors.Wrap(errNonIncreasingTime{}, "") }

func IsErrNonIncreasingTime(err error) bool {
	_, ok := errors.Cause(err).(errNonIncreasingTime)
	return ok
}

// -----------------------------------------------------------------------
// Cross-hash validation failures.

type errInvalidValidatorSet struct{}

func (errInvalidValidatorSet) Error() string {
	return "header's validators_hash does not match the supplied validator set"
}

func ErrInvalidValidatorSet() error { return errors.Wrap(errInvalidValidatorSet{}, "") }

func IsErrInvalidValidatorSet(err error) bool {
	_, ok := errors.Cause(err).(errInvalidValidatorSet)
	return ok
}

type errInvalidNextValidatorSet struct{}

func (errInvalidNextValidatorSet) Error() string {
	return "header's next_validators_hash does not match the supplied next validator set"
}

func ErrInvalidNextValidatorSet() error { return errors.Wrap(errInvalidNextValidatorSet{}, "") }

func IsErrInvalidNextValidatorSet(err error) bool {
	_, ok := errors.Cause(err).(errInvalidNextValidatorSet)
	return ok
}

type errInvalidCommitValue struct{}

func (errInvalidCommitValue) Error() string {
	return "commit's header_hash does not match the header's own hash"
}

func ErrInvalidCommitValue() error { return errors.Wrap(errInvalidCommitValue{}, "") }

func IsErrInvalidCommitValue(err error) bool {
	_, ok := errors.Cause(err).(errInvalidCommitValue)
	return ok
}

// -----------------------------------------------------------------------
// Voting-power checks.

type errInvalidCommit struct {
	total, signed uint64
}

func (e errInvalidCommit) Error() string {
	return fmt.Sprintf("commit signed power %d does not exceed 2/3 of total power %d", e.signed, e.total)
}

// ErrInvalidCommit indicates the full (+2/3) voting-power check failed.
func ErrInvalidCommit(total, signed uint64) error {
	return errors.Wrap(errInvalidCommit{total, signed}, "")
}

func IsErrInvalidCommit(err error) bool { _, ok := errors.Cause(err).(errInvalidCommit); return ok }

// InvalidCommitDetail extracts (total, signed) if err wraps an
// errInvalidCommit.
func InvalidCommitDetail(err error) (total, signed uint64, ok bool) {
	e, isKind := errors.Cause(err).(errInvalidCommit)
	if !isKind {
		return 0, 0, false
	}
	return e.total, e.signed, true
}

type errInsufficientVotingPower struct {
	total, signed uint64
}

func (e errInsufficientVotingPower) Error() string {
	return fmt.Sprintf("insufficient voting power to skip: signed %d of total %d", e.signed, e.total)
}

// ErrInsufficientVotingPower indicates the trusting-level voting-power
// check failed. This is the one error kind the bisection algorithm
// interprets as "cannot skip, must bisect" rather than as fatal.
func ErrInsufficientVotingPower(total, signed uint64) error {
	return errors.Wrap(errInsufficientVotingPower{total, signed}, "")
}

func IsErrInsufficientVotingPower(err error) bool {
	_, ok := errors.Cause(err).(errInsufficientVotingPower)
	return ok
}

// InsufficientVotingPowerDetail extracts (total, signed) if err wraps an
// errInsufficientVotingPower.
func InsufficientVotingPowerDetail(err error) (total, signed uint64, ok bool) {
	e, isKind := errors.Cause(err).(errInsufficientVotingPower)
	if !isKind {
		return 0, 0, false
	}
	return e.total, e.signed, true
}

// -----------------------------------------------------------------------
// Configuration.

type errInvalidTrustThreshold struct{}

func (errInvalidTrustThreshold) Error() string { return "trust threshold must be within [1/3, 1]" }

func ErrInvalidTrustThreshold() error { return errors.Wrap(errInvalidTrustThreshold{}, "") }

func IsErrInvalidTrustThreshold(err error) bool {
	_, ok := errors.Cause(err).(errInvalidTrustThreshold)
	return ok
}

// -----------------------------------------------------------------------
// Catch-all for implementation-detected preconditions (overflow, etc.)

type errImplementationSpecific struct{ detail string }

func (e errImplementationSpecific) Error() string {
	if e.detail == "" {
		return "implementation-specific error"
	}
	return fmt.Sprintf("implementation-specific error: %s", e.detail)
}

// ErrImplementationSpecific reports a precondition the core cannot
// classify under any other kind (height/pivot arithmetic overflow, etc.).
// Always fatal to the caller.
func ErrImplementationSpecific(detail string) error {
	return errors.Wrap(errImplementationSpecific{detail}, "")
}

func IsErrImplementationSpecific(err error) bool {
	_, ok := errors.Cause(err).(errImplementationSpecific)
	return ok
}

// -----------------------------------------------------------------------
// Store-layer kinds (not part of the verification core's own taxonomy, but
// raised by the TrustedStore implementations in package store, following
// the same triad as the rest of this file).

type errCommitNotFound struct{}

func (errCommitNotFound) Error() string { return "no trusted state found for the requested height" }

// ErrCommitNotFound indicates a store has no trusted state at the requested
// height, or, for a latest-state lookup, holds no trusted state at all.
func ErrCommitNotFound() error { return errors.Wrap(errCommitNotFound{}, "") }

func IsErrCommitNotFound(err error) bool { _, ok := errors.Cause(err).(errCommitNotFound); return ok }

type errValidatorSetNotFound struct{ height uint64 }

func (e errValidatorSetNotFound) Error() string {
	return fmt.Sprintf("validators are unknown or missing for height %d", e.height)
}

// ErrValidatorSetNotFound indicates a store has no validator set recorded
// for the given height.
func ErrValidatorSetNotFound(height uint64) error {
	return errors.Wrap(errValidatorSetNotFound{height}, "")
}

func IsErrValidatorSetNotFound(err error) bool {
	_, ok := errors.Cause(err).(errValidatorSetNotFound)
	return ok
}
