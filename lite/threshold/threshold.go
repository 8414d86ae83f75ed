// Package threshold defines the trust-threshold fraction used by the
// skipping verifier to decide how much previously-trusted voting power must
// vouch for a new commit before a height can be skipped.
package threshold

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/bftlite/lightclient/lite/internal/safemath"
)

// Fraction defines what proportion of a known and trusted validator set's
// voting power is sufficient for a commit to be accepted going forward.
//
// Valid fractions lie in [1/3, 1]: 1 <= Denominator, Numerator <=
// Denominator, and 3*Numerator >= Denominator. The lower bound is not
// arbitrary — below 1/3 an attacker controlling less than a third of the
// old validator set's power could forge a skip.
type Fraction struct {
	Numerator   uint64
	Denominator uint64
}

// DefaultFraction is 1/3: a new header can be trusted if at least one
// honest validator from the old set signed it.
var DefaultFraction = Fraction{Numerator: 1, Denominator: 3}

// New validates numerator/denominator and returns the corresponding
// Fraction, or ErrInvalidTrustThreshold if it falls outside [1/3, 1].
func New(numerator, denominator uint64) (Fraction, error) {
	if !valid(numerator, denominator) {
		return Fraction{}, errors.Wrap(errInvalid{numerator, denominator}, "threshold.New")
	}
	return Fraction{Numerator: numerator, Denominator: denominator}, nil
}

func valid(numerator, denominator uint64) bool {
	if denominator < 1 {
		return false
	}
	if numerator > denominator {
		return false
	}
	threeN, ok := safemath.MulUint64(3, numerator)
	if !ok {
		// 3*numerator exceeds the uint64 range, so it is necessarily
		// >= denominator.
		return true
	}
	return threeN >= denominator
}

// IsEnoughPower reports whether signed of total voting power clears the
// threshold: signed*Denominator > total*Numerator, evaluated with the
// multiplicative form so no rounding or division is involved. Ties (exactly
// the threshold) do not count — the inequality is strict.
//
// Overflow in either product is reported via ok=false; callers must treat
// that as package errors' ErrImplementationSpecific, never as "not enough
// power".
func (f Fraction) IsEnoughPower(signed, total uint64) (enough bool, ok bool) {
	left, ok1 := safemath.MulUint64(signed, f.Denominator)
	right, ok2 := safemath.MulUint64(total, f.Numerator)
	if !ok1 || !ok2 {
		return false, false
	}
	return left > right, true
}

func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.Numerator, f.Denominator)
}

type errInvalid struct {
	numerator, denominator uint64
}

func (e errInvalid) Error() string {
	return fmt.Sprintf("trust threshold %d/%d must be within [1/3, 1]", e.numerator, e.denominator)
}
