package threshold_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bftlite/lightclient/lite/threshold"
)

func TestNew_Validity(t *testing.T) {
	cases := []struct {
		num, den uint64
		valid    bool
	}{
		{1, 3, true},
		{1, 1, true},
		{2, 3, true},
		{0, 3, false},  // below 1/3
		{1, 4, false},  // below 1/3
		{2, 1, false},  // numerator > denominator
		{1, 0, false},  // zero denominator
		{100, 100, true},
	}
	for _, c := range cases {
		_, err := threshold.New(c.num, c.den)
		if c.valid {
			assert.NoErrorf(t, err, "%d/%d should be valid", c.num, c.den)
		} else {
			assert.Errorf(t, err, "%d/%d should be invalid", c.num, c.den)
		}
	}
}

func TestIsEnoughPower_StrictInequality(t *testing.T) {
	th, err := threshold.New(1, 3)
	require.NoError(t, err)

	// Exactly one third: not enough (strict inequality).
	enough, ok := th.IsEnoughPower(100, 300)
	require.True(t, ok)
	assert.False(t, enough)

	// One more than a third of a total divisible by three: enough.
	enough, ok = th.IsEnoughPower(101, 300)
	require.True(t, ok)
	assert.True(t, enough)
}

func TestIsEnoughPower_Overflow(t *testing.T) {
	th := threshold.Fraction{Numerator: 1, Denominator: ^uint64(0)}
	_, ok := th.IsEnoughPower(^uint64(0), 2)
	assert.False(t, ok)
}

func TestDefaultFraction(t *testing.T) {
	assert.Equal(t, uint64(1), threshold.DefaultFraction.Numerator)
	assert.Equal(t, uint64(3), threshold.DefaultFraction.Denominator)
}
