package bignum

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func randomBelow(t *testing.T, bits uint) *big.Int {
	t.Helper()

	max := new(big.Int).Lsh(big.NewInt(1), bits)
	v, err := rand.Int(rand.Reader, max)
	require.NoError(t, err)

	return v
}

func TestLimbCount(t *testing.T) {
	for _, tc := range []struct {
		targetBits uint
		want       int
	}{
		{1, 1},
		{120, 1},
		{121, 2},
		{240, 2},
		{1024, 9},
		{1025, 9},
		{1026, 9},
		{2048, 18},
	} {
		require.Equal(t, tc.want, LimbCount(tc.targetBits), "width %d", tc.targetBits)
	}
}

func TestSplitRoundTrip(t *testing.T) {
	maxValue := new(big.Int).Lsh(big.NewInt(1), 1025)
	maxValue.Sub(maxValue, big.NewInt(1))

	values := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		big.NewInt(1 << 62),
		new(big.Int).Lsh(big.NewInt(1), 120),
		maxValue,
	}
	for i := 0; i < 16; i++ {
		values = append(values, randomBelow(t, 1025))
	}

	for _, v := range values {
		limbs, err := SplitIntoLimbs(v, 1025)
		require.NoError(t, err)
		require.Len(t, limbs, 9)
		require.Equal(t, 0, Recompose(limbs).Cmp(v), "round trip mismatch for %s", v)
	}
}

func TestSplitLimbBounds(t *testing.T) {
	limbBound := new(big.Int).Lsh(big.NewInt(1), LimbBits)

	for i := 0; i < 16; i++ {
		limbs, err := SplitIntoLimbs(randomBelow(t, 1025), 1025)
		require.NoError(t, err)
		for i, limb := range limbs {
			require.True(t, limb.Sign() >= 0, "limb %d negative", i)
			require.True(t, limb.Cmp(limbBound) < 0, "limb %d out of bound", i)
		}
	}
}

func TestSplitZeroPadsHighLimbs(t *testing.T) {
	limbs, err := SplitIntoLimbs(big.NewInt(42), 1025)
	require.NoError(t, err)
	require.Len(t, limbs, 9)
	require.Equal(t, int64(42), limbs[0].Int64())
	for _, limb := range limbs[1:] {
		require.Zero(t, limb.Sign())
	}
}

func TestSplitRejectsOversizedValue(t *testing.T) {
	for _, bits := range []uint{120, 1025} {
		v := new(big.Int).Lsh(big.NewInt(1), bits)

		_, err := SplitIntoLimbs(v, bits)
		require.ErrorIs(t, err, ErrOutOfRange)
	}
}

func TestSplitRejectsNegativeValue(t *testing.T) {
	_, err := SplitIntoLimbs(big.NewInt(-1), 1025)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestSplitRejectsNilValue(t *testing.T) {
	_, err := SplitIntoLimbs(nil, 1025)
	require.Error(t, err)
}

func TestBarrettParameterExactQuotient(t *testing.T) {
	// An odd 1025-bit modulus, the shape RSA key generation produces.
	modulus := new(big.Int).Lsh(big.NewInt(1), 1024)
	modulus.Add(modulus, big.NewInt(12345))

	param, err := BarrettReductionParameter(modulus, 1025)
	require.NoError(t, err)

	// param = floor(2^2050 / m)  <=>  0 <= 2^2050 - param*m < m
	numerator := new(big.Int).Lsh(big.NewInt(1), 2050)
	remainder := new(big.Int).Mul(param, modulus)
	remainder.Sub(numerator, remainder)
	require.True(t, remainder.Sign() >= 0, "quotient too large")
	require.True(t, remainder.Cmp(modulus) < 0, "quotient too small")
}

func TestBarrettParameterZeroModulus(t *testing.T) {
	_, err := BarrettReductionParameter(big.NewInt(0), 1025)
	require.ErrorIs(t, err, ErrDivisionByZero)

	_, err = BarrettReductionLimbs(big.NewInt(0), 1025)
	require.ErrorIs(t, err, ErrDivisionByZero)
}

func TestBarrettParameterOversizedModulus(t *testing.T) {
	modulus := new(big.Int).Lsh(big.NewInt(1), 1025)

	_, err := BarrettReductionParameter(modulus, 1025)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestBarrettReductionLimbs(t *testing.T) {
	modulus := new(big.Int).Lsh(big.NewInt(1), 1024)
	modulus.Add(modulus, big.NewInt(777))

	param, err := BarrettReductionParameter(modulus, 1025)
	require.NoError(t, err)

	// The parameter of a full-width modulus needs one bit more than the
	// declared width but the same number of limbs.
	require.Equal(t, 1026, param.BitLen())

	limbs, err := BarrettReductionLimbs(modulus, 1025)
	require.NoError(t, err)
	require.Len(t, limbs, 9)
	require.Equal(t, 0, Recompose(limbs).Cmp(param))
}
