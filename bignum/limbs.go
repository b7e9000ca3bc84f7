// Package bignum converts arbitrary-precision integers into the fixed-width
// limb representation consumed by bignum circuits: little-endian sequences of
// 120-bit limbs, zero-padded to a length determined by a declared bit width.
package bignum

import (
	"errors"
	"fmt"
	"math/big"
)

// LimbBits is the width of a single limb. Circuits emulate wide integers as
// 120-bit chunks so that limb products fit a 254-bit scalar field.
const LimbBits = 120

var (
	// ErrOutOfRange reports a value that does not fit its declared bit width.
	ErrOutOfRange = errors.New("bignum: value exceeds declared bit width")

	// ErrDivisionByZero reports a zero modulus passed to the Barrett
	// parameter computation.
	ErrDivisionByZero = errors.New("bignum: modulus is zero")
)

var limbMask = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), LimbBits), big.NewInt(1))

// LimbCount returns the number of limbs a value declared at targetBits
// occupies. The count depends only on the declared width, never on the value.
func LimbCount(targetBits uint) int {
	return int((targetBits + LimbBits - 1) / LimbBits)
}

// SplitIntoLimbs decomposes value into ceil(targetBits/120) little-endian
// 120-bit limbs. High limbs are zero-padded. The value must be non-negative
// and strictly below 2^targetBits; a value outside that range is rejected
// with ErrOutOfRange, never truncated.
func SplitIntoLimbs(value *big.Int, targetBits uint) ([]*big.Int, error) {
	if value == nil {
		return nil, fmt.Errorf("input value cannot be nil")
	}
	if targetBits == 0 {
		return nil, fmt.Errorf("target bit width must be positive")
	}
	if value.Sign() < 0 {
		return nil, fmt.Errorf("negative value %s: %w", value, ErrOutOfRange)
	}
	if uint(value.BitLen()) > targetBits {
		return nil, fmt.Errorf("value has %d bits, declared width is %d: %w", value.BitLen(), targetBits, ErrOutOfRange)
	}

	limbs := make([]*big.Int, LimbCount(targetBits))
	rest := new(big.Int).Set(value)
	for i := range limbs {
		limbs[i] = new(big.Int).And(rest, limbMask)
		rest.Rsh(rest, LimbBits)
	}

	return limbs, nil
}

// Recompose is the inverse of SplitIntoLimbs: it sums limb[i] * 2^(120*i)
// over a little-endian limb sequence.
func Recompose(limbs []*big.Int) *big.Int {
	value := new(big.Int)
	for i := len(limbs) - 1; i >= 0; i-- {
		value.Lsh(value, LimbBits)
		value.Add(value, limbs[i])
	}

	return value
}
