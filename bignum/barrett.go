package bignum

import (
	"fmt"
	"math/big"
)

// BarrettReductionParameter returns floor(2^(2*targetBits) / modulus), the
// precomputed constant that lets a circuit reduce modulo the modulus with a
// multiplication and a shift instead of a division. The modulus must be
// positive and fit within targetBits.
func BarrettReductionParameter(modulus *big.Int, targetBits uint) (*big.Int, error) {
	if modulus == nil || modulus.Sign() == 0 {
		return nil, fmt.Errorf("barrett parameter: %w", ErrDivisionByZero)
	}
	if modulus.Sign() < 0 {
		return nil, fmt.Errorf("barrett parameter: negative modulus: %w", ErrOutOfRange)
	}
	if uint(modulus.BitLen()) > targetBits {
		return nil, fmt.Errorf("barrett parameter: modulus has %d bits, declared width is %d: %w", modulus.BitLen(), targetBits, ErrOutOfRange)
	}

	param := new(big.Int).Lsh(big.NewInt(1), 2*targetBits)
	return param.Div(param, modulus), nil
}

// BarrettReductionLimbs computes the Barrett parameter of modulus and splits
// it into limbs. For a w-bit modulus m >= 2^(w-1) the parameter satisfies
// floor(2^(2w)/m) < 2^(w+1), so it is split at a declared width of
// targetBits+1; as long as targetBits is not a multiple of 120 this yields
// the same limb count as the modulus itself.
func BarrettReductionLimbs(modulus *big.Int, targetBits uint) ([]*big.Int, error) {
	param, err := BarrettReductionParameter(modulus, targetBits)
	if err != nil {
		return nil, err
	}

	limbs, err := SplitIntoLimbs(param, targetBits+1)
	if err != nil {
		return nil, fmt.Errorf("barrett parameter does not fit the modulus width: %w", err)
	}
	if len(limbs) != LimbCount(targetBits) {
		return nil, fmt.Errorf("barrett parameter spans %d limbs, modulus spans %d: %w", len(limbs), LimbCount(targetBits), ErrOutOfRange)
	}

	return limbs, nil
}
