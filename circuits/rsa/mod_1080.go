package rsa

import "math/big"

// Mod1e1080 emulates integers of up to 1080 bits as 9 little-endian 120-bit
// limbs, the layout the parameter generator emits for 1025-bit moduli.
type Mod1e1080 struct{}

func (Mod1e1080) NbLimbs() uint     { return 9 }
func (Mod1e1080) BitsPerLimb() uint { return 120 }
func (Mod1e1080) IsPrime() bool     { return false }
func (Mod1e1080) Modulus() *big.Int {
	val := new(big.Int).Lsh(big.NewInt(1), 1080)
	return val.Sub(val, big.NewInt(1))
}
