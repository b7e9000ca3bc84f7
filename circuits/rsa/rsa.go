// Package rsa verifies RSASSA-PKCS1-v1_5 signatures inside a circuit, over
// an emulated field whose limb layout matches the generated parameter
// bundles (little-endian 120-bit limbs).
package rsa

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/emulated"
)

// Hardcoded DER prefix for SHA-256 with RSASSA-PKCS1-v1_5
var Sha256DerPrefixBytes = [19]frontend.Variable{
	0x30, 0x31, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x01, 0x05, 0x00, 0x04, 0x20,
}

// VerifyPKCS1v15Signature asserts that signature^65537 mod publicKeyN is a
// well-formed PKCS#1 v1.5 encoded message for the given SHA-256 hash.
// keySize is the modulus length in bytes; the emulated field may be wider
// than the key, so every byte above keySize must be zero.
func VerifyPKCS1v15Signature[T emulated.FieldParams](api frontend.API, hash []frontend.Variable, signature, publicKeyN *emulated.Element[T], keySize int) error {
	f, err := emulated.NewField[T](api)
	if err != nil {
		return err
	}

	em := rsaModExp(f, signature, publicKeyN)
	emBytes := toBytes(api, f, em)

	// Spare high bytes between the field capacity and the key size.
	offset := 0
	for i := 0; i < len(emBytes)-keySize; i++ {
		api.AssertIsEqual(emBytes[offset], 0x00)
		offset++
	}

	// Verify the PKCS#1 v1.5 header.
	api.AssertIsEqual(emBytes[offset], 0x00)
	offset++
	api.AssertIsEqual(emBytes[offset], 0x01)
	offset++

	// Verify the PKCS#1 v1.5 padding.
	paddingLength := keySize - 3 - len(Sha256DerPrefixBytes) - 32
	for i := 0; i < paddingLength; i++ {
		api.AssertIsEqual(emBytes[offset], 0xff)
		offset++
	}

	// Verify the 0x00 delimiter after padding.
	api.AssertIsEqual(emBytes[offset], 0x00)
	offset++

	// Verify the DER-encoded SHA-256 prefix.
	for _, b := range Sha256DerPrefixBytes {
		api.AssertIsEqual(emBytes[offset], b)
		offset++
	}

	// Verify the SHA-256 hash.
	for _, b := range hash {
		api.AssertIsEqual(emBytes[offset], b)
		offset++
	}

	return nil
}

func rsaModExp[T emulated.FieldParams](f *emulated.Field[T], base, modulus *emulated.Element[T]) *emulated.Element[T] {
	// Hardcode the exponent to be 65537
	acc := base
	for i := 0; i < 16; i++ {
		acc = f.ModMul(acc, acc, modulus)
	}
	acc = f.ModMul(acc, base, modulus)

	return acc
}

func toBytes[T emulated.FieldParams](api frontend.API, f *emulated.Field[T], value *emulated.Element[T]) []frontend.Variable {
	bits := f.ToBits(value)

	nbBytes := len(bits) / 8
	bytes := make([]frontend.Variable, 0, nbBytes)
	for i := nbBytes - 1; i >= 0; i-- {
		var b frontend.Variable = 0
		for j := 0; j < 8; j++ {
			b = api.Add(b, api.Mul(bits[i*8+j], 1<<j))
		}
		bytes = append(bytes, b)
	}

	return bytes
}
