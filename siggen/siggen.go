// Package siggen runs the signature pipeline: it hashes a message, signs the
// digest with a freshly generated RSA key and decomposes the signature, the
// public modulus and the modulus's Barrett reduction parameter into the
// 120-bit limb form a bignum circuit consumes.
package siggen

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/zkparams/signature-gen/bignum"
)

const (
	// TargetBits is the declared bit width shared by the signature, the
	// modulus and the reduction parameter. It is a protocol constant fixed
	// by the downstream circuit: one bit above the nominal RSA-1024 modulus.
	TargetBits = 1025

	// KeyBits is the RSA key length. Keys are generated at exactly the
	// target width so the modulus always fills its declared bits.
	KeyBits = TargetBits
)

// Padding selects the RSA signature padding scheme.
type Padding string

const (
	// PaddingPKCS1v15 is deterministic RSASSA-PKCS1-v1_5 padding.
	PaddingPKCS1v15 Padding = "pkcs1v15"

	// PaddingPSS is RSASSA-PSS padding with a salt drawn from the pipeline's
	// random source, so two runs over the same message differ.
	PaddingPSS Padding = "pss"
)

var (
	// ErrKeyGeneration reports a failed RSA key generation.
	ErrKeyGeneration = errors.New("siggen: key generation failed")

	// ErrSigning reports a signature-library fault.
	ErrSigning = errors.New("siggen: signing failed")
)

// Params is the output bundle of one pipeline invocation. All limb sequences
// are little-endian 120-bit limbs at the shared target width.
type Params struct {
	Hash      [sha256.Size]byte
	Signature *big.Int
	PublicKey *rsa.PublicKey

	SignatureLimbs []*big.Int
	ModulusLimbs   []*big.Int
	RedcLimbs      []*big.Int
}

// Generate runs the pipeline over msg. The rng is the only source of
// non-determinism: it feeds key generation and, for PSS, the salt. Any
// failure aborts the invocation; there is no partial bundle.
func Generate(rng io.Reader, msg string, padding Padding) (*Params, error) {
	digest := sha256.Sum256([]byte(msg))

	key, err := rsa.GenerateKey(rng, KeyBits)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}

	sigBytes, err := sign(rng, key, digest[:], padding)
	if err != nil {
		return nil, err
	}

	// The raw signature is a big-endian byte string of the key size.
	signature := new(big.Int).SetBytes(sigBytes)

	signatureLimbs, err := bignum.SplitIntoLimbs(signature, TargetBits)
	if err != nil {
		return nil, fmt.Errorf("split signature: %w", err)
	}

	modulusLimbs, err := bignum.SplitIntoLimbs(key.N, TargetBits)
	if err != nil {
		return nil, fmt.Errorf("split modulus: %w", err)
	}

	redcLimbs, err := bignum.BarrettReductionLimbs(key.N, TargetBits)
	if err != nil {
		return nil, fmt.Errorf("split barrett parameter: %w", err)
	}

	return &Params{
		Hash:           digest,
		Signature:      signature,
		PublicKey:      &key.PublicKey,
		SignatureLimbs: signatureLimbs,
		ModulusLimbs:   modulusLimbs,
		RedcLimbs:      redcLimbs,
	}, nil
}

func sign(rng io.Reader, key *rsa.PrivateKey, digest []byte, padding Padding) ([]byte, error) {
	switch padding {
	case PaddingPKCS1v15:
		sig, err := rsa.SignPKCS1v15(rng, key, crypto.SHA256, digest)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSigning, err)
		}
		return sig, nil
	case PaddingPSS:
		sig, err := rsa.SignPSS(rng, key, crypto.SHA256, digest, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSigning, err)
		}
		return sig, nil
	default:
		return nil, fmt.Errorf("%w: unknown padding scheme %q", ErrSigning, padding)
	}
}
