// Package circuits defines the cross-check circuit: it proves that a
// generated RSA signature verifies against the generated modulus under the
// exact limb convention the parameter bundles use.
package circuits

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/emulated"

	"github.com/zkparams/signature-gen/circuits/rsa"
	"github.com/zkparams/signature-gen/siggen"
)

// ModulusBytes is the RSA key size in bytes at the protocol's target width.
const ModulusBytes = (siggen.TargetBits + 7) / 8

// SigCheckCircuit verifies a PKCS#1 v1.5 signature over a SHA-256 digest.
// The digest and modulus are public; the signature stays private.
type SigCheckCircuit struct {
	// Public inputs
	Hash    [32]frontend.Variable           `gnark:",public"`
	Modulus emulated.Element[rsa.Mod1e1080] `gnark:",public"`

	// Private inputs
	Signature emulated.Element[rsa.Mod1e1080]
}

func (c *SigCheckCircuit) Define(api frontend.API) error {
	return rsa.VerifyPKCS1v15Signature(api, c.Hash[:], &c.Signature, &c.Modulus, ModulusBytes)
}
