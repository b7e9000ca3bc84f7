// Package utils builds gnark assignments and witnesses from generated
// signature parameter bundles.
package utils

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/emulated"

	"github.com/zkparams/signature-gen/circuits"
	"github.com/zkparams/signature-gen/circuits/rsa"
	"github.com/zkparams/signature-gen/siggen"
)

// SigCheckAssignment fills a SigCheckCircuit from a parameter bundle. The
// emulated elements decompose into the same 9x120-bit limbs the bundle
// carries.
func SigCheckAssignment(p *siggen.Params) *circuits.SigCheckCircuit {
	assignment := &circuits.SigCheckCircuit{
		Modulus:   emulated.ValueOf[rsa.Mod1e1080](p.PublicKey.N),
		Signature: emulated.ValueOf[rsa.Mod1e1080](p.Signature),
	}
	for i, b := range p.Hash {
		assignment.Hash[i] = frontend.Variable(b)
	}

	return assignment
}

// SigCheckWitness builds the full BN254 witness for a parameter bundle.
func SigCheckWitness(p *siggen.Params) (witness.Witness, error) {
	w, err := frontend.NewWitness(SigCheckAssignment(p), ecc.BN254.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("failed to create witness: %w", err)
	}

	return w, nil
}
