// Package format renders a signature parameter bundle into one of the two
// textual layouts the circuit tooling accepts: a Noir source fragment or a
// TOML prover input file. Both layouts carry numerically identical values.
package format

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/zkparams/signature-gen/siggen"
)

// Layout selects the output encoding.
type Layout string

const (
	// LayoutPlain emits Noir source fragments (array literals and a BigNum
	// constructor call) ready to paste into a circuit's test harness.
	LayoutPlain Layout = "plain"

	// LayoutTOML emits a prover input document.
	LayoutTOML Layout = "toml"
)

// bigNumType names the fixed-width integer type the plain layout constructs.
const bigNumType = "BN1025"

// Render writes the bundle to w in the requested layout.
func Render(w io.Writer, p *siggen.Params, layout Layout) error {
	switch layout {
	case LayoutPlain:
		return renderPlain(w, p)
	case LayoutTOML:
		return renderTOML(w, p)
	default:
		return fmt.Errorf("unknown layout %q", layout)
	}
}

func renderPlain(w io.Writer, p *siggen.Params) error {
	if _, err := fmt.Fprintf(w, "let hash: [u8; 32] = [%s];\n", joinBytes(p.Hash[:])); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "let signature: %s = BigNum::from_array([%s]);\n", bigNumType, joinHexLimbs(p.SignatureLimbs)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "let bn = [\n    [%s],\n    [%s]\n];\n", joinHexLimbs(p.ModulusLimbs), joinHexLimbs(p.RedcLimbs))
	return err
}

// tomlDocument mirrors the prover input layout: the modulus/reduction limb
// pair under "bn", the digest under "hash" and the signature limbs in their
// own table.
type tomlDocument struct {
	Bn        [][]string    `toml:"bn"`
	Hash      []int         `toml:"hash"`
	Signature tomlSignature `toml:"signature"`
}

type tomlSignature struct {
	Limbs []string `toml:"limbs"`
}

func renderTOML(w io.Writer, p *siggen.Params) error {
	doc := tomlDocument{
		Bn: [][]string{
			hexLimbs(p.ModulusLimbs),
			hexLimbs(p.RedcLimbs),
		},
		Hash: byteValues(p.Hash[:]),
		Signature: tomlSignature{
			Limbs: hexLimbs(p.SignatureLimbs),
		},
	}

	enc := toml.NewEncoder(w)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	return nil
}

func hexLimbs(limbs []*big.Int) []string {
	out := make([]string, len(limbs))
	for i, limb := range limbs {
		out[i] = fmt.Sprintf("0x%x", limb)
	}
	return out
}

func joinHexLimbs(limbs []*big.Int) string {
	return strings.Join(hexLimbs(limbs), ", ")
}

func byteValues(b []byte) []int {
	out := make([]int, len(b))
	for i, v := range b {
		out[i] = int(v)
	}
	return out
}

func joinBytes(b []byte) string {
	parts := make([]string, len(b))
	for i, v := range b {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ", ")
}
