package format

import (
	"bytes"
	"crypto/sha256"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/require"

	"github.com/zkparams/signature-gen/bignum"
	"github.com/zkparams/signature-gen/siggen"
)

var hexPattern = regexp.MustCompile(`0x[0-9a-fA-F]+`)

func testParams(t *testing.T) *siggen.Params {
	t.Helper()

	signature, ok := new(big.Int).SetString("1b2e49f8c3a95d7e6f4021d8ab379c5e8d1f0a6b4c2e9d7531f8e6a0b4d2c791", 16)
	require.True(t, ok)
	modulus := new(big.Int).Lsh(big.NewInt(1), 1024)
	modulus.Add(modulus, big.NewInt(982451653))

	signatureLimbs, err := bignum.SplitIntoLimbs(signature, siggen.TargetBits)
	require.NoError(t, err)
	modulusLimbs, err := bignum.SplitIntoLimbs(modulus, siggen.TargetBits)
	require.NoError(t, err)
	redcLimbs, err := bignum.BarrettReductionLimbs(modulus, siggen.TargetBits)
	require.NoError(t, err)

	return &siggen.Params{
		Hash:           sha256.Sum256([]byte("hello world")),
		Signature:      signature,
		SignatureLimbs: signatureLimbs,
		ModulusLimbs:   modulusLimbs,
		RedcLimbs:      redcLimbs,
	}
}

func TestRenderPlainShape(t *testing.T) {
	params := testParams(t)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, params, LayoutPlain))
	out := buf.String()

	require.True(t, strings.HasPrefix(out, "let hash: [u8; 32] = ["))
	require.Contains(t, out, "let signature: BN1025 = BigNum::from_array([")
	require.Contains(t, out, "let bn = [")

	// 9 signature limbs, 9 modulus limbs, 9 reduction parameter limbs.
	require.Len(t, hexPattern.FindAllString(out, -1), 27)
}

func TestRenderTOMLShape(t *testing.T) {
	params := testParams(t)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, params, LayoutTOML))
	out := buf.String()

	require.Contains(t, out, "bn = ")
	require.Contains(t, out, "hash = ")
	require.Contains(t, out, "[signature]")
	require.Contains(t, out, "limbs = ")
}

func TestRenderUnknownLayout(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, Render(&buf, testParams(t), Layout("yaml")))
}

// Both layouts must decode to numerically identical hash, signature, modulus
// and reduction parameter values.
func TestLayoutEquivalence(t *testing.T) {
	params := testParams(t)

	var plainBuf, tomlBuf bytes.Buffer
	require.NoError(t, Render(&plainBuf, params, LayoutPlain))
	require.NoError(t, Render(&tomlBuf, params, LayoutTOML))

	plainHash, plainSig, plainMod, plainRedc := parsePlain(t, plainBuf.String())

	var doc tomlDocument
	require.NoError(t, toml.Unmarshal(tomlBuf.Bytes(), &doc))
	require.Len(t, doc.Bn, 2)

	require.Equal(t, byteValues(params.Hash[:]), plainHash)
	require.Equal(t, plainHash, doc.Hash)

	tomlSig := recomposeHex(t, doc.Signature.Limbs)
	tomlMod := recomposeHex(t, doc.Bn[0])
	tomlRedc := recomposeHex(t, doc.Bn[1])

	require.Equal(t, 0, plainSig.Cmp(tomlSig))
	require.Equal(t, 0, plainMod.Cmp(tomlMod))
	require.Equal(t, 0, plainRedc.Cmp(tomlRedc))

	require.Equal(t, 0, tomlSig.Cmp(params.Signature))
	require.Equal(t, 0, tomlMod.Cmp(bignum.Recompose(params.ModulusLimbs)))
	require.Equal(t, 0, tomlRedc.Cmp(bignum.Recompose(params.RedcLimbs)))
}

func parsePlain(t *testing.T, out string) (hash []int, signature, modulus, redc *big.Int) {
	t.Helper()

	line := strings.SplitN(out, "\n", 2)[0]
	start := strings.Index(line, "= [")
	require.True(t, start >= 0, "missing hash array in %q", line)
	for _, field := range strings.Split(strings.TrimSuffix(line[start+3:], "];"), ", ") {
		v, err := strconv.Atoi(field)
		require.NoError(t, err)
		hash = append(hash, v)
	}
	require.Len(t, hash, 32)

	limbs := hexPattern.FindAllString(out, -1)
	require.Len(t, limbs, 27)
	signature = recomposeHex(t, limbs[:9])
	modulus = recomposeHex(t, limbs[9:18])
	redc = recomposeHex(t, limbs[18:])

	return hash, signature, modulus, redc
}

func recomposeHex(t *testing.T, limbs []string) *big.Int {
	t.Helper()

	parsed := make([]*big.Int, len(limbs))
	for i, limb := range limbs {
		v, ok := new(big.Int).SetString(strings.TrimPrefix(limb, "0x"), 16)
		require.True(t, ok, "bad limb %q", limb)
		parsed[i] = v
	}

	return bignum.Recompose(parsed)
}
