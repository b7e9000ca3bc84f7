package handlers

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"

	"github.com/zkparams/signature-gen/logger"
	"github.com/zkparams/signature-gen/siggen"
	"github.com/zkparams/signature-gen/utils"
)

// Global variables to store the circuit and proving key
var (
	cs constraint.ConstraintSystem
	pk groth16.ProvingKey
)

// ProveRequest represents the request body for the /prove endpoint
type ProveRequest struct {
	Msg string `json:"msg"`
}

// ProveResponse represents the response body for the /prove endpoint
type ProveResponse struct {
	Proof string `json:"proof"`
}

// LoadCircuitAndProvingKey loads the circuit and proving key from the
// artifacts directory (ARTIFACTS_DIR, default "../artifacts").
func LoadCircuitAndProvingKey() error {
	dir := os.Getenv("ARTIFACTS_DIR")
	if dir == "" {
		dir = "../artifacts"
	}

	circuit, err := os.ReadFile(filepath.Join(dir, "circuit.bin"))
	if err != nil {
		return fmt.Errorf("failed to read circuit file: %w", err)
	}
	cs = groth16.NewCS(ecc.BN254)
	if _, err := cs.ReadFrom(bytes.NewReader(circuit)); err != nil {
		return fmt.Errorf("failed to parse circuit: %w", err)
	}

	pkBytes, err := os.ReadFile(filepath.Join(dir, "pk.bin"))
	if err != nil {
		return fmt.Errorf("failed to read proving key file: %w", err)
	}
	pk = groth16.NewProvingKey(ecc.BN254)
	if _, err := pk.ReadFrom(bytes.NewReader(pkBytes)); err != nil {
		return fmt.Errorf("failed to parse proving key: %w", err)
	}

	log := logger.Logger()
	log.Info().Str("dir", dir).Msg("loaded circuit and proving key")
	return nil
}

// HandleProveRequest handles the /prove endpoint
func HandleProveRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if cs == nil || pk == nil {
		http.Error(w, "Proving artifacts not loaded", http.StatusServiceUnavailable)
		return
	}

	var req ProveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	proofBytes, err := generateProof(req.Msg)
	if err != nil {
		log := logger.Logger()
		log.Error().Err(err).Msg("failed to generate proof")
		http.Error(w, "Failed to generate proof", http.StatusInternalServerError)
		return
	}

	response := ProveResponse{
		Proof: base64.RawURLEncoding.EncodeToString(proofBytes),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// generateProof generates parameters for msg and proves the signature check.
// The in-circuit check covers PKCS#1 v1.5 only.
func generateProof(msg string) ([]byte, error) {
	params, err := siggen.Generate(rand.Reader, msg, siggen.PaddingPKCS1v15)
	if err != nil {
		return nil, err
	}

	witness, err := utils.SigCheckWitness(params)
	if err != nil {
		return nil, err
	}

	proof, err := groth16.Prove(cs, pk, witness)
	if err != nil {
		return nil, fmt.Errorf("failed to generate proof: %w", err)
	}

	proofBuf := bytes.NewBuffer(nil)
	proof.WriteRawTo(proofBuf)

	return proofBuf.Bytes(), nil
}
