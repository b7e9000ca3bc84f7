// Package handlers implements the HTTP endpoints of the parameter service.
package handlers

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"

	"github.com/zkparams/signature-gen/logger"
	"github.com/zkparams/signature-gen/siggen"
)

// ParamsRequest represents the request body for the /params endpoint
type ParamsRequest struct {
	Msg string `json:"msg"`
	Pss bool   `json:"pss"`
}

// ParamsResponse represents the response body for the /params endpoint.
// Limbs are hex strings, little-endian, 120 bits each.
type ParamsResponse struct {
	Hash           []int    `json:"hash"`
	SignatureLimbs []string `json:"signature_limbs"`
	ModulusLimbs   []string `json:"modulus_limbs"`
	RedcLimbs      []string `json:"redc_limbs"`
}

// HandleParamsRequest handles the /params endpoint
func HandleParamsRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ParamsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	padding := siggen.PaddingPKCS1v15
	if req.Pss {
		padding = siggen.PaddingPSS
	}

	params, err := siggen.Generate(rand.Reader, req.Msg, padding)
	if err != nil {
		log := logger.Logger()
		log.Error().Err(err).Msg("failed to generate parameters")
		http.Error(w, "Failed to generate parameters", http.StatusInternalServerError)
		return
	}

	hash := make([]int, len(params.Hash))
	for i, b := range params.Hash {
		hash[i] = int(b)
	}

	response := ParamsResponse{
		Hash:           hash,
		SignatureLimbs: hexLimbs(params.SignatureLimbs),
		ModulusLimbs:   hexLimbs(params.ModulusLimbs),
		RedcLimbs:      hexLimbs(params.RedcLimbs),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func hexLimbs(limbs []*big.Int) []string {
	out := make([]string, len(limbs))
	for i, limb := range limbs {
		out[i] = fmt.Sprintf("0x%x", limb)
	}
	return out
}
