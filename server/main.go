package main

import (
	"net/http"
	"os"

	"github.com/zkparams/signature-gen/logger"
	"github.com/zkparams/signature-gen/server/handlers"
)

// corsMiddleware adds CORS headers to the response
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "http://localhost:3000")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight requests
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func main() {
	log := logger.Logger()

	// Parameter generation works without artifacts; proving needs the
	// compiled circuit and proving key.
	if err := handlers.LoadCircuitAndProvingKey(); err != nil {
		log.Warn().Err(err).Msg("proving disabled: failed to load circuit and proving key")
	}

	http.HandleFunc("/params", corsMiddleware(handlers.HandleParamsRequest))
	http.HandleFunc("/prove", corsMiddleware(handlers.HandleProveRequest))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Info().Str("port", port).Msg("server starting")
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatal().Err(err).Msg("server failed to start")
	}
}
