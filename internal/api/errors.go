package api

import (
	"encoding/json"
	"net/http"

	"github.com/4liaghaie/sait/internal/logger"
)

type errorBody struct {
	Error string `json:"error"`
}

// envelope wraps every successful payload as {"data": ...}.
type envelope struct {
	Data any `json:"data"`
}

// writeError writes a JSON error response with the given HTTP status code.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}

// writeJSON writes a JSON response with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, envelope{Data: v})
}

// writeInternal logs err with the request id and answers with an opaque 500.
func writeInternal(w http.ResponseWriter, r *http.Request, log logger.Logger, op string, err error) {
	log.Error(op,
		logger.String("path", r.URL.Path),
		logger.String("method", r.Method),
		logger.Error(err),
	)
	writeError(w, http.StatusInternalServerError, "Internal Server Error")
}
