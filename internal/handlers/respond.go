package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"fishplant-backend/internal/gas"
	"fishplant-backend/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeServiceError maps service failures onto status codes: local
// validation is the caller's fault, an upstream rejection is a bad gateway,
// anything else is ours.
func writeServiceError(w http.ResponseWriter, err error) {
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		http.Error(w, vErr.Message, http.StatusBadRequest)
		return
	}
	var uErr *gas.UpstreamError
	if errors.As(err, &uErr) {
		http.Error(w, uErr.Message, http.StatusBadGateway)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
