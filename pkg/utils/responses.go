package utils

import (
	"encoding/json"
	"net/http"
)

type MessageResponse struct {
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

// ResponseJSON writes body as JSON with the given status code
func ResponseJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

// ------------- Success responses -------------

// returns 200 OK with body as-is
func ResponseSuccess(w http.ResponseWriter, body any) {
	ResponseJSON(w, http.StatusOK, body)
}

// returns 200 OK {"message": ...}
func ResponseMessage(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusOK, MessageResponse{Message: message})
}

// returns 201 Created {"message": ...}
func ResponseCreated(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusCreated, MessageResponse{Message: message})
}

// ------------- Error responses -------------

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, message string, errors any) {
	ResponseJSON(w, http.StatusBadRequest, MessageResponse{Message: message, Errors: errors})
}

// returns 401 Unauthorized
func ResponseUnauthorized(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusUnauthorized, MessageResponse{Message: message})
}

// returns 429 Too Many Requests
func ResponseTooManyRequests(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusTooManyRequests, MessageResponse{Message: message})
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusInternalServerError, MessageResponse{Message: message})
}
