package handlers

import (
	"encoding/json"
	"net/http"
	"taskmanager/internal/http/dto"
	"taskmanager/internal/http/middleware"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (h *TaskHandler) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, dto.ErrorResponse{Error: msg, RequestID: requestID(r)})
}

func requestID(r *http.Request) string {
	return middleware.RequestID(r.Context())
}
