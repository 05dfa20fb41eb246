package server

import (
	"encoding/json"
	"net/http"
)

// apiResponse is the JSON envelope for the non-MCP routes: the version probe
// and auth rejections. MCP results never pass through here; they travel as
// protocol payloads on the streamable endpoint.
type apiResponse struct {
	Ok    bool      `json:"ok"`
	Data  any       `json:"data,omitempty"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK writes a success envelope.
func RespondOK(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, apiResponse{Ok: true, Data: data})
}

// RespondError writes an error envelope with a machine-readable code.
func RespondError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiResponse{Ok: false, Error: &apiError{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, payload apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
