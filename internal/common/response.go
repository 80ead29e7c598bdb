package common

import (
	"encoding/json"
	"net/http"
)

type errorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type dataEnvelope struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
}

type messageEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// RespondWithError writes the {"status":"error","message":...} envelope.
func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, errorEnvelope{Status: "error", Message: message})
}

// RespondWithData writes the {"status":"success","data":...} envelope.
func RespondWithData(w http.ResponseWriter, code int, data interface{}) {
	RespondWithJSON(w, code, dataEnvelope{Status: "success", Data: data})
}

// RespondWithMessage writes the {"status":"success","message":...} envelope
// used by delete operations.
func RespondWithMessage(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, messageEnvelope{Status: "success", Message: message})
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"status":"error","message":"failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
