package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

// envelope is the uniform wrapper around every API response body.
type envelope struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

func writeSuccess(w http.ResponseWriter, data any) {
	writeEnvelope(w, http.StatusOK, envelope{Status: "success", Data: data})
}

func writeFail(w http.ResponseWriter, data any) {
	writeEnvelope(w, http.StatusBadRequest, envelope{Status: "fail", Data: data})
}

func writeServerError(w http.ResponseWriter, op string, err error) {
	log.Printf("ERROR %s: %v", op, err)
	http.Error(w, "Server Error", http.StatusInternalServerError)
}

func writeEnvelope(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env)
}

func msg(text string) map[string]string {
	return map[string]string{"msg": text}
}
