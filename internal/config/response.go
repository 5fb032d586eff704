package config

import (
	"encoding/json"
	"net/http"
)

func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		Logger.WithError(err).Error("Failed to encode JSON response")
	}
}

// Message writes the {result, message} envelope used by the account endpoints.
func Message(w http.ResponseWriter, status int, result bool, message string) {
	JSON(w, status, map[string]interface{}{
		"result":  result,
		"message": message,
	})
}
