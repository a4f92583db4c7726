// Package handlers provides HTTP handlers for different services across the
// application.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/moneta-labs/security-api/errors"
	log "github.com/sirupsen/logrus"
)

// handleError is a helper function for unified HTTP error handling.
func handleError(rw http.ResponseWriter, err error) {
	log.WithFields(log.Fields{"error": err}).Warn("Request failed")

	// Check if the error was an errors.RequestError
	reqErr, isReqErr := err.(*errors.RequestError)
	if isReqErr {
		// Send error message to client
		http.Error(rw, reqErr.Error(), reqErr.StatusCode)
		return
	}

	// Otherwise do not send data regarding the error
	http.Error(rw, "Error", http.StatusInternalServerError)
}

// handleJsonResponse is a helper function for unified JSON response handling.
func handleJsonResponse(rw http.ResponseWriter, status int, res interface{}) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	if err := json.NewEncoder(rw).Encode(res); err != nil {
		log.WithFields(log.Fields{"error": err}).Warn("Error while encoding response")
	}
}
