package utils

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse represents a structured error response.
// The shape follows the Boom payload: statusCode, error, message, details.
type ErrorResponse struct {
	StatusCode int                    `json:"statusCode"`
	Error      string                 `json:"error"`
	Message    string                 `json:"message,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return nil
	}

	return json.NewEncoder(w).Encode(data)
}

// WriteBody writes raw bytes with an explicit content type
func WriteBody(w http.ResponseWriter, status int, contentType string, body []byte) error {
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(status)
	if len(body) == 0 {
		return nil
	}
	_, err := w.Write(body)
	return err
}

// InternalErrorMessage is the only message clients see for 5xx responses.
const InternalErrorMessage = "An internal server error occurred"

// NewErrorResponse builds the error body for status.
func NewErrorResponse(status int, message string, details map[string]interface{}) ErrorResponse {
	errorType := http.StatusText(status)
	if errorType == "" {
		errorType = "Unknown"
	}
	return ErrorResponse{
		StatusCode: status,
		Error:      errorType,
		Message:    message,
		Details:    details,
	}
}

// WriteError writes an error response based on the status code
func WriteError(w http.ResponseWriter, status int, message string, details map[string]interface{}) error {
	return WriteJSON(w, status, NewErrorResponse(status, message, details))
}
