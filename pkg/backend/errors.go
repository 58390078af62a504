package backend

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// APIError carries a non-2xx backend response: the HTTP status plus the
// server-reported message, preserved verbatim so transports can surface it.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend: remote error %d", e.Status)
	}
	return fmt.Sprintf("backend: remote error %d: %s", e.Status, e.Message)
}

// Unauthorized reports whether the error is an authorization rejection.
func (e *APIError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// decodeAPIError builds an APIError from a failed response body. The backend
// reports failures as {"error": "..."}; anything else falls back to the raw
// body text.
func decodeAPIError(status int, body io.Reader) *APIError {
	raw, _ := io.ReadAll(io.LimitReader(body, 64<<10))
	var envelope errorEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Error != "" {
			return &APIError{Status: status, Message: envelope.Error}
		}
		if envelope.Message != "" {
			return &APIError{Status: status, Message: envelope.Message}
		}
	}
	return &APIError{Status: status, Message: strings.TrimSpace(string(raw))}
}
