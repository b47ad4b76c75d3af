package client

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError is a failure reported by the backend itself, as opposed to a
// transport failure.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend error %d", e.StatusCode)
	}
	return fmt.Sprintf("backend error %d: %s", e.StatusCode, e.Message)
}

type envelope struct {
	Success *bool           `json:"success"`
	Message json.RawMessage `json:"message"`
}

// text flattens "message", which is a string on most endpoints and a list of
// strings on validation failures.
func (e envelope) text() string {
	if len(e.Message) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(e.Message, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(e.Message, &list); err == nil {
		return strings.Join(list, "、")
	}
	return ""
}
