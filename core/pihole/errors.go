package pihole

import "fmt"

// APIError is a non-2xx response from the Pi-hole API, carrying the decoded
// error envelope when the body contained one.
type APIError struct {
	StatusCode int
	Key        string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("pihole api: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("pihole api: unexpected status %d", e.StatusCode)
}
