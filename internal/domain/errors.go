package domain

import "fmt"

// StatusUnreachable is the APIError status used when no HTTP response arrived.
const StatusUnreachable = 0

// UnreachableMessage is shown when the backend cannot be reached.
const UnreachableMessage = "Kan de server niet bereiken. Draait de backend?"

// APIError is a failed backend call. Message is safe to show to the user.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Unreachable reports whether the request never got an HTTP response.
func (e *APIError) Unreachable() bool {
	return e.Status == StatusUnreachable
}

// ServerErrorMessage is the fallback message for a non-2xx status without detail.
func ServerErrorMessage(status int) string {
	return fmt.Sprintf("Server error (%d)", status)
}
