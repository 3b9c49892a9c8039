// Package flowkit holds the plumbing shared by the interpret, reply and style
// flows: error mapping, request sequencing and the copy marker.
package flowkit

import (
	"errors"
	"strings"

	"github.com/PabloGalante/nuance-coach/internal/domain"
)

// GenericErrorMessage is shown for failures that are not a backend APIError.
const GenericErrorMessage = "Er ging iets mis. Probeer het opnieuw."

// ErrorMessage maps an error from the backend client to the message a flow
// displays.
func ErrorMessage(err error) string {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return GenericErrorMessage
}

// Blank reports whether text has no non-whitespace characters.
func Blank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// Notifier is called after every state mutation so the view can redraw.
type Notifier func()

// Notify calls n if it is set.
func (n Notifier) Notify() {
	if n != nil {
		n()
	}
}

// Sequencer hands out tickets for submissions. Only the holder of the latest
// ticket may write the outcome, so a slow earlier response cannot overwrite a
// newer one. It is not safe for concurrent use; guard it with the flow mutex.
type Sequencer struct {
	last uint64
}

func (s *Sequencer) Next() uint64 {
	s.last++
	return s.last
}

func (s *Sequencer) Latest(ticket uint64) bool {
	return ticket == s.last
}
