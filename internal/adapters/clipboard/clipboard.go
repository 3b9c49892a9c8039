// Package clipboard adapts the system clipboard to domain.Clipboard.
package clipboard

import (
	"sync"

	"github.com/atotto/clipboard"

	"github.com/PabloGalante/nuance-coach/internal/domain"
	"github.com/PabloGalante/nuance-coach/internal/observability"
)

// System writes to the OS clipboard (pbcopy, xclip/xsel/wl-copy, Windows API).
type System struct{}

func (System) WriteText(text string) error {
	return clipboard.WriteAll(text)
}

// Memory keeps copied text in process. Used when no system clipboard is
// available and in tests.
type Memory struct {
	mu      sync.Mutex
	history []string
}

func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append(m.history, text)
	return nil
}

// Last returns the most recently copied text.
func (m *Memory) Last() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.history) == 0 {
		return "", false
	}
	return m.history[len(m.history)-1], true
}

// Len returns the number of copies made.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.history)
}

// New returns the system clipboard, or an in-memory one when the platform has
// no clipboard utility.
func New() domain.Clipboard {
	if clipboard.Unsupported {
		observability.Logger().Warn("system clipboard unavailable, copies stay in memory")
		return &Memory{}
	}
	return System{}
}
