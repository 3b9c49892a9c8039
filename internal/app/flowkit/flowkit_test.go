package flowkit_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/PabloGalante/nuance-coach/internal/app/flowkit"
	"github.com/PabloGalante/nuance-coach/internal/app/flowkit/flowkittest"
	"github.com/PabloGalante/nuance-coach/internal/domain"
)

func TestErrorMessage(t *testing.T) {
	apiErr := &domain.APIError{Status: 422, Message: "Message too long"}
	assert.Equal(t, "Message too long", flowkit.ErrorMessage(apiErr))
	assert.Equal(t, "Message too long", flowkit.ErrorMessage(fmt.Errorf("replies: %w", apiErr)))
	assert.Equal(t, flowkit.GenericErrorMessage, flowkit.ErrorMessage(errors.New("boom")))
}

func TestBlank(t *testing.T) {
	assert.True(t, flowkit.Blank(""))
	assert.True(t, flowkit.Blank(" \n\t "))
	assert.False(t, flowkit.Blank(" hoi "))
}

func TestSequencer(t *testing.T) {
	var s flowkit.Sequencer
	first := s.Next()
	assert.True(t, s.Latest(first))
	second := s.Next()
	assert.False(t, s.Latest(first))
	assert.True(t, s.Latest(second))
}

func TestCopyMarkerClearsAfterWindow(t *testing.T) {
	clock := &flowkittest.Scheduler{}
	var redraws flowkittest.Counter
	m := flowkit.NewCopyMarker(clock.AfterFunc, redraws.Notify)

	assert.Equal(t, -1, m.Index())
	m.Mark(1)
	assert.Equal(t, 1, m.Index())

	clock.Advance(flowkit.CopiedWindow - time.Millisecond)
	assert.Equal(t, 1, m.Index())

	clock.Advance(time.Millisecond)
	assert.Equal(t, -1, m.Index())
	assert.Equal(t, 2, redraws.Count())
}

func TestCopyMarkerRestartsWindowForNewIndex(t *testing.T) {
	clock := &flowkittest.Scheduler{}
	m := flowkit.NewCopyMarker(clock.AfterFunc, nil)

	m.Mark(0)
	clock.Advance(1500 * time.Millisecond)
	m.Mark(2)
	assert.Equal(t, 2, m.Index())
	assert.Equal(t, 1, clock.Pending())

	// The first window would have ended here; the new one must survive it.
	clock.Advance(600 * time.Millisecond)
	assert.Equal(t, 2, m.Index())

	clock.Advance(1400 * time.Millisecond)
	assert.Equal(t, -1, m.Index())
}

func TestCopyMarkerClear(t *testing.T) {
	clock := &flowkittest.Scheduler{}
	var redraws flowkittest.Counter
	m := flowkit.NewCopyMarker(clock.AfterFunc, redraws.Notify)

	m.Clear()
	assert.Zero(t, redraws.Count())

	m.Mark(0)
	m.Clear()
	assert.Equal(t, -1, m.Index())
	assert.Zero(t, clock.Pending())
	assert.Equal(t, 2, redraws.Count())
}

func TestCopyMarkerWithRealClock(t *testing.T) {
	m := flowkit.NewCopyMarker(nil, nil)
	m.Mark(3)
	assert.Equal(t, 3, m.Index())
	m.Clear()
	assert.Equal(t, -1, m.Index())
}
