package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryKeepsLastCopy(t *testing.T) {
	m := &Memory{}
	_, ok := m.Last()
	assert.False(t, ok)

	assert.NoError(t, m.WriteText("een"))
	assert.NoError(t, m.WriteText("twee"))

	last, ok := m.Last()
	assert.True(t, ok)
	assert.Equal(t, "twee", last)
	assert.Equal(t, 2, m.Len())
}

func TestNewReturnsAClipboard(t *testing.T) {
	assert.NotNil(t, New())
}
