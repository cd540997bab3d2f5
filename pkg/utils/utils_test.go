package utils

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewULIDFromTimestamp(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	id, err := New().NewULIDFromTimestamp(now)
	require.NoError(t, err)

	parsed, err := ulid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, ulid.Timestamp(now), parsed.Time())
}

func TestFixedPicker(t *testing.T) {
	assert.Equal(t, 0, FixedPicker(0).Intn(3))
	assert.Equal(t, 2, FixedPicker(2).Intn(3))
	assert.Equal(t, 2, FixedPicker(7).Intn(3))
	assert.Equal(t, 0, FixedPicker(-1).Intn(3))
	assert.Equal(t, 0, FixedPicker(4).Intn(0))
}

func TestRandomPickerStaysInRange(t *testing.T) {
	p := NewRandomPicker()
	assert.Equal(t, 0, p.Intn(1))
	for i := 0; i < 100; i++ {
		n := p.Intn(4)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 4)
	}
}
