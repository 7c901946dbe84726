package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_PushAndDrain(t *testing.T) {
	q := NewQueue(8)

	q.Success("campaign saved")
	q.Error("save failed: keywords must be unique")

	items := q.Drain()
	require.Len(t, items, 2)
	assert.Equal(t, LevelSuccess, items[0].Level)
	assert.Equal(t, "campaign saved", items[0].Message)
	assert.Equal(t, LevelError, items[1].Level)
	assert.NotEmpty(t, items[0].ID)
	assert.NotEqual(t, items[0].ID, items[1].ID)

	assert.Empty(t, q.Drain(), "drain empties the queue")
}

func TestQueue_BoundedDropsOldest(t *testing.T) {
	q := NewQueue(2)

	q.Info("one")
	q.Info("two")
	q.Info("three")

	items := q.Drain()
	require.Len(t, items, 2)
	assert.Equal(t, "two", items[0].Message)
	assert.Equal(t, "three", items[1].Message)
}
