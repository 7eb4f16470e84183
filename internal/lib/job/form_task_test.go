package job

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFormReceivedTask(t *testing.T) {
	task, err := NewFormReceivedTask(12, 42, "interested in a quote")
	require.NoError(t, err)

	assert.Equal(t, TaskFormReceived, task.Type())

	var payload FormReceivedPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, int64(12), payload.EntryID)
	assert.Equal(t, int64(42), payload.CustomerID)
	assert.Equal(t, "interested in a quote", payload.Comment)
}
