package session

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceWritesDynamicBodies(t *testing.T) {
	s := buildDefault(t)
	var buf bytes.Buffer
	require.NoError(t, s.Trace(&buf, 10, 4, 1.0/60))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, traceHeader, rows[0])
	// frames 4, 8 and the last one; ball and crate each.
	require.Len(t, rows, 1+3*2)
	assert.Equal(t, []string{"4", "4"}, rows[1][:2])
	assert.Equal(t, "ball", rows[1][3])
	assert.Equal(t, "crate", rows[2][3])
	assert.Equal(t, "10", rows[5][0])
	assert.Equal(t, uint64(10), s.World.StepCount())
}

func TestTraceRejectsBadArguments(t *testing.T) {
	s := buildDefault(t)
	assert.Error(t, s.Trace(&bytes.Buffer{}, 5, 0, 1.0/60))
	assert.Error(t, s.Trace(&bytes.Buffer{}, -1, 1, 1.0/60))
	assert.Zero(t, s.World.StepCount())
}
