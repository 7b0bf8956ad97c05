package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "demo.txt")
	l := New(path)
	l.Log("world built")
	l.Logf("bodies=%d bindings=%d", 3, 2)

	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "["))
	assert.True(t, strings.HasSuffix(lines[1], "] bodies=3 bindings=2"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, lines[0]+"\n"+lines[1]+"\n", string(data))
}

func TestMemoryOnly(t *testing.T) {
	l := New("")
	l.Log("frame")
	assert.Len(t, l.Lines(), 1)

	lines := l.Lines()
	lines[0] = "mutated"
	assert.NotEqual(t, "mutated", l.Lines()[0], "Lines must return a copy")
}
