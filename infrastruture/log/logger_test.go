package log

import (
	"bytes"
	"testing"

	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	t.Run("Rejects missing arguments", func(t *testing.T) {
		_, err := New("", config.ColorBlue, &bytes.Buffer{})
		assert.Error(t, err)

		_, err = New("APP", config.ColorBlue, nil)
		assert.Error(t, err)
	})

	t.Run("Writes prefix and level", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("MAZE-REPO", config.ColorBlue, &buf)
		require.NoError(t, err)

		l.Info("saved maze")
		l.Warning("slow query")
		l.Error("lost connection")

		out := buf.String()
		assert.Contains(t, out, "[MAZE-REPO]")
		assert.Contains(t, out, "[INFO]")
		assert.Contains(t, out, "saved maze")
		assert.Contains(t, out, "[WARNING]")
		assert.Contains(t, out, "[ERROR]")
		assert.Contains(t, out, "lost connection")
	})

	t.Run("Debug is hidden until enabled", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("APP", config.ColorGreen, &buf)
		require.NoError(t, err)

		l.Debug("hidden")
		assert.Empty(t, buf.String())

		require.NoError(t, l.SetLevel("debug"))
		l.Debug("visible")
		assert.Contains(t, buf.String(), "[DEBUG]")
		assert.Contains(t, buf.String(), "visible")

		assert.Error(t, l.SetLevel("loud"))
	})
}
