package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, format := range []string{FormatAuto, FormatConsole, FormatJSON} {
		t.Run("format="+format, func(t *testing.T) {
			log, sync, err := New(Options{Format: format, Verbose: true})
			require.NoError(t, err)
			assert.True(t, log.V(1).Enabled())
			log.Info("hello", "key", "value")
			_ = sync()
		})
	}
}

func TestNewQuiet(t *testing.T) {
	log, _, err := New(Options{Format: FormatJSON})
	require.NoError(t, err)
	assert.True(t, log.Enabled())
	assert.False(t, log.V(1).Enabled())
}

func TestNewUnknownFormat(t *testing.T) {
	_, _, err := New(Options{Format: "xml"})
	assert.Error(t, err)
}
