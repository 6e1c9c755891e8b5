package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestSetup(t *testing.T) {
	prev := L
	t.Cleanup(func() { L = prev })

	require.NoError(t, Setup("debug"))
	assert.True(t, L.Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, Setup(""))
	assert.False(t, L.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, L.Core().Enabled(zapcore.InfoLevel))

	assert.Error(t, Setup("loud"))
}
