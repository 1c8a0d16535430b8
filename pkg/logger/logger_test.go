package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	tests := []struct {
		env   string
		level string
		want  zap.AtomicLevel
	}{
		{"development", "", zap.NewAtomicLevelAt(zap.DebugLevel)},
		{"production", "", zap.NewAtomicLevelAt(zap.InfoLevel)},
		{"production", "warn", zap.NewAtomicLevelAt(zap.WarnLevel)},
	}

	for _, tc := range tests {
		l, err := New(tc.env, tc.level)
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(tc.want.Level()), "env=%s level=%s", tc.env, tc.level)
		assert.False(t, l.Core().Enabled(tc.want.Level()-1), "env=%s level=%s", tc.env, tc.level)
	}
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New("development", "loud")
	assert.Error(t, err)
}
