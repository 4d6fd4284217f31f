package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/ashwinyue/strato-tools/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LogConfig
		wantLevel zapcore.Level
		wantErr   bool
	}{
		{name: "default level", cfg: config.LogConfig{}, wantLevel: zapcore.InfoLevel},
		{name: "debug development", cfg: config.LogConfig{Level: "debug", Development: true}, wantLevel: zapcore.DebugLevel},
		{name: "warn production", cfg: config.LogConfig{Level: "warn"}, wantLevel: zapcore.WarnLevel},
		{name: "invalid level", cfg: config.LogConfig{Level: "loud"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.wantLevel))
			assert.False(t, logger.Core().Enabled(tt.wantLevel-1))
		})
	}
}
