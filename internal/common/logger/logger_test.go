package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level    string
		expected zapcore.Level
		wantErr  bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{"info", zapcore.InfoLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"verbose", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l, err := New(tt.level, "json")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.expected))
			if tt.expected > zapcore.DebugLevel {
				assert.False(t, l.Core().Enabled(tt.expected-1))
			}
		})
	}
}

func TestNewStructured_InvalidLevel(t *testing.T) {
	_, err := NewStructured("loud", "console")
	assert.Error(t, err)
}

func TestZapLogger_Fields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := FromZap(zap.New(core)).WithFields(map[string]interface{}{"taskType": "filter-suggestions"})

	log.Info("job completed", map[string]interface{}{"jobKey": int64(42), "count": 3})
	log.WithError(errors.New("boom")).Error("job failed", nil)

	entries := logs.All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, "job completed", entries[0].Message)
	assert.Equal(t, "filter-suggestions", first["taskType"])
	assert.Equal(t, int64(42), first["jobKey"])

	second := entries[1].ContextMap()
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "boom", second["error"])
	assert.Equal(t, "filter-suggestions", second["taskType"])
}

func TestToZapFields_SortedAndErrors(t *testing.T) {
	fields := toZapFields(map[string]interface{}{
		"b":   1,
		"a":   "x",
		"err": errors.New("bad"),
	})

	require.Len(t, fields, 3)
	assert.Equal(t, "a", fields[0].Key)
	assert.Equal(t, "b", fields[1].Key)
	assert.Equal(t, "err", fields[2].Key)
	assert.Equal(t, zapcore.ErrorType, fields[2].Type)

	assert.Nil(t, toZapFields(nil))
}

func TestNopLogger(t *testing.T) {
	log := NewNopLogger()
	log.Debug("ignored", nil)
	log.WithFields(map[string]interface{}{"k": "v"}).Warn("ignored", nil)
	assert.NoError(t, log.Sync())
}
