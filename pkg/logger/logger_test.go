package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { SetLevel("info") })

	SetLevel("debug")
	assert.Equal(t, zapcore.DebugLevel, Level())

	SetLevel("not-a-level")
	assert.Equal(t, zapcore.DebugLevel, Level())

	SetLevel("")
	assert.Equal(t, zapcore.DebugLevel, Level())

	SetLevel("error")
	assert.Equal(t, zapcore.ErrorLevel, Level())
}
