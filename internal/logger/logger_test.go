package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInit_Level(t *testing.T) {
	Init("debug")
	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())

	Init("nonsense")
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, Log.Formatter)

	SetTextFormatter()
	assert.IsType(t, &logrus.TextFormatter{}, Log.Formatter)
}

func TestL_BeforeInit(t *testing.T) {
	Log = nil
	assert.Same(t, logrus.StandardLogger(), L())
}
