package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestConfigure(t *testing.T) {
	Init()

	assert.NoError(t, Configure("debug", "json"))
	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, Log.Formatter)

	assert.Error(t, Configure("loud", "text"))
	assert.Equal(t, logrus.DebugLevel, Log.GetLevel(), "level must be unchanged after a bad value")

	Init()
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
}
