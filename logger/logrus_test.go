package logger

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogrusLogger_Level(t *testing.T) {
	l := NewLogrusLogger("debug", "text")
	assert.Equal(t, logrus.DebugLevel, l.base.GetLevel())

	l = NewLogrusLogger("not-a-level", "text")
	assert.Equal(t, logrus.InfoLevel, l.base.GetLevel())
}

func TestNewLogrusLogger_Format(t *testing.T) {
	l := NewLogrusLogger("info", "JSON")
	_, ok := l.base.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok)

	l = NewLogrusLogger("info", "")
	_, ok = l.base.Formatter.(*logrus.TextFormatter)
	assert.True(t, ok)
}

func TestLogrusLogger_Fields(t *testing.T) {
	base, hook := test.NewNullLogger()
	l := New(base)

	l.Warn(context.Background(), "target is unavailable", map[string]interface{}{
		"target":  "http://db:5432",
		"attempt": 2,
	})

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "target is unavailable", entry.Message)
	assert.Equal(t, "http://db:5432", entry.Data["target"])
	assert.Equal(t, 2, entry.Data["attempt"])
}

func TestLogrusLogger_LevelFiltering(t *testing.T) {
	base, hook := test.NewNullLogger()
	l := New(base)

	l.Debug(context.Background(), "hidden", nil)
	assert.Empty(t, hook.AllEntries())

	l.Error(context.Background(), "shown", nil)
	assert.Len(t, hook.AllEntries(), 1)
}
