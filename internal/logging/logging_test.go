package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogrusAdapter(t *testing.T) {
	log := NewLogrusAdapter("debug", "json")
	require.NotNil(t, log)

	// An unknown level falls back to info rather than failing.
	log = NewLogrusAdapter("verbose", "text")
	require.NotNil(t, log)
}

func TestLogrusAdapterOutput(t *testing.T) {
	var buf bytes.Buffer
	backend := logrus.New()
	backend.SetOutput(&buf)
	backend.SetLevel(logrus.DebugLevel)
	backend.SetFormatter(&logrus.JSONFormatter{})

	log := NewLogrusAdapterFromLogger(backend)
	log.Info("converting input", F("rows", 3))

	output := buf.String()
	assert.Contains(t, output, "converting input")
	assert.Contains(t, output, `"rows":3`)
}

func TestLogrusAdapterWithError(t *testing.T) {
	var buf bytes.Buffer
	backend := logrus.New()
	backend.SetOutput(&buf)
	backend.SetFormatter(&logrus.JSONFormatter{})

	log := NewLogrusAdapterFromLogger(backend)
	log.WithError(errors.New("boom")).Warn("skipping row")

	output := buf.String()
	assert.Contains(t, output, "skipping row")
	assert.Contains(t, output, "boom")
}

func TestMockLoggerCaptures(t *testing.T) {
	mock := &MockLogger{}
	mock.Info("hello", F("k", "v"))
	mock.Warn("careful")

	require.Len(t, mock.Entries, 2)
	assert.Equal(t, "INFO", mock.Entries[0].Level)
	assert.Equal(t, "hello", mock.Entries[0].Message)
	require.Len(t, mock.Entries[0].Fields, 1)
	assert.Equal(t, "k", mock.Entries[0].Fields[0].Key)
	assert.True(t, mock.HasMessage("careful"))
	assert.False(t, mock.HasMessage("missing"))
}

func TestF(t *testing.T) {
	f := F("key", 42)
	assert.Equal(t, "key", f.Key)
	assert.Equal(t, 42, f.Value)
}
