package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("debug", &buf)

	log.WithField("zone_id", "abc").Info("Report accepted")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Report accepted", entry["message"])
	assert.Equal(t, "abc", entry["zone_id"])
	assert.Equal(t, "info", entry["level"])
}

func TestNewWithOutput_Level(t *testing.T) {
	assert.Equal(t, logrus.WarnLevel, NewWithOutput("warn", &bytes.Buffer{}).GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewWithOutput("nonsense", &bytes.Buffer{}).GetLevel())
}
