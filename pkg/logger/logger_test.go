package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"contact-form-backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, "warn", "json")

	log.Info("hidden")
	log.Warn("shown", "state", "DISPATCH_FAILED")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "DISPATCH_FAILED", entry["state"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, "debug", "text")

	log.Debug("dispatching", "kind", "confirmation")

	assert.Contains(t, buf.String(), "dispatching")
	assert.Contains(t, buf.String(), "confirmation")
}

func TestNew_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, "loud", "json")

	log.Debug("hidden")
	assert.Empty(t, buf.String())

	log.Info("shown")
	assert.Contains(t, buf.String(), "shown")
}
