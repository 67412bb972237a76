package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturador/pkg/logger"
)

func TestNewWithWriter_JSONConComponente(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "info", false).WithComponent("export")
	log.Info().Str("format", "pdf").Msg("hecho")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "export", entry["component"])
	assert.Equal(t, "pdf", entry["format"])
	assert.Equal(t, "hecho", entry["message"])
}

func TestNewWithWriter_RespetaNivel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "warn", false)
	log.Info().Msg("no debe salir")
	assert.Empty(t, buf.String())

	log.Error().Msg("sí")
	assert.Contains(t, buf.String(), `"level":"error"`)
}

func TestNop_NoEscribe(t *testing.T) {
	assert.NotPanics(t, func() { logger.Nop().Error().Msg("x") })
}
