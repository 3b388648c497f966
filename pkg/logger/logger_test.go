package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gestormotorep-source/Gestor-moto-sub003/pkg/logger"
)

func TestNew_EstampaElServicioEnCadaLinea(t *testing.T) {
	l := logger.New(logger.Config{
		Env:      "production",
		Level:    "info",
		Servicio: "gestor-moto",
	})

	var buf bytes.Buffer
	zl := l.Zerolog().Output(&buf)
	zl.Info().Msg("listo")

	assert.Contains(t, buf.String(), `"servicio":"gestor-moto"`)
}

func TestNew_NivelDesconocidoCaeEnInfo(t *testing.T) {
	l := logger.New(logger.Config{Env: "production", Level: "detallado"})

	var buf bytes.Buffer
	zl := l.Zerolog().Output(&buf)
	zl.Debug().Msg("no debería salir")
	zl.Info().Msg("sí sale")

	assert.NotContains(t, buf.String(), "no debería salir")
	assert.Contains(t, buf.String(), "sí sale")
}
