package logger_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nodalhq/nodal/internal/adapters/logger"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New()
	l.SetOutput(&buf)

	l.Info("ingested scene")
	l.Warn("stale fingerprint")
	l.Error(errors.New("resource gone"))

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "ingested scene")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "stale fingerprint")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "resource gone")
}
