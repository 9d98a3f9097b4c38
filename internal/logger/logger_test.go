package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withBuffer(t *testing.T, v bool) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	SetOutput(buf)
	SetVerbose(v)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(nil)
	})
	return buf
}

func TestDebug_SilentWhenNotVerbose(t *testing.T) {
	buf := withBuffer(t, false)

	Debug("scanning %d consumers", 3)
	Info("hello")
	Warn("careful")
	Section("Index")

	assert.Empty(t, buf.String())
}

func TestDebug_WritesWhenVerbose(t *testing.T) {
	buf := withBuffer(t, true)

	Debug("scanning %d consumers", 3)

	assert.Contains(t, buf.String(), "scanning 3 consumers")
	assert.Contains(t, buf.String(), "DBG")
}

func TestSection_WritesHeader(t *testing.T) {
	buf := withBuffer(t, true)

	Section("Plan")

	assert.Contains(t, buf.String(), "=== Plan ===")
}

func TestLogger_ComponentField(t *testing.T) {
	buf := withBuffer(t, true)

	log := Logger("executor")
	log.Info().Str("site", "mat.tex").Msg("applied")

	assert.Contains(t, buf.String(), "applied")
	assert.Contains(t, buf.String(), "component=executor")
}

func TestLogger_WarnAlwaysVisible(t *testing.T) {
	buf := withBuffer(t, false)

	log := Logger("gate")
	log.Debug().Msg("hidden")
	log.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestIsVerbose(t *testing.T) {
	_ = withBuffer(t, true)
	assert.True(t, IsVerbose())
	SetVerbose(false)
	assert.False(t, IsVerbose())
}
