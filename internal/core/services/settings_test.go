package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/consolidator/internal/core/domain"
)

type stubConfig map[string]any

func (c stubConfig) GetString(key string) string {
	s, _ := c[key].(string)
	return s
}

func (c stubConfig) GetBool(key string) bool {
	b, _ := c[key].(bool)
	return b
}

func (c stubConfig) Set(key string, value any) error {
	c[key] = value
	return nil
}

func (c stubConfig) Path() string { return "" }

func TestLoadSettings_Defaults(t *testing.T) {
	s := LoadSettings(nil)

	assert.Equal(t, domain.DefaultSettings(), s)
	assert.Equal(t, "path", s.IdentityStrategy)
}

func TestLoadSettings_FromConfig(t *testing.T) {
	cfg := stubConfig{
		domain.SettingIdentityStrategy: "content",
		domain.SettingDataDir:          "/tmp/project",
		domain.SettingVerbose:          true,
	}

	s := LoadSettings(cfg)

	assert.Equal(t, "content", s.IdentityStrategy)
	assert.Equal(t, "/tmp/project", s.DataDir)
	assert.True(t, s.Verbose)
}

func TestLoadSettings_EmptyStrategyKeepsDefault(t *testing.T) {
	s := LoadSettings(stubConfig{domain.SettingIdentityStrategy: ""})

	assert.Equal(t, domain.DefaultIdentityStrategy, s.IdentityStrategy)
}
