package services

import (
	"github.com/custodia-labs/consolidator/internal/core/domain"
	"github.com/custodia-labs/consolidator/internal/core/ports/driven"
)

// LoadSettings reads settings from a config store over the defaults.
// A nil store yields the defaults.
func LoadSettings(cfg driven.ConfigStore) domain.Settings {
	s := domain.DefaultSettings()
	if cfg == nil {
		return s
	}
	if v := cfg.GetString(domain.SettingIdentityStrategy); v != "" {
		s.IdentityStrategy = v
	}
	s.DataDir = cfg.GetString(domain.SettingDataDir)
	s.Verbose = cfg.GetBool(domain.SettingVerbose)
	return s
}
