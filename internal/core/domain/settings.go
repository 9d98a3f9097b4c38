package domain

// Configuration keys in dot notation.
const (
	SettingIdentityStrategy = "identity.strategy"
	SettingDataDir          = "storage.data_dir"
	SettingVerbose          = "output.verbose"
)

// DefaultIdentityStrategy is used when nothing is configured.
const DefaultIdentityStrategy = "path"

// Settings is the effective application configuration.
type Settings struct {
	IdentityStrategy string
	DataDir          string
	Verbose          bool
}

// DefaultSettings returns settings with defaults applied.
func DefaultSettings() Settings {
	return Settings{IdentityStrategy: DefaultIdentityStrategy}
}
