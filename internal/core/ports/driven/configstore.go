package driven

// ConfigStore reads and writes application settings.
// Keys use dot notation, for example "identity.strategy".
type ConfigStore interface {
	// GetString returns "" when key is unset or not a string setting.
	GetString(key string) string

	// GetBool returns false when key is unset or not a boolean setting.
	GetBool(key string) bool

	// Set stores a value and persists it. Unknown keys and values of the
	// wrong type fail with domain.ErrInvalidInput.
	Set(key string, value any) error

	// Path is the backing file.
	Path() string
}
