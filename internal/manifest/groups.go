package manifest

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/consolidator/internal/core/domain"
)

// GroupEntry is a duplicate group as written by a user. Members are
// asset ids or host paths; the caller resolves them.
type GroupEntry struct {
	Master     string   `toml:"master"`
	Duplicates []string `toml:"duplicates"`
}

type groupsFile struct {
	Groups []GroupEntry `toml:"groups"`
}

// LoadGroups parses a groups file.
func LoadGroups(path string) ([]GroupEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading groups: %w", err)
	}
	return ParseGroups(data)
}

// ParseGroups decodes groups TOML.
func ParseGroups(data []byte) ([]GroupEntry, error) {
	var f groupsFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: parsing groups: %w", domain.ErrInvalidInput, err)
	}
	for i, g := range f.Groups {
		if g.Master == "" {
			return nil, fmt.Errorf("%w: group %d has no master", domain.ErrInvalidInput, i)
		}
	}
	return f.Groups, nil
}

// EncodeGroups renders groups as TOML, the inverse of ParseGroups.
func EncodeGroups(groups []GroupEntry) ([]byte, error) {
	return toml.Marshal(groupsFile{Groups: groups})
}
