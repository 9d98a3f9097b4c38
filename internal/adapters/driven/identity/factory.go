package identity

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/consolidator/internal/core/domain"
	"github.com/custodia-labs/consolidator/internal/core/ports/driven"
)

// Strategy names accepted by New.
const (
	StrategyPath    = "path"
	StrategyContent = "content"
)

// ValidateStrategy returns ErrInvalidInput for an unknown strategy name.
func ValidateStrategy(strategy string) error {
	switch normalize(strategy) {
	case "", StrategyPath, StrategyContent:
		return nil
	default:
		return fmt.Errorf("%w: unknown identity strategy %q", domain.ErrInvalidInput, strategy)
	}
}

// New creates the resolver for a strategy name. An empty name selects
// the path strategy.
func New(strategy string, reader ContentReader) (driven.IdentityResolver, error) {
	if err := ValidateStrategy(strategy); err != nil {
		return nil, err
	}
	switch normalize(strategy) {
	case StrategyContent:
		if reader == nil {
			return nil, fmt.Errorf("%w: content strategy requires a content reader", domain.ErrInvalidInput)
		}
		return NewContentResolver(reader), nil
	default:
		return NewPathResolver(), nil
	}
}

func normalize(strategy string) string {
	return strings.ToLower(strings.TrimSpace(strategy))
}
