package secondary

import (
	"context"

	"github.com/pacerode/evaluator/internal/domain"
)

// LanguageCache caches the engine's language catalog between evaluations.
type LanguageCache interface {
	// GetCatalog returns the cached catalog, or (nil, nil) on a miss.
	GetCatalog(ctx context.Context) ([]domain.EngineLanguage, error)

	// PutCatalog stores the catalog with the configured TTL.
	PutCatalog(ctx context.Context, catalog []domain.EngineLanguage) error
}
