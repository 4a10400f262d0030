package evaluation

import (
	"context"
	"fmt"
	"strings"

	"github.com/pacerode/evaluator/internal/domain"
	"github.com/pacerode/evaluator/internal/static/errs"
)

// resolveLanguage maps a human-readable language name to an engine catalog
// entry. Matching is case-insensitive substring against the entry name, so
// "python" resolves to e.g. "Python (3.11.2)". The first catalog entry that
// matches wins; the chosen entry is logged because the match can be
// ambiguous when several entries contain the requested name.
func (s *EvaluationService) resolveLanguage(ctx context.Context, name string) (domain.EngineLanguage, error) {
	catalog, err := s.catalog(ctx)
	if err != nil {
		return domain.EngineLanguage{}, err
	}

	needle := strings.ToLower(strings.TrimSpace(name))
	if needle != "" {
		for _, lang := range catalog {
			if strings.Contains(strings.ToLower(lang.Name), needle) {
				s.logger.Info("Resolved language",
					"requested", name,
					"matched", lang.Name,
					"languageId", lang.ID)
				return lang, nil
			}
		}
	}

	return domain.EngineLanguage{}, fmt.Errorf("%w: %q", errs.UnsupportedLanguage, name)
}

// catalog returns the engine language catalog, preferring the cache. Cache
// failures are logged and fall through to the engine; the catalog query
// itself failing means the engine is unavailable.
func (s *EvaluationService) catalog(ctx context.Context) ([]domain.EngineLanguage, error) {
	if cached, err := s.langCache.GetCatalog(ctx); err != nil {
		s.logger.Warn("Language cache read failed", "error", err)
	} else if cached != nil {
		return cached, nil
	}

	catalog, err := s.engine.Languages(ctx)
	if err != nil {
		s.logger.Error("Language catalog query failed", "error", err)
		return nil, fmt.Errorf("%w: language catalog: %v", errs.EngineUnavailable, err)
	}

	if err := s.langCache.PutCatalog(ctx, catalog); err != nil {
		s.logger.Warn("Language cache write failed", "error", err)
	}

	return catalog, nil
}
