// internal/workers/assistant/filter-suggestions/catalog.go
package filtersuggestions

import (
	stderrors "errors"

	"insights-workers/internal/assistant"
	"insights-workers/internal/common/errors"
)

// LoadCatalog loads the suggestion catalog at path, or the built-in one when
// path is empty, and maps failures to CATALOG_* errors.
func LoadCatalog(path string) ([]assistant.ChatSuggestion, error) {
	catalog, err := assistant.LoadCatalog(path)
	switch {
	case err == nil:
		return catalog, nil
	case stderrors.Is(err, assistant.ErrCatalogNotFound):
		return nil, errors.NewCatalogNotFoundError(path, err)
	case stderrors.Is(err, assistant.ErrCatalogInvalid):
		return nil, errors.NewCatalogInvalidError(err)
	default:
		return nil, errors.NewInternalError(err)
	}
}
