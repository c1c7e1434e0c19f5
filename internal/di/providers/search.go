package providers

import (
	"github.com/samber/do/v2"

	"github.com/booktrackapp/booktrack/internal/config"
	"github.com/booktrackapp/booktrack/internal/logger"
	"github.com/booktrackapp/booktrack/internal/search"
)

// SearchIndexHandle wraps the search index with shutdown capability.
// Index is nil when search is disabled.
type SearchIndexHandle struct {
	*search.Index
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	if h.Index == nil {
		return nil
	}
	return h.Close()
}

// ProvideSearchIndex provides the Bleve search index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.Search.Enabled {
		log.Debug("Search disabled")
		return &SearchIndexHandle{}, nil
	}

	index, err := search.Open(search.Options{
		DataPath: cfg.Data.Path,
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	docCount, _ := index.DocumentCount()
	log.Debug("Search index initialized", "documents", docCount)

	return &SearchIndexHandle{Index: index}, nil
}

// WireSearch attaches the search index to the store's mutation pipeline and
// rebuilds the index when it is empty but books exist (fresh index or a
// mapping-version rebuild). Called after the store is up.
func WireSearch(i do.Injector) error {
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	if indexHandle.Index == nil {
		return nil
	}

	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	storeHandle.SetSearchIndexer(indexHandle.Index)

	docCount, _ := indexHandle.DocumentCount()
	if docCount > 0 {
		return nil
	}

	books := storeHandle.Books()
	if len(books) == 0 {
		return nil
	}

	if err := indexHandle.RebuildFrom(books); err != nil {
		log.Warn("Search index rebuild failed", "error", err)
		return nil
	}
	log.Debug("Search index rebuilt", "documents", len(books))
	return nil
}
