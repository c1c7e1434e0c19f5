// Package di provides dependency injection configuration for BookTrack.
package di

import (
	"github.com/samber/do/v2"

	"github.com/booktrackapp/booktrack/internal/config"
	"github.com/booktrackapp/booktrack/internal/di/providers"
	"github.com/booktrackapp/booktrack/internal/logger"
)

// NewContainer creates and configures the DI container with all providers.
// The CLI overrides are registered as a value so ProvideConfig can apply them.
func NewContainer(overrides config.Overrides) *do.RootScope {
	injector := do.New()

	do.ProvideValue(injector, overrides)

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Data layer
	do.Provide(injector, providers.ProvideBroadcaster)
	do.Provide(injector, providers.ProvideDocStore)
	do.Provide(injector, providers.ProvideStore)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)

	return injector
}

// Bootstrap initializes all services and returns once the store is loaded
// and the search index is wired. Triggers lazy initialization in dependency
// order so shutdown happens in the reverse order.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.BroadcasterHandle](injector)
	_ = do.MustInvoke[*providers.DocStoreHandle](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)

	return providers.WireSearch(injector)
}
