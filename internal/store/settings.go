package store

import (
	"github.com/booktrackapp/booktrack/internal/docstore"
	"github.com/booktrackapp/booktrack/internal/domain"
)

// Settings returns the current user settings.
func (s *Store) Settings() domain.UserSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// SetSettings replaces the settings wholesale and persists only the settings
// document. No derived recomputation: settings carry no business invariants.
func (s *Store) SetSettings(settings domain.UserSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = settings
	s.docs.Save(docstore.KeySettings, s.settings)
	s.publish()

	if s.logger != nil {
		s.logger.Info("settings updated", "language", settings.Language, "theme", settings.Theme)
	}
}
