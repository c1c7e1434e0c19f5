package store

import (
	"time"

	"github.com/booktrackapp/booktrack/internal/docstore"
	"github.com/booktrackapp/booktrack/internal/domain"
)

// Goals returns a copy of the goal set. Goals are seeded once at first run
// (week/month/year) and never added or removed, only mutated.
func (s *Store) Goals() []domain.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()

	goals := make([]domain.Goal, len(s.goals))
	copy(goals, s.goals)
	return goals
}

// SetGoalTarget changes a goal's target book count. Missing ID is a silent
// no-op. CompletedBooks is untouched here; it is derived state owned by the
// recompute, never settable directly.
func (s *Store) SetGoalTarget(goalID string, targetBooks int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.goals {
		if s.goals[i].ID != goalID {
			continue
		}
		s.goals[i].TargetBooks = targetBooks
		s.goals[i].UpdatedAt = time.Now()

		s.docs.Save(docstore.KeyGoals, s.goals)
		s.evaluateAchievements()
		s.publish()
		return
	}
}

// Achievements returns a copy of the achievement list in catalog order.
func (s *Store) Achievements() []domain.Achievement {
	s.mu.Lock()
	defer s.mu.Unlock()

	achievements := make([]domain.Achievement, len(s.achievements))
	copy(achievements, s.achievements)
	return achievements
}
