package domain

import "time"

// GoalPeriod is the nominal window a reading goal covers.
type GoalPeriod string

// Goal periods.
const (
	PeriodWeek  GoalPeriod = "week"
	PeriodMonth GoalPeriod = "month"
	PeriodYear  GoalPeriod = "year"
)

// Valid returns true if the period is a recognized value.
func (p GoalPeriod) Valid() bool {
	switch p {
	case PeriodWeek, PeriodMonth, PeriodYear:
		return true
	default:
		return false
	}
}

// Goal is a periodic reading target. CompletedBooks is derived state:
// it is overwritten wholesale on every recompute with the global count of
// finished books, for every goal regardless of period. Period-windowed
// counting is intentionally not implemented.
type Goal struct {
	ID             string     `json:"id"`
	Period         GoalPeriod `json:"period"`
	TargetBooks    int        `json:"target_books"`
	CompletedBooks int        `json:"completed_books"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Progress reports goal completion as a ratio clamped to [0,1].
// A zero target yields 0 rather than a division by zero.
func (g *Goal) Progress() float64 {
	if g.TargetBooks <= 0 {
		return 0
	}
	return min(1.0, float64(g.CompletedBooks)/float64(g.TargetBooks))
}

// DefaultGoals returns the fixed goal set seeded on first run.
// Goals are never added or removed afterwards, only mutated.
func DefaultGoals(newID func() string, now time.Time) []Goal {
	return []Goal{
		{ID: newID(), Period: PeriodWeek, TargetBooks: 2, UpdatedAt: now},
		{ID: newID(), Period: PeriodMonth, TargetBooks: 5, UpdatedAt: now},
		{ID: newID(), Period: PeriodYear, TargetBooks: 24, UpdatedAt: now},
	}
}
