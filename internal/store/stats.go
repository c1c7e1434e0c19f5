package store

import (
	"sort"

	"github.com/booktrackapp/booktrack/internal/domain"
)

// Statistics projections: read-only aggregates computed on demand from the
// current state. Collections are small enough that recompute-on-read beats
// any caching scheme.

// TotalReadPages sums current pages over books being read or finished.
func (s *Store) TotalReadPages() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for i := range s.books {
		b := &s.books[i]
		if b.Status != domain.StatusReading && b.Status != domain.StatusFinished {
			continue
		}
		if b.CurrentPage != nil {
			total += *b.CurrentPage
		}
	}
	return total
}

// AverageRating is the mean rating over finished books that carry one,
// or 0 when none do.
func (s *Store) AverageRating() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum, count := 0, 0
	for i := range s.books {
		b := &s.books[i]
		if b.Status == domain.StatusFinished && b.Rating != nil {
			sum += *b.Rating
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}

// TotalPagesRead counts a finished book at its full page count and everything
// else at its current page (or 0 when unknown).
func (s *Store) TotalPagesRead() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for i := range s.books {
		b := &s.books[i]
		if b.Status == domain.StatusFinished {
			if b.TotalPages != nil {
				total += *b.TotalPages
			}
		} else if b.CurrentPage != nil {
			total += *b.CurrentPage
		}
	}
	return total
}

// AveragePagesPerBook is total pages over finished books divided by their
// count, or 0 when nothing is finished.
func (s *Store) AveragePagesPerBook() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	pages, count := 0, 0
	for i := range s.books {
		b := &s.books[i]
		if b.Status != domain.StatusFinished {
			continue
		}
		count++
		if b.TotalPages != nil {
			pages += *b.TotalPages
		}
	}
	if count == 0 {
		return 0
	}
	return pages / count
}

// GenreBreakdown counts books per genre, descending by count. Books without
// a genre are excluded. Ties order alphabetically so output is stable.
func (s *Store) GenreBreakdown() []domain.GenreCount {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[string]int)
	for i := range s.books {
		if s.books[i].Genre != nil && *s.books[i].Genre != "" {
			counts[*s.books[i].Genre]++
		}
	}

	breakdown := make([]domain.GenreCount, 0, len(counts))
	for genre, count := range counts {
		breakdown = append(breakdown, domain.GenreCount{Genre: genre, Count: count})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Count != breakdown[j].Count {
			return breakdown[i].Count > breakdown[j].Count
		}
		return breakdown[i].Genre < breakdown[j].Genre
	})
	return breakdown
}

// RecentlyFinished returns up to n finished books in current collection
// order — insertion order, not sorted by finish date.
func (s *Store) RecentlyFinished(n int) []domain.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	recent := make([]domain.Book, 0, n)
	for i := range s.books {
		if len(recent) == n {
			break
		}
		if s.books[i].Status == domain.StatusFinished {
			recent = append(recent, s.books[i].Clone())
		}
	}
	return recent
}
