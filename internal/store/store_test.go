package store_test

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booktrackapp/booktrack/internal/docstore"
	"github.com/booktrackapp/booktrack/internal/domain"
	"github.com/booktrackapp/booktrack/internal/id"
	"github.com/booktrackapp/booktrack/internal/store"
)

func intp(v int) *int { return &v }

// captureEmitter records every published snapshot, synchronously, so tests
// can assert on exactly what observers were shown.
type captureEmitter struct {
	mu        sync.Mutex
	snapshots []domain.Snapshot
}

func (c *captureEmitter) Emit(snapshot domain.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshots = append(c.snapshots, snapshot)
}

func (c *captureEmitter) last(t *testing.T) domain.Snapshot {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	require.NotEmpty(t, c.snapshots)
	return c.snapshots[len(c.snapshots)-1]
}

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, _ := setupTestStoreWithEmitter(t)
	return s
}

func setupTestStoreWithEmitter(t *testing.T) (*store.Store, *captureEmitter) {
	t.Helper()
	docs, err := docstore.Open(filepath.Join(t.TempDir(), "db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { docs.Close() })

	emitter := &captureEmitter{}
	return store.New(docs, nil, emitter), emitter
}

func newBook(title string) domain.Book {
	return domain.Book{
		ID:        id.MustGenerate("book"),
		Title:     title,
		Status:    domain.StatusPlanning,
		Notes:     []domain.Note{},
		CreatedAt: time.Now(),
	}
}

func TestNew_FreshStoreSeedsDefaults(t *testing.T) {
	s := setupTestStore(t)

	assert.Empty(t, s.Books())

	goals := s.Goals()
	require.Len(t, goals, 3)
	assert.Equal(t, domain.PeriodWeek, goals[0].Period)
	assert.Equal(t, domain.PeriodMonth, goals[1].Period)
	assert.Equal(t, domain.PeriodYear, goals[2].Period)

	achievements := s.Achievements()
	require.Len(t, achievements, 10)
	for _, a := range achievements {
		assert.False(t, a.IsUnlocked)
	}

	assert.Equal(t, "Book Lover", s.Settings().Profile.DisplayName)
}

func TestAddBook_InsertsAtHead(t *testing.T) {
	s := setupTestStore(t)

	s.AddBook(newBook("First"))
	s.AddBook(newBook("Second"))

	books := s.Books()
	require.Len(t, books, 2)
	assert.Equal(t, "Second", books[0].Title)
	assert.Equal(t, "First", books[1].Title)
}

func TestAddBook_UnlocksFirstChapterOnly(t *testing.T) {
	s := setupTestStore(t)

	s.AddBook(newBook("A"))

	achievements := s.Achievements()
	assert.True(t, achievements[0].IsUnlocked)
	require.NotNil(t, achievements[0].UnlockedAt)
	for _, a := range achievements[1:] {
		assert.False(t, a.IsUnlocked)
	}
}

func TestDeleteBooks_RemovesExactlyAndKeepsOrder(t *testing.T) {
	s := setupTestStore(t)
	a, b, c, d := newBook("A"), newBook("B"), newBook("C"), newBook("D")
	for _, book := range []domain.Book{a, b, c, d} {
		s.AddBook(book)
	}
	// Current order: D C B A.

	s.DeleteBooks([]string{c.ID, a.ID})

	books := s.Books()
	require.Len(t, books, 2)
	assert.Equal(t, "D", books[0].Title)
	assert.Equal(t, "B", books[1].Title)
}

func TestDeleteBooks_UnknownIDsAreIgnored(t *testing.T) {
	s := setupTestStore(t)
	s.AddBook(newBook("A"))

	s.DeleteBooks([]string{"book-missing"})

	assert.Len(t, s.Books(), 1)
}

func TestFinishBook_UpdatesBookAndEveryGoal(t *testing.T) {
	s := setupTestStore(t)
	b := newBook("A")
	s.AddBook(b)

	before := time.Now()
	s.FinishBook(b.ID, intp(8))

	got, ok := s.GetBook(b.ID)
	require.True(t, ok)
	assert.Equal(t, domain.StatusFinished, got.Status)
	require.NotNil(t, got.EndDate)
	assert.WithinDuration(t, before, *got.EndDate, 2*time.Second)
	require.NotNil(t, got.Rating)
	assert.Equal(t, 8, *got.Rating)

	// Every goal shows the global finished count, regardless of period.
	for _, g := range s.Goals() {
		assert.Equal(t, 1, g.CompletedBooks)
	}

	assert.True(t, s.Achievements()[1].IsUnlocked, "first finished book unlocks Bookmark")
}

func TestFinishBook_WithoutRating(t *testing.T) {
	s := setupTestStore(t)
	b := newBook("A")
	s.AddBook(b)

	s.FinishBook(b.ID, nil)

	got, _ := s.GetBook(b.ID)
	assert.Equal(t, domain.StatusFinished, got.Status)
	assert.Nil(t, got.Rating)
}

func TestFinishBook_FifthUnlocksSmallShelfExactly(t *testing.T) {
	s := setupTestStore(t)
	books := make([]domain.Book, 5)
	for i := range books {
		books[i] = newBook("Book")
		s.AddBook(books[i])
	}

	for i := range 4 {
		s.FinishBook(books[i].ID, nil)
		assert.False(t, s.Achievements()[2].IsUnlocked, "after %d finished", i+1)
	}

	s.FinishBook(books[4].ID, nil)
	assert.True(t, s.Achievements()[2].IsUnlocked)
}

func TestAchievements_MonotonicAcrossMutations(t *testing.T) {
	s := setupTestStore(t)
	b := newBook("A")
	s.AddBook(b)
	require.True(t, s.Achievements()[0].IsUnlocked)

	// Remove the only book: the predicate no longer holds, the unlock stays.
	s.DeleteBooks([]string{b.ID})

	assert.Empty(t, s.Books())
	assert.True(t, s.Achievements()[0].IsUnlocked)
}

func TestSetProgress_PersistsOnlyAndNeverFlipsAchievements(t *testing.T) {
	s := setupTestStore(t)
	b := newBook("A")
	b.TotalPages = intp(100)
	s.AddBook(b)
	unlockedBefore := s.Achievements()

	for page := 10; page <= 50; page += 10 {
		s.SetProgress(b.ID, page)
	}

	got, _ := s.GetBook(b.ID)
	require.NotNil(t, got.CurrentPage)
	assert.Equal(t, 50, *got.CurrentPage)
	assert.Equal(t, unlockedBefore, s.Achievements())
}

func TestSetProgress_NoUpperBoundEnforced(t *testing.T) {
	s := setupTestStore(t)
	b := newBook("A")
	b.TotalPages = intp(100)
	s.AddBook(b)

	// Store-level contract: no validation against total pages.
	s.SetProgress(b.ID, 500)

	got, _ := s.GetBook(b.ID)
	assert.Equal(t, 500, *got.CurrentPage)
	assert.Equal(t, 100, got.ProgressPercent())
}

func TestUpdateBook_ReplacesInPlace(t *testing.T) {
	s := setupTestStore(t)
	a, b := newBook("A"), newBook("B")
	s.AddBook(a)
	s.AddBook(b)

	a.Title = "A (revised)"
	s.UpdateBook(a)

	books := s.Books()
	require.Len(t, books, 2)
	assert.Equal(t, "B", books[0].Title)
	assert.Equal(t, "A (revised)", books[1].Title)
}

func TestUpdateBook_UnknownIDIsSilentNoop(t *testing.T) {
	s := setupTestStore(t)
	s.AddBook(newBook("A"))

	ghost := newBook("Ghost")
	s.UpdateBook(ghost)

	books := s.Books()
	require.Len(t, books, 1)
	assert.Equal(t, "A", books[0].Title)
}

func TestUpdateBook_StatusChangeLeavesGoalsStale(t *testing.T) {
	s := setupTestStore(t)
	b := newBook("A")
	s.AddBook(b)

	// Setting finished via UpdateBook bypasses the goal recompute. This is
	// the documented behavior: goals stay stale until the next triggering
	// mutation.
	b.Status = domain.StatusFinished
	s.UpdateBook(b)

	for _, g := range s.Goals() {
		assert.Equal(t, 0, g.CompletedBooks)
	}

	// The next FinishBook on another book recomputes from the global count.
	other := newBook("B")
	s.AddBook(other)
	s.FinishBook(other.ID, nil)

	for _, g := range s.Goals() {
		assert.Equal(t, 2, g.CompletedBooks)
	}
}

func TestAddNote_PrependsNewestFirst(t *testing.T) {
	s := setupTestStore(t)
	b := newBook("A")
	s.AddBook(b)

	s.AddNote(b.ID, "first note")
	s.AddNote(b.ID, "second note")

	got, _ := s.GetBook(b.ID)
	require.Len(t, got.Notes, 2)
	assert.Equal(t, "second note", got.Notes[0].Text)
	assert.Equal(t, "first note", got.Notes[1].Text)
}

func TestAddNote_UnknownBookIsSilentNoop(t *testing.T) {
	s := setupTestStore(t)

	s.AddNote("book-missing", "into the void")

	assert.Empty(t, s.Books())
}

func TestToggleFavorite_FlipsAndUnlocks(t *testing.T) {
	s := setupTestStore(t)
	b := newBook("A")
	s.AddBook(b)

	s.ToggleFavorite(b.ID)
	got, _ := s.GetBook(b.ID)
	assert.True(t, got.IsFavorite)
	assert.True(t, s.Achievements()[7].IsUnlocked)

	// Flipping back keeps the unlock.
	s.ToggleFavorite(b.ID)
	got, _ = s.GetBook(b.ID)
	assert.False(t, got.IsFavorite)
	assert.True(t, s.Achievements()[7].IsUnlocked)
}

func TestSetGoalTarget_ReachedTargetUnlocksOnTrack(t *testing.T) {
	s := setupTestStore(t)
	b := newBook("A")
	s.AddBook(b)
	s.FinishBook(b.ID, nil)

	weekly := s.Goals()[0]
	s.SetGoalTarget(weekly.ID, 1)

	goals := s.Goals()
	assert.Equal(t, 1, goals[0].TargetBooks)
	assert.True(t, s.Achievements()[8].IsUnlocked)
}

func TestSetSettings_WholesaleReplace(t *testing.T) {
	s := setupTestStore(t)

	settings := s.Settings()
	settings.Language = domain.LanguageRussian
	settings.Theme = domain.ThemeDark
	s.SetSettings(settings)

	got := s.Settings()
	assert.Equal(t, domain.LanguageRussian, got.Language)
	assert.Equal(t, domain.ThemeDark, got.Theme)
}

func TestScenario_AddThenFinish(t *testing.T) {
	s := setupTestStore(t)

	// Start empty: nothing unlocked.
	for _, a := range s.Achievements() {
		require.False(t, a.IsUnlocked)
	}

	a := newBook("A")
	s.AddBook(a)

	achievements := s.Achievements()
	assert.True(t, achievements[0].IsUnlocked)
	for _, ach := range achievements[1:] {
		assert.False(t, ach.IsUnlocked)
	}

	s.FinishBook(a.ID, intp(8))

	for _, g := range s.Goals() {
		assert.Equal(t, 1, g.CompletedBooks)
	}
	assert.True(t, s.Achievements()[1].IsUnlocked)
}

func TestPublish_ObserversSeeEveryMutation(t *testing.T) {
	s, emitter := setupTestStoreWithEmitter(t)

	b := newBook("A")
	s.AddBook(b)
	snapshot := emitter.last(t)
	require.Len(t, snapshot.Books, 1)
	assert.Equal(t, "A", snapshot.Books[0].Title)

	s.SetProgress(b.ID, 42)
	snapshot = emitter.last(t)
	require.NotNil(t, snapshot.Books[0].CurrentPage)
	assert.Equal(t, 42, *snapshot.Books[0].CurrentPage)
}

func TestSnapshot_DoesNotAliasLiveState(t *testing.T) {
	s := setupTestStore(t)
	s.AddBook(newBook("A"))

	snapshot := s.Snapshot()
	snapshot.Books[0].Title = "mutated"
	snapshot.Goals[0].CompletedBooks = 99

	assert.Equal(t, "A", s.Books()[0].Title)
	assert.Equal(t, 0, s.Goals()[0].CompletedBooks)
}

func TestPersistence_StateSurvivesReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")

	docs, err := docstore.Open(dir, nil)
	require.NoError(t, err)
	s := store.New(docs, nil, store.NewNoopEmitter())

	b := newBook("A")
	s.AddBook(b)
	s.FinishBook(b.ID, intp(9))
	s.Flush()
	require.NoError(t, docs.Close())

	reopened, err := docstore.Open(dir, nil)
	require.NoError(t, err)
	defer reopened.Close()
	s2 := store.New(reopened, nil, store.NewNoopEmitter())

	books := s2.Books()
	require.Len(t, books, 1)
	assert.Equal(t, domain.StatusFinished, books[0].Status)
	for _, g := range s2.Goals() {
		assert.Equal(t, 1, g.CompletedBooks)
	}
	assert.True(t, s2.Achievements()[0].IsUnlocked)
	assert.True(t, s2.Achievements()[1].IsUnlocked)
}

func TestPersistence_CorruptDocumentFallsBackPerDocument(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")

	docs, err := docstore.Open(dir, nil)
	require.NoError(t, err)

	// A books document with the wrong shape fails to parse. The other
	// documents are valid and must load regardless.
	docs.Save(docstore.KeyBooks, map[string]string{"oops": "not a list"})

	goals := domain.DefaultGoals(func() string { return id.MustGenerate("goal") }, time.Now())
	goals[2].TargetBooks = 42
	docs.Save(docstore.KeyGoals, goals)

	unlockedAt := time.Now()
	achievements := domain.Catalog()
	achievements[7].IsUnlocked = true
	achievements[7].UnlockedAt = &unlockedAt
	docs.Save(docstore.KeyAchievements, achievements)

	docs.Flush()
	require.NoError(t, docs.Close())

	reopened, err := docstore.Open(dir, nil)
	require.NoError(t, err)
	defer reopened.Close()
	s := store.New(reopened, nil, store.NewNoopEmitter())

	// Books fall back to an empty collection.
	assert.Empty(t, s.Books())

	// Goals loaded from disk, not re-seeded: the edited target survives, and
	// the load-time recompute sets completion from the (empty) collection.
	loaded := s.Goals()
	require.Len(t, loaded, 3)
	assert.Equal(t, goals[2].ID, loaded[2].ID)
	assert.Equal(t, 42, loaded[2].TargetBooks)
	assert.Equal(t, 0, loaded[2].CompletedBooks)

	// The persisted unlock survives even though no book supports it anymore.
	achs := s.Achievements()
	require.Len(t, achs, 10)
	assert.True(t, achs[7].IsUnlocked)
	assert.False(t, achs[0].IsUnlocked)
}
