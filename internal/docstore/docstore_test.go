package docstore_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booktrackapp/booktrack/internal/docstore"
	"github.com/booktrackapp/booktrack/internal/domain"
)

func setupTestDocStore(t *testing.T) *docstore.DocStore {
	t.Helper()
	ds, err := docstore.Open(filepath.Join(t.TempDir(), "db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { ds.Close() })
	return ds
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ds := setupTestDocStore(t)

	settings := domain.DefaultSettings(time.Now())
	settings.Theme = domain.ThemeDark

	ds.Save(docstore.KeySettings, settings)
	ds.Flush()

	var loaded domain.UserSettings
	require.NoError(t, ds.Load(docstore.KeySettings, &loaded))
	assert.Equal(t, domain.ThemeDark, loaded.Theme)
	assert.Equal(t, "Book Lover", loaded.Profile.DisplayName)
}

func TestLoad_AbsentDocument(t *testing.T) {
	ds := setupTestDocStore(t)

	var books []domain.Book
	err := ds.Load(docstore.KeyBooks, &books)
	assert.ErrorIs(t, err, docstore.ErrAbsent)
}

func TestLoad_WrongShapeFailsLikeAbsent(t *testing.T) {
	ds := setupTestDocStore(t)

	// A document of the wrong shape must surface an error the caller treats
	// exactly like absence: fall back to the default.
	ds.Save(docstore.KeyBooks, map[string]string{"not": "a list"})
	ds.Flush()

	var books []domain.Book
	err := ds.Load(docstore.KeyBooks, &books)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, docstore.ErrAbsent)
}

func TestSave_LastWriteWins(t *testing.T) {
	ds := setupTestDocStore(t)

	for i := 1; i <= 10; i++ {
		ds.Save(docstore.KeyGoals, []domain.Goal{{ID: "goal-1", TargetBooks: i}})
	}
	ds.Flush()

	var goals []domain.Goal
	require.NoError(t, ds.Load(docstore.KeyGoals, &goals))
	require.Len(t, goals, 1)
	assert.Equal(t, 10, goals[0].TargetBooks)
}

func TestSave_CapturesValueAtEnqueueTime(t *testing.T) {
	ds := setupTestDocStore(t)

	books := []domain.Book{{ID: "book-1", Title: "Dune", Status: domain.StatusPlanning}}
	ds.Save(docstore.KeyBooks, books)

	// Mutating the slice after Save must not affect what was queued.
	books[0].Title = "changed"
	ds.Flush()

	var loaded []domain.Book
	require.NoError(t, ds.Load(docstore.KeyBooks, &loaded))
	require.Len(t, loaded, 1)
	assert.Equal(t, "Dune", loaded[0].Title)
}

func TestDocuments_AreIndependent(t *testing.T) {
	ds := setupTestDocStore(t)

	ds.Save(docstore.KeyBooks, map[string]string{"corrupt": "shape"})
	ds.Save(docstore.KeyAchievements, domain.Catalog())
	ds.Flush()

	// One bad document must not block loading the others.
	var books []domain.Book
	assert.Error(t, ds.Load(docstore.KeyBooks, &books))

	var achievements []domain.Achievement
	require.NoError(t, ds.Load(docstore.KeyAchievements, &achievements))
	assert.Len(t, achievements, 10)
}

func TestReopen_PersistsAcrossSessions(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")

	ds, err := docstore.Open(dir, nil)
	require.NoError(t, err)
	ds.Save(docstore.KeyBooks, []domain.Book{{ID: "book-1", Title: "Dune", Status: domain.StatusReading}})
	require.NoError(t, ds.Close())

	reopened, err := docstore.Open(dir, nil)
	require.NoError(t, err)
	defer reopened.Close()

	var books []domain.Book
	require.NoError(t, reopened.Load(docstore.KeyBooks, &books))
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)
}
