package contactbook

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henrijaeger/contact-book/internal/sqlite"
	"github.com/henrijaeger/contact-book/pkg/types"
)

func newBook(t *testing.T) *Book {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "contact_book_db.sqlite"), zerolog.Nop())
}

// newStoreForTest opens a raw store on the book's database for fixture
// tweaks the facade would override, like backdating timestamps.
func newStoreForTest(t *testing.T, b *Book) *sqlite.Store {
	t.Helper()
	st, err := sqlite.Open(b.path)
	require.NoError(t, err)
	return st
}

func TestSave_InsertFallback(t *testing.T) {
	book := newBook(t)

	p := types.NewPerson("Meier", "Anna", 0)
	id, err := book.Save(p)
	require.NoError(t, err)
	assert.True(t, id.Valid())

	got, err := book.PersonByID(id.Int64())
	require.NoError(t, err)
	assert.Equal(t, "Meier", got.LastName)
	assert.Equal(t, "Anna", got.FirstName)
}

func TestSave_UpdateKeepsID(t *testing.T) {
	book := newBook(t)

	p := types.NewPerson("Meier", "Anna", 0)
	id, err := book.Save(p)
	require.NoError(t, err)
	before := p.ModificationDate

	p.LastName = "Meier-Schulz"
	id2, err := book.Save(p)
	require.NoError(t, err)
	assert.Equal(t, id, id2)
	assert.GreaterOrEqual(t, p.ModificationDate, before)

	got, err := book.PersonByID(id.Int64())
	require.NoError(t, err)
	assert.Equal(t, "Meier-Schulz", got.LastName)
}

func TestSave_Group(t *testing.T) {
	book := newBook(t)

	g, err := types.NewContactGroup("Freunde")
	require.NoError(t, err)
	id, err := book.Save(g)
	require.NoError(t, err)
	assert.True(t, id.Valid())

	g.Title = "Bekannte"
	_, err = book.Save(g)
	require.NoError(t, err)

	groups, err := book.AllContactGroups()
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Bekannte", groups[0].Title)
}

func TestSave_RejectsSyntheticGroup(t *testing.T) {
	book := newBook(t)

	g := types.NewSyntheticContactGroup(AllContactsTitle)
	_, err := book.Save(g)
	assert.ErrorIs(t, err, types.ErrValidation)

	assert.ErrorIs(t, book.Delete(g), types.ErrValidation)
}

func TestDelete_Person(t *testing.T) {
	book := newBook(t)

	p := types.NewPerson("Meier", "Anna", 0)
	id, err := book.Save(p)
	require.NoError(t, err)

	require.NoError(t, book.Delete(p))

	_, err = book.PersonByID(id.Int64())
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestPersonsByContactGroup(t *testing.T) {
	book := newBook(t)

	p := types.NewPerson("Meier", "Anna", 0)
	_, err := book.Save(p)
	require.NoError(t, err)

	g, err := types.NewContactGroup("Freunde", p)
	require.NoError(t, err)
	_, err = book.Save(g)
	require.NoError(t, err)

	members, err := book.PersonsByContactGroup(g)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "Meier", members[0].LastName)
}

func TestPersonsByContactGroup_RequiresPersistedGroup(t *testing.T) {
	book := newBook(t)

	g, err := types.NewContactGroup("Freunde")
	require.NoError(t, err)

	_, err = book.PersonsByContactGroup(g)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestAllContactsGroup_SortsByName(t *testing.T) {
	book := newBook(t)

	for _, name := range [][2]string{{"Weber", "Carl"}, {"Meier", "Anna"}, {"Meier Schulz", "Anna"}} {
		_, err := book.Save(types.NewPerson(name[0], name[1], 0))
		require.NoError(t, err)
	}

	g, err := book.AllContactsGroup()
	require.NoError(t, err)
	assert.True(t, g.Synthetic())
	assert.Equal(t, AllContactsTitle, g.Title)

	// Sort key is last name plus first name with spaces stripped, so
	// "Meier Schulz" sorts between "Meier" and "Weber".
	require.Len(t, g.Persons, 3)
	assert.Equal(t, "Meier", g.Persons[0].LastName)
	assert.Equal(t, "Meier Schulz", g.Persons[1].LastName)
	assert.Equal(t, "Weber", g.Persons[2].LastName)
}

func TestRecentContactsGroup(t *testing.T) {
	book := newBook(t)

	fresh := types.NewPerson("Meier", "Anna", 0)
	_, err := book.Save(fresh)
	require.NoError(t, err)

	stale := types.NewPerson("Weber", "Carl", 0)
	_, err = book.Save(stale)
	require.NoError(t, err)

	// Age the second contact past the 14-day window without going through
	// Save, which would refresh the timestamp.
	stale.ModificationDate = time.Now().Add(-15 * 24 * time.Hour).Unix()
	st := newStoreForTest(t, book)
	require.NoError(t, st.UpdatePerson(stale))
	st.Close()

	g, err := book.RecentContactsGroup()
	require.NoError(t, err)
	assert.True(t, g.Synthetic())
	assert.Equal(t, RecentTitle, g.Title)
	require.Len(t, g.Persons, 1)
	assert.Equal(t, "Meier", g.Persons[0].LastName)
}
