package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henrijaeger/contact-book/pkg/types"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "contact_book_db.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInsertPerson_FirstIDIsOne(t *testing.T) {
	s := newStore(t)

	birthdate := time.Date(1955, 3, 12, 0, 0, 0, 0, time.Local).Unix()
	p := types.NewPerson("Meier", "Friedrich", birthdate)

	id, err := s.InsertPerson(p)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, types.NewID(1), p.ID)
	assert.NotZero(t, p.ModificationDate)

	got, err := s.PersonByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Meier", got.LastName)
	assert.Equal(t, "Friedrich", got.FirstName)
	assert.Equal(t, birthdate, got.Birthdate)
	assert.Equal(t, p.ModificationDate, got.ModificationDate)
	assert.Empty(t, got.Groups)
	assert.Empty(t, got.Addresses)
	assert.Empty(t, got.PhoneFields)
	assert.Empty(t, got.CustomFields)
}

func TestInsertPerson_AlreadyExists(t *testing.T) {
	s := newStore(t)

	p := types.NewPerson("Meier", "Anna", 0)
	_, err := s.InsertPerson(p)
	require.NoError(t, err)

	_, err = s.InsertPerson(p)
	assert.ErrorIs(t, err, types.ErrAlreadyExists)
}

func TestInsertPerson_CascadesChildrenAndMemberships(t *testing.T) {
	s := newStore(t)

	g, err := types.NewContactGroup("Freunde")
	require.NoError(t, err)
	_, err = s.InsertContactGroup(g)
	require.NoError(t, err)

	p := types.NewPerson("Meier", "Anna", 0)
	require.NoError(t, p.Add(g))

	a, err := types.NewAddress(p, "Adresse", "Hauptstrasse", "5", "10115", "Berlin")
	require.NoError(t, err)
	require.NoError(t, p.Add(a))
	f, err := types.NewPhoneField(p, "Telefon", "030 1234")
	require.NoError(t, err)
	require.NoError(t, p.Add(f))
	c, err := types.NewCustomField(p, "Privat", "anna@example.com", types.VTypeEMail)
	require.NoError(t, err)
	require.NoError(t, p.Add(c))

	_, err = s.InsertPerson(p)
	require.NoError(t, err)
	assert.True(t, a.ID.Valid())
	assert.True(t, f.ID.Valid())
	assert.True(t, c.ID.Valid())

	got, err := s.PersonByID(p.ID.Int64())
	require.NoError(t, err)
	require.Len(t, got.Addresses, 1)
	assert.Equal(t, "Hauptstrasse", got.Addresses[0].Street)
	assert.Equal(t, "5", got.Addresses[0].HouseNumber)
	require.Len(t, got.PhoneFields, 1)
	assert.Equal(t, "030 1234", got.PhoneFields[0].Number)
	require.Len(t, got.CustomFields, 1)
	assert.Equal(t, types.VTypeEMail, got.CustomFields[0].VType)

	// Groups come back id and title only; their member list stays empty.
	require.Len(t, got.Groups, 1)
	assert.Equal(t, g.ID, got.Groups[0].ID)
	assert.Equal(t, "Freunde", got.Groups[0].Title)
	assert.Empty(t, got.Groups[0].Persons)
}

func TestInsertPerson_SkipsUnsavedGroups(t *testing.T) {
	s := newStore(t)

	g, err := types.NewContactGroup("Nie gespeichert")
	require.NoError(t, err)
	p := types.NewPerson("Meier", "Anna", 0)
	require.NoError(t, p.Add(g))

	_, err = s.InsertPerson(p)
	require.NoError(t, err)

	got, err := s.PersonByID(p.ID.Int64())
	require.NoError(t, err)
	assert.Empty(t, got.Groups)
}

func TestUpdatePerson_NotFound(t *testing.T) {
	s := newStore(t)
	err := s.UpdatePerson(types.NewPerson("Meier", "Anna", 0))
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestUpdatePerson_ReconcilesChildren(t *testing.T) {
	s := newStore(t)

	p := types.NewPerson("Meier", "Anna", 0)
	dropped, err := types.NewPhoneField(p, "Telefon", "030 1111")
	require.NoError(t, err)
	require.NoError(t, p.Add(dropped))
	kept, err := types.NewPhoneField(p, "Telefon", "030 2222")
	require.NoError(t, err)
	require.NoError(t, p.Add(kept))

	_, err = s.InsertPerson(p)
	require.NoError(t, err)

	// Drop one field, change the surviving one, add a fresh one.
	require.NoError(t, p.Remove(dropped))
	kept.Number = "030 3333"
	added, err := types.NewPhoneField(p, "Mobil", "0171 4444")
	require.NoError(t, err)
	require.NoError(t, p.Add(added))

	require.NoError(t, s.UpdatePerson(p))

	got, err := s.PersonByID(p.ID.Int64())
	require.NoError(t, err)
	require.Len(t, got.PhoneFields, 2)

	numbers := map[string]string{}
	for _, f := range got.PhoneFields {
		numbers[f.Label] = f.Number
	}
	assert.Equal(t, map[string]string{"Telefon": "030 3333", "Mobil": "0171 4444"}, numbers)
}

func TestUpdatePerson_ReconcilesMemberships(t *testing.T) {
	s := newStore(t)

	g1, err := types.NewContactGroup("Freunde")
	require.NoError(t, err)
	g2, err := types.NewContactGroup("Verein")
	require.NoError(t, err)
	g3, err := types.NewContactGroup("Arbeit")
	require.NoError(t, err)
	for _, g := range []*types.ContactGroup{g1, g2, g3} {
		_, err := s.InsertContactGroup(g)
		require.NoError(t, err)
	}

	p := types.NewPerson("Meier", "Anna", 0)
	require.NoError(t, p.Add(g1))
	require.NoError(t, p.Add(g2))
	_, err = s.InsertPerson(p)
	require.NoError(t, err)

	require.NoError(t, p.Remove(g1))
	require.NoError(t, p.Add(g3))
	require.NoError(t, s.UpdatePerson(p))

	got, err := s.PersonByID(p.ID.Int64())
	require.NoError(t, err)
	titles := make([]string, 0, len(got.Groups))
	for _, g := range got.Groups {
		titles = append(titles, g.Title)
	}
	assert.ElementsMatch(t, []string{"Verein", "Arbeit"}, titles)
}

func TestDeletePerson_Cascades(t *testing.T) {
	s := newStore(t)

	g, err := types.NewContactGroup("Freunde")
	require.NoError(t, err)
	_, err = s.InsertContactGroup(g)
	require.NoError(t, err)

	p := types.NewPerson("Meier", "Anna", 0)
	require.NoError(t, p.Add(g))
	a, err := types.NewAddress(p, "Adresse", "Weg", "1", "", "")
	require.NoError(t, err)
	require.NoError(t, p.Add(a))
	_, err = s.InsertPerson(p)
	require.NoError(t, err)

	require.NoError(t, s.DeletePerson(p))

	_, err = s.PersonByID(p.ID.Int64())
	assert.ErrorIs(t, err, types.ErrNotFound)

	addresses, err := s.AddressesByPerson(p)
	require.NoError(t, err)
	assert.Empty(t, addresses)

	reloaded, err := s.ContactGroupByID(g.ID.Int64())
	require.NoError(t, err)
	assert.Empty(t, reloaded.Persons)
}

func TestDeletePerson_NotFound(t *testing.T) {
	s := newStore(t)
	err := s.DeletePerson(types.NewPerson("Meier", "Anna", 0))
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestContactGroup_UpdateDiffsMemberships(t *testing.T) {
	s := newStore(t)

	p1 := types.NewPerson("Meier", "Anna", 0)
	p2 := types.NewPerson("Schulz", "Bernd", 0)
	for _, p := range []*types.Person{p1, p2} {
		_, err := s.InsertPerson(p)
		require.NoError(t, err)
	}

	g, err := types.NewContactGroup("Freunde", p1)
	require.NoError(t, err)
	_, err = s.InsertContactGroup(g)
	require.NoError(t, err)

	require.NoError(t, g.Remove(p1))
	require.NoError(t, g.Add(p2))
	g.Title = "Bekannte"
	require.NoError(t, s.UpdateContactGroup(g))

	got, err := s.ContactGroupByID(g.ID.Int64())
	require.NoError(t, err)
	assert.Equal(t, "Bekannte", got.Title)
	require.Len(t, got.Persons, 1)
	assert.Equal(t, "Schulz", got.Persons[0].LastName)
}

func TestContactGroupByID_CycleBreak(t *testing.T) {
	s := newStore(t)

	p := types.NewPerson("Meier", "Anna", 0)
	f, err := types.NewPhoneField(p, "Telefon", "030 1234")
	require.NoError(t, err)
	require.NoError(t, p.Add(f))
	_, err = s.InsertPerson(p)
	require.NoError(t, err)

	g, err := types.NewContactGroup("Freunde", p)
	require.NoError(t, err)
	_, err = s.InsertContactGroup(g)
	require.NoError(t, err)

	got, err := s.ContactGroupByID(g.ID.Int64())
	require.NoError(t, err)
	require.Len(t, got.Persons, 1)

	// Members are fully hydrated except for their own group list.
	member := got.Persons[0]
	assert.Len(t, member.PhoneFields, 1)
	assert.Empty(t, member.Groups)
}

func TestDeleteContactGroup_KeepsMembers(t *testing.T) {
	s := newStore(t)

	p := types.NewPerson("Meier", "Anna", 0)
	_, err := s.InsertPerson(p)
	require.NoError(t, err)

	g, err := types.NewContactGroup("Freunde", p)
	require.NoError(t, err)
	_, err = s.InsertContactGroup(g)
	require.NoError(t, err)

	require.NoError(t, s.DeleteContactGroup(g))

	_, err = s.ContactGroupByID(g.ID.Int64())
	assert.ErrorIs(t, err, types.ErrNotFound)

	got, err := s.PersonByID(p.ID.Int64())
	require.NoError(t, err)
	assert.Empty(t, got.Groups)
}

func TestInsertAddress_RequiresPersistedOwner(t *testing.T) {
	s := newStore(t)

	p := types.NewPerson("Meier", "Anna", 0)
	a, err := types.NewAddress(p, "Adresse", "Weg", "1", "", "")
	require.NoError(t, err)

	_, err = s.InsertAddress(a)
	assert.ErrorIs(t, err, types.ErrValidation)
}

func TestAllPersons(t *testing.T) {
	s := newStore(t)

	for _, name := range []string{"Meier", "Schulz", "Weber"} {
		_, err := s.InsertPerson(types.NewPerson(name, "", 0))
		require.NoError(t, err)
	}

	persons, err := s.AllPersons()
	require.NoError(t, err)
	assert.Len(t, persons, 3)
}
