// Package contactbook is the use-case facade over the relational store. It
// dispatches save/delete/query operations by entity variant and manages the
// store connection lifecycle: every operation opens its own connection and
// releases it on every exit path.
package contactbook

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/henrijaeger/contact-book/internal/sqlite"
	"github.com/henrijaeger/contact-book/pkg/types"
)

// Titles of the synthetic, presentation-only groups.
const (
	AllContactsTitle = "Alle Kontakte"
	RecentTitle      = "Letzte 14 Tage"
)

// recentWindow is how far back the "Letzte 14 Tage" group looks.
const recentWindow = 14 * 24 * time.Hour

// Book is the contact-book facade. It holds the database path; connections
// are opened per operation, never pooled or reused.
type Book struct {
	path string
	log  zerolog.Logger
}

// New returns a facade over the SQLite database at path. The logger may be
// zerolog.Nop().
func New(path string, log zerolog.Logger) *Book {
	return &Book{path: path, log: log}
}

// Save persists a Person or ContactGroup: it attempts an update first and
// falls back to insert when the entity is not yet stored. Person saves
// refresh the modification timestamp before the update attempt. The
// returned ID is the entity's id after the save. Synthetic groups and any
// other entity variant are rejected.
func (b *Book) Save(entity types.Entity) (types.ID, error) {
	switch e := entity.(type) {
	case *types.Person:
		st, err := sqlite.Open(b.path)
		if err != nil {
			return types.ID{}, err
		}
		defer st.Close()

		e.ModificationDate = time.Now().Unix()
		err = st.UpdatePerson(e)
		if errors.Is(err, types.ErrNotFound) {
			if _, err := st.InsertPerson(e); err != nil {
				return types.ID{}, err
			}
			b.log.Debug().Stringer("person_id", e.ID).Msg("person inserted")
			return e.ID, nil
		}
		if err != nil {
			return types.ID{}, err
		}
		b.log.Debug().Stringer("person_id", e.ID).Msg("person updated")
		return e.ID, nil

	case *types.ContactGroup:
		if e.Synthetic() {
			return types.ID{}, fmt.Errorf("%w: synthetic group %q cannot be persisted", types.ErrValidation, e.Title)
		}
		st, err := sqlite.Open(b.path)
		if err != nil {
			return types.ID{}, err
		}
		defer st.Close()

		err = st.UpdateContactGroup(e)
		if errors.Is(err, types.ErrNotFound) {
			if _, err := st.InsertContactGroup(e); err != nil {
				return types.ID{}, err
			}
			return e.ID, nil
		}
		if err != nil {
			return types.ID{}, err
		}
		return e.ID, nil

	default:
		return types.ID{}, fmt.Errorf("%w: got %s, want one of %s, %s",
			types.ErrUnsupportedEntity, entity.Kind(), types.KindPerson, types.KindContactGroup)
	}
}

// Delete removes a Person or ContactGroup from storage. Owned children and
// membership edges go with a person; only the edges go with a group.
// Synthetic groups and any other entity variant are rejected.
func (b *Book) Delete(entity types.Entity) error {
	switch e := entity.(type) {
	case *types.Person:
		st, err := sqlite.Open(b.path)
		if err != nil {
			return err
		}
		defer st.Close()
		return st.DeletePerson(e)

	case *types.ContactGroup:
		if e.Synthetic() {
			return fmt.Errorf("%w: synthetic group %q cannot be deleted", types.ErrValidation, e.Title)
		}
		st, err := sqlite.Open(b.path)
		if err != nil {
			return err
		}
		defer st.Close()
		return st.DeleteContactGroup(e)

	default:
		return fmt.Errorf("%w: got %s, want one of %s, %s",
			types.ErrUnsupportedEntity, entity.Kind(), types.KindPerson, types.KindContactGroup)
	}
}

// AllPersons returns every stored person.
func (b *Book) AllPersons() ([]*types.Person, error) {
	st, err := sqlite.Open(b.path)
	if err != nil {
		return nil, err
	}
	defer st.Close()
	return st.AllPersons()
}

// AllContactGroups returns every stored group with hydrated member lists.
func (b *Book) AllContactGroups() ([]*types.ContactGroup, error) {
	st, err := sqlite.Open(b.path)
	if err != nil {
		return nil, err
	}
	defer st.Close()
	return st.AllContactGroups()
}

// PersonsByContactGroup returns the members of the given group, freshly
// loaded from storage. The group must already carry a persisted id.
func (b *Book) PersonsByContactGroup(g *types.ContactGroup) ([]*types.Person, error) {
	if !g.ID.Valid() {
		return nil, fmt.Errorf("%w: contact group must be persisted", types.ErrNotFound)
	}
	st, err := sqlite.Open(b.path)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	stored, err := st.ContactGroupByID(g.ID.Int64())
	if err != nil {
		return nil, err
	}
	return stored.Persons, nil
}

// PersonByID returns the stored person with the given id.
func (b *Book) PersonByID(id int64) (*types.Person, error) {
	st, err := sqlite.Open(b.path)
	if err != nil {
		return nil, err
	}
	defer st.Close()
	return st.PersonByID(id)
}

// ContactGroupByID returns the stored group with the given id.
func (b *Book) ContactGroupByID(id int64) (*types.ContactGroup, error) {
	st, err := sqlite.Open(b.path)
	if err != nil {
		return nil, err
	}
	defer st.Close()
	return st.ContactGroupByID(id)
}

// AllContactsGroup returns the synthetic "Alle Kontakte" group: every
// stored person, sorted lexically by last plus first name with spaces
// stripped. The group is presentation-only and can never be saved.
func (b *Book) AllContactsGroup() (*types.ContactGroup, error) {
	persons, err := b.AllPersons()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(persons, func(i, j int) bool {
		return sortName(persons[i]) < sortName(persons[j])
	})
	return types.NewSyntheticContactGroup(AllContactsTitle, persons...), nil
}

// RecentContactsGroup returns the synthetic "Letzte 14 Tage" group: every
// person modified within the last 14 days, newest first. The group is
// presentation-only and can never be saved.
func (b *Book) RecentContactsGroup() (*types.ContactGroup, error) {
	persons, err := b.AllPersons()
	if err != nil {
		return nil, err
	}
	cutoff := time.Now().Add(-recentWindow).Unix()
	var recent []*types.Person
	for _, p := range persons {
		if p.ModificationDate > cutoff {
			recent = append(recent, p)
		}
	}
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].ModificationDate > recent[j].ModificationDate
	})
	return types.NewSyntheticContactGroup(RecentTitle, recent...), nil
}

func sortName(p *types.Person) string {
	return strings.ReplaceAll(p.LastName+p.FirstName, " ", "")
}
