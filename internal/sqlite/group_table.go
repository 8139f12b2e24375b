package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/henrijaeger/contact-book/pkg/types"
)

// InsertContactGroup inserts a new group row, assigns the generated id back
// onto the in-memory object, and cascade-inserts membership rows for every
// already-persisted member. Returns ErrAlreadyExists if the group's id is
// already present.
func (s *Store) InsertContactGroup(g *types.ContactGroup) (int64, error) {
	exists, err := s.Exists(g)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, fmt.Errorf("%w: contact group %s", types.ErrAlreadyExists, g.ID)
	}

	res, err := s.db.Exec("INSERT INTO contact_group (title) VALUES (?)", g.Title)
	if err != nil {
		return 0, fmt.Errorf("inserting contact group: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading group id: %w", err)
	}
	g.ID = types.NewID(id)

	for _, p := range g.Persons {
		persisted, err := s.Exists(p)
		if err != nil {
			return 0, err
		}
		if persisted {
			if err := s.insertMembership(id, p.ID.Int64()); err != nil {
				return 0, err
			}
		}
	}
	return id, nil
}

// UpdateContactGroup overwrites the title and diffs the belongs_to rows for
// the group against the in-memory member list: removed memberships are
// deleted, new ones inserted. Member persons' own rows are never touched,
// only the edges. Returns ErrNotFound if the group is not stored.
func (s *Store) UpdateContactGroup(g *types.ContactGroup) error {
	exists, err := s.Exists(g)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: contact group %s", types.ErrNotFound, g.ID)
	}

	if _, err := s.db.Exec(
		"UPDATE contact_group SET title = ? WHERE group_id = ?", g.Title, g.ID.Int64(),
	); err != nil {
		return fmt.Errorf("updating contact group %s: %w", g.ID, err)
	}

	stored, err := s.queryInts("SELECT person_id FROM belongs_to WHERE group_id = ?", g.ID.Int64())
	if err != nil {
		return fmt.Errorf("reading members of group %s: %w", g.ID, err)
	}
	storedSet := make(map[int64]bool, len(stored))
	for _, pid := range stored {
		storedSet[pid] = true
	}
	current := make(map[int64]bool)
	for _, p := range g.Persons {
		if p.ID.Valid() {
			current[p.ID.Int64()] = true
		}
	}
	for pid := range current {
		if !storedSet[pid] {
			if err := s.insertMembership(g.ID.Int64(), pid); err != nil {
				return err
			}
		}
	}
	for _, pid := range stored {
		if !current[pid] {
			if _, err := s.db.Exec(
				"DELETE FROM belongs_to WHERE person_id = ? AND group_id = ?", pid, g.ID.Int64(),
			); err != nil {
				return fmt.Errorf("deleting membership: %w", err)
			}
		}
	}
	return nil
}

// DeleteContactGroup deletes the group row; membership edges cascade, the
// member persons survive. Returns ErrNotFound if the group is not stored.
func (s *Store) DeleteContactGroup(g *types.ContactGroup) error {
	exists, err := s.Exists(g)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: contact group %s", types.ErrNotFound, g.ID)
	}
	if _, err := s.db.Exec("DELETE FROM contact_group WHERE group_id = ?", g.ID.Int64()); err != nil {
		return fmt.Errorf("deleting contact group %s: %w", g.ID, err)
	}
	return nil
}

// ContactGroupByID hydrates a group with its full member list. Each member
// is fully hydrated (scalars plus owned children) but its own group list
// stays empty, the mirror image of PersonByID's cycle break.
func (s *Store) ContactGroupByID(id int64) (*types.ContactGroup, error) {
	var title string
	err := s.db.QueryRow("SELECT title FROM contact_group WHERE group_id = ?", id).Scan(&title)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: contact group %d", types.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting contact group %d: %w", id, err)
	}
	g := &types.ContactGroup{ID: types.NewID(id), Title: title}

	memberIDs, err := s.queryInts("SELECT person_id FROM belongs_to WHERE group_id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("reading members of group %d: %w", id, err)
	}
	for _, pid := range memberIDs {
		row := s.db.QueryRow(
			"SELECT person_id, last_name, first_name, birthdate, modification_date FROM person WHERE person_id = ?", pid,
		)
		p, err := hydratePerson(row)
		if err != nil {
			return nil, fmt.Errorf("reading member %d of group %d: %w", pid, id, err)
		}
		if err := s.loadChildren(p); err != nil {
			return nil, err
		}
		g.Persons = append(g.Persons, p)
	}
	return g, nil
}

// AllContactGroups returns every stored group, hydrated via ContactGroupByID.
func (s *Store) AllContactGroups() ([]*types.ContactGroup, error) {
	ids, err := s.queryInts("SELECT group_id FROM contact_group")
	if err != nil {
		return nil, fmt.Errorf("listing contact groups: %w", err)
	}
	groups := make([]*types.ContactGroup, 0, len(ids))
	for _, id := range ids {
		g, err := s.ContactGroupByID(id)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}
