package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/henrijaeger/contact-book/pkg/types"
)

// InsertPerson inserts a new person row, assigns the generated id back onto
// the in-memory object, and cascade-inserts the person's memberships (for
// every already-persisted group) and owned children. Returns
// ErrAlreadyExists if the person's id is already present.
func (s *Store) InsertPerson(p *types.Person) (int64, error) {
	exists, err := s.Exists(p)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, fmt.Errorf("%w: person %s", types.ErrAlreadyExists, p.ID)
	}

	modification := time.Now().Unix()
	res, err := s.db.Exec(
		"INSERT INTO person (modification_date, last_name, first_name, birthdate) VALUES (?, ?, ?, ?)",
		modification, p.LastName, p.FirstName, nullableEpoch(p.Birthdate),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting person: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading person id: %w", err)
	}
	p.ID = types.NewID(id)
	p.ModificationDate = modification

	for _, g := range p.Groups {
		persisted, err := s.Exists(g)
		if err != nil {
			return 0, err
		}
		if persisted {
			if err := s.insertMembership(g.ID.Int64(), id); err != nil {
				return 0, err
			}
		}
	}
	for _, a := range p.Addresses {
		if _, err := s.InsertAddress(a); err != nil {
			return 0, err
		}
	}
	for _, f := range p.PhoneFields {
		if _, err := s.InsertPhoneField(f); err != nil {
			return 0, err
		}
	}
	for _, f := range p.CustomFields {
		if _, err := s.InsertCustomField(f); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// UpdatePerson reconciles the stored person with the in-memory aggregate:
// scalar columns are overwritten, then memberships and each owned child
// collection are diffed against storage. Stored rows absent from the
// in-memory lists are deleted; in-memory children are upserted (insert, or
// update-in-place when their id already exists). Returns ErrNotFound if the
// person is not stored.
func (s *Store) UpdatePerson(p *types.Person) error {
	exists, err := s.Exists(p)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: person %s", types.ErrNotFound, p.ID)
	}

	_, err = s.db.Exec(
		"UPDATE person SET modification_date = ?, last_name = ?, first_name = ?, birthdate = ? WHERE person_id = ?",
		p.ModificationDate, p.LastName, p.FirstName, nullableEpoch(p.Birthdate), p.ID.Int64(),
	)
	if err != nil {
		return fmt.Errorf("updating person %s: %w", p.ID, err)
	}

	if err := s.reconcileMemberships(p); err != nil {
		return err
	}
	if err := s.reconcileAddresses(p); err != nil {
		return err
	}
	if err := s.reconcilePhoneFields(p); err != nil {
		return err
	}
	return s.reconcileCustomFields(p)
}

// reconcileMemberships diffs the person's persisted group ids against the
// belongs_to rows for that person. Only persisted ids participate; a group
// that has never been saved has no edge to reconcile.
func (s *Store) reconcileMemberships(p *types.Person) error {
	stored, err := s.queryInts("SELECT group_id FROM belongs_to WHERE person_id = ?", p.ID.Int64())
	if err != nil {
		return fmt.Errorf("reading memberships for person %s: %w", p.ID, err)
	}
	current := make(map[int64]bool)
	for _, g := range p.Groups {
		if g.ID.Valid() {
			current[g.ID.Int64()] = true
		}
	}
	for _, gid := range stored {
		if !current[gid] {
			if _, err := s.db.Exec(
				"DELETE FROM belongs_to WHERE group_id = ? AND person_id = ?", gid, p.ID.Int64(),
			); err != nil {
				return fmt.Errorf("deleting membership: %w", err)
			}
		}
	}
	storedSet := make(map[int64]bool, len(stored))
	for _, gid := range stored {
		storedSet[gid] = true
	}
	for gid := range current {
		if !storedSet[gid] {
			if err := s.insertMembership(gid, p.ID.Int64()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Store) reconcileAddresses(p *types.Person) error {
	stored, err := s.queryInts("SELECT address_id FROM address WHERE person_id = ?", p.ID.Int64())
	if err != nil {
		return fmt.Errorf("reading addresses for person %s: %w", p.ID, err)
	}
	keep := make(map[int64]bool)
	for _, a := range p.Addresses {
		if a.ID.Valid() {
			keep[a.ID.Int64()] = true
		}
	}
	for _, id := range stored {
		if !keep[id] {
			if _, err := s.db.Exec("DELETE FROM address WHERE address_id = ?", id); err != nil {
				return fmt.Errorf("deleting address %d: %w", id, err)
			}
		}
	}
	for _, a := range p.Addresses {
		if _, err := s.InsertAddress(a); err != nil {
			if errors.Is(err, types.ErrAlreadyExists) {
				if err := s.UpdateAddress(a); err != nil {
					return err
				}
				continue
			}
			return err
		}
	}
	return nil
}

func (s *Store) reconcilePhoneFields(p *types.Person) error {
	stored, err := s.queryInts("SELECT cell_number_id FROM cell_number_field WHERE person_id = ?", p.ID.Int64())
	if err != nil {
		return fmt.Errorf("reading phone fields for person %s: %w", p.ID, err)
	}
	keep := make(map[int64]bool)
	for _, f := range p.PhoneFields {
		if f.ID.Valid() {
			keep[f.ID.Int64()] = true
		}
	}
	for _, id := range stored {
		if !keep[id] {
			if _, err := s.db.Exec("DELETE FROM cell_number_field WHERE cell_number_id = ?", id); err != nil {
				return fmt.Errorf("deleting phone field %d: %w", id, err)
			}
		}
	}
	for _, f := range p.PhoneFields {
		if _, err := s.InsertPhoneField(f); err != nil {
			if errors.Is(err, types.ErrAlreadyExists) {
				if err := s.UpdatePhoneField(f); err != nil {
					return err
				}
				continue
			}
			return err
		}
	}
	return nil
}

func (s *Store) reconcileCustomFields(p *types.Person) error {
	stored, err := s.queryInts("SELECT field_id FROM custom_field WHERE person_id = ?", p.ID.Int64())
	if err != nil {
		return fmt.Errorf("reading custom fields for person %s: %w", p.ID, err)
	}
	keep := make(map[int64]bool)
	for _, f := range p.CustomFields {
		if f.ID.Valid() {
			keep[f.ID.Int64()] = true
		}
	}
	for _, id := range stored {
		if !keep[id] {
			if _, err := s.db.Exec("DELETE FROM custom_field WHERE field_id = ?", id); err != nil {
				return fmt.Errorf("deleting custom field %d: %w", id, err)
			}
		}
	}
	for _, f := range p.CustomFields {
		if _, err := s.InsertCustomField(f); err != nil {
			if errors.Is(err, types.ErrAlreadyExists) {
				if err := s.UpdateCustomField(f); err != nil {
					return err
				}
				continue
			}
			return err
		}
	}
	return nil
}

// DeletePerson deletes the person row; owned children and membership edges
// go with it through the cascading foreign keys. Returns ErrNotFound if the
// person is not stored.
func (s *Store) DeletePerson(p *types.Person) error {
	exists, err := s.Exists(p)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: person %s", types.ErrNotFound, p.ID)
	}
	if _, err := s.db.Exec("DELETE FROM person WHERE person_id = ?", p.ID.Int64()); err != nil {
		return fmt.Errorf("deleting person %s: %w", p.ID, err)
	}
	return nil
}

// PersonByID hydrates a person: scalar fields, the full owned child
// collections, and the group list. Each group carries id and title only;
// its member list stays empty, breaking the person/group cycle one hop deep.
func (s *Store) PersonByID(id int64) (*types.Person, error) {
	row := s.db.QueryRow(
		"SELECT person_id, last_name, first_name, birthdate, modification_date FROM person WHERE person_id = ?", id,
	)
	p, err := hydratePerson(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: person %d", types.ErrNotFound, id)
		}
		return nil, fmt.Errorf("getting person %d: %w", id, err)
	}

	groupIDs, err := s.queryInts("SELECT group_id FROM belongs_to WHERE person_id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("reading memberships for person %d: %w", id, err)
	}
	for _, gid := range groupIDs {
		var title string
		if err := s.db.QueryRow(
			"SELECT title FROM contact_group WHERE group_id = ?", gid,
		).Scan(&title); err != nil {
			return nil, fmt.Errorf("reading group %d: %w", gid, err)
		}
		p.Groups = append(p.Groups, &types.ContactGroup{ID: types.NewID(gid), Title: title})
	}

	if err := s.loadChildren(p); err != nil {
		return nil, err
	}
	return p, nil
}

// AllPersons returns every stored person, fully hydrated via PersonByID.
func (s *Store) AllPersons() ([]*types.Person, error) {
	ids, err := s.queryInts("SELECT person_id FROM person")
	if err != nil {
		return nil, fmt.Errorf("listing persons: %w", err)
	}
	persons := make([]*types.Person, 0, len(ids))
	for _, id := range ids {
		p, err := s.PersonByID(id)
		if err != nil {
			return nil, err
		}
		persons = append(persons, p)
	}
	return persons, nil
}

// loadChildren attaches the person's stored addresses, phone fields, and
// custom fields.
func (s *Store) loadChildren(p *types.Person) error {
	addresses, err := s.AddressesByPerson(p)
	if err != nil {
		return err
	}
	phones, err := s.PhoneFieldsByPerson(p)
	if err != nil {
		return err
	}
	customs, err := s.CustomFieldsByPerson(p)
	if err != nil {
		return err
	}
	p.Addresses = addresses
	p.PhoneFields = phones
	p.CustomFields = customs
	return nil
}

// hydratePerson scans a person row into an entity with empty collections.
func hydratePerson(row *sql.Row) (*types.Person, error) {
	var (
		id               int64
		lastName         sql.NullString
		firstName        sql.NullString
		birthdate        sql.NullInt64
		modificationDate int64
	)
	if err := row.Scan(&id, &lastName, &firstName, &birthdate, &modificationDate); err != nil {
		return nil, err
	}
	p := types.NewPerson(lastName.String, firstName.String, birthdate.Int64)
	p.ID = types.NewID(id)
	p.ModificationDate = modificationDate
	return p, nil
}

func (s *Store) insertMembership(groupID, personID int64) error {
	if _, err := s.db.Exec(
		"INSERT INTO belongs_to (group_id, person_id) VALUES (?, ?)", groupID, personID,
	); err != nil {
		return fmt.Errorf("inserting membership (%d, %d): %w", groupID, personID, err)
	}
	return nil
}

// queryInts runs a single-column integer query and collects the results.
func (s *Store) queryInts(query string, args ...any) ([]int64, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var v int64
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
