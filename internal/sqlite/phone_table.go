package sqlite

import (
	"fmt"

	"github.com/henrijaeger/contact-book/pkg/types"
)

// InsertPhoneField inserts a new phone-field row for its owning person and
// assigns the generated id back onto the object. The owning person must
// already be persisted. Returns ErrAlreadyExists if the id is already
// present.
func (s *Store) InsertPhoneField(f *types.PhoneField) (int64, error) {
	exists, err := s.Exists(f)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, fmt.Errorf("%w: phone field %s", types.ErrAlreadyExists, f.ID)
	}
	owner := f.Person()
	if owner == nil || !owner.ID.Valid() {
		return 0, fmt.Errorf("%w: phone field: owning person must be persisted first", types.ErrValidation)
	}

	res, err := s.db.Exec(
		"INSERT INTO cell_number_field (label, cell_number, person_id) VALUES (?, ?, ?)",
		f.Label, f.Number, owner.ID.Int64(),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting phone field: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading phone field id: %w", err)
	}
	f.ID = types.NewID(id)
	return id, nil
}

// UpdatePhoneField overwrites all columns of the stored phone field.
// Returns ErrNotFound if it is not stored.
func (s *Store) UpdatePhoneField(f *types.PhoneField) error {
	exists, err := s.Exists(f)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: phone field %s", types.ErrNotFound, f.ID)
	}
	if _, err := s.db.Exec(
		"UPDATE cell_number_field SET label = ?, cell_number = ? WHERE cell_number_id = ?",
		f.Label, f.Number, f.ID.Int64(),
	); err != nil {
		return fmt.Errorf("updating phone field %s: %w", f.ID, err)
	}
	return nil
}

// DeletePhoneField deletes the stored phone-field row. Returns ErrNotFound
// if it is not stored.
func (s *Store) DeletePhoneField(f *types.PhoneField) error {
	exists, err := s.Exists(f)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: phone field %s", types.ErrNotFound, f.ID)
	}
	if _, err := s.db.Exec("DELETE FROM cell_number_field WHERE cell_number_id = ?", f.ID.Int64()); err != nil {
		return fmt.Errorf("deleting phone field %s: %w", f.ID, err)
	}
	return nil
}

// PhoneFieldsByPerson returns the stored phone fields owned by the person,
// each back-referencing it. The person must be persisted.
func (s *Store) PhoneFieldsByPerson(p *types.Person) ([]*types.PhoneField, error) {
	if !p.ID.Valid() {
		return nil, fmt.Errorf("%w: person id must be set", types.ErrNotFound)
	}
	rows, err := s.db.Query(
		"SELECT cell_number_id, label, cell_number FROM cell_number_field WHERE person_id = ?",
		p.ID.Int64(),
	)
	if err != nil {
		return nil, fmt.Errorf("reading phone fields for person %s: %w", p.ID, err)
	}
	defer rows.Close()

	var fields []*types.PhoneField
	for rows.Next() {
		var (
			id            int64
			label, number string
		)
		if err := rows.Scan(&id, &label, &number); err != nil {
			return nil, fmt.Errorf("scanning phone field: %w", err)
		}
		f, err := types.NewPhoneField(p, label, number)
		if err != nil {
			return nil, fmt.Errorf("hydrating phone field %d: %w", id, err)
		}
		f.ID = types.NewID(id)
		fields = append(fields, f)
	}
	return fields, rows.Err()
}
