package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/henrijaeger/contact-book/pkg/types"
)

// InsertCustomField inserts a new custom-field row for its owning person
// and assigns the generated id back onto the object. The owning person must
// already be persisted. Returns ErrAlreadyExists if the id is already
// present.
func (s *Store) InsertCustomField(f *types.CustomField) (int64, error) {
	exists, err := s.Exists(f)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, fmt.Errorf("%w: custom field %s", types.ErrAlreadyExists, f.ID)
	}
	owner := f.Person()
	if owner == nil || !owner.ID.Valid() {
		return 0, fmt.Errorf("%w: custom field: owning person must be persisted first", types.ErrValidation)
	}

	res, err := s.db.Exec(
		"INSERT INTO custom_field (label, field_value, v_type, person_id) VALUES (?, ?, ?, ?)",
		f.Label, f.Value, nullableString(f.VType), owner.ID.Int64(),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting custom field: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading custom field id: %w", err)
	}
	f.ID = types.NewID(id)
	return id, nil
}

// UpdateCustomField overwrites all columns of the stored custom field.
// Returns ErrNotFound if it is not stored.
func (s *Store) UpdateCustomField(f *types.CustomField) error {
	exists, err := s.Exists(f)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: custom field %s", types.ErrNotFound, f.ID)
	}
	if _, err := s.db.Exec(
		"UPDATE custom_field SET label = ?, field_value = ?, v_type = ? WHERE field_id = ?",
		f.Label, f.Value, nullableString(f.VType), f.ID.Int64(),
	); err != nil {
		return fmt.Errorf("updating custom field %s: %w", f.ID, err)
	}
	return nil
}

// DeleteCustomField deletes the stored custom-field row. Returns
// ErrNotFound if it is not stored.
func (s *Store) DeleteCustomField(f *types.CustomField) error {
	exists, err := s.Exists(f)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: custom field %s", types.ErrNotFound, f.ID)
	}
	if _, err := s.db.Exec("DELETE FROM custom_field WHERE field_id = ?", f.ID.Int64()); err != nil {
		return fmt.Errorf("deleting custom field %s: %w", f.ID, err)
	}
	return nil
}

// CustomFieldsByPerson returns the stored custom fields owned by the
// person, each back-referencing it. The person must be persisted.
func (s *Store) CustomFieldsByPerson(p *types.Person) ([]*types.CustomField, error) {
	if !p.ID.Valid() {
		return nil, fmt.Errorf("%w: person id must be set", types.ErrNotFound)
	}
	rows, err := s.db.Query(
		"SELECT field_id, label, field_value, v_type FROM custom_field WHERE person_id = ?",
		p.ID.Int64(),
	)
	if err != nil {
		return nil, fmt.Errorf("reading custom fields for person %s: %w", p.ID, err)
	}
	defer rows.Close()

	var fields []*types.CustomField
	for rows.Next() {
		var (
			id           int64
			label, value string
			vType        sql.NullString
		)
		if err := rows.Scan(&id, &label, &value, &vType); err != nil {
			return nil, fmt.Errorf("scanning custom field: %w", err)
		}
		f, err := types.NewCustomField(p, label, value, vType.String)
		if err != nil {
			return nil, fmt.Errorf("hydrating custom field %d: %w", id, err)
		}
		f.ID = types.NewID(id)
		fields = append(fields, f)
	}
	return fields, rows.Err()
}
