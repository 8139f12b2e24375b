package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/henrijaeger/contact-book/pkg/types"
)

// InsertAddress inserts a new address row for its owning person and assigns
// the generated id back onto the object. The owning person must already be
// persisted. Returns ErrAlreadyExists if the address id is already present.
func (s *Store) InsertAddress(a *types.Address) (int64, error) {
	exists, err := s.Exists(a)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, fmt.Errorf("%w: address %s", types.ErrAlreadyExists, a.ID)
	}
	owner := a.Person()
	if owner == nil || !owner.ID.Valid() {
		return 0, fmt.Errorf("%w: address: owning person must be persisted first", types.ErrValidation)
	}

	res, err := s.db.Exec(
		"INSERT INTO address (label, street, house_number, zip_code, town, person_id) VALUES (?, ?, ?, ?, ?, ?)",
		a.Label, nullableString(a.Street), nullableString(a.HouseNumber),
		nullableString(a.ZipCode), nullableString(a.Town), owner.ID.Int64(),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting address: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading address id: %w", err)
	}
	a.ID = types.NewID(id)
	return id, nil
}

// UpdateAddress overwrites all columns of the stored address. Returns
// ErrNotFound if the address is not stored.
func (s *Store) UpdateAddress(a *types.Address) error {
	exists, err := s.Exists(a)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: address %s", types.ErrNotFound, a.ID)
	}
	if _, err := s.db.Exec(
		"UPDATE address SET label = ?, street = ?, house_number = ?, zip_code = ?, town = ? WHERE address_id = ?",
		a.Label, nullableString(a.Street), nullableString(a.HouseNumber),
		nullableString(a.ZipCode), nullableString(a.Town), a.ID.Int64(),
	); err != nil {
		return fmt.Errorf("updating address %s: %w", a.ID, err)
	}
	return nil
}

// DeleteAddress deletes the stored address row. Returns ErrNotFound if the
// address is not stored.
func (s *Store) DeleteAddress(a *types.Address) error {
	exists, err := s.Exists(a)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: address %s", types.ErrNotFound, a.ID)
	}
	if _, err := s.db.Exec("DELETE FROM address WHERE address_id = ?", a.ID.Int64()); err != nil {
		return fmt.Errorf("deleting address %s: %w", a.ID, err)
	}
	return nil
}

// AddressesByPerson returns the stored addresses owned by the person, each
// back-referencing it. The person must be persisted.
func (s *Store) AddressesByPerson(p *types.Person) ([]*types.Address, error) {
	if !p.ID.Valid() {
		return nil, fmt.Errorf("%w: person id must be set", types.ErrNotFound)
	}
	rows, err := s.db.Query(
		"SELECT address_id, label, street, house_number, zip_code, town FROM address WHERE person_id = ?",
		p.ID.Int64(),
	)
	if err != nil {
		return nil, fmt.Errorf("reading addresses for person %s: %w", p.ID, err)
	}
	defer rows.Close()

	var addresses []*types.Address
	for rows.Next() {
		var (
			id                           int64
			label                        string
			street, house, zipCode, town sql.NullString
		)
		if err := rows.Scan(&id, &label, &street, &house, &zipCode, &town); err != nil {
			return nil, fmt.Errorf("scanning address: %w", err)
		}
		a, err := types.NewAddress(p, label, street.String, house.String, zipCode.String, town.String)
		if err != nil {
			return nil, fmt.Errorf("hydrating address %d: %w", id, err)
		}
		a.ID = types.NewID(id)
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}
