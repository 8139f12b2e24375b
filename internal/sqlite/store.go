// Package sqlite implements the relational store for the contact book on a
// single local SQLite file. A Store wraps one connection; callers open a
// store per logical operation and close it on every exit path.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/henrijaeger/contact-book/pkg/types"
)

// Store is a handle to the contact-book database. It is not safe for
// concurrent use; the contact book is a single-user, one-operation-at-a-time
// system.
type Store struct {
	db *sql.DB
}

// Open opens (creating on first access) the SQLite database at path,
// enables foreign-key cascading on the connection, and bootstraps the
// schema. The caller must Close the returned store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	// One operation at a time means one connection; this also guarantees the
	// foreign_keys pragma applies to every statement.
	db.SetMaxOpenConns(1)

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Exists reports whether the entity's id is present in its table. Unsaved
// entities (no id) never exist. An entity variant without a table returns
// ErrUnsupportedEntity.
func (s *Store) Exists(entity types.Entity) (bool, error) {
	if !entity.EntityID().Valid() {
		return false, nil
	}
	var query string
	switch entity.(type) {
	case *types.Person:
		query = "SELECT 1 FROM person WHERE person_id = ?"
	case *types.ContactGroup:
		query = "SELECT 1 FROM contact_group WHERE group_id = ?"
	case *types.Address:
		query = "SELECT 1 FROM address WHERE address_id = ?"
	case *types.PhoneField:
		query = "SELECT 1 FROM cell_number_field WHERE cell_number_id = ?"
	case *types.CustomField:
		query = "SELECT 1 FROM custom_field WHERE field_id = ?"
	default:
		return false, fmt.Errorf("%w: no table for %s", types.ErrUnsupportedEntity, entity.Kind())
	}

	var one int
	err := s.db.QueryRow(query, entity.EntityID().Int64()).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking %s existence: %w", entity.Kind(), err)
	}
	return true, nil
}

// nullableEpoch maps the in-memory "zero means unset" convention onto a
// nullable INTEGER column.
func nullableEpoch(v int64) any {
	if v == 0 {
		return nil
	}
	return v
}

// nullableString maps an empty string onto a nullable TEXT column.
func nullableString(v string) any {
	if v == "" {
		return nil
	}
	return v
}
