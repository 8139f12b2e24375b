package types

import "strconv"

// ID is the storage identity of an entity. The zero value means "unsaved":
// the entity has never been inserted and carries no database id. Persisted
// entities compare by ID; unsaved entities compare by object identity.
type ID struct {
	n     int64
	valid bool
}

// NewID returns a valid ID wrapping the given database id.
func NewID(n int64) ID {
	return ID{n: n, valid: true}
}

// Valid reports whether the entity has been persisted.
func (id ID) Valid() bool {
	return id.valid
}

// Int64 returns the database id. It is only meaningful when Valid is true.
func (id ID) Int64() int64 {
	return id.n
}

func (id ID) String() string {
	if !id.valid {
		return "unsaved"
	}
	return strconv.FormatInt(id.n, 10)
}
