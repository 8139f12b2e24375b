package types

import "errors"

// Standard error kinds. Storage and facade operations wrap these with
// fmt.Errorf("...: %w", ...); callers test with errors.Is.
var (
	// ErrNotFound reports that an id-addressed entity is absent from storage,
	// or that a removed sub-entity is not a member of its collection.
	ErrNotFound = errors.New("entity not found")

	// ErrAlreadyExists reports an insert attempted on an id that is already
	// present in the database.
	ErrAlreadyExists = errors.New("entity already exists")

	// ErrUnsupportedEntity reports that an operation was given an entity
	// variant it does not handle.
	ErrUnsupportedEntity = errors.New("unsupported entity type")

	// ErrValidation reports an empty required field or an otherwise invalid
	// argument at entity-construction time.
	ErrValidation = errors.New("validation failed")
)
