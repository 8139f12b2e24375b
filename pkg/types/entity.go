package types

import "github.com/go-playground/validator/v10"

// Kind names an entity variant. The values double as table names in the
// relational store.
type Kind string

const (
	KindPerson       Kind = "person"
	KindContactGroup Kind = "contact_group"
	KindAddress      Kind = "address"
	KindPhoneField   Kind = "cell_number_field"
	KindCustomField  Kind = "custom_field"
)

// Entity is the closed union over the five entity variants. Only types in
// this package implement it; operations dispatch by concrete type and return
// ErrUnsupportedEntity for anything they do not handle.
type Entity interface {
	Kind() Kind
	EntityID() ID

	sealed()
}

// validate checks required-field constraints on entity construction.
var validate = validator.New()
