package types

import "fmt"

// Custom-field tags recognized by the card codec. VType is a free string;
// these are the values with dedicated card fields.
const (
	VTypeEMail     = "eMail"
	VTypeURL       = "URL"
	VTypeNickname  = "Spitzname"
	VTypePublicKey = "Public Key"
	VTypeGender    = "Geschlecht"
	VTypeHobby     = "Hobby"
	VTypeTitle     = "Titel"
	VTypeCompany   = "Firma"
)

// CustomField is a free-form key/value attribute owned by exactly one
// person. The optional VType tag is both a semantic hint for presentation
// and the discriminator for the card codec's field mapping; empty means
// untyped.
type CustomField struct {
	ID    ID
	Label string `validate:"required"`
	Value string `validate:"required"`
	VType string

	person *Person
}

// NewCustomField returns an unsaved custom field back-referencing the given
// person. Label, value, and the owning person are required; vType may be
// empty.
func NewCustomField(person *Person, label, value, vType string) (*CustomField, error) {
	if person == nil {
		return nil, fmt.Errorf("%w: custom field: owning person is required", ErrValidation)
	}
	f := &CustomField{Label: label, Value: value, VType: vType, person: person}
	if err := validate.Struct(f); err != nil {
		return nil, fmt.Errorf("%w: custom field: %v", ErrValidation, err)
	}
	return f, nil
}

func (f *CustomField) Kind() Kind   { return KindCustomField }
func (f *CustomField) EntityID() ID { return f.ID }
func (f *CustomField) sealed()      {}

// Person returns the owning person, or nil after removal.
func (f *CustomField) Person() *Person { return f.person }
