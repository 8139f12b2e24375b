package types

import "fmt"

// PhoneField is a labelled phone number owned by exactly one person.
type PhoneField struct {
	ID     ID
	Label  string `validate:"required"`
	Number string `validate:"required"`

	person *Person
}

// NewPhoneField returns an unsaved phone field back-referencing the given
// person. Label, number, and the owning person are all required.
func NewPhoneField(person *Person, label, number string) (*PhoneField, error) {
	if person == nil {
		return nil, fmt.Errorf("%w: phone field: owning person is required", ErrValidation)
	}
	f := &PhoneField{Label: label, Number: number, person: person}
	if err := validate.Struct(f); err != nil {
		return nil, fmt.Errorf("%w: phone field: %v", ErrValidation, err)
	}
	return f, nil
}

func (f *PhoneField) Kind() Kind   { return KindPhoneField }
func (f *PhoneField) EntityID() ID { return f.ID }
func (f *PhoneField) sealed()      {}

// Person returns the owning person, or nil after removal.
func (f *PhoneField) Person() *Person { return f.person }
