package types

import "fmt"

// Address is a postal address owned by exactly one person.
type Address struct {
	ID          ID
	Label       string `validate:"required"`
	Street      string
	HouseNumber string
	ZipCode     string
	Town        string

	person *Person
}

// NewAddress returns an unsaved address back-referencing the given person.
// The label and the owning person are required; the postal components are
// optional. The address is not appended to the person's collection; use
// Person.Add for that.
func NewAddress(person *Person, label, street, houseNumber, zipCode, town string) (*Address, error) {
	if person == nil {
		return nil, fmt.Errorf("%w: address: owning person is required", ErrValidation)
	}
	a := &Address{
		Label:       label,
		Street:      street,
		HouseNumber: houseNumber,
		ZipCode:     zipCode,
		Town:        town,
		person:      person,
	}
	if err := validate.Struct(a); err != nil {
		return nil, fmt.Errorf("%w: address: %v", ErrValidation, err)
	}
	return a, nil
}

func (a *Address) Kind() Kind   { return KindAddress }
func (a *Address) EntityID() ID { return a.ID }
func (a *Address) sealed()      {}

// Person returns the owning person, or nil after removal.
func (a *Address) Person() *Person { return a.person }
