package types

import "fmt"

// Person is the root aggregate of the contact book. It exclusively owns its
// addresses, phone fields, and custom fields (cascade-deleted with it) and
// shares a non-owning many-to-many association with contact groups.
//
// The collection slices are exported for iteration and storage hydration;
// all structural mutation must go through Add and Remove, which keep the
// back-references on both sides of every edge in sync.
type Person struct {
	ID        ID
	LastName  string
	FirstName string

	// Birthdate and ModificationDate are epoch seconds. Birthdate zero
	// means "not set" and is stored as NULL.
	Birthdate        int64
	ModificationDate int64

	Groups       []*ContactGroup
	Addresses    []*Address
	PhoneFields  []*PhoneField
	CustomFields []*CustomField
}

// NewPerson returns an unsaved Person. All scalar fields are optional;
// pass birthdate 0 for "no birthdate".
func NewPerson(lastName, firstName string, birthdate int64) *Person {
	return &Person{
		LastName:  lastName,
		FirstName: firstName,
		Birthdate: birthdate,
	}
}

func (p *Person) Kind() Kind     { return KindPerson }
func (p *Person) EntityID() ID   { return p.ID }
func (p *Person) sealed()        {}

// Add attaches a sub-entity to the person and sets the symmetric
// back-reference. Adding an entity that is already a member (matched by id
// when both sides are persisted, by object identity otherwise) is a no-op
// apart from re-asserting the back-reference. Entities other than Address,
// PhoneField, CustomField, or ContactGroup are rejected.
func (p *Person) Add(entity Entity) error {
	switch e := entity.(type) {
	case *Address:
		if !containsRef(p.Addresses, e) {
			p.Addresses = append(p.Addresses, e)
		}
		e.person = p
	case *PhoneField:
		if !containsRef(p.PhoneFields, e) {
			p.PhoneFields = append(p.PhoneFields, e)
		}
		e.person = p
	case *CustomField:
		if !containsRef(p.CustomFields, e) {
			p.CustomFields = append(p.CustomFields, e)
		}
		e.person = p
	case *ContactGroup:
		if !containsRef(p.Groups, e) {
			p.Groups = append(p.Groups, e)
		}
		if !containsRef(e.Persons, p) {
			e.Persons = append(e.Persons, p)
		}
	default:
		return fmt.Errorf("%w: got %s, want one of %s, %s, %s, %s",
			ErrUnsupportedEntity, entity.Kind(),
			KindAddress, KindPhoneField, KindCustomField, KindContactGroup)
	}
	return nil
}

// Remove detaches every matching occurrence of the sub-entity (matched by id
// when both sides are persisted, by object identity otherwise) and clears
// the symmetric back-reference. Removing a non-member returns ErrNotFound.
func (p *Person) Remove(entity Entity) error {
	var removed bool
	switch e := entity.(type) {
	case *Address:
		p.Addresses, removed = removeRef(p.Addresses, e)
		if removed {
			e.person = nil
		}
	case *PhoneField:
		p.PhoneFields, removed = removeRef(p.PhoneFields, e)
		if removed {
			e.person = nil
		}
	case *CustomField:
		p.CustomFields, removed = removeRef(p.CustomFields, e)
		if removed {
			e.person = nil
		}
	case *ContactGroup:
		p.Groups, removed = removeRef(p.Groups, e)
		if removed {
			e.Persons, _ = removeRef(e.Persons, p)
		}
	default:
		return fmt.Errorf("%w: got %s, want one of %s, %s, %s, %s",
			ErrUnsupportedEntity, entity.Kind(),
			KindAddress, KindPhoneField, KindCustomField, KindContactGroup)
	}
	if !removed {
		return fmt.Errorf("%w: %s is not attached to this person", ErrNotFound, entity.Kind())
	}
	return nil
}

// entityRef is the matching rule shared by all collections: persisted
// entities match by stable id, unsaved ones by pointer identity.
type entityRef interface {
	comparable
	EntityID() ID
}

func sameRef[T entityRef](a, b T) bool {
	if a.EntityID().Valid() && b.EntityID().Valid() {
		return a.EntityID() == b.EntityID()
	}
	return a == b
}

func containsRef[T entityRef](list []T, e T) bool {
	for _, member := range list {
		if sameRef(member, e) {
			return true
		}
	}
	return false
}

// removeRef filters every matching occurrence out of list and reports
// whether anything was removed.
func removeRef[T entityRef](list []T, e T) ([]T, bool) {
	kept := list[:0]
	removed := false
	for _, member := range list {
		if sameRef(member, e) {
			removed = true
			continue
		}
		kept = append(kept, member)
	}
	return kept, removed
}
