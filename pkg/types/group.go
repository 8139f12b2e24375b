package types

import "fmt"

// ContactGroup is a named set of persons. The association is non-owning on
// both sides: deleting a group only removes membership edges, never the
// member persons, and vice versa.
type ContactGroup struct {
	ID      ID
	Title   string `validate:"required"`
	Persons []*Person

	// synthetic marks in-memory-only groups ("Alle Kontakte",
	// "Letzte 14 Tage"). They exist purely for presentation and must never
	// reach storage.
	synthetic bool
}

// NewContactGroup returns an unsaved group with the given title and initial
// members. The title is required. Every initial member gets the group
// appended to its own group list.
func NewContactGroup(title string, members ...*Person) (*ContactGroup, error) {
	g := &ContactGroup{Title: title, Persons: members}
	if err := validate.Struct(g); err != nil {
		return nil, fmt.Errorf("%w: contact group: %v", ErrValidation, err)
	}
	for _, p := range g.Persons {
		if !containsRef(p.Groups, g) {
			p.Groups = append(p.Groups, g)
		}
	}
	return g, nil
}

// NewSyntheticContactGroup returns a presentation-only group that the facade
// refuses to persist or delete. Member back-references are deliberately not
// wired: the members do not actually belong to any stored group.
func NewSyntheticContactGroup(title string, members ...*Person) *ContactGroup {
	return &ContactGroup{Title: title, Persons: members, synthetic: true}
}

func (g *ContactGroup) Kind() Kind   { return KindContactGroup }
func (g *ContactGroup) EntityID() ID { return g.ID }
func (g *ContactGroup) sealed()      {}

// Synthetic reports whether the group is in-memory-only.
func (g *ContactGroup) Synthetic() bool { return g.synthetic }

// Add attaches a person to the group and the group to the person. Only
// Person entities are accepted. Adding an existing member is a no-op.
func (g *ContactGroup) Add(entity Entity) error {
	p, ok := entity.(*Person)
	if !ok {
		return fmt.Errorf("%w: got %s, want %s", ErrUnsupportedEntity, entity.Kind(), KindPerson)
	}
	if !containsRef(g.Persons, p) {
		g.Persons = append(g.Persons, p)
	}
	if !containsRef(p.Groups, g) {
		p.Groups = append(p.Groups, g)
	}
	return nil
}

// Remove detaches every matching occurrence of the person from the group and
// the group from the person. Removing a non-member returns ErrNotFound.
func (g *ContactGroup) Remove(entity Entity) error {
	p, ok := entity.(*Person)
	if !ok {
		return fmt.Errorf("%w: got %s, want %s", ErrUnsupportedEntity, entity.Kind(), KindPerson)
	}
	var removed bool
	g.Persons, removed = removeRef(g.Persons, p)
	if !removed {
		return fmt.Errorf("%w: person is not a member of this group", ErrNotFound)
	}
	p.Groups, _ = removeRef(p.Groups, g)
	return nil
}
