package vcard

import (
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/henrijaeger/contact-book/pkg/contactbook"
	"github.com/henrijaeger/contact-book/pkg/types"
)

// minFragmentLen guards against trailing empty fragments after splitting a
// multi-card blob on the end-of-record marker.
const minFragmentLen = 20

// noValue is the placeholder stored when a source field is present but
// carries no usable value.
const noValue = "[Keine Angabe]"

// Importer parses vCard text and stores the resulting persons through the
// contact-book facade.
type Importer struct {
	book *contactbook.Book
	log  zerolog.Logger
}

// NewImporter returns an importer writing through the given facade.
func NewImporter(book *contactbook.Book, log zerolog.Logger) *Importer {
	return &Importer{book: book, log: log}
}

// ImportAll parses a blob containing one or more concatenated records and
// persists each one independently. It returns the imported persons.
func (im *Importer) ImportAll(data string) ([]*types.Person, error) {
	var persons []*types.Person
	for _, fragment := range strings.Split(data, endMarker) {
		if len(fragment) <= minFragmentLen {
			continue
		}
		p, err := im.ImportPerson(fragment + endMarker)
		if err != nil {
			return persons, err
		}
		persons = append(persons, p)
	}
	return persons, nil
}

// ImportPerson parses one serialized record, assembles the person with its
// complete address, phone, and custom-field lists, and hands it to the
// facade for insertion. Unparseable birthdates are logged and skipped so a
// single bad date never aborts the import.
func (im *Importer) ImportPerson(serialized string) (*types.Person, error) {
	person := &types.Person{}
	var addresses []*types.Address
	var phones []*types.PhoneField
	var customs []*types.CustomField

	groups, err := im.book.AllContactGroups()
	if err != nil {
		return nil, err
	}

	for _, line := range unfold(serialized) {
		key, label, value, ok := parseLine(line)
		if !ok {
			continue
		}

		switch key {
		case "begin", "end", "version", "fn", "uid", "prodid":
			// Redundant with the structured fields already captured.

		case "adr":
			comps := splitComponents(value)
			street := unescape(component(comps, 2))
			town := unescape(component(comps, 3))
			zipCode := unescape(component(comps, 5))
			houseNumber := ""
			if tokens := strings.Fields(strings.TrimSpace(street)); len(tokens) > 1 && isDecimal(tokens[len(tokens)-1]) {
				houseNumber = tokens[len(tokens)-1]
				street = strings.Join(tokens[:len(tokens)-1], " ")
			}
			a, err := types.NewAddress(person, orDefault(label, "Adresse"), street, houseNumber, zipCode, town)
			if err != nil {
				return nil, err
			}
			addresses = append(addresses, a)

		case "tel":
			f, err := types.NewPhoneField(person, orDefault(label, "Telefon"), orDefault(unescape(value), noValue))
			if err != nil {
				return nil, err
			}
			phones = append(phones, f)

		case "email":
			if customs, err = appendCustom(customs, person, label, "eMail", value, types.VTypeEMail); err != nil {
				return nil, err
			}
		case "url":
			if customs, err = appendCustom(customs, person, label, "URL", value, types.VTypeURL); err != nil {
				return nil, err
			}
		case "nickname":
			if customs, err = appendCustom(customs, person, label, "Spitzname", value, types.VTypeNickname); err != nil {
				return nil, err
			}
		case "key":
			if customs, err = appendCustom(customs, person, label, "Key", value, types.VTypePublicKey); err != nil {
				return nil, err
			}

		case "gender":
			gender := noValue
			switch unescape(value) {
			case "M":
				gender = "maennlich"
			case "F":
				gender = "weiblich"
			case "O":
				gender = "divers"
			case "":
			default:
				gender = unescape(value)
			}
			f, err := types.NewCustomField(person, orDefault(label, "Geschlecht"), gender, types.VTypeGender)
			if err != nil {
				return nil, err
			}
			customs = append(customs, f)

		case "hobby":
			f, err := types.NewCustomField(person, "Hobby", orDefault(unescape(value), noValue), types.VTypeHobby)
			if err != nil {
				return nil, err
			}
			customs = append(customs, f)

		case "n":
			comps := splitComponents(value)
			if prefix := unescape(component(comps, 3)); prefix != "" {
				f, err := types.NewCustomField(person, "Titel", prefix, types.VTypeTitle)
				if err != nil {
					return nil, err
				}
				customs = append(customs, f)
			}
			person.LastName = unescape(component(comps, 0))
			person.FirstName = unescape(component(comps, 1))

		case "org":
			name := unescape(component(splitComponents(value), 0))
			f, err := types.NewCustomField(person, "Firma", orDefault(name, noValue), types.VTypeCompany)
			if err != nil {
				return nil, err
			}
			customs = append(customs, f)

		case "keiner":
			// An untyped field exported by this system; it comes back with
			// no VType tag.
			f, err := types.NewCustomField(person,
				orDefault(label, noValue), orDefault(unescape(value), noValue), "")
			if err != nil {
				return nil, err
			}
			customs = append(customs, f)

		case "bday":
			if isDecimal(value) {
				epoch, _ := strconv.ParseInt(value, 10, 64)
				person.Birthdate = epoch
				break
			}
			t, err := time.ParseInLocation(birthdateLayout, value, time.Local)
			if err != nil {
				im.log.Warn().Str("bday", value).Err(err).Msg("unparseable birthdate skipped")
				break
			}
			person.Birthdate = t.Unix()

		case "categories":
			for _, title := range splitList(value) {
				if title == "" {
					continue
				}
				if !containsTitle(groups, title) {
					g, err := types.NewContactGroup(title)
					if err != nil {
						return nil, err
					}
					if _, err := im.book.Save(g); err != nil {
						return nil, err
					}
					if groups, err = im.book.AllContactGroups(); err != nil {
						return nil, err
					}
				}
				// Title is not unique in storage, so the person joins
				// every group carrying it.
				for _, g := range groups {
					if g.Title == title {
						if err := person.Add(g); err != nil {
							return nil, err
						}
					}
				}
			}

		default:
			f, err := types.NewCustomField(person,
				orDefault(label, "Label"), orDefault(unescape(value), "Eigener Wert"),
				strings.ReplaceAll(key, "-", " "))
			if err != nil {
				return nil, err
			}
			customs = append(customs, f)
		}
	}

	for _, a := range addresses {
		if err := person.Add(a); err != nil {
			return nil, err
		}
	}
	for _, f := range phones {
		if err := person.Add(f); err != nil {
			return nil, err
		}
	}
	for _, f := range customs {
		if err := person.Add(f); err != nil {
			return nil, err
		}
	}

	if _, err := im.book.Save(person); err != nil {
		return nil, err
	}
	return person, nil
}

// unfold normalizes line endings and joins continuation lines, which start
// with a space or tab, onto their parent line.
func unfold(serialized string) []string {
	raw := strings.Split(strings.ReplaceAll(serialized, "\r\n", "\n"), "\n")
	var lines []string
	for _, line := range raw {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		if (line[0] == ' ' || line[0] == '\t') && len(lines) > 0 {
			lines[len(lines)-1] += line[1:]
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// parseLine splits one record line into its lowercased key, the TYPE
// parameter if present, and the raw value.
func parseLine(line string) (key, label, value string, ok bool) {
	left, value, found := strings.Cut(line, ":")
	if !found {
		return "", "", "", false
	}
	parts := strings.Split(left, ";")
	key = strings.ToLower(strings.TrimSpace(parts[0]))
	for _, param := range parts[1:] {
		if name, v, found := strings.Cut(param, "="); found && strings.EqualFold(strings.TrimSpace(name), "type") {
			label = v
		}
	}
	return key, label, value, key != ""
}

// splitList splits a value on unescaped commas.
func splitList(value string) []string {
	var items []string
	var b strings.Builder
	escaped := false
	for _, c := range value {
		switch {
		case escaped:
			b.WriteByte('\\')
			b.WriteRune(c)
			escaped = false
		case c == '\\':
			escaped = true
		case c == ',':
			items = append(items, unescape(b.String()))
			b.Reset()
		default:
			b.WriteRune(c)
		}
	}
	items = append(items, unescape(b.String()))
	return items
}

// appendCustom builds a validated custom field with the fixed defaults for
// its source field and appends it.
func appendCustom(customs []*types.CustomField, p *types.Person, label, defaultLabel, value, vType string) ([]*types.CustomField, error) {
	f, err := types.NewCustomField(p, orDefault(label, defaultLabel), orDefault(unescape(value), noValue), vType)
	if err != nil {
		return nil, err
	}
	return append(customs, f), nil
}

func component(comps []string, i int) string {
	if i < len(comps) {
		return comps[i]
	}
	return ""
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func containsTitle(groups []*types.ContactGroup, title string) bool {
	for _, g := range groups {
		if g.Title == title {
			return true
		}
	}
	return false
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
