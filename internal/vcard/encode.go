// Package vcard serializes persons to the vCard 3.0 interchange format and
// parses them back. The field grammar is KEY[;TYPE=value]:value with CRLF
// line endings; domain attributes without a standard vCard field (hobby,
// gender, free-form custom tags) use extension keys.
package vcard

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/henrijaeger/contact-book/pkg/types"
)

const (
	beginMarker = "BEGIN:VCARD"
	endMarker   = "END:VCARD"
	version     = "VERSION:3.0"
)

// birthdateLayout is the calendar form used for BDAY lines.
const birthdateLayout = "2006-01-02"

// Serialize renders one person as a complete vCard record. Custom fields
// dispatch on their VType tag; unrecognized tags become extension fields
// keyed by the normalized tag. Only persisted group memberships are emitted
// as categories, which keeps synthetic groups out of exports without any
// special casing.
func Serialize(p *types.Person) string {
	lines := []string{
		beginMarker,
		version,
		"UID:urn:uuid:" + uuid.NewString(),
	}

	// ORG and BDAY sit near the top of the record, right after the UID.
	// ORG is a raw structured line, not run through the value escaper.
	if company := customByType(p, types.VTypeCompany); company != nil {
		lines = append(lines, "ORG:"+company.Value+";;")
	}
	if p.Birthdate != 0 {
		lines = append(lines, "BDAY:"+time.Unix(p.Birthdate, 0).Format(birthdateLayout))
	}

	lines = append(lines, "FN:"+escape(p.FirstName+" "+p.LastName))

	prefix := ""
	if title := customByType(p, types.VTypeTitle); title != nil {
		prefix = title.Value
	}
	lines = append(lines, fmt.Sprintf("N:%s;%s;;%s;", escape(p.LastName), escape(p.FirstName), escape(prefix)))

	for _, f := range p.PhoneFields {
		lines = append(lines, typedLine("TEL", f.Label, f.Number))
	}
	for _, a := range p.Addresses {
		street := strings.TrimSpace(a.Street + " " + a.HouseNumber)
		value := fmt.Sprintf(";;%s;%s;;%s;", escape(street), escape(a.Town), escape(a.ZipCode))
		lines = append(lines, "ADR;TYPE="+paramValue(a.Label)+":"+value)
	}

	for _, f := range p.CustomFields {
		switch f.VType {
		case types.VTypeEMail:
			lines = append(lines, typedLine("EMAIL", f.Label, f.Value))
		case types.VTypeURL:
			lines = append(lines, typedLine("URL", f.Label, f.Value))
		case types.VTypeNickname:
			lines = append(lines, typedLine("NICKNAME", f.Label, f.Value))
		case types.VTypePublicKey:
			lines = append(lines, typedLine("KEY", f.Label, f.Value))
		case types.VTypeGender:
			lines = append(lines, "GENDER:"+genderCode(f.Value))
		case types.VTypeHobby:
			lines = append(lines, "HOBBY:"+escape(f.Value))
		case types.VTypeTitle, types.VTypeCompany:
			// Already folded into the N prefix and the ORG line.
		default:
			lines = append(lines, typedLine(extensionKey(f.VType), f.Label, f.Value))
		}
	}

	for _, g := range p.Groups {
		if g.ID.Valid() {
			lines = append(lines, "CATEGORIES:"+escape(g.Title))
		}
	}

	lines = append(lines, endMarker)
	return strings.Join(lines, "\r\n") + "\r\n"
}

func typedLine(key, label, value string) string {
	return key + ";TYPE=" + paramValue(label) + ":" + escape(value)
}

// paramValue strips characters that would break the line structure out of a
// TYPE parameter. Parameters carry free-form labels but, unlike values,
// have no escape syntax here.
func paramValue(s string) string {
	r := strings.NewReplacer(";", " ", ":", " ", ",", " ", "\n", " ")
	return r.Replace(s)
}

// genderCode collapses the internal gender string onto the vCard M/F/O
// lattice. Any value other than the two recognized strings is lost.
func genderCode(value string) string {
	switch strings.TrimSpace(value) {
	case "maennlich":
		return "M"
	case "weiblich":
		return "F"
	default:
		return "O"
	}
}

// extensionKey normalizes a free-form VType tag into a vCard field key.
// An empty tag maps to "KEINER" so the field still round-trips.
func extensionKey(vType string) string {
	if vType == "" {
		vType = "Keiner"
	}
	return strings.ToUpper(strings.ReplaceAll(vType, " ", "_"))
}

func customByType(p *types.Person, vType string) *types.CustomField {
	for _, f := range p.CustomFields {
		if f.VType == vType {
			return f
		}
	}
	return nil
}

// escape applies vCard 3.0 text escaping to a field value.
func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\n", `\n`)
	return r.Replace(s)
}

func unescape(s string) string {
	var b strings.Builder
	escaped := false
	for _, c := range s {
		if escaped {
			if c == 'n' || c == 'N' {
				b.WriteByte('\n')
			} else {
				b.WriteRune(c)
			}
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

// splitComponents splits a structured value on unescaped semicolons.
func splitComponents(s string) []string {
	var parts []string
	var b strings.Builder
	escaped := false
	for _, c := range s {
		switch {
		case escaped:
			b.WriteByte('\\')
			b.WriteRune(c)
			escaped = false
		case c == '\\':
			escaped = true
		case c == ';':
			parts = append(parts, b.String())
			b.Reset()
		default:
			b.WriteRune(c)
		}
	}
	parts = append(parts, b.String())
	return parts
}
