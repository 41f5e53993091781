package vcard

import (
	"strings"

	govcard "github.com/emersion/go-vcard"

	"github.com/JonMunkholm/vcfcsv/internal/phone"
)

// Contact is one parsed card. Scalar fields default to "", the slices are
// never nil.
type Contact struct {
	Name         string   // "given family" from N
	FullName     string   // FN as written
	Organization string   // ORG with "\," unescaped
	Telephones   []string // TEL values in card order, normalized when Turkish
	Emails       []string // EMAIL values in card order
}

// newContact returns an empty contact with non-nil slices.
func newContact() Contact {
	return Contact{
		Telephones: []string{},
		Emails:     []string{},
	}
}

// extractContact builds a Contact from the unfolded property lines of one
// closed card.
func extractContact(lines []string) Contact {
	c := newContact()

	for _, line := range lines {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = cleanValue(value)

		name, _, _ := strings.Cut(key, ";")
		name = strings.ToUpper(name)

		switch {
		case name == govcard.FieldFormattedName:
			c.FullName = value
		case name == govcard.FieldName:
			c.Name = formatName(value)
		case name == govcard.FieldOrganization:
			c.Organization = strings.ReplaceAll(value, `\,`, ",")
		case isProperty(name, govcard.FieldTelephone):
			c.Telephones = append(c.Telephones, phone.Normalize(value))
		case isProperty(name, govcard.FieldEmail):
			c.Emails = append(c.Emails, value)
		}
	}

	return c
}

// isProperty matches a bare property name or a grouped one ("item1.TEL").
func isProperty(name, property string) bool {
	return name == property || strings.HasSuffix(name, "."+property)
}

// cleanValue drops embedded line breaks and surrounding whitespace.
func cleanValue(v string) string {
	v = strings.ReplaceAll(v, "\r", "")
	v = strings.ReplaceAll(v, "\n", "")
	return strings.TrimSpace(v)
}

// formatName turns a structured N value (family;given;...) into
// "given family", leaving out empty parts.
func formatName(n string) string {
	parts := strings.Split(n, ";")

	family := strings.TrimSpace(parts[0])
	given := ""
	if len(parts) > 1 {
		given = strings.TrimSpace(parts[1])
	}

	names := make([]string, 0, 2)
	for _, part := range []string{given, family} {
		if part != "" {
			names = append(names, part)
		}
	}
	return strings.Join(names, " ")
}
