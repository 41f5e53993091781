package vcard

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	govcard "github.com/emersion/go-vcard"
)

func parseString(t *testing.T, input string) Result {
	t.Helper()
	res, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return res
}

func TestParse_BoundaryStateMachine(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantNames   []string
		wantSkipped int
		wantReasons []string
	}{
		{
			name:        "empty input",
			input:       "",
			wantNames:   []string{},
			wantSkipped: 0,
		},
		{
			name:        "single card",
			input:       "BEGIN:VCARD\nFN:Ada\nEND:VCARD\n",
			wantNames:   []string{"Ada"},
			wantSkipped: 0,
		},
		{
			name:        "cards keep input order",
			input:       "BEGIN:VCARD\nFN:A\nEND:VCARD\nBEGIN:VCARD\nFN:B\nEND:VCARD\nBEGIN:VCARD\nFN:C\nEND:VCARD\n",
			wantNames:   []string{"A", "B", "C"},
			wantSkipped: 0,
		},
		{
			name:        "reopened card is skipped and the new one kept",
			input:       "BEGIN:VCARD\nFN:Lost\nBEGIN:VCARD\nFN:Kept\nEND:VCARD\n",
			wantNames:   []string{"Kept"},
			wantSkipped: 1,
			wantReasons: []string{ReasonReopened},
		},
		{
			name:        "end without begin",
			input:       "END:VCARD\nBEGIN:VCARD\nFN:A\nEND:VCARD\n",
			wantNames:   []string{"A"},
			wantSkipped: 1,
			wantReasons: []string{ReasonUnopened},
		},
		{
			name:        "double end",
			input:       "BEGIN:VCARD\nFN:A\nEND:VCARD\nEND:VCARD\n",
			wantNames:   []string{"A"},
			wantSkipped: 1,
			wantReasons: []string{ReasonUnopened},
		},
		{
			name:        "unterminated trailing card",
			input:       "BEGIN:VCARD\nFN:A\nEND:VCARD\nBEGIN:VCARD\nFN:Partial\n",
			wantNames:   []string{"A"},
			wantSkipped: 1,
			wantReasons: []string{ReasonUnterminated},
		},
		{
			name:        "keywords are case-insensitive and trimmed",
			input:       "begin:vcard\nFN:A\nEnd:VCard  \n",
			wantNames:   []string{"A"},
			wantSkipped: 0,
		},
		{
			name:        "stray lines between cards are ignored",
			input:       "VERSION:3.0\nFN:Stray\nBEGIN:VCARD\nFN:A\nEND:VCARD\nnoise\n",
			wantNames:   []string{"A"},
			wantSkipped: 0,
		},
		{
			name:        "every failure mode at once",
			input:       "END:VCARD\nBEGIN:VCARD\nBEGIN:VCARD\nFN:A\nEND:VCARD\nBEGIN:VCARD\n",
			wantNames:   []string{"A"},
			wantSkipped: 3,
			wantReasons: []string{ReasonUnopened, ReasonReopened, ReasonUnterminated},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := parseString(t, tt.input)

			names := make([]string, 0, len(res.Contacts))
			for _, c := range res.Contacts {
				names = append(names, c.FullName)
			}
			if !reflect.DeepEqual(names, tt.wantNames) {
				t.Errorf("contacts = %v, want %v", names, tt.wantNames)
			}
			if res.Skipped != tt.wantSkipped {
				t.Errorf("Skipped = %d, want %d", res.Skipped, tt.wantSkipped)
			}

			var reasons []string
			for _, s := range res.Skips {
				reasons = append(reasons, s.Reason)
			}
			if !reflect.DeepEqual(reasons, tt.wantReasons) {
				t.Errorf("skip reasons = %v, want %v", reasons, tt.wantReasons)
			}
		})
	}
}

func TestParse_SkipLineNumbers(t *testing.T) {
	res := parseString(t, "END:VCARD\n\nBEGIN:VCARD\nFN:A\nBEGIN:VCARD\n")

	want := []Skip{
		{Line: 1, Reason: ReasonUnopened},
		{Line: 5, Reason: ReasonReopened},
		{Line: 5, Reason: ReasonUnterminated},
	}
	if !reflect.DeepEqual(res.Skips, want) {
		t.Errorf("Skips = %+v, want %+v", res.Skips, want)
	}
}

func TestParse_Unfolding(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "space continuation",
			input: "BEGIN:VCARD\nFN:Jo\n hn Smith\nEND:VCARD\n",
			want:  "John Smith",
		},
		{
			name:  "tab continuation",
			input: "BEGIN:VCARD\nFN:Jo\n\thn\nEND:VCARD\n",
			want:  "John",
		},
		{
			name:  "several continuations and mixed whitespace",
			input: "BEGIN:VCARD\nFN:A\n \t B\n  C\n\tD\nEND:VCARD\n",
			want:  "ABCD",
		},
		{
			name:  "blank line does not break folding",
			input: "BEGIN:VCARD\nFN:Jo\n\n hn\nEND:VCARD\n",
			want:  "John",
		},
		{
			name:  "CRLF line endings",
			input: "BEGIN:VCARD\r\nFN:Jo\r\n hn\r\nEND:VCARD\r\n",
			want:  "John",
		},
		{
			name:  "lone CR line endings",
			input: "BEGIN:VCARD\rFN:Jo\r hn\rEND:VCARD\r",
			want:  "John",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := parseString(t, tt.input)
			if len(res.Contacts) != 1 {
				t.Fatalf("got %d contacts, want 1", len(res.Contacts))
			}
			if got := res.Contacts[0].FullName; got != tt.want {
				t.Errorf("FullName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_LeadingContinuationStartsLine(t *testing.T) {
	res := parseString(t, "BEGIN:VCARD\n FN:Orphan\nEND:VCARD\n")

	if len(res.Contacts) != 1 {
		t.Fatalf("got %d contacts, want 1", len(res.Contacts))
	}
	if got := res.Contacts[0].FullName; got != "Orphan" {
		t.Errorf("FullName = %q, want %q", got, "Orphan")
	}
}

func TestParse_FoldedBoundaryIsNotABoundary(t *testing.T) {
	// A continuation line never opens or closes a card.
	res := parseString(t, "BEGIN:VCARD\nFN:A\n END:VCARD\nEND:VCARD\n")

	if len(res.Contacts) != 1 || res.Skipped != 0 {
		t.Fatalf("contacts = %d, skipped = %d; want 1, 0", len(res.Contacts), res.Skipped)
	}
	if got := res.Contacts[0].FullName; got != "AEND:VCARD" {
		t.Errorf("FullName = %q, want %q", got, "AEND:VCARD")
	}
}

func TestParse_Fields(t *testing.T) {
	input := strings.Join([]string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"N:Doe;John;;;",
		"FN:John Doe",
		`ORG:Acme\, Inc`,
		"TEL;TYPE=CELL:0532 123 45 67",
		"item1.TEL;TYPE=pref:+1 212 555 0100",
		"EMAIL;TYPE=INTERNET:john@example.com",
		"item2.email:john.doe@work.example",
		"NOTE:ignored",
		"malformed line without separator",
		"END:VCARD",
	}, "\n")

	res := parseString(t, input)
	if len(res.Contacts) != 1 {
		t.Fatalf("got %d contacts, want 1", len(res.Contacts))
	}

	want := Contact{
		Name:         "John Doe",
		FullName:     "John Doe",
		Organization: "Acme, Inc",
		Telephones:   []string{"0 (532) 123 45 67", "+1 212 555 0100"},
		Emails:       []string{"john@example.com", "john.doe@work.example"},
	}
	if got := res.Contacts[0]; !reflect.DeepEqual(got, want) {
		t.Errorf("contact = %+v, want %+v", got, want)
	}
}

func TestParse_EmptyCardDefaults(t *testing.T) {
	res := parseString(t, "BEGIN:VCARD\nEND:VCARD\n")

	if len(res.Contacts) != 1 {
		t.Fatalf("got %d contacts, want 1", len(res.Contacts))
	}
	c := res.Contacts[0]
	if c.Name != "" || c.FullName != "" || c.Organization != "" {
		t.Errorf("scalar fields should be empty, got %+v", c)
	}
	if c.Telephones == nil || c.Emails == nil {
		t.Error("Telephones and Emails must be non-nil")
	}
}

func TestParse_LastFullNameWins(t *testing.T) {
	res := parseString(t, "BEGIN:VCARD\nFN:First\nFN:Second\nEND:VCARD\n")

	if got := res.Contacts[0].FullName; got != "Second" {
		t.Errorf("FullName = %q, want %q", got, "Second")
	}
}

func TestParse_ValueWithColons(t *testing.T) {
	res := parseString(t, "BEGIN:VCARD\nEMAIL:mailto:a@b.example\nFN:  Spaced  \nEND:VCARD\n")

	c := res.Contacts[0]
	if len(c.Emails) != 1 || c.Emails[0] != "mailto:a@b.example" {
		t.Errorf("Emails = %v, want [mailto:a@b.example]", c.Emails)
	}
	if c.FullName != "Spaced" {
		t.Errorf("FullName = %q, want %q", c.FullName, "Spaced")
	}
}

func TestParse_InvalidUTF8IsReplaced(t *testing.T) {
	input := []byte("BEGIN:VCARD\nFN:caf\xe9\nEND:VCARD\n")

	res, err := Parse(bytes.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(res.Contacts) != 1 {
		t.Fatalf("got %d contacts, want 1", len(res.Contacts))
	}
	if got := res.Contacts[0].FullName; got != "caf�" {
		t.Errorf("FullName = %q, want %q", got, "caf�")
	}
}

func TestParse_BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("BEGIN:VCARD\nFN:A\nEND:VCARD\n")...)

	res, err := Parse(bytes.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(res.Contacts) != 1 || res.Skipped != 0 {
		t.Errorf("contacts = %d, skipped = %d; want 1, 0", len(res.Contacts), res.Skipped)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.vcf")
	if err := os.WriteFile(path, []byte("BEGIN:VCARD\r\nFN:A\r\nEND:VCARD\r\nEND:VCARD\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	res, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if len(res.Contacts) != 1 || res.Skipped != 1 {
		t.Errorf("contacts = %d, skipped = %d; want 1, 1", len(res.Contacts), res.Skipped)
	}

	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.vcf")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParse_EncodedCards(t *testing.T) {
	var buf bytes.Buffer
	enc := govcard.NewEncoder(&buf)

	first := make(govcard.Card)
	first.SetValue(govcard.FieldVersion, "4.0")
	first.SetValue(govcard.FieldFormattedName, "Ayşe Yılmaz")
	first.SetValue(govcard.FieldName, "Yılmaz;Ayşe;;;")
	first.SetValue(govcard.FieldOrganization, "Acme, Inc")
	first.Add(govcard.FieldTelephone, &govcard.Field{
		Value:  "+90 532 123 45 67",
		Params: govcard.Params{govcard.ParamType: {govcard.TypeCell}},
	})
	first.Add(govcard.FieldTelephone, &govcard.Field{Value: "0212 555 12 34"})
	first.Add(govcard.FieldEmail, &govcard.Field{Value: "ayse@example.com"})

	second := make(govcard.Card)
	second.SetValue(govcard.FieldVersion, "4.0")
	second.SetValue(govcard.FieldFormattedName, "No Phone")

	for _, card := range []govcard.Card{first, second} {
		if err := enc.Encode(card); err != nil {
			t.Fatalf("Encode() error = %v", err)
		}
	}

	res := parseString(t, buf.String())
	if res.Skipped != 0 {
		t.Errorf("Skipped = %d, want 0", res.Skipped)
	}
	if len(res.Contacts) != 2 {
		t.Fatalf("got %d contacts, want 2", len(res.Contacts))
	}

	want := Contact{
		Name:         "Ayşe Yılmaz",
		FullName:     "Ayşe Yılmaz",
		Organization: "Acme, Inc",
		Telephones:   []string{"0 (532) 123 45 67", "0 (212) 555 12 34"},
		Emails:       []string{"ayse@example.com"},
	}
	if got := res.Contacts[0]; !reflect.DeepEqual(got, want) {
		t.Errorf("first contact = %+v, want %+v", got, want)
	}
	if got := res.Contacts[1].FullName; got != "No Phone" {
		t.Errorf("second FullName = %q, want %q", got, "No Phone")
	}
}

func TestFormatName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Doe;John;;;", "John Doe"},
		{";John;;;", "John"},
		{"Doe;;;;", "Doe"},
		{"Doe", "Doe"},
		{"", ""},
		{" Doe ; John ", "John Doe"},
	}

	for _, tt := range tests {
		if got := formatName(tt.in); got != tt.want {
			t.Errorf("formatName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsProperty(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"TEL", true},
		{"ITEM1.TEL", true},
		{"A.B.TEL", true},
		{"XTEL", false},
		{"TEL2", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isProperty(tt.name, "TEL"); got != tt.want {
			t.Errorf("isProperty(%q, TEL) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestEstimateCount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "empty", input: "", want: 0},
		{name: "two cards", input: "BEGIN:VCARD\nEND:VCARD\nbegin:vcard\nEND:VCARD\n", want: 2},
		{name: "unbalanced still counted", input: "BEGIN:VCARD\nBEGIN:VCARD\n", want: 2},
		{name: "indented begin counts", input: "  BEGIN:VCARD  \n", want: 1},
		{name: "begin inside value does not count", input: "NOTE:BEGIN:VCARD\n", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EstimateCount(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("EstimateCount() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("EstimateCount() = %d, want %d", got, tt.want)
			}
		})
	}
}
