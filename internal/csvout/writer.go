// Package csvout writes parsed contacts as a semicolon delimited CSV table.
//
// Multi-valued fields are flattened into numbered columns. The number of
// Tel and Email columns is the largest count found in any contact, and
// contacts with fewer values get empty cells.
package csvout

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/JonMunkholm/vcfcsv/internal/vcard"
)

// Delimiter separates fields in the output.
const Delimiter = ';'

var fixedColumns = []string{"Order", "Name", "Fullname", "Org"}

// Header returns the header row for the given column counts.
func Header(maxTel, maxEmail int) []string {
	header := make([]string, 0, len(fixedColumns)+maxTel+maxEmail)
	header = append(header, fixedColumns...)
	for i := 1; i <= maxTel; i++ {
		header = append(header, "Tel"+strconv.Itoa(i))
	}
	for i := 1; i <= maxEmail; i++ {
		header = append(header, "Email"+strconv.Itoa(i))
	}
	return header
}

// Row returns the record for one contact. order is the 1-based position of
// the contact in the input.
func Row(order int, c vcard.Contact, maxTel, maxEmail int) []string {
	row := make([]string, 0, len(fixedColumns)+maxTel+maxEmail)
	row = append(row, strconv.Itoa(order), c.Name, c.FullName, c.Organization)
	row = appendPadded(row, c.Telephones, maxTel)
	row = appendPadded(row, c.Emails, maxEmail)
	return row
}

func appendPadded(row, values []string, width int) []string {
	for i := 0; i < width; i++ {
		if i < len(values) {
			row = append(row, values[i])
		} else {
			row = append(row, "")
		}
	}
	return row
}

// MaxCounts returns the largest telephone and email counts across contacts.
func MaxCounts(contacts []vcard.Contact) (maxTel, maxEmail int) {
	for _, c := range contacts {
		maxTel = max(maxTel, len(c.Telephones))
		maxEmail = max(maxEmail, len(c.Emails))
	}
	return maxTel, maxEmail
}

// Write emits the header and one row per contact to w.
func Write(w io.Writer, contacts []vcard.Contact) error {
	maxTel, maxEmail := MaxCounts(contacts)

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = Delimiter
	csvWriter.UseCRLF = true

	if err := csvWriter.Write(Header(maxTel, maxEmail)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, c := range contacts {
		if err := csvWriter.Write(Row(i+1, c, maxTel, maxEmail)); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteFile creates path, truncating any existing file, and writes contacts
// to it.
func WriteFile(path string, contacts []vcard.Contact) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output file: %w", cerr)
		}
	}()

	return Write(f, contacts)
}
