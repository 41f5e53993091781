// Package vcard turns raw vCard text into flat contact records.
//
// The package is deliberately forgiving. It does not validate cards against
// RFC 6350; it only unfolds continuation lines, tracks card boundaries and
// splits property lines into name and value. Data problems never surface as
// errors: a malformed card is counted in [Result.Skipped] and parsing goes on.
// The only error [Parse] returns is a read error from the underlying reader.
//
// # Reading
//
// [NewReader] prepares a byte stream for line scanning:
//
//  1. A leading UTF-8 byte order mark is dropped.
//  2. Ill-formed UTF-8 is replaced with U+FFFD.
//
// Lines end at "\n", "\r\n" or a lone "\r".
//
// # Card boundaries
//
// Parsing is a two-state machine (outside a card, inside a card):
//
//	BEGIN:VCARD while inside   -> previous card skipped, new card opened
//	END:VCARD while outside    -> skipped, no record
//	end of input while inside  -> trailing card skipped
//
// Keywords are matched case-insensitively on the trimmed line.
//
// # Fields
//
// Only five properties are captured:
//
//	FN            FullName (last occurrence wins)
//	N             Name, "given family"
//	ORG           Organization, "\," unescaped
//	TEL, x.TEL    Telephones, normalized by package phone
//	EMAIL, x.EMAIL Emails, verbatim
//
// Everything else, including lines without a ':' separator, is ignored.
package vcard
