// Package codec reads and writes the address book text format: a decimal
// record count on the first line followed by one "id,name,phone,email" line
// per contact. Fields are not escaped, so names and phones must not contain
// commas. The email is the remainder of the line.
package codec

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

const fieldSep = ","

// Result is the outcome of a Decode.
type Result struct {
	// Contacts holds the well-formed records in file order.
	Contacts []types.Contact
	// Declared is the record count from the header line.
	Declared int
	// Skipped counts declared records that were malformed or missing.
	Skipped int
	// Errors describes each skipped line; every entry wraps ErrMalformedRecord.
	Errors []error
}

// Encode writes the count header and one line per contact, in order.
func Encode(w io.Writer, contacts []types.Contact) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d\n", len(contacts)); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, c := range contacts {
		if _, err := fmt.Fprintf(bw, "%d,%s,%s,%s\n", c.ID, c.Name, c.Phone, c.Email); err != nil {
			return fmt.Errorf("writing record %d: %w", c.ID, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing buffer: %w", err)
	}
	return nil
}

// Decode reads a count header and then at most that many record lines.
// An unreadable header fails the whole decode with ErrMalformedHeader and
// returns no contacts. Malformed record lines are skipped and reported in
// Result.Errors. Field contents are not validated.
func Decode(r io.Reader) (Result, error) {
	br := bufio.NewReader(r)

	header, err := readLine(br)
	if err != nil {
		if err == io.EOF {
			return Result{}, fmt.Errorf("%w: empty input", types.ErrMalformedHeader)
		}
		return Result{}, fmt.Errorf("reading header: %w", err)
	}
	declared, err := parseHeader(header)
	if err != nil {
		return Result{}, err
	}

	res := Result{Declared: declared}
	line := 1
	for len(res.Contacts)+res.Skipped < declared {
		text, err := readLine(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("reading records: %w", err)
		}
		line++
		c, err := parseRecord(text)
		if err != nil {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		res.Contacts = append(res.Contacts, c)
	}

	if missing := declared - len(res.Contacts) - res.Skipped; missing > 0 {
		res.Skipped += missing
		res.Errors = append(res.Errors, fmt.Errorf("%w: %d declared records missing", types.ErrMalformedRecord, missing))
	}
	return res, nil
}

// readLine returns the next line without its terminator. Lines have no
// length limit. A final line without a newline is still returned; io.EOF
// means nothing was left.
func readLine(br *bufio.Reader) (string, error) {
	s, err := br.ReadString('\n')
	if err != nil && (err != io.EOF || s == "") {
		return "", err
	}
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r"), nil
}

// parseHeader requires the whole line to be one non-negative integer.
func parseHeader(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", types.ErrMalformedHeader, s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: negative count %d", types.ErrMalformedHeader, n)
	}
	return n, nil
}

func parseRecord(s string) (types.Contact, error) {
	parts := strings.SplitN(s, fieldSep, 4)
	if len(parts) != 4 {
		return types.Contact{}, fmt.Errorf("%w: want 4 fields, got %d", types.ErrMalformedRecord, len(parts))
	}

	id, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || id <= 0 {
		return types.Contact{}, fmt.Errorf("%w: bad id %q", types.ErrMalformedRecord, parts[0])
	}

	c := types.Contact{ID: id, Name: parts[1], Phone: parts[2], Email: parts[3]}
	if err := checkWidth(types.FieldName, c.Name, types.MaxNameLength); err != nil {
		return types.Contact{}, err
	}
	if err := checkWidth(types.FieldPhone, c.Phone, types.MaxPhoneFieldLength); err != nil {
		return types.Contact{}, err
	}
	if err := checkWidth(types.FieldEmail, c.Email, types.MaxEmailLength); err != nil {
		return types.Contact{}, err
	}
	return c, nil
}

func checkWidth(f types.Field, v string, max int) error {
	if len(v) == 0 || len(v) > max {
		return fmt.Errorf("%w: %s must be 1-%d bytes, got %d", types.ErrMalformedRecord, f, max, len(v))
	}
	return nil
}
