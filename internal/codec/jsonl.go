package codec

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// WriteJSONL writes one JSON object per contact, in order.
func WriteJSONL(w io.Writer, contacts []types.Contact) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, c := range contacts {
		if err := enc.Encode(c); err != nil {
			return fmt.Errorf("writing record %d: %w", c.ID, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing buffer: %w", err)
	}
	return nil
}

// ReadJSONL reads one JSON contact per line. Blank lines are ignored. Lines
// that are not a JSON object are skipped and reported in Result.Errors.
// Declared counts the non-blank lines. Field contents are not checked.
func ReadJSONL(r io.Reader) (Result, error) {
	var res Result
	br := bufio.NewReader(r)
	line := 0
	for {
		text, err := readLine(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("reading records: %w", err)
		}
		line++
		b := bytes.TrimSpace([]byte(text))
		if len(b) == 0 {
			continue
		}
		res.Declared++

		var c types.Contact
		if err := json.Unmarshal(b, &c); err != nil {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Errorf("line %d: %w: %w", line, types.ErrMalformedRecord, err))
			continue
		}
		res.Contacts = append(res.Contacts, c)
	}
	return res, nil
}

// SaveJSONL writes contacts to path atomically as JSON lines.
func SaveJSONL(path string, contacts []types.Contact) error {
	return writeAtomic(path, func(w io.Writer) error { return WriteJSONL(w, contacts) })
}

// LoadJSONL reads the JSON lines file at path. A file that cannot be opened
// wraps both ErrFileUnavailable and the underlying os error.
func LoadJSONL(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("opening %s: %w: %w", path, types.ErrFileUnavailable, err)
	}
	defer f.Close()

	res, err := ReadJSONL(f)
	if err != nil {
		return Result{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	return res, nil
}
