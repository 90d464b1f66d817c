package csvtool

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var (
	// scanEmailRE discovers email-shaped substrings inside a field. The TLD
	// class is deliberately loose (it admits '|'); the strict pass below is
	// the decider.
	scanEmailRE = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)

	// strictEmailRE re-validates each discovered substring as a complete
	// address. Scanning alone over-matches; only strict full matches qualify
	// a row.
	strictEmailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// ContainsEmail reports whether text holds at least one syntactically valid
// email address.
func ContainsEmail(text string) bool {
	for _, m := range scanEmailRE.FindAllString(text, -1) {
		if strictEmailRE.MatchString(strings.TrimSpace(m)) {
			return true
		}
	}
	return false
}

// FilterEmails copies from r to w only the rows where at least one field
// contains a valid email address. The header row is always written. The
// input's delimiter is auto-detected from a sample. Returns the number of
// qualifying rows.
func FilterEmails(r io.Reader, w io.Writer) (int, error) {
	br := bufio.NewReaderSize(r, 1024*1024)
	sample, _ := br.Peek(64 * 1024)

	cr := csv.NewReader(br)
	cr.Comma = SniffDelimiter(sample)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return 0, fmt.Errorf("empty CSV input")
	}
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return 0, err
	}

	kept := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				// Malformed row: skip it, keep recovering data from the rest.
				continue
			}
			// Anything else is the input itself failing; retrying the read
			// would return the same error forever.
			return kept, fmt.Errorf("read row: %w", err)
		}
		if rowHasEmail(row) {
			if err := cw.Write(row); err != nil {
				return kept, err
			}
			kept++
		}
	}
	cw.Flush()
	return kept, cw.Error()
}

func rowHasEmail(row []string) bool {
	for _, field := range row {
		if ContainsEmail(field) {
			return true
		}
	}
	return false
}
