package query

import (
	"errors"
	"strings"
)

// ErrUnterminatedQuote reports a quoted argument whose closing quote is
// missing from the line.
var ErrUnterminatedQuote = errors.New("unterminated quoted argument")

// fieldScanner walks a query line one field at a time. Fields are slices of
// the input, never copies, and the input is never modified.
type fieldScanner struct {
	input string
	pos   int
}

// skipSpaces advances past field separators. Runs of spaces produce no
// empty fields.
func (s *fieldScanner) skipSpaces() {
	for s.pos < len(s.input) && s.input[s.pos] == ' ' {
		s.pos++
	}
}

// next returns the next field, or ok=false at end of input.
func (s *fieldScanner) next() (field string, ok bool, err error) {
	s.skipSpaces()
	if s.pos >= len(s.input) {
		return "", false, nil
	}
	if s.input[s.pos] == '"' {
		return s.readQuoted()
	}

	start := s.pos
	for s.pos < len(s.input) && s.input[s.pos] != ' ' {
		s.pos++
	}
	return s.input[start:s.pos], true, nil
}

// readQuoted consumes a double-quoted span. The span keeps absorbing
// space-separated pieces until one ends in a closing quote; the quotes are
// stripped and everything between them, interior spaces included, becomes
// the field.
func (s *fieldScanner) readQuoted() (string, bool, error) {
	start := s.pos + 1 // past the opening quote
	s.pos = start
	for {
		pieceStart := s.pos
		for s.pos < len(s.input) && s.input[s.pos] != ' ' {
			s.pos++
		}
		piece := s.input[pieceStart:s.pos]
		// The opening quote cannot close the span by itself, hence the
		// pos > start check for the degenerate `"` field.
		if strings.HasSuffix(piece, `"`) && s.pos > start {
			field := s.input[start : s.pos-1]
			if s.pos < len(s.input) {
				s.pos++ // past the separator
			}
			return field, true, nil
		}
		if s.pos >= len(s.input) {
			return "", false, ErrUnterminatedQuote
		}
		s.pos++ // the space stays inside the span
	}
}

// ScanFields splits line into space-separated fields and calls visit once
// per field, in order. Quoted fields arrive with their quotes stripped.
// A non-nil error from visit stops the scan immediately and is returned
// verbatim; an unterminated quote returns ErrUnterminatedQuote.
func ScanFields(line string, visit func(field string) error) error {
	s := fieldScanner{input: line}
	for {
		field, ok, err := s.next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := visit(field); err != nil {
			return err
		}
	}
}

// SplitFields collects the fields of line into a slice. It is equivalent to
// ScanFields with an appending callback.
func SplitFields(line string) ([]string, error) {
	var fields []string
	err := ScanFields(line, func(field string) error {
		fields = append(fields, field)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fields, nil
}
