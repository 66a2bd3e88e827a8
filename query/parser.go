package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrEmptyLine reports a query line with no fields at all.
	ErrEmptyLine = errors.New("empty query line")
	// ErrUnknownType reports a type id with no registered query type.
	ErrUnknownType = errors.New("unknown query type")
)

// Parser turns raw query lines into instances, using a registry both to
// check that type ids exist and to delegate argument parsing to the type
// itself.
type Parser struct {
	reg *Registry
}

// NewParser creates a parser over reg.
func NewParser(reg *Registry) *Parser {
	return &Parser{reg: reg}
}

// ParseLine parses one query line occurring at the 1-based lineNum.
//
// The first field is the numeric type id, optionally suffixed with a
// case-sensitive F requesting formatted output; the suffix is stripped
// before the number is read. The remaining fields go to the type's own
// ParseArgs. Any failure, from the tokenizer up to the argument parser,
// returns an error and a zero Instance that must not be used.
func (p *Parser) ParseLine(line string, lineNum int) (Instance, error) {
	fields, err := SplitFields(line)
	if err != nil {
		return Instance{}, fmt.Errorf("line %d: %w", lineNum, err)
	}
	if len(fields) == 0 {
		return Instance{}, fmt.Errorf("line %d: %w", lineNum, ErrEmptyLine)
	}

	head := fields[0]
	formatted := strings.HasSuffix(head, "F")
	if formatted {
		head = strings.TrimSuffix(head, "F")
	}

	// Atoi alone would admit a sign prefix, which the grammar does not.
	id, err := strconv.Atoi(head)
	if err != nil || !digitsOnly(head) {
		return Instance{}, fmt.Errorf("line %d: invalid query type %q", lineNum, fields[0])
	}

	t, ok := p.reg.Lookup(id)
	if !ok {
		return Instance{}, fmt.Errorf("line %d: %w %d", lineNum, ErrUnknownType, id)
	}

	args, err := t.ParseArgs(fields[1:])
	if err != nil {
		return Instance{}, fmt.Errorf("line %d: query type %d arguments: %w", lineNum, id, err)
	}

	return Instance{Type: id, Formatted: formatted, Line: lineNum, Args: args}, nil
}

// digitsOnly reports whether s is one or more ASCII digits.
func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
