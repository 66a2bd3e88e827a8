package query

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

// echoArgs is the ParseArgs used by most parser tests: it accepts any
// argument list and stores it unchanged.
func echoArgs(args []string) (interface{}, error) {
	return args, nil
}

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	reg := NewRegistry()
	if err := reg.Register(1, &stubType{parse: echoArgs}); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(23, &stubType{parse: echoArgs}); err != nil {
		t.Fatal(err)
	}
	return NewParser(reg)
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name          string
		line          string
		wantType      int
		wantFormatted bool
		wantArgs      []string
	}{
		{
			name:     "bare type id",
			line:     "1",
			wantType: 1,
			wantArgs: []string{},
		},
		{
			name:     "type id with arguments",
			line:     "1 JFonseca01 extra",
			wantType: 1,
			wantArgs: []string{"JFonseca01", "extra"},
		},
		{
			name:          "formatted suffix",
			line:          "1F id",
			wantType:      1,
			wantFormatted: true,
			wantArgs:      []string{"id"},
		},
		{
			name:     "multi digit type id",
			line:     "23 x",
			wantType: 23,
			wantArgs: []string{"x"},
		},
		{
			name:          "multi digit formatted",
			line:          "23F x",
			wantType:      23,
			wantFormatted: true,
			wantArgs:      []string{"x"},
		},
		{
			name:     "quoted argument",
			line:     `1 "John Doe"`,
			wantType: 1,
			wantArgs: []string{"John Doe"},
		},
	}

	p := newTestParser(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, err := p.ParseLine(tt.line, 7)
			if err != nil {
				t.Fatalf("ParseLine(%q) error = %v", tt.line, err)
			}
			if inst.Type != tt.wantType {
				t.Errorf("ParseLine(%q) type = %d, want %d", tt.line, inst.Type, tt.wantType)
			}
			if inst.Formatted != tt.wantFormatted {
				t.Errorf("ParseLine(%q) formatted = %v, want %v", tt.line, inst.Formatted, tt.wantFormatted)
			}
			if inst.Line != 7 {
				t.Errorf("ParseLine(%q) line = %d, want 7", tt.line, inst.Line)
			}
			got, ok := inst.Args.([]string)
			if !ok {
				t.Fatalf("ParseLine(%q) args have type %T", tt.line, inst.Args)
			}
			if !reflect.DeepEqual(got, tt.wantArgs) {
				t.Errorf("ParseLine(%q) args = %#v, want %#v", tt.line, got, tt.wantArgs)
			}
		})
	}
}

func TestParseLine_Errors(t *testing.T) {
	tests := []struct {
		name string
		line string
		want error
	}{
		{
			name: "empty line",
			line: "",
			want: ErrEmptyLine,
		},
		{
			name: "spaces only",
			line: "   ",
			want: ErrEmptyLine,
		},
		{
			name: "unterminated quote",
			line: `1 "John`,
			want: ErrUnterminatedQuote,
		},
		{
			name: "unregistered type",
			line: "2 id",
			want: ErrUnknownType,
		},
		{
			name: "non numeric type",
			line: "abc id",
		},
		{
			name: "lowercase formatted suffix",
			line: "1f id",
		},
		{
			name: "suffix without digits",
			line: "F id",
		},
		{
			name: "negative type id",
			line: "-1 id",
		},
		{
			name: "plus signed type id",
			line: "+1 id",
		},
		{
			name: "trailing garbage after digits",
			line: "1x id",
		},
	}

	p := newTestParser(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.ParseLine(tt.line, 3)
			if err == nil {
				t.Fatalf("ParseLine(%q) expected error", tt.line)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("ParseLine(%q) error = %v, want %v", tt.line, err, tt.want)
			}
			if !strings.Contains(err.Error(), "line 3") {
				t.Errorf("ParseLine(%q) error %q does not name the line", tt.line, err)
			}
		})
	}
}

func TestParseLine_ArgumentErrors(t *testing.T) {
	reg := NewRegistry()
	err := reg.Register(1, &stubType{parse: func(args []string) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("expected 1 argument, got %d", len(args))
		}
		return args[0], nil
	}})
	if err != nil {
		t.Fatal(err)
	}
	p := NewParser(reg)

	if _, err := p.ParseLine("1 a b", 5); err == nil {
		t.Error("ParseLine() expected the type's argument error to propagate")
	}

	inst, err := p.ParseLine("1 a", 5)
	if err != nil {
		t.Fatalf("ParseLine() error = %v", err)
	}
	if inst.Args.(string) != "a" {
		t.Errorf("ParseLine() args = %v, want a", inst.Args)
	}
}
