package parser

import (
	"math/big"
	"strings"
	"unicode"
)

// TimeSpec describes how an instruction's time value is interpreted:
// absolute, relative to the previous instruction's end, or relative to the
// previous instruction's start (`@=`).
type TimeSpec struct {
	Absolute  bool
	FromStart bool
	Positive  bool
}

// InstructionTime is a time spec with its value.
type InstructionTime struct {
	Spec  TimeSpec
	Value *big.Rat
}

// RawInstruction is an instruction as written, before arity and type checks.
type RawInstruction struct {
	Time *InstructionTime
	Name string
	Args []Value
}

// RawDirective is a `#name args...` line.
type RawDirective struct {
	Name string
	Args []Value
}

// RawItem is one statement of an input file. Exactly one field is set.
type RawItem struct {
	Instruction *RawInstruction
	Directive   *RawDirective
}

// ParseInput parses the instruction format into raw statements. Statements
// are newline-separated; blank lines and comments are skipped. Instruction
// groups (`[`, `~[`) are recognized but not supported.
func ParseInput(src string) ([]RawItem, error) {
	s := newScanner(src)
	var items []RawItem
	for {
		if err := s.skipSpace(true); err != nil {
			return nil, err
		}
		if s.eof() {
			return items, nil
		}
		switch s.peek() {
		case '#':
			d, err := parseDirective(s)
			if err != nil {
				return nil, err
			}
			items = append(items, RawItem{Directive: d})
		case '[', '~', ']':
			return nil, s.errorf("instruction groups are not supported")
		default:
			in, err := parseInstruction(s)
			if err != nil {
				return nil, err
			}
			items = append(items, RawItem{Instruction: in})
		}
	}
}

func parseDirective(s *scanner) (*RawDirective, error) {
	s.next() // '#'
	var sb strings.Builder
	for !s.eof() && !unicode.IsSpace(s.peek()) {
		sb.WriteRune(s.next())
	}
	if sb.Len() == 0 {
		return nil, s.errorf("empty directive name")
	}
	args, err := parseArgs(s)
	if err != nil {
		return nil, err
	}
	return &RawDirective{Name: sb.String(), Args: args}, nil
}

func parseInstruction(s *scanner) (*RawInstruction, error) {
	var t *InstructionTime
	if s.peek() == '@' {
		var err error
		if t, err = parseTime(s); err != nil {
			return nil, err
		}
		if err := s.skipSpace(false); err != nil {
			return nil, err
		}
	}
	name, err := s.scanIdentifier()
	if err != nil {
		return nil, err
	}
	args, err := parseArgs(s)
	if err != nil {
		return nil, err
	}
	return &RawInstruction{Time: t, Name: name, Args: args}, nil
}

// parseTime parses `@<n>`, `@+<n>`, `@-<n>` or `@=<n>`.
func parseTime(s *scanner) (*InstructionTime, error) {
	s.next() // '@'
	spec := TimeSpec{Absolute: true}
	if !s.eof() && s.peek() == '=' {
		s.next()
		spec = TimeSpec{FromStart: true, Positive: true}
	}
	if !s.eof() && (s.peek() == '+' || s.peek() == '-') {
		spec.Absolute = false
		spec.Positive = s.next() == '+'
	}
	if err := s.skipSpace(false); err != nil {
		return nil, err
	}
	v, err := s.scanValue(false)
	if err != nil {
		return nil, err
	}
	n, err := v.Number()
	if err != nil {
		return nil, s.errorf("time: %v", err)
	}
	return &InstructionTime{Spec: spec, Value: n}, nil
}

// parseArgs reads values until the end of the statement.
func parseArgs(s *scanner) ([]Value, error) {
	var args []Value
	for {
		if err := s.skipSpace(false); err != nil {
			return nil, err
		}
		if s.eof() || s.peek() == '\n' {
			return args, nil
		}
		if s.peek() == '[' || s.peek() == '~' || s.peek() == ']' {
			return nil, s.errorf("instruction groups are not supported")
		}
		v, err := s.scanValue(false)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
}
