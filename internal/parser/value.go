package parser

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

// ValueKind enumerates the primitive value types shared by the config
// and input formats.
type ValueKind int

const (
	KindString ValueKind = iota
	KindRegex
	KindNumber
	KindPercentage
	KindBoolean
	KindColor
	KindIdentifier
	KindTuple
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindRegex:
		return "regex"
	case KindNumber:
		return "number"
	case KindPercentage:
		return "percentage"
	case KindBoolean:
		return "boolean"
	case KindColor:
		return "color"
	case KindIdentifier:
		return "identifier"
	case KindTuple:
		return "tuple"
	}
	return "unknown"
}

// Value is a parsed value of either format. Only the fields relevant to
// Kind are populated.
type Value struct {
	Kind  ValueKind
	Str   string   // KindString, KindIdentifier
	Num   *big.Rat // KindNumber, KindPercentage (percentage stored as given, not scaled)
	Bool  bool
	Color [4]uint8
	Regex *regexp.Regexp
	Tuple []Value
}

func Str(s string) Value        { return Value{Kind: KindString, Str: s} }
func Ident(s string) Value      { return Value{Kind: KindIdentifier, Str: s} }
func Num(r *big.Rat) Value      { return Value{Kind: KindNumber, Num: r} }
func Bool(b bool) Value         { return Value{Kind: KindBoolean, Bool: b} }
func Col(c [4]uint8) Value      { return Value{Kind: KindColor, Color: c} }
func Tup(vs ...Value) Value     { return Value{Kind: KindTuple, Tuple: vs} }
func Rgx(r *regexp.Regexp) Value {
	return Value{Kind: KindRegex, Regex: r}
}

// Rat builds a rational from a decimal literal. Panics on malformed input;
// intended for constants and tests.
func Rat(s string) *big.Rat {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		panic("parser: invalid rational literal " + s)
	}
	return r
}

// Text returns the string payload of a string or identifier value.
func (v Value) Text() (string, error) {
	if v.Kind != KindString && v.Kind != KindIdentifier {
		return "", fmt.Errorf("expected string or identifier, got %s", v.Kind)
	}
	return v.Str, nil
}

// Number returns the numeric payload of a number value.
func (v Value) Number() (*big.Rat, error) {
	if v.Kind != KindNumber {
		return nil, fmt.Errorf("expected number, got %s", v.Kind)
	}
	return v.Num, nil
}

// Pair interprets a tuple value as an (x, y) pair of numbers.
func (v Value) Pair() (x, y *big.Rat, err error) {
	if v.Kind != KindTuple || len(v.Tuple) != 2 {
		return nil, nil, fmt.Errorf("expected 2-tuple, got %s", v.Kind)
	}
	if x, err = v.Tuple[0].Number(); err != nil {
		return nil, nil, err
	}
	if y, err = v.Tuple[1].Number(); err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

// Equal compares two values structurally. Regexes compare by source text.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindString, KindIdentifier:
		return v.Str == o.Str
	case KindNumber, KindPercentage:
		return v.Num.Cmp(o.Num) == 0
	case KindBoolean:
		return v.Bool == o.Bool
	case KindColor:
		return v.Color == o.Color
	case KindRegex:
		return v.Regex.String() == o.Regex.String()
	case KindTuple:
		if len(v.Tuple) != len(o.Tuple) {
			return false
		}
		for i := range v.Tuple {
			if !v.Tuple[i].Equal(o.Tuple[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return fmt.Sprintf("%q", v.Str)
	case KindIdentifier:
		return v.Str
	case KindNumber:
		return v.Num.RatString()
	case KindPercentage:
		return v.Num.RatString() + "%"
	case KindBoolean:
		return fmt.Sprintf("%t", v.Bool)
	case KindColor:
		return fmt.Sprintf("#%02x%02x%02x%02x", v.Color[0], v.Color[1], v.Color[2], v.Color[3])
	case KindRegex:
		return "^" + v.Regex.String() + "$"
	case KindTuple:
		parts := make([]string, len(v.Tuple))
		for i, t := range v.Tuple {
			parts[i] = t.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	}
	return "<invalid>"
}
