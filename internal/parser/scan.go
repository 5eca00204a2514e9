package parser

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"unicode"
)

// scanner is the shared low-level reader for both text formats. The config
// format treats all whitespace alike; the input format keeps newlines as
// statement separators, so skipping is split into space-only and full modes.
type scanner struct {
	src  []rune
	pos  int
	line int
}

func newScanner(src string) *scanner {
	return &scanner{src: []rune(src), line: 1}
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

func (s *scanner) peek() rune {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) peekAt(off int) rune {
	if s.pos+off >= len(s.src) {
		return 0
	}
	return s.src[s.pos+off]
}

func (s *scanner) next() rune {
	r := s.src[s.pos]
	s.pos++
	if r == '\n' {
		s.line++
	}
	return r
}

func (s *scanner) errorf(format string, args ...any) error {
	return fmt.Errorf("line %d: %s", s.line, fmt.Sprintf(format, args...))
}

// skipSpace skips whitespace and comments. With newlines set to false,
// newlines outside of block comments are left in place so the caller can see
// them as separators. Line comments never consume their terminating newline.
func (s *scanner) skipSpace(newlines bool) error {
	for !s.eof() {
		r := s.peek()
		switch {
		case r == '\n' && !newlines:
			return nil
		case unicode.IsSpace(r):
			s.next()
		case r == '/' && s.peekAt(1) == '/':
			for !s.eof() && s.peek() != '\n' {
				s.next()
			}
		case r == '/' && s.peekAt(1) == '*':
			s.next()
			s.next()
			for {
				if s.eof() {
					return s.errorf("unterminated block comment")
				}
				if s.peek() == '*' && s.peekAt(1) == '/' {
					s.next()
					s.next()
					break
				}
				s.next()
			}
		default:
			return nil
		}
	}
	return nil
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.' || r == '-'
}

func (s *scanner) scanIdentifier() (string, error) {
	if !isIdentStart(s.peek()) {
		return "", s.errorf("expected identifier, got %q", s.peek())
	}
	var sb strings.Builder
	for !s.eof() && isIdentPart(s.peek()) {
		sb.WriteRune(s.next())
	}
	return sb.String(), nil
}

// scanValue scans a single value. Colors are only valid in the config format
// where '#' cannot start a directive.
func (s *scanner) scanValue(colors bool) (Value, error) {
	if s.eof() {
		return Value{}, s.errorf("expected value, got end of input")
	}
	r := s.peek()
	switch {
	case r == '"':
		return s.scanString()
	case r == '^':
		return s.scanRegex()
	case r == '#' && colors:
		return s.scanColor()
	case r == '(':
		return s.scanTuple(colors)
	case unicode.IsDigit(r) || r == '-':
		return s.scanNumber()
	case isIdentStart(r):
		id, err := s.scanIdentifier()
		if err != nil {
			return Value{}, err
		}
		switch id {
		case "true":
			return Bool(true), nil
		case "false":
			return Bool(false), nil
		}
		return Ident(id), nil
	}
	return Value{}, s.errorf("unexpected character %q", r)
}

func (s *scanner) scanString() (Value, error) {
	s.next() // opening quote
	var sb strings.Builder
	for {
		if s.eof() {
			return Value{}, s.errorf("unterminated string")
		}
		r := s.next()
		switch r {
		case '"':
			return Str(sb.String()), nil
		case '\\':
			if s.eof() {
				return Value{}, s.errorf("unterminated string")
			}
			switch e := s.next(); e {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			default:
				sb.WriteRune(e)
			}
		default:
			sb.WriteRune(r)
		}
	}
}

// scanRegex scans `^pattern$`. The delimiters are not part of the pattern.
func (s *scanner) scanRegex() (Value, error) {
	s.next() // '^'
	var sb strings.Builder
	for {
		if s.eof() {
			return Value{}, s.errorf("unterminated regex")
		}
		r := s.next()
		if r == '$' {
			break
		}
		sb.WriteRune(r)
	}
	re, err := regexp.Compile(sb.String())
	if err != nil {
		return Value{}, s.errorf("invalid regex %q: %v", sb.String(), err)
	}
	return Rgx(re), nil
}

func (s *scanner) scanColor() (Value, error) {
	s.next() // '#'
	var sb strings.Builder
	for !s.eof() && isHexDigit(s.peek()) {
		sb.WriteRune(s.next())
	}
	hex := sb.String()
	if len(hex) != 6 && len(hex) != 8 {
		return Value{}, s.errorf("color needs 6 or 8 hex digits, got %d", len(hex))
	}
	c := [4]uint8{0, 0, 0, 255}
	for i := 0; i < len(hex)/2; i++ {
		c[i] = hexByte(hex[2*i])<<4 | hexByte(hex[2*i+1])
	}
	return Col(c), nil
}

func isHexDigit(r rune) bool {
	return r >= '0' && r <= '9' || r >= 'a' && r <= 'f' || r >= 'A' && r <= 'F'
}

func hexByte(b byte) uint8 {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	default:
		return b - 'A' + 10
	}
}

func (s *scanner) scanNumber() (Value, error) {
	var sb strings.Builder
	if s.peek() == '-' {
		sb.WriteRune(s.next())
	}
	for !s.eof() && (unicode.IsDigit(s.peek()) || s.peek() == '.') {
		sb.WriteRune(s.next())
	}
	r, ok := new(big.Rat).SetString(sb.String())
	if !ok {
		return Value{}, s.errorf("invalid number %q", sb.String())
	}
	if !s.eof() && s.peek() == '%' {
		s.next()
		return Value{Kind: KindPercentage, Num: r}, nil
	}
	return Num(r), nil
}

func (s *scanner) scanTuple(colors bool) (Value, error) {
	s.next() // '('
	var elems []Value
	for {
		if err := s.skipSpace(true); err != nil {
			return Value{}, err
		}
		if s.eof() {
			return Value{}, s.errorf("unterminated tuple")
		}
		if s.peek() == ')' {
			s.next()
			return Tup(elems...), nil
		}
		v, err := s.scanValue(colors)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, v)
		if err := s.skipSpace(true); err != nil {
			return Value{}, err
		}
		switch s.peek() {
		case ',':
			s.next()
		case ')':
		default:
			return Value{}, s.errorf("expected ',' or ')' in tuple, got %q", s.peek())
		}
	}
}
