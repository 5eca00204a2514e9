// Package importer converts foreign instruction formats into the native one.
//
// Currently supported is the mqt na statement format: semicolon-terminated
// statements (`init at`, `load at`, `move .. to ..`, `store at`, `rz(..) at`,
// `ry(..) at`, `cz at`) that address atoms by their current position.
package importer

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/floeze/naviz/internal/parser"
)

// Options controls the conversion.
type Options struct {
	// IDPrefix is prepended to the generated atom ids. Default "atom".
	IDPrefix string
	// CZZone is the zone id native cz instructions target. Default "zone0".
	CZZone string
}

func (o *Options) defaults() {
	if o.IDPrefix == "" {
		o.IDPrefix = "atom"
	}
	if o.CZZone == "" {
		o.CZZone = "zone0"
	}
}

// MQTNA converts mqt na source into native instructions.
func MQTNA(src string, opts Options) (*parser.Instructions, error) {
	text, err := MQTNASource(src, opts)
	if err != nil {
		return nil, err
	}
	return parser.ParseInstructions(text)
}

// position is a parsed coordinate pair. The raw strings are kept so the
// output reproduces the input precision.
type position struct {
	x, y       *big.Rat
	rawX, rawY string
}

func (p position) key() string {
	return p.x.RatString() + "," + p.y.RatString()
}

func (p position) String() string {
	return "(" + p.rawX + ", " + p.rawY + ")"
}

type statement struct {
	name      string
	argument  string // rotation angle for rz/ry
	from      *position
	positions []position
}

// MQTNASource converts mqt na source into native instruction source text.
// Atoms are identified by their current position: init declares them,
// move updates the tracked position.
func MQTNASource(src string, opts Options) (string, error) {
	opts.defaults()

	statements, err := parseStatements(src)
	if err != nil {
		return "", err
	}

	atoms := make(map[string]string) // position key -> atom id
	var out strings.Builder
	first := true

	// time of the first instruction is absolute, everything after runs
	// relative to the end of the previous statement
	time := func() string {
		if first {
			first = false
			return "@0"
		}
		return "@+0"
	}

	for i, st := range statements {
		switch st.name {
		case "init":
			if i != 0 {
				return "", fmt.Errorf("statement %d: init must come first", i+1)
			}
			for j, p := range st.positions {
				id := fmt.Sprintf("%s%d", opts.IDPrefix, j)
				atoms[p.key()] = id
				fmt.Fprintf(&out, "atom %s %s\n", p, id)
			}

		case "load", "store":
			for j, p := range st.positions {
				id, ok := atoms[p.key()]
				if !ok {
					return "", fmt.Errorf("statement %d: no atom at %s", i+1, p)
				}
				t := time()
				if j > 0 {
					t = "@=0"
				}
				fmt.Fprintf(&out, "%s %s %s\n", t, st.name, id)
			}

		case "move":
			id, ok := atoms[st.from.key()]
			if !ok {
				return "", fmt.Errorf("statement %d: no atom at %s", i+1, st.from)
			}
			target := st.positions[0]
			delete(atoms, st.from.key())
			atoms[target.key()] = id
			fmt.Fprintf(&out, "%s move %s %s\n", time(), target, id)

		case "rz", "ry":
			for j, p := range st.positions {
				id, ok := atoms[p.key()]
				if !ok {
					return "", fmt.Errorf("statement %d: no atom at %s", i+1, p)
				}
				t := time()
				if j > 0 {
					// later targets start together with the first
					t = "@=0"
				}
				fmt.Fprintf(&out, "%s %s %s %s\n", t, st.name, st.argument, id)
			}

		case "cz":
			// the native cz targets pairs inside a zone; the statement's
			// positions are implied by the zone contents
			fmt.Fprintf(&out, "%s cz %s\n", time(), opts.CZZone)

		default:
			return "", fmt.Errorf("statement %d: unknown statement %q", i+1, st.name)
		}
	}

	return out.String(), nil
}

// parseStatements splits the source into semicolon-terminated statements and
// parses each one.
func parseStatements(src string) ([]statement, error) {
	var statements []statement
	for i, raw := range strings.Split(stripComments(src), ";") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		st, err := parseStatement(raw)
		if err != nil {
			return nil, fmt.Errorf("statement %d: %w", i+1, err)
		}
		statements = append(statements, st)
	}
	return statements, nil
}

func stripComments(src string) string {
	var out strings.Builder
	for _, line := range strings.Split(src, "\n") {
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		out.WriteString(line)
		out.WriteString("\n")
	}
	return out.String()
}

func parseStatement(raw string) (statement, error) {
	var st statement

	head := raw
	if idx := strings.IndexAny(raw, " \t("); idx >= 0 {
		head = raw[:idx]
	}
	st.name = head
	rest := strings.TrimSpace(raw[len(head):])

	switch st.name {
	case "rz", "ry":
		if !strings.HasPrefix(rest, "(") {
			return st, fmt.Errorf("%s needs an angle argument", st.name)
		}
		end := strings.Index(rest, ")")
		if end < 0 {
			return st, fmt.Errorf("unterminated angle argument")
		}
		st.argument = strings.TrimSpace(rest[1:end])
		if _, ok := new(big.Rat).SetString(st.argument); !ok {
			return st, fmt.Errorf("invalid angle %q", st.argument)
		}
		rest = strings.TrimSpace(rest[end+1:])
	}

	switch st.name {
	case "move":
		from, rest2, err := parsePosition(rest)
		if err != nil {
			return st, err
		}
		st.from = &from
		rest2 = strings.TrimSpace(rest2)
		if !strings.HasPrefix(rest2, "to") {
			return st, fmt.Errorf("expected 'to' in move statement")
		}
		to, tail, err := parsePosition(strings.TrimSpace(rest2[2:]))
		if err != nil {
			return st, err
		}
		if strings.TrimSpace(tail) != "" {
			return st, fmt.Errorf("trailing input %q", tail)
		}
		st.positions = []position{to}
		return st, nil

	case "init", "load", "store", "rz", "ry", "cz":
		if st.name == "cz" && rest == "" {
			return st, nil
		}
		if !strings.HasPrefix(rest, "at") {
			return st, fmt.Errorf("expected 'at' in %s statement", st.name)
		}
		rest = strings.TrimSpace(rest[2:])
		for {
			p, tail, err := parsePosition(rest)
			if err != nil {
				return st, err
			}
			st.positions = append(st.positions, p)
			rest = strings.TrimSpace(tail)
			if rest == "" {
				return st, nil
			}
			if !strings.HasPrefix(rest, ",") {
				return st, fmt.Errorf("trailing input %q", rest)
			}
			rest = strings.TrimSpace(rest[1:])
		}

	default:
		return st, fmt.Errorf("unknown statement %q", st.name)
	}
}

// parsePosition parses "(x, y)" off the front and returns the remainder.
func parsePosition(s string) (position, string, error) {
	if !strings.HasPrefix(s, "(") {
		return position{}, "", fmt.Errorf("expected position, got %q", s)
	}
	end := strings.Index(s, ")")
	if end < 0 {
		return position{}, "", fmt.Errorf("unterminated position")
	}
	parts := strings.Split(s[1:end], ",")
	if len(parts) != 2 {
		return position{}, "", fmt.Errorf("position needs two coordinates, got %q", s[:end+1])
	}
	rawX := strings.TrimSpace(parts[0])
	rawY := strings.TrimSpace(parts[1])
	x, ok := new(big.Rat).SetString(rawX)
	if !ok {
		return position{}, "", fmt.Errorf("invalid coordinate %q", rawX)
	}
	y, ok := new(big.Rat).SetString(rawY)
	if !ok {
		return position{}, "", fmt.Errorf("invalid coordinate %q", rawY)
	}
	return position{x: x, y: y, rawX: rawX, rawY: rawY}, s[end+1:], nil
}
