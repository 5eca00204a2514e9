package parser

import (
	"fmt"
	"math/big"
	"regexp"
)

// Item is a single entry of a parsed config file: a property, a block, or a
// named block.
type Item interface{ isItem() }

// Property is a `key: value` entry. Keys are usually identifiers but may be
// any value (naming rules use regex keys).
type Property struct {
	Key   Value
	Value Value
}

// Block is an `ident { ... }` entry.
type Block struct {
	Name  string
	Items []Item
}

// NamedBlock is an `ident <value> { ... }` entry, e.g. `zone left { ... }`.
type NamedBlock struct {
	Name  string
	Arg   Value
	Items []Item
}

func (Property) isItem()   {}
func (Block) isItem()      {}
func (NamedBlock) isItem() {}

// ParseConfig parses the generic config format into a list of items.
func ParseConfig(src string) ([]Item, error) {
	s := newScanner(src)
	items, err := parseItems(s, false)
	if err != nil {
		return nil, err
	}
	if !s.eof() {
		return nil, s.errorf("unexpected %q", s.peek())
	}
	return items, nil
}

// parseItems parses entries until EOF or, inside a block, the closing brace.
func parseItems(s *scanner, inBlock bool) ([]Item, error) {
	var items []Item
	for {
		if err := s.skipSpace(true); err != nil {
			return nil, err
		}
		if s.eof() {
			if inBlock {
				return nil, s.errorf("unexpected end of input, expected '}'")
			}
			return items, nil
		}
		if s.peek() == '}' {
			if !inBlock {
				return nil, s.errorf("unexpected '}'")
			}
			s.next()
			return items, nil
		}

		key, err := s.scanValue(true)
		if err != nil {
			return nil, err
		}
		if err := s.skipSpace(true); err != nil {
			return nil, err
		}
		if s.eof() {
			return nil, s.errorf("unexpected end of input after %s", key)
		}

		switch s.peek() {
		case ':':
			s.next()
			if err := s.skipSpace(true); err != nil {
				return nil, err
			}
			v, err := s.scanValue(true)
			if err != nil {
				return nil, err
			}
			items = append(items, Property{Key: key, Value: v})
		case '{':
			s.next()
			name, err := key.Text()
			if err != nil {
				return nil, s.errorf("block name must be an identifier, got %s", key.Kind)
			}
			inner, err := parseItems(s, true)
			if err != nil {
				return nil, err
			}
			items = append(items, Block{Name: name, Items: inner})
		default:
			// `ident <value> {`
			name, err := key.Text()
			if err != nil {
				return nil, s.errorf("block name must be an identifier, got %s", key.Kind)
			}
			arg, err := s.scanValue(true)
			if err != nil {
				return nil, err
			}
			if err := s.skipSpace(true); err != nil {
				return nil, err
			}
			if s.eof() || s.peek() != '{' {
				return nil, s.errorf("expected '{' after %s %s", name, arg)
			}
			s.next()
			inner, err := parseItems(s, true)
			if err != nil {
				return nil, err
			}
			items = append(items, NamedBlock{Name: name, Arg: arg, Items: inner})
		}
	}
}

// Section provides typed access to a list of config items. The path is only
// used for error messages.
type Section struct {
	Path  string
	Items []Item
}

func NewSection(items []Item) Section {
	return Section{Items: items}
}

func (c Section) at(name string) string {
	if c.Path == "" {
		return name
	}
	return c.Path + "." + name
}

// Prop returns the property with the given identifier key.
func (c Section) Prop(name string) (Value, bool) {
	for _, it := range c.Items {
		if p, ok := it.(Property); ok && p.Key.Kind == KindIdentifier && p.Key.Str == name {
			return p.Value, true
		}
	}
	return Value{}, false
}

// Block returns the sub-section for the block with the given name.
func (c Section) Block(name string) (Section, bool) {
	for _, it := range c.Items {
		if b, ok := it.(Block); ok && b.Name == name {
			return Section{Path: c.at(name), Items: b.Items}, true
		}
	}
	return Section{}, false
}

// RequireBlock is Block for mandatory sections.
func (c Section) RequireBlock(name string) (Section, error) {
	b, ok := c.Block(name)
	if !ok {
		return Section{}, fmt.Errorf("missing block %q", c.at(name))
	}
	return b, nil
}

// NamedBlocks returns all named blocks with the given name, in file order.
func (c Section) NamedBlocks(name string) []NamedBlock {
	var out []NamedBlock
	for _, it := range c.Items {
		if b, ok := it.(NamedBlock); ok && b.Name == name {
			out = append(out, b)
		}
	}
	return out
}

// Properties returns all properties of the section in file order, including
// ones with non-identifier keys.
func (c Section) Properties() []Property {
	var out []Property
	for _, it := range c.Items {
		if p, ok := it.(Property); ok {
			out = append(out, p)
		}
	}
	return out
}

func (c Section) String(name string) (string, error) {
	v, ok := c.Prop(name)
	if !ok {
		return "", fmt.Errorf("missing property %q", c.at(name))
	}
	s, err := v.Text()
	if err != nil {
		return "", fmt.Errorf("property %q: %w", c.at(name), err)
	}
	return s, nil
}

func (c Section) StringOr(name, def string) string {
	s, err := c.String(name)
	if err != nil {
		return def
	}
	return s
}

func (c Section) Rat(name string) (*big.Rat, error) {
	v, ok := c.Prop(name)
	if !ok {
		return nil, fmt.Errorf("missing property %q", c.at(name))
	}
	n, err := v.Number()
	if err != nil {
		return nil, fmt.Errorf("property %q: %w", c.at(name), err)
	}
	return n, nil
}

func (c Section) Float(name string) (float64, error) {
	r, err := c.Rat(name)
	if err != nil {
		return 0, err
	}
	f, _ := r.Float64()
	return f, nil
}

func (c Section) FloatOr(name string, def float64) float64 {
	f, err := c.Float(name)
	if err != nil {
		return def
	}
	return f
}

func (c Section) Bool(name string) (bool, error) {
	v, ok := c.Prop(name)
	if !ok {
		return false, fmt.Errorf("missing property %q", c.at(name))
	}
	if v.Kind != KindBoolean {
		return false, fmt.Errorf("property %q: expected boolean, got %s", c.at(name), v.Kind)
	}
	return v.Bool, nil
}

func (c Section) BoolOr(name string, def bool) bool {
	b, err := c.Bool(name)
	if err != nil {
		return def
	}
	return b
}

func (c Section) Color(name string) ([4]uint8, error) {
	v, ok := c.Prop(name)
	if !ok {
		return [4]uint8{}, fmt.Errorf("missing property %q", c.at(name))
	}
	if v.Kind != KindColor {
		return [4]uint8{}, fmt.Errorf("property %q: expected color, got %s", c.at(name), v.Kind)
	}
	return v.Color, nil
}

// Position reads a 2-tuple of numbers as float64 coordinates.
func (c Section) Position(name string) (x, y float64, err error) {
	v, ok := c.Prop(name)
	if !ok {
		return 0, 0, fmt.Errorf("missing property %q", c.at(name))
	}
	rx, ry, err := v.Pair()
	if err != nil {
		return 0, 0, fmt.Errorf("property %q: %w", c.at(name), err)
	}
	x, _ = rx.Float64()
	y, _ = ry.Float64()
	return x, y, nil
}

// Regex reads a regex property.
func (c Section) Regex(name string) (*regexp.Regexp, error) {
	v, ok := c.Prop(name)
	if !ok {
		return nil, fmt.Errorf("missing property %q", c.at(name))
	}
	if v.Kind != KindRegex {
		return nil, fmt.Errorf("property %q: expected regex, got %s", c.at(name), v.Kind)
	}
	return v.Regex, nil
}
