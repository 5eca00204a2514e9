package parser

import (
	"fmt"
	"math/big"
)

// Position is a 2D coordinate in machine units.
type Position struct {
	X, Y float64
}

// Trap is a single static trap site.
type Trap struct {
	ID       string
	Position Position
}

// Zone is a rectangular machine region.
type Zone struct {
	ID       string
	From, To Position
}

// MachineConfig describes a neutral-atom machine: instruction timings, the
// movement profile, the interaction radius, and the trap/zone geometry.
type MachineConfig struct {
	Name string

	Time struct {
		Load, Store *big.Rat
		Rz, Ry, Cz  *big.Rat
		Unit        string
	}

	Movement struct {
		Speed        float64
		Acceleration struct {
			Up, Down float64
		}
	}

	Distance struct {
		Interaction float64
	}

	Traps []Trap
	Zones []Zone
}

// Zone returns the zone with the given id.
func (m *MachineConfig) Zone(id string) (Zone, bool) {
	for _, z := range m.Zones {
		if z.ID == id {
			return z, true
		}
	}
	return Zone{}, false
}

// ParseMachineConfig parses a machine config from source text.
func ParseMachineConfig(src string) (*MachineConfig, error) {
	items, err := ParseConfig(src)
	if err != nil {
		return nil, err
	}
	return ParseMachine(items)
}

// ParseMachine decodes a machine config from the generic config tree.
func ParseMachine(items []Item) (*MachineConfig, error) {
	root := NewSection(items)
	m := &MachineConfig{}
	var err error

	if m.Name, err = root.String("name"); err != nil {
		return nil, err
	}

	t, err := root.RequireBlock("time")
	if err != nil {
		return nil, err
	}
	if m.Time.Load, err = t.Rat("load"); err != nil {
		return nil, err
	}
	if m.Time.Store, err = t.Rat("store"); err != nil {
		return nil, err
	}
	if m.Time.Rz, err = t.Rat("rz"); err != nil {
		return nil, err
	}
	if m.Time.Ry, err = t.Rat("ry"); err != nil {
		return nil, err
	}
	if m.Time.Cz, err = t.Rat("cz"); err != nil {
		return nil, err
	}
	m.Time.Unit = t.StringOr("unit", "us")

	mov, err := root.RequireBlock("movement")
	if err != nil {
		return nil, err
	}
	if m.Movement.Speed, err = mov.Float("speed"); err != nil {
		return nil, err
	}
	acc, err := mov.RequireBlock("acceleration")
	if err != nil {
		return nil, err
	}
	if m.Movement.Acceleration.Up, err = acc.Float("up"); err != nil {
		return nil, err
	}
	if m.Movement.Acceleration.Down, err = acc.Float("down"); err != nil {
		return nil, err
	}

	d, err := root.RequireBlock("distance")
	if err != nil {
		return nil, err
	}
	if m.Distance.Interaction, err = d.Float("interaction"); err != nil {
		return nil, err
	}

	for _, b := range root.NamedBlocks("trap") {
		id, err := b.Arg.Text()
		if err != nil {
			return nil, fmt.Errorf("trap name: %w", err)
		}
		sec := Section{Path: "trap " + id, Items: b.Items}
		x, y, err := sec.Position("position")
		if err != nil {
			return nil, err
		}
		m.Traps = append(m.Traps, Trap{ID: id, Position: Position{x, y}})
	}

	for _, b := range root.NamedBlocks("zone") {
		id, err := b.Arg.Text()
		if err != nil {
			return nil, fmt.Errorf("zone name: %w", err)
		}
		sec := Section{Path: "zone " + id, Items: b.Items}
		fx, fy, err := sec.Position("from")
		if err != nil {
			return nil, err
		}
		tx, ty, err := sec.Position("to")
		if err != nil {
			return nil, err
		}
		m.Zones = append(m.Zones, Zone{ID: id, From: Position{fx, fy}, To: Position{tx, ty}})
	}

	return m, nil
}
