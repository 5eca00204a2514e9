package parser

import (
	"fmt"
	"math/big"
	"sort"
)

// Op is the kind of a timed instruction.
type Op int

const (
	OpLoad Op = iota
	OpStore
	OpMove
	OpRz
	OpRy
	OpCz
)

func (o Op) String() string {
	switch o {
	case OpLoad:
		return "load"
	case OpStore:
		return "store"
	case OpMove:
		return "move"
	case OpRz:
		return "rz"
	case OpRy:
		return "ry"
	case OpCz:
		return "cz"
	}
	return "unknown"
}

// RatPos is an exact coordinate pair.
type RatPos struct {
	X, Y *big.Rat
}

// SetupInstruction places an atom before the animation starts.
type SetupInstruction struct {
	Position RatPos
	ID       string
}

// TimedInstruction is a validated instruction. Position is set for move and
// optionally for load/store; Value is the angle for rz/ry. ID names an atom,
// or a zone for rz/ry/cz.
type TimedInstruction struct {
	Op       Op
	Position *RatPos
	Value    *big.Rat
	ID       string
}

// RelativeEntry is one instruction of a relative timeline. The offset is
// relative to the previous entry's start (FromStart) or end.
type RelativeEntry struct {
	FromStart   bool
	Offset      *big.Rat
	Instruction TimedInstruction
}

// TimelineEntry is a chain of relatively-timed instructions anchored at an
// absolute start time.
type TimelineEntry struct {
	Start   *big.Rat
	Entries []RelativeEntry
}

// Instructions is a fully validated input file: compatibility targets, atom
// setup, and the instruction timeline sorted by start time.
type Instructions struct {
	Targets  []string
	Setup    []SetupInstruction
	Timeline []TimelineEntry
}

// ParseInstructions parses input format source into validated instructions.
func ParseInstructions(src string) (*Instructions, error) {
	raw, err := ParseInput(src)
	if err != nil {
		return nil, err
	}
	return NewInstructions(raw)
}

// NewInstructions validates raw statements and assembles the timeline.
func NewInstructions(items []RawItem) (*Instructions, error) {
	ins := &Instructions{}
	prev := -1

	for _, item := range items {
		if d := item.Directive; d != nil {
			switch d.Name {
			case "target":
				id, err := idArg(d.Args, "#target")
				if err != nil {
					return nil, err
				}
				ins.Targets = append(ins.Targets, id)
			default:
				return nil, fmt.Errorf("unknown directive %q", d.Name)
			}
			continue
		}

		in := item.Instruction
		switch in.Name {
		case "atom":
			if in.Time != nil {
				return nil, fmt.Errorf("atom does not take a time")
			}
			pos, id, err := positionID(in.Args, "atom")
			if err != nil {
				return nil, err
			}
			ins.Setup = append(ins.Setup, SetupInstruction{Position: *pos, ID: id})
		case "load", "store":
			pos, id, err := maybePositionID(in.Args, in.Name)
			if err != nil {
				return nil, err
			}
			op := OpLoad
			if in.Name == "store" {
				op = OpStore
			}
			if err := ins.insertAtTime(in.Time, in.Name, TimedInstruction{Op: op, Position: pos, ID: id}, &prev); err != nil {
				return nil, err
			}
		case "move":
			pos, id, err := positionID(in.Args, "move")
			if err != nil {
				return nil, err
			}
			if err := ins.insertAtTime(in.Time, "move", TimedInstruction{Op: OpMove, Position: pos, ID: id}, &prev); err != nil {
				return nil, err
			}
		case "rz", "ry":
			value, id, err := numberID(in.Args, in.Name)
			if err != nil {
				return nil, err
			}
			op := OpRz
			if in.Name == "ry" {
				op = OpRy
			}
			if err := ins.insertAtTime(in.Time, in.Name, TimedInstruction{Op: op, Value: value, ID: id}, &prev); err != nil {
				return nil, err
			}
		case "cz":
			id, err := idArg(in.Args, "cz")
			if err != nil {
				return nil, err
			}
			if err := ins.insertAtTime(in.Time, "cz", TimedInstruction{Op: OpCz, ID: id}, &prev); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("unknown instruction %q", in.Name)
		}
	}

	sort.SliceStable(ins.Timeline, func(i, j int) bool {
		return ins.Timeline[i].Start.Cmp(ins.Timeline[j].Start) < 0
	})

	return ins, nil
}

// insertAtTime places an instruction into the timeline. Absolute times open
// a new entry; relative times chain onto the entry of the previously inserted
// instruction, or open a new entry when there is none.
func (ins *Instructions) insertAtTime(t *InstructionTime, name string, inst TimedInstruction, prev *int) error {
	if t == nil {
		return fmt.Errorf("%s requires a time", name)
	}
	v := new(big.Rat).Set(t.Value)
	if t.Spec.Absolute {
		ins.Timeline = append(ins.Timeline, TimelineEntry{
			Start:   v,
			Entries: []RelativeEntry{{FromStart: true, Offset: new(big.Rat), Instruction: inst}},
		})
		*prev = len(ins.Timeline) - 1
		return nil
	}
	if !t.Spec.Positive {
		v.Neg(v)
	}
	entry := RelativeEntry{FromStart: t.Spec.FromStart, Offset: v, Instruction: inst}
	if *prev >= 0 {
		ins.Timeline[*prev].Entries = append(ins.Timeline[*prev].Entries, entry)
		return nil
	}
	ins.Timeline = append(ins.Timeline, TimelineEntry{
		Start:   new(big.Rat).Set(v),
		Entries: []RelativeEntry{entry},
	})
	*prev = len(ins.Timeline) - 1
	return nil
}

func idArg(args []Value, name string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%s: expected 1 argument, got %d", name, len(args))
	}
	if args[0].Kind != KindIdentifier {
		return "", fmt.Errorf("%s: expected an id, got %s", name, args[0].Kind)
	}
	return args[0].Str, nil
}

func positionID(args []Value, name string) (*RatPos, string, error) {
	if len(args) != 2 {
		return nil, "", fmt.Errorf("%s: expected 2 arguments, got %d", name, len(args))
	}
	pos, err := ratPos(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("%s: %v", name, err)
	}
	if args[1].Kind != KindIdentifier {
		return nil, "", fmt.Errorf("%s: expected an id, got %s", name, args[1].Kind)
	}
	return pos, args[1].Str, nil
}

func maybePositionID(args []Value, name string) (*RatPos, string, error) {
	switch len(args) {
	case 1:
		if args[0].Kind != KindIdentifier {
			return nil, "", fmt.Errorf("%s: expected an id, got %s", name, args[0].Kind)
		}
		return nil, args[0].Str, nil
	case 2:
		return positionID(args, name)
	}
	return nil, "", fmt.Errorf("%s: expected 1 or 2 arguments, got %d", name, len(args))
}

func numberID(args []Value, name string) (*big.Rat, string, error) {
	if len(args) != 2 {
		return nil, "", fmt.Errorf("%s: expected 2 arguments, got %d", name, len(args))
	}
	n, err := args[0].Number()
	if err != nil {
		return nil, "", fmt.Errorf("%s: %v", name, err)
	}
	if args[1].Kind != KindIdentifier {
		return nil, "", fmt.Errorf("%s: expected an id, got %s", name, args[1].Kind)
	}
	return n, args[1].Str, nil
}

func ratPos(v Value) (*RatPos, error) {
	x, y, err := v.Pair()
	if err != nil {
		return nil, err
	}
	return &RatPos{X: x, Y: y}, nil
}
