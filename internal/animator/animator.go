package animator

import (
	"fmt"
	"math"
	"math/big"
	"sort"

	"github.com/floeze/naviz/internal/parser"
	"github.com/floeze/naviz/internal/state"
)

// atomTimelines holds the four animated properties of one atom.
type atomTimelines struct {
	position     *Timeline[state.Position]
	overlayColor *Timeline[state.Color]
	size         *Timeline[float64]
	shuttling    *Timeline[bool]
}

func newAtomTimelines(position state.Position, size float64) atomTimelines {
	return atomTimelines{
		position:     NewTimeline(position, Cubic(lerpPosition)),
		overlayColor: NewTimeline(state.Color{}, Triangle(lerpColor)),
		size:         NewTimeline(size, Triangle(lerpFloat)),
		shuttling:    NewTimeline(false, Constant[bool]()),
	}
}

type atom struct {
	id        string
	name      string
	timelines atomTimelines
}

// Animator holds the computed per-atom timelines and the static config for a
// machine, style, and instruction stream.
type Animator struct {
	atoms    []*atom
	config   *state.Config
	duration float64

	machine *parser.MachineConfig
	visual  *parser.VisualConfig
}

// queueEntry is a pending relative timeline anchored at an absolute time.
type queueEntry struct {
	time    *big.Rat
	entries []parser.RelativeEntry
}

// New computes all timelines. Instructions are processed in start order; the
// remainder of a relative chain is re-anchored after each instruction at its
// start or end, depending on the next entry's mode.
func New(machine *parser.MachineConfig, visual *parser.VisualConfig, input *parser.Instructions) (*Animator, error) {
	a := &Animator{machine: machine, visual: visual}

	for _, s := range input.Setup {
		x, _ := s.Position.X.Float64()
		y, _ := s.Position.Y.Float64()
		a.atoms = append(a.atoms, &atom{
			id:        s.ID,
			name:      visual.AtomName(s.ID),
			timelines: newAtomTimelines(state.Position{X: x, Y: y}, visual.Atom.Radius),
		})
	}

	queue := make([]queueEntry, 0, len(input.Timeline))
	for _, e := range input.Timeline {
		queue = append(queue, queueEntry{time: e.Start, entries: e.Entries})
	}

	contentSize := state.Position{}
	durationTotal := new(big.Rat)

	for len(queue) > 0 {
		entry := queue[0]
		queue = queue[1:]
		if len(entry.entries) == 0 {
			continue
		}
		rel := entry.entries[0]
		rest := entry.entries[1:]

		startTime := new(big.Rat).Add(entry.time, rel.Offset)
		duration := a.instructionDuration(&rel.Instruction, startTime)
		startF, _ := startTime.Float64()
		durationF, _ := duration.Float64()

		if pos := rel.Instruction.Position; pos != nil {
			x, _ := pos.X.Float64()
			y, _ := pos.Y.Float64()
			contentSize.X = math.Max(contentSize.X, x)
			contentSize.Y = math.Max(contentSize.Y, y)
		}

		for _, target := range a.targeted(&rel.Instruction, startTime) {
			insertAnimation(&target.timelines, &rel.Instruction, startF, durationF, visual)
		}

		end := new(big.Rat).Add(startTime, duration)
		if end.Cmp(durationTotal) > 0 {
			durationTotal = end
		}

		if len(rest) > 0 {
			nextTime := end
			if rest[0].FromStart {
				nextTime = startTime
			}
			idx := sort.Search(len(queue), func(i int) bool {
				return queue[i].time.Cmp(nextTime) > 0
			})
			queue = append(queue, queueEntry{})
			copy(queue[idx+1:], queue[idx:])
			queue[idx] = queueEntry{time: nextTime, entries: rest}
		}
	}

	a.duration, _ = durationTotal.Float64()
	a.config = a.buildConfig(contentSize)

	return a, nil
}

// Config returns the static render configuration.
func (a *Animator) Config() *state.Config {
	return a.config
}

// Duration returns the total animation duration in machine time units.
func (a *Animator) Duration() float64 {
	return a.duration
}

// Background returns the viewport background color.
func (a *Animator) Background() state.Color {
	return a.visual.Viewport.Color
}

// AtomCount returns the number of animated atoms.
func (a *Animator) AtomCount() int {
	return len(a.atoms)
}

// State computes the frame at the given time.
func (a *Animator) State(time float64) *state.State {
	s := &state.State{
		Atoms: make([]state.AtomState, 0, len(a.atoms)),
		Time:  fmt.Sprintf("%s%.1f %s", a.visual.Time.Prefix, time, a.machine.Time.Unit),
	}
	for _, at := range a.atoms {
		pos := at.timelines.position.Get(time)
		overlay := at.timelines.overlayColor.Get(time)
		size := at.timelines.size.Get(time)
		shuttling := at.timelines.shuttling.Get(time)

		base := a.visual.Atom.Trapped.Color
		if shuttling {
			base = a.visual.Atom.Shuttling.Color
		}

		s.Atoms = append(s.Atoms, state.AtomState{
			Position: pos,
			Size:     size,
			Color:    Over(overlay, base),
			Shuttle:  shuttling,
			Label:    at.name,
		})
	}
	return s
}

// targeted resolves which atoms an instruction applies to: load/store/move by
// atom id, rz/ry by id or zone membership at start time, cz by pairs of atoms
// in the zone within interaction distance.
func (a *Animator) targeted(in *parser.TimedInstruction, startTime *big.Rat) []*atom {
	startF, _ := startTime.Float64()

	switch in.Op {
	case parser.OpLoad, parser.OpStore, parser.OpMove:
		return a.atomsByID(in.ID)
	case parser.OpRz, parser.OpRy:
		zone, ok := a.machine.Zone(in.ID)
		if !ok {
			return a.atomsByID(in.ID)
		}
		var out []*atom
		for _, at := range a.atoms {
			if at.id == in.ID || inZone(at.timelines.position.Get(startF), zone) {
				out = append(out, at)
			}
		}
		return out
	case parser.OpCz:
		zone, ok := a.machine.Zone(in.ID)
		if !ok {
			return nil
		}
		type candidate struct {
			atom *atom
			pos  state.Position
		}
		var inside []candidate
		for _, at := range a.atoms {
			pos := at.timelines.position.Get(startF)
			if inZone(pos, zone) {
				inside = append(inside, candidate{at, pos})
			}
		}
		seen := make(map[*atom]bool)
		var out []*atom
		for i := 0; i < len(inside); i++ {
			for j := i + 1; j < len(inside); j++ {
				if dist(inside[i].pos, inside[j].pos) <= a.machine.Distance.Interaction {
					for _, c := range []candidate{inside[i], inside[j]} {
						if !seen[c.atom] {
							seen[c.atom] = true
							out = append(out, c.atom)
						}
					}
				}
			}
		}
		return out
	}
	return nil
}

func (a *Animator) atomsByID(id string) []*atom {
	var out []*atom
	for _, at := range a.atoms {
		if at.id == id {
			out = append(out, at)
		}
	}
	return out
}

func inZone(pos state.Position, zone parser.Zone) bool {
	return pos.X >= zone.From.X && pos.X <= zone.To.X &&
		pos.Y >= zone.From.Y && pos.Y <= zone.To.Y
}

func dist(a, b state.Position) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// instructionDuration returns how long an instruction takes. Moves follow a
// trapezoidal velocity profile; the other durations come from the machine.
func (a *Animator) instructionDuration(in *parser.TimedInstruction, startTime *big.Rat) *big.Rat {
	switch in.Op {
	case parser.OpLoad:
		return a.machine.Time.Load
	case parser.OpStore:
		return a.machine.Time.Store
	case parser.OpRz:
		return a.machine.Time.Rz
	case parser.OpRy:
		return a.machine.Time.Ry
	case parser.OpCz:
		return a.machine.Time.Cz
	case parser.OpMove:
		targets := a.atomsByID(in.ID)
		if len(targets) == 0 || in.Position == nil {
			return new(big.Rat)
		}
		startF, _ := startTime.Float64()
		from := targets[0].timelines.position.Get(startF)
		x, _ := in.Position.X.Float64()
		y, _ := in.Position.Y.Float64()
		d := a.moveDuration(dist(from, state.Position{X: x, Y: y}))
		r := new(big.Rat)
		r.SetFloat64(d)
		return r
	}
	return new(big.Rat)
}

// moveDuration computes the travel time over the given distance with ramp-up
// and ramp-down accelerations and a speed cap.
func (a *Animator) moveDuration(distance float64) float64 {
	aUp := a.machine.Movement.Acceleration.Up
	aDown := a.machine.Movement.Acceleration.Down
	speedMax := a.machine.Movement.Speed

	timeUntilMaxUp := speedMax / aUp
	timeUntilMaxDown := speedMax / aDown

	// Where the speed-up and speed-down quadratics intersect.
	tIntersect := math.Sqrt(2 * distance / (aUp + aDown))
	if tIntersect <= timeUntilMaxUp && tIntersect <= timeUntilMaxDown {
		return 2 * tIntersect
	}

	distanceAtMax := distance -
		aDown/2*timeUntilMaxDown*timeUntilMaxDown -
		aUp/2*timeUntilMaxUp*timeUntilMaxUp
	return timeUntilMaxUp + distanceAtMax/speedMax + timeUntilMaxDown
}

// insertAnimation adds the keyframes for one instruction to one atom.
func insertAnimation(tl *atomTimelines, in *parser.TimedInstruction, start, duration float64, visual *parser.VisualConfig) {
	addOperation := func(style parser.OperationStyle) {
		tl.overlayColor.Add(start, duration, style.Color)
		tl.size.Add(start, duration, style.Radius.Resolve(visual.Atom.Radius))
	}

	switch in.Op {
	case parser.OpLoad, parser.OpStore:
		if in.Op == parser.OpLoad {
			tl.shuttling.Add(start, 0, true)
		} else {
			tl.shuttling.Add(start+duration, 0, false)
		}
		if in.Position != nil {
			x, _ := in.Position.X.Float64()
			y, _ := in.Position.Y.Float64()
			tl.position.Add(start, duration, state.Position{X: x, Y: y})
		}
	case parser.OpMove:
		x, _ := in.Position.X.Float64()
		y, _ := in.Position.Y.Float64()
		tl.position.Add(start, duration, state.Position{X: x, Y: y})
	case parser.OpRz:
		addOperation(visual.Operation.RZ)
	case parser.OpRy:
		addOperation(visual.Operation.RY)
	case parser.OpCz:
		addOperation(visual.Operation.CZ)
	}
}
