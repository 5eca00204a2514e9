package state

// AtomState is the visual state of one atom at an instant.
type AtomState struct {
	Position Position
	Size     float64
	Color    Color
	Shuttle  bool
	Label    string
}

// State is a single animation frame.
type State struct {
	Atoms []AtomState
	Time  string
}
