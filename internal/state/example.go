package state

func colorRef(c Color) *Color { return &c }

// ExampleConfig returns a small but complete config covering all renderer
// features. Used as a fixture by renderer tests and demos.
func ExampleConfig() *Config {
	return &Config{
		Machine: MachineConfig{
			Grid: GridConfig{
				Step: Position{10, 10},
				Line: LineConfig{
					Width:         1,
					SegmentLength: 3,
					Duty:          0.5,
					Color:         Color{0x60, 0x60, 0x60, 0xff},
				},
				Legend: GridLegendConfig{
					Step:   Position{20, 20},
					Font:   FontConfig{Size: 12, Color: Color{0xa0, 0xa0, 0xa0, 0xff}, Family: "sans-serif"},
					Labels: [2]string{"x", "y"},
					Position: struct {
						V VPosition
						H HPosition
					}{VBottom, HLeft},
				},
			},
			Traps: TrapConfig{
				Positions: []Position{{0, 0}, {20, 0}, {0, 20}, {20, 20}},
				Radius:    2,
				LineWidth: 1,
				Color:     Color{0x80, 0x80, 0x80, 0xff},
			},
			Zones: []ZoneConfig{
				{
					Start: Position{-5, -5},
					Size:  Position{30, 30},
					Line: LineConfig{
						Width:         1,
						SegmentLength: 4,
						Duty:          0.5,
						Color:         Color{0xc0, 0x40, 0x40, 0xff},
					},
				},
			},
		},
		Atoms: AtomsConfig{
			Label: FontConfig{Size: 10, Color: Color{0xff, 0xff, 0xff, 0xff}, Family: "sans-serif"},
			Shuttle: LineConfig{
				Width:         1,
				SegmentLength: 2,
				Duty:          0.5,
				Color:         Color{0x40, 0x40, 0xc0, 0xff},
			},
		},
		ContentExtent: [2]Position{{-5, -5}, {25, 25}},
		Legend: LegendConfig{
			Font:              FontConfig{Size: 16, Color: Color{0xff, 0xff, 0xff, 0xff}, Family: "sans-serif"},
			HeadingSkip:       16 * 1.6,
			EntrySkip:         16 * 1.4,
			ColorCircleRadius: 8,
			ColorPadding:      8,
			Entries: []LegendSection{
				{
					Name: "Zones",
					Entries: []LegendEntry{
						{Text: "Interaction", Color: colorRef(Color{0xc0, 0x40, 0x40, 0xff})},
					},
				},
				{
					Name: "Atoms",
					Entries: []LegendEntry{
						{Text: "Trapped", Color: colorRef(Color{0x40, 0xc0, 0x40, 0xff})},
						{Text: "Shuttling", Color: colorRef(Color{0x40, 0x40, 0xc0, 0xff})},
					},
				},
			},
		},
		Time: TimeConfig{
			Display: true,
			Font:    FontConfig{Size: 20, Color: Color{0xff, 0xff, 0xff, 0xff}, Family: "sans-serif"},
		},
	}
}

// ExampleState returns a frame matching ExampleConfig.
func ExampleState() *State {
	return &State{
		Atoms: []AtomState{
			{Position: Position{0, 0}, Size: 2, Color: Color{0x40, 0xc0, 0x40, 0xff}, Label: "q0"},
			{Position: Position{20, 0}, Size: 2, Color: Color{0x40, 0xc0, 0x40, 0xff}, Label: "q1"},
			{Position: Position{10, 10}, Size: 2.4, Color: Color{0x40, 0x40, 0xc0, 0xff}, Shuttle: true, Label: "q2"},
		},
		Time: "t = 12.5 us",
	}
}
