package parser

import (
	"math/big"
	"testing"
)

func checkEntry(t *testing.T, e RelativeEntry, fromStart bool, offset string, op Op, id string) {
	t.Helper()
	if e.FromStart != fromStart {
		t.Errorf("%s %s: FromStart = %t, want %t", op, id, e.FromStart, fromStart)
	}
	if e.Offset.Cmp(Rat(offset)) != 0 {
		t.Errorf("%s %s: Offset = %s, want %s", op, id, e.Offset.RatString(), offset)
	}
	if e.Instruction.Op != op {
		t.Errorf("expected %s, got %s", op, e.Instruction.Op)
	}
	if e.Instruction.ID != id {
		t.Errorf("%s: ID = %q, want %q", op, e.Instruction.ID, id)
	}
}

func TestInstructionsRelativeChains(t *testing.T) {
	input := `
#target machine_a
#target machine_b
atom (0, 0) atom1
@+0 load atom1
@=2 store atom1
@+3 load atom1
@20 store atom1
@=2 load atom1
@+0 store atom1
`
	ins, err := ParseInstructions(input)
	if err != nil {
		t.Fatalf("ParseInstructions failed: %v", err)
	}

	if len(ins.Targets) != 2 || ins.Targets[0] != "machine_a" || ins.Targets[1] != "machine_b" {
		t.Errorf("unexpected targets: %v", ins.Targets)
	}
	if len(ins.Setup) != 1 {
		t.Fatalf("expected 1 setup instruction, got %d", len(ins.Setup))
	}
	setup := ins.Setup[0]
	if setup.ID != "atom1" || setup.Position.X.Sign() != 0 || setup.Position.Y.Sign() != 0 {
		t.Errorf("unexpected setup: %#v", setup)
	}

	if len(ins.Timeline) != 2 {
		t.Fatalf("expected 2 timeline entries, got %d", len(ins.Timeline))
	}

	first := ins.Timeline[0]
	if first.Start.Sign() != 0 {
		t.Errorf("first entry start = %s, want 0", first.Start.RatString())
	}
	if len(first.Entries) != 3 {
		t.Fatalf("expected 3 chained instructions, got %d", len(first.Entries))
	}
	checkEntry(t, first.Entries[0], false, "0", OpLoad, "atom1")
	checkEntry(t, first.Entries[1], true, "2", OpStore, "atom1")
	checkEntry(t, first.Entries[2], false, "3", OpLoad, "atom1")

	second := ins.Timeline[1]
	if second.Start.Cmp(Rat("20")) != 0 {
		t.Errorf("second entry start = %s, want 20", second.Start.RatString())
	}
	if len(second.Entries) != 3 {
		t.Fatalf("expected 3 chained instructions, got %d", len(second.Entries))
	}
	checkEntry(t, second.Entries[0], true, "0", OpStore, "atom1")
	checkEntry(t, second.Entries[1], true, "2", OpLoad, "atom1")
	checkEntry(t, second.Entries[2], false, "0", OpStore, "atom1")
}

func TestInstructionsExample(t *testing.T) {
	input := `
// An example visualization
#target example

atom (0, 0) atom0
atom (16, 0) atom1
atom (32, 0) atom2

@+0 load atom0
@=0 load (16, 2) atom1
@+0 move (8, 8) atom0
@=0 move (16, 16) atom1
@+0 store atom0
@=0 store atom1
@+0 rz 3.141 atom0
@+0 ry 3.141 atom1
@+0 cz zone0
`
	ins, err := ParseInstructions(input)
	if err != nil {
		t.Fatalf("ParseInstructions failed: %v", err)
	}

	if len(ins.Targets) != 1 || ins.Targets[0] != "example" {
		t.Errorf("unexpected targets: %v", ins.Targets)
	}
	if len(ins.Setup) != 3 {
		t.Fatalf("expected 3 setup instructions, got %d", len(ins.Setup))
	}
	if ins.Setup[1].ID != "atom1" || ins.Setup[1].Position.X.Cmp(Rat("16")) != 0 {
		t.Errorf("unexpected setup: %#v", ins.Setup[1])
	}

	if len(ins.Timeline) != 1 {
		t.Fatalf("expected 1 timeline entry, got %d", len(ins.Timeline))
	}
	entries := ins.Timeline[0].Entries
	if len(entries) != 9 {
		t.Fatalf("expected 9 instructions, got %d", len(entries))
	}

	load1 := entries[1].Instruction
	if load1.Op != OpLoad || load1.Position == nil || load1.Position.X.Cmp(Rat("16")) != 0 || load1.Position.Y.Cmp(Rat("2")) != 0 {
		t.Errorf("unexpected positioned load: %#v", load1)
	}
	if entries[0].Instruction.Position != nil {
		t.Errorf("plain load should have no position")
	}
	mv := entries[2].Instruction
	if mv.Op != OpMove || mv.Position.X.Cmp(Rat("8")) != 0 {
		t.Errorf("unexpected move: %#v", mv)
	}
	rz := entries[6].Instruction
	if rz.Op != OpRz || rz.Value.Cmp(big.NewRat(3141, 1000)) != 0 {
		t.Errorf("unexpected rz: %#v", rz)
	}
	cz := entries[8].Instruction
	if cz.Op != OpCz || cz.ID != "zone0" {
		t.Errorf("unexpected cz: %#v", cz)
	}
}

func TestInstructionsSortsByStart(t *testing.T) {
	ins, err := ParseInstructions("@10 load a\n@0 load b\n@5 load c\n")
	if err != nil {
		t.Fatalf("ParseInstructions failed: %v", err)
	}
	if len(ins.Timeline) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(ins.Timeline))
	}
	for i, want := range []string{"0", "5", "10"} {
		if ins.Timeline[i].Start.Cmp(Rat(want)) != 0 {
			t.Errorf("entry %d start = %s, want %s", i, ins.Timeline[i].Start.RatString(), want)
		}
	}
}

func TestInstructionsErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"unknown instruction", "@0 explode atom1\n"},
		{"unknown directive", "#frobnicate x\n"},
		{"timed atom", "@0 atom (0, 0) atom1\n"},
		{"missing time", "load atom1\n"},
		{"move without position", "@0 move atom1\n"},
		{"rz missing angle", "@0 rz atom1\n"},
		{"cz too many args", "@0 cz zone0 zone1\n"},
		{"bad position type", "@0 move (a, b) atom1\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseInstructions(tc.input); err == nil {
				t.Errorf("expected error for %q", tc.input)
			}
		})
	}
}
