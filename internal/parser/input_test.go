package parser

import (
	"math/big"
	"testing"
)

func TestParseInputSimpleExample(t *testing.T) {
	input := `
        #directive value
        #other_directive "string"

        instruction argument "argument" ^argument$
        @0 timed_instruction arg
        @-1 negative_timed_instruction arg
        @=2 positive_start_timed_instruction arg
        `

	items, err := ParseInput(input)
	if err != nil {
		t.Fatalf("ParseInput failed: %v", err)
	}
	if len(items) != 6 {
		t.Fatalf("expected 6 statements, got %d", len(items))
	}

	d := items[0].Directive
	if d == nil || d.Name != "directive" || len(d.Args) != 1 || !d.Args[0].Equal(Ident("value")) {
		t.Errorf("unexpected statement 0: %#v", items[0])
	}
	d = items[1].Directive
	if d == nil || d.Name != "other_directive" || !d.Args[0].Equal(Str("string")) {
		t.Errorf("unexpected statement 1: %#v", items[1])
	}

	in := items[2].Instruction
	if in == nil || in.Time != nil || in.Name != "instruction" {
		t.Fatalf("unexpected statement 2: %#v", items[2])
	}
	if len(in.Args) != 3 ||
		!in.Args[0].Equal(Ident("argument")) ||
		!in.Args[1].Equal(Str("argument")) ||
		in.Args[2].Kind != KindRegex || in.Args[2].Regex.String() != "argument" {
		t.Errorf("unexpected args: %#v", in.Args)
	}

	in = items[3].Instruction
	if in == nil || in.Time == nil || !in.Time.Spec.Absolute || in.Time.Value.Cmp(Rat("0")) != 0 {
		t.Errorf("unexpected absolute time: %#v", items[3])
	}

	in = items[4].Instruction
	want := TimeSpec{Absolute: false, FromStart: false, Positive: false}
	if in == nil || in.Time == nil || in.Time.Spec != want || in.Time.Value.Cmp(Rat("1")) != 0 {
		t.Errorf("unexpected relative time: %#v", items[4])
	}

	in = items[5].Instruction
	want = TimeSpec{Absolute: false, FromStart: true, Positive: true}
	if in == nil || in.Time == nil || in.Time.Spec != want || in.Time.Value.Cmp(Rat("2")) != 0 {
		t.Errorf("unexpected from-start time: %#v", items[5])
	}
}

func TestParseInputTuplesAndComments(t *testing.T) {
	items, err := ParseInput("@0 move (8, 8) atom0 // trailing\n/* multi\nline */ @+1 store atom0\n")
	if err != nil {
		t.Fatalf("ParseInput failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(items))
	}
	mv := items[0].Instruction
	if mv.Name != "move" || len(mv.Args) != 2 {
		t.Fatalf("unexpected move: %#v", mv)
	}
	x, y, err := mv.Args[0].Pair()
	if err != nil || x.Cmp(Rat("8")) != 0 || y.Cmp(Rat("8")) != 0 {
		t.Errorf("unexpected position: %v, %v, %v", x, y, err)
	}
	st := items[1].Instruction
	if st.Name != "store" || st.Time == nil || st.Time.Spec.Positive != true {
		t.Errorf("unexpected store: %#v", st)
	}
}

func TestParseInputRejectsGroups(t *testing.T) {
	if _, err := ParseInput("@+ [\n a 1\n b 2\n]"); err == nil {
		t.Error("expected error for instruction group")
	}
	if _, err := ParseInput("group ~[\n 1\n 2\n]"); err == nil {
		t.Error("expected error for variable instruction group")
	}
}

func TestParseInputNegativeAngle(t *testing.T) {
	items, err := ParseInput("@0 rz -1.5 atom0\n")
	if err != nil {
		t.Fatalf("ParseInput failed: %v", err)
	}
	n, err := items[0].Instruction.Args[0].Number()
	if err != nil || n.Cmp(big.NewRat(-3, 2)) != 0 {
		t.Errorf("unexpected angle: %v, %v", n, err)
	}
}
