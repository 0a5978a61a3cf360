package dfa

import (
	"testing"

	"github.com/parsepact/parsepact/grammar/lexical/parser"
)

func genDFA(t *testing.T, patterns ...string) *DFA {
	t.Helper()
	var trees []*TokenTree
	for i, pattern := range patterns {
		tree, err := parser.ParseRegex(pattern)
		if err != nil {
			t.Fatalf("%q: %v", pattern, err)
		}
		trees = append(trees, &TokenTree{
			Token: i,
			Tree:  tree,
		})
	}
	st, err := GenSyntaxTree(trees)
	if err != nil {
		t.Fatal(err)
	}
	d, err := GenDFA(st)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

// match runs the parse-time loop: follow transitions as long as they
// exist, then report the token of the last state if it accepts.
func match(d *DFA, input string) (int, bool) {
	state := 0
	i := 0
	for {
		var c byte
		if i < len(input) {
			c = input[i]
		}

		found := false
		for j := d.States[state].TransitionsBegin; j < len(d.Transitions) && d.Transitions[j].From == state; j++ {
			tr := d.Transitions[j]
			if tr.Lo <= c && c < tr.Hi {
				state = tr.Next
				i++
				found = true
				break
			}
		}
		if found {
			continue
		}
		if d.States[state].Accepting {
			return d.States[state].Token, true
		}
		return 0, false
	}
}

func TestSingleCharRoundTrip(t *testing.T) {
	d := genDFA(t, "c")
	if tok, ok := match(d, "c"); !ok || tok != 0 {
		t.Fatalf("c must be recognized, got (%v, %v)", tok, ok)
	}
	for _, in := range []string{"d", "cc", "b"} {
		if _, ok := match(d, in); ok {
			t.Errorf("%q must not be recognized", in)
		}
	}
}

func TestConcatenationIsAssociative(t *testing.T) {
	left := genDFA(t, "(ab)c")
	right := genDFA(t, "a(bc)")
	for _, tt := range []struct {
		input string
		want  bool
	}{
		{input: "abc", want: true},
		{input: "ab", want: false},
		{input: "abcc", want: false},
		{input: "", want: false},
	} {
		_, gotL := match(left, tt.input)
		_, gotR := match(right, tt.input)
		if gotL != tt.want || gotR != tt.want {
			t.Errorf("%q: want %v, got (ab)c=%v a(bc)=%v", tt.input, tt.want, gotL, gotR)
		}
	}
}

func TestLongestMatchWithCatchAll(t *testing.T) {
	// The catch-all matches the longest prefix of "ann" even though
	// "anna" shares the first three characters.
	d := genDFA(t, "c|d(f?|g)", "anna", ".*")
	tok, ok := match(d, "ann")
	if !ok || tok != 2 {
		t.Fatalf("want token 2, got (%v, %v)", tok, ok)
	}

	tok, ok = match(d, "anna")
	if !ok || tok != 1 {
		t.Fatalf("want token 1 for the exact word, got (%v, %v)", tok, ok)
	}

	tok, ok = match(d, "c")
	if !ok || tok != 0 {
		t.Fatalf("want token 0, got (%v, %v)", tok, ok)
	}

	tok, ok = match(d, "df")
	if !ok || tok != 0 {
		t.Fatalf("want token 0, got (%v, %v)", tok, ok)
	}
}

func TestNumberTokens(t *testing.T) {
	d := genDFA(t,
		`(\+|\-)?[0-9]+`,
		`(\+|\-)?[0-9]+(\.[0-9]+)?((e|E)(\+|\-)?[0-9]+)?`,
		`[^h]+`,
	)
	tests := []struct {
		input string
		want  int
	}{
		{input: "-332.235e-34", want: 1},
		{input: "33", want: 0},
		{input: "ello world!", want: 2},
	}
	for _, tt := range tests {
		tok, ok := match(d, tt.input)
		if !ok || tok != tt.want {
			t.Errorf("%q: want token %v, got (%v, %v)", tt.input, tt.want, tok, ok)
		}
	}
}

// When multiple tokens accept the same longest prefix, the pattern
// compiled first wins.
func TestMultiTokenPriority(t *testing.T) {
	d := genDFA(t, "[a-z]+", "abc")
	tok, ok := match(d, "abc")
	if !ok || tok != 0 {
		t.Fatalf("want token 0 by construction order, got (%v, %v)", tok, ok)
	}

	d = genDFA(t, "abc", "[a-z]+")
	tok, ok = match(d, "abc")
	if !ok || tok != 0 {
		t.Fatalf("want token 0 by construction order, got (%v, %v)", tok, ok)
	}
}

func TestSizes(t *testing.T) {
	d := genDFA(t, "a")
	nStates, nTransitions := d.Sizes()
	if nStates != len(d.States) || nTransitions != len(d.Transitions) {
		t.Fatalf("sizes must mirror the flat tables")
	}
	if nStates == 0 || nTransitions == 0 {
		t.Fatalf("a non-empty automaton must have states and transitions")
	}
}

func TestUnmergedCharRanges(t *testing.T) {
	var s unmergedCharRanges
	s.set('a', 'd')
	s.set('b', 'e')
	var got [][2]byte
	err := s.onAllRanges(func(b, e byte) error {
		got = append(got, [2]byte{b, e})
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := [][2]byte{{'a', 'b'}, {'b', 'd'}, {'d', 'e'}}
	if len(got) != len(want) {
		t.Fatalf("want %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("want %v, got %v", want, got)
		}
	}
}

// Adjacent distinct ranges must stay split so that each keeps its own
// destination state.
func TestUnmergedCharRangesKeepAdjacentSplit(t *testing.T) {
	var s unmergedCharRanges
	s.set('a', 'b')
	s.set('b', 'c')
	var got [][2]byte
	_ = s.onAllRanges(func(b, e byte) error {
		got = append(got, [2]byte{b, e})
		return nil
	})
	want := [][2]byte{{'a', 'b'}, {'b', 'c'}}
	if len(got) != len(want) {
		t.Fatalf("want %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("want %v, got %v", want, got)
		}
	}
}
