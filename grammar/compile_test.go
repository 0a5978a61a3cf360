package grammar

import (
	"reflect"
	"testing"

	"github.com/parsepact/parsepact/spec"
)

func TestCompiledArtifactLayout(t *testing.T) {
	cg, _ := compileSrc(t, calcGrammarSrc)

	if cg.Name != "calc" {
		t.Fatalf("want name calc, got %v", cg.Name)
	}
	if cg.SymbolCount() != len(cg.Symbols.Kinds) {
		t.Fatalf("symbol names and kinds must be parallel")
	}
	if cg.SymbolKind(cg.StartSymbol) != spec.SymbolKindNonTerminal {
		t.Fatalf("the start symbol must be a non-terminal")
	}
	if cg.SymbolKind(cg.EndSymbol) != spec.SymbolKindEnd {
		t.Fatalf("the end symbol must have the end kind")
	}

	// The packed production rows reconstruct LHS and RHS.
	if cg.ProductionCount() != 4 {
		t.Fatalf("want 4 productions, got %v", cg.ProductionCount())
	}
	if cg.ProductionLHS(0) != cg.StartSymbol {
		t.Fatalf("production 0 must be the synthesized start production")
	}
	if len(cg.ProductionRHS(0)) != 1 {
		t.Fatalf("the start production has one RHS symbol")
	}
	for prod := 0; prod < cg.ProductionCount(); prod++ {
		off := cg.Productions.Offsets[prod]
		size := cg.Productions.Sizes[prod]
		if off+size > len(cg.Productions.Data) {
			t.Fatalf("production %v row out of bounds", prod)
		}
	}

	// Item and state tables reference each other consistently.
	for state := 0; state < cg.StateCount(); state++ {
		for _, iItem := range cg.StateItems(state) {
			if iItem < 0 || iItem >= len(cg.Items.Productions) {
				t.Fatalf("state %v references unknown item %v", state, iItem)
			}
			prod := cg.Items.Productions[iItem]
			dot := cg.Items.Dots[iItem]
			if dot < 0 || dot > len(cg.ProductionRHS(prod)) {
				t.Fatalf("item %v has an out-of-range dot", iItem)
			}
		}
	}

	// Every shift target is a state; every reduce target a production.
	for state := 0; state < cg.StateCount(); state++ {
		for _, sym := range cg.StateTransitionSymbols(state) {
			kind, target, ok := cg.FindTransition(state, sym)
			if !ok {
				t.Fatalf("listed symbol must resolve")
			}
			switch kind {
			case spec.ActionKindShift:
				if target < 0 || target >= cg.StateCount() {
					t.Fatalf("shift to unknown state %v", target)
				}
			case spec.ActionKindReduce, spec.ActionKindAccept:
				if target < 0 || target >= cg.ProductionCount() {
					t.Fatalf("reduce of unknown production %v", target)
				}
			}
		}
	}

	// The DFA tables are parallel and transitions are grouped by
	// source state.
	d := cg.DFA
	if len(d.TransitionsBegin) != len(d.Accepting) || len(d.Accepting) != len(d.Tokens) {
		t.Fatalf("DFA state tables must be parallel")
	}
	if len(d.From) != len(d.Lo) || len(d.Lo) != len(d.Hi) || len(d.Hi) != len(d.Next) {
		t.Fatalf("DFA transition tables must be parallel")
	}
	for state := 0; state < len(d.TransitionsBegin); state++ {
		for i := d.TransitionsBegin[state]; i < len(d.From) && d.From[i] == state; i++ {
			if d.Lo[i] == d.Hi[i] {
				continue
			}
			if d.Next[i] < 0 || d.Next[i] >= len(d.TransitionsBegin) {
				t.Fatalf("DFA transition %v targets unknown state %v", i, d.Next[i])
			}
		}
	}
}

// The construction is deterministic: compiling the same grammar twice
// yields byte-identical artifacts.
func TestCompilationIsDeterministic(t *testing.T) {
	cg1, _ := compileSrc(t, calcGrammarSrc)
	cg2, _ := compileSrc(t, calcGrammarSrc)
	if !reflect.DeepEqual(cg1, cg2) {
		t.Fatalf("artifacts differ between runs")
	}
}

// Whitespace patterns compile ahead of the terminals and report the
// whitespace pseudo-symbol.
func TestWhitespaceTokens(t *testing.T) {
	cg, _ := compileSrc(t, calcGrammarSrc)
	found := false
	d := cg.DFA
	for state := 0; state < len(d.TransitionsBegin); state++ {
		if d.Accepting[state] && d.Tokens[state] == cg.WhitespaceSymbol {
			found = true
		}
	}
	if !found {
		t.Fatalf("some DFA state must accept the whitespace token")
	}
}
