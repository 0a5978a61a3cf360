package grammar

import (
	"errors"
	"testing"

	"github.com/parsepact/parsepact/spec"
)

func compileSrc(t *testing.T, src string, opts ...CompileOption) (*spec.CompiledGrammar, *spec.Report) {
	t.Helper()
	cg, report, err := tryCompileSrc(src, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return cg, report
}

func tryCompileSrc(src string, opts ...CompileOption) (*spec.CompiledGrammar, *spec.Report, error) {
	gram, err := tryBuildGrammar(src)
	if err != nil {
		return nil, nil, err
	}
	return Compile(gram, opts...)
}

// On grammars without overlapping productions the emitted table has
// zero conflicts.
func TestNoConflictsOnUnambiguousGrammar(t *testing.T) {
	_, report := compileSrc(t, `g {
        %whitespace "[ ]+";
        expr: expr '+' term [add] | term [term];
        term: "[0-9]+" [num];
    }`, EnableReporting())
	for _, s := range report.States {
		if len(s.SRConflicts) != 0 || len(s.RRConflicts) != 0 {
			t.Fatalf("state %v: unexpected conflicts: %+v %+v", s.Number, s.SRConflicts, s.RRConflicts)
		}
	}
}

// An ambiguous grammar with full precedence declarations compiles
// into a conflict-free table; the resolutions are reported.
func TestPrecedenceResolvesAmbiguity(t *testing.T) {
	cg, report := compileSrc(t, calcGrammarSrc, EnableReporting())

	var resolved int
	for _, s := range report.States {
		resolved += len(s.SRConflicts)
	}
	if resolved == 0 {
		t.Fatalf("the ambiguous grammar must report resolved conflicts")
	}

	// At most one action remains per (state, terminal).
	for state := 0; state < cg.StateCount(); state++ {
		seen := map[int]bool{}
		for _, sym := range cg.StateTransitionSymbols(state) {
			if seen[sym] {
				t.Fatalf("state %v has two actions on %v", state, cg.SymbolName(sym))
			}
			seen[sym] = true
		}
	}
}

func TestShiftReduceConflictWithoutPrecedenceIsFatal(t *testing.T) {
	_, _, err := tryCompileSrc(`g {
        expr: expr '+' expr [add] | "[0-9]+" [num];
    }`)
	if !errors.Is(err, semErrSRConflict) {
		t.Fatalf("want %v, got %v", semErrSRConflict, err)
	}
}

func TestReduceReduceConflictWithoutPrecedenceIsFatal(t *testing.T) {
	_, _, err := tryCompileSrc(`g {
        s: a [sa] | b [sb];
        a: 'x' [a];
        b: 'x' [b];
    }`)
	if !errors.Is(err, semErrRRConflict) {
		t.Fatalf("want %v, got %v", semErrRRConflict, err)
	}
}

// Equal precedence with NONE associativity cannot disambiguate.
func TestNoneAssociativityAtEqualPrecedenceIsFatal(t *testing.T) {
	_, _, err := tryCompileSrc(`g {
        %none '+';
        expr: expr '+' expr [add] | "[0-9]+" [num];
    }`)
	if !errors.Is(err, semErrSRConflict) {
		t.Fatalf("want %v, got %v", semErrSRConflict, err)
	}
}

func TestAcceptActionOnEndSymbol(t *testing.T) {
	cg, _ := compileSrc(t, `g { s: 'x' [x]; }`)

	accepts := 0
	for state := 0; state < cg.StateCount(); state++ {
		for _, sym := range cg.StateTransitionSymbols(state) {
			kind, _, _ := cg.FindTransition(state, sym)
			if kind == spec.ActionKindAccept {
				if sym != cg.EndSymbol {
					t.Fatalf("accept must be on the end symbol, got %v", cg.SymbolName(sym))
				}
				accepts++
			}
		}
	}
	if accepts != 1 {
		t.Fatalf("want exactly one accept action, got %v", accepts)
	}
}
