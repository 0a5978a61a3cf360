package grammar

import (
	"fmt"
)

type conflictResolutionMethod string

const (
	resolvedByPrec  = conflictResolutionMethod("precedence")
	resolvedByAssoc = conflictResolutionMethod("associativity")
)

type shiftReduceConflict struct {
	state        int
	iSym         symbolID
	iProd        int
	adoptedShift bool
	resolvedBy   conflictResolutionMethod
}

type reduceReduceConflict struct {
	state    int
	iSym     symbolID
	iProd1   int
	iProd2   int
	iAdopted int
}

// conflicts collects the resolutions made by precedence and
// associativity; the table construction succeeds but the resolutions
// stay reportable.
type conflicts struct {
	sr []*shiftReduceConflict
	rr []*reduceReduceConflict
}

// genReduceTransitions emits a reduce transition for every reducible
// item and lookahead terminal, resolving collisions with the existing
// table. The reduction of the start production on the end symbol is
// the synthesized accept.
func (a *lr0Automaton) genReduceTransitions() (*conflicts, error) {
	g := a.g
	startProd := g.symbols[g.iStart].iProductions[0]
	cs := &conflicts{}

	for iState, state := range a.states {
		for _, iItem := range state.iItems {
			it := a.items[iItem]
			p := g.productions[it.iProd]
			if it.dot < len(p.iRHS) {
				continue
			}

			for i := range g.symbols {
				iSym := symbolID(i)
				if !a.lookaheads[iItem].symbols.Get(i) {
					continue
				}

				existing := findTransitionOnSymbol(a.transitions[iState], iSym)
				if existing == nil {
					kind := transitionKindReduce
					if it.iProd == startProd && iSym == g.iEnd {
						kind = transitionKindAccept
					}
					a.transitions[iState] = append(a.transitions[iState], &lrTransition{
						iSym:   iSym,
						kind:   kind,
						target: it.iProd,
					})
					continue
				}

				if existing.kind == transitionKindShift {
					err := a.resolveShiftReduceConflict(cs, iState, existing, iSym, it.iProd)
					if err != nil {
						return nil, err
					}
					continue
				}
				err := a.resolveReduceReduceConflict(cs, iState, existing, iSym, it.iProd)
				if err != nil {
					return nil, err
				}
			}
		}
	}
	return cs, nil
}

func findTransitionOnSymbol(trs []*lrTransition, iSym symbolID) *lrTransition {
	for _, tr := range trs {
		if tr.iSym == iSym {
			return tr
		}
	}
	return nil
}

// resolveShiftReduceConflict applies the Yacc convention: a production
// with higher precedence than the lookahead terminal reduces, a lower
// one shifts; at equal precedence LEFT associativity reduces and RIGHT
// shifts. Missing precedence on either side, or NONE associativity at
// equality, is fatal.
func (a *lr0Automaton) resolveShiftReduceConflict(cs *conflicts, iState int, tr *lrTransition, iSym symbolID, iProd int) error {
	g := a.g
	p := g.productions[iProd]
	sym := g.symbols[iSym]
	prodPrec := p.precedence(g.symbols)
	symPrec := sym.prec

	if prodPrec == precNil || symPrec == precNil || (prodPrec == symPrec && sym.assoc == assocKindNone) {
		return fmt.Errorf("%w: state %v on %v for production %q (production precedence: %v, symbol precedence: %v)",
			semErrSRConflict, iState, sym.name, p.describe(g.symbols), prodPrec, symPrec)
	}

	c := &shiftReduceConflict{
		state: iState,
		iSym:  iSym,
		iProd: iProd,
	}
	if prodPrec == symPrec {
		c.resolvedBy = resolvedByAssoc
		c.adoptedShift = sym.assoc == assocKindRight
	} else {
		c.resolvedBy = resolvedByPrec
		c.adoptedShift = prodPrec < symPrec
	}
	if !c.adoptedShift {
		tr.kind = transitionKindReduce
		tr.target = iProd
	}
	cs.sr = append(cs.sr, c)

	tracer().Debugf("table: shift/reduce conflict in state %d on %q resolved by %v (shift adopted: %v)",
		iState, sym.name, c.resolvedBy, c.adoptedShift)
	return nil
}

// resolveReduceReduceConflict keeps the production with the higher
// precedence; missing or equal precedences are fatal.
func (a *lr0Automaton) resolveReduceReduceConflict(cs *conflicts, iState int, tr *lrTransition, iSym symbolID, iProd int) error {
	g := a.g
	if tr.target == iProd {
		return nil
	}
	p1 := g.productions[tr.target].precedence(g.symbols)
	p2 := g.productions[iProd].precedence(g.symbols)

	if p1 == precNil || p2 == precNil || p1 == p2 {
		return fmt.Errorf("%w: state %v on %v between %q and %q",
			semErrRRConflict, iState, g.symbols[iSym].name,
			g.productions[tr.target].describe(g.symbols), g.productions[iProd].describe(g.symbols))
	}

	c := &reduceReduceConflict{
		state:  iState,
		iSym:   iSym,
		iProd1: tr.target,
		iProd2: iProd,
	}
	if p2 > p1 {
		tr.target = iProd
	}
	c.iAdopted = tr.target
	cs.rr = append(cs.rr, c)

	tracer().Debugf("table: reduce/reduce conflict in state %d on %q adopted production %d",
		iState, g.symbols[iSym].name, c.iAdopted)
	return nil
}
