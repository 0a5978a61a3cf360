package grammar

import (
	"github.com/parsepact/parsepact/util/bitset"
)

// lookahead holds, for one item, the lookahead symbols as a bitset
// over the symbol universe plus the items it propagates to.
type lookahead struct {
	symbols      *bitset.BitSet
	iPropagateTo []int
}

// genLookaheads computes the LALR(1) lookaheads: spontaneous seeding,
// the propagation graph, and the propagation fixed point.
func (a *lr0Automaton) genLookaheads() {
	a.lookaheads = make([]*lookahead, len(a.items))
	for i := range a.lookaheads {
		a.lookaheads[i] = &lookahead{
			symbols: bitset.New(len(a.g.symbols)),
		}
	}
	a.genSpontaneousLookaheads()
	a.genPropagationGraph()
	a.propagateLookaheads()
}

// genSpontaneousLookaheads seeds the start item with the end symbol
// and every in-state dotted production of a non-terminal B with the
// FIRST symbols of the suffix following B.
func (a *lr0Automaton) genSpontaneousLookaheads() {
	g := a.g
	a.lookaheads[0].symbols.Set(int(g.iEnd))

	for _, state := range a.states {
		for _, iItem := range state.iItems {
			it := a.items[iItem]
			p := g.productions[it.iProd]
			if it.dot >= len(p.iRHS) {
				continue
			}
			sym := g.symbols[p.iRHS[it.dot]]

			var toIns []symbolID
			for iOther := it.dot + 1; iOther < len(p.iRHS); iOther++ {
				other := g.symbols[p.iRHS[iOther]]
				toIns = append(toIns, other.firstSymbols()...)
				if !other.nullable {
					break
				}
			}

			for _, iOtherProd := range sym.iProductions {
				iOtherItem, ok := state.findItem(a.items, item{iProd: iOtherProd, dot: 0})
				if !ok {
					continue
				}
				for _, iIns := range toIns {
					a.lookaheads[iOtherItem].symbols.Set(int(iIns))
				}
			}
		}
	}
}

// genPropagationGraph links every item across its shift transition to
// the advanced item in the target state. An item whose suffix past the
// dotted non-terminal is entirely nullable additionally propagates to
// the dotted productions inside its own state.
func (a *lr0Automaton) genPropagationGraph() {
	g := a.g
	for iState, state := range a.states {
		for _, tr := range a.transitions[iState] {
			for _, iItem := range state.iItems {
				it := a.items[iItem]
				p := g.productions[it.iProd]
				if it.dot >= len(p.iRHS) || p.iRHS[it.dot] != tr.iSym {
					continue
				}
				iNextItem, ok := a.states[tr.target].findItem(a.items, item{iProd: it.iProd, dot: it.dot + 1})
				if !ok {
					continue
				}
				addUniqueInt(&a.lookaheads[iItem].iPropagateTo, iNextItem)
			}
		}

		for _, iItem := range state.iItems {
			it := a.items[iItem]
			p := g.productions[it.iProd]
			if it.dot >= len(p.iRHS) || !p.isNullableAfter(g.symbols, it.dot+1) {
				continue
			}
			for _, iOtherProd := range g.symbols[p.iRHS[it.dot]].iProductions {
				if iGotoItem, ok := state.findItem(a.items, item{iProd: iOtherProd, dot: 0}); ok {
					addUniqueInt(&a.lookaheads[iItem].iPropagateTo, iGotoItem)
				}
			}
		}
	}
}

// propagateLookaheads runs the fixed point: lookaheads flow along the
// propagation edges until no bit is added anywhere.
func (a *lr0Automaton) propagateLookaheads() {
	worklist := make([]int, len(a.lookaheads))
	for i := range worklist {
		worklist[i] = i
	}
	for len(worklist) > 0 {
		var next []int
		for _, iLa := range worklist {
			la := a.lookaheads[iLa]
			for _, iDest := range la.iPropagateTo {
				if a.lookaheads[iDest].symbols.Insert(la.symbols) > 0 {
					next = append(next, iDest)
				}
			}
		}
		worklist = next
	}
}
