package grammar

// transitionKind distinguishes the parser actions. Accept is the
// synthesized reduction of the start production on the end symbol.
type transitionKind int

const (
	transitionKindShift transitionKind = iota
	transitionKindReduce
	transitionKindAccept
)

// lrTransition is an action taken on a symbol: a shift (or goto, for
// non-terminals) to a state, or a reduction of a production.
type lrTransition struct {
	iSym   symbolID
	kind   transitionKind
	target int
}

// lr0Automaton is the canonical LR(0) collection plus, after the
// lookahead passes, the LALR(1) action table.
type lr0Automaton struct {
	g           *Grammar
	items       []item
	states      []*lrState
	transitions [][]*lrTransition
	lookaheads  []*lookahead
}

// internItem returns the arena id of it, inserting it if unknown.
func (a *lr0Automaton) internItem(it item) int {
	for i, e := range a.items {
		if e == it {
			return i
		}
	}
	a.items = append(a.items, it)
	return len(a.items) - 1
}

// genLR0Automaton builds the canonical collection of item sets and the
// shift transitions. States are deduplicated before closure; the full
// closure is added to every state once the worklist drains.
func genLR0Automaton(g *Grammar) *lr0Automaton {
	a := &lr0Automaton{
		g: g,
	}

	startProd := g.symbols[g.iStart].iProductions[0]
	initial := &lrState{}
	initial.addItem(a.internItem(item{iProd: startProd, dot: 0}))
	a.states = append(a.states, initial)
	a.transitions = append(a.transitions, nil)
	a.addClosure(initial)

	worklist := []int{0}
	for len(worklist) > 0 {
		var next []int
		for _, iState := range worklist {
			for i := range g.symbols {
				iSym := symbolID(i)
				if iSym == g.iEnd {
					continue
				}
				gotoState := a.createGotoState(iState, iSym)
				if len(gotoState.iItems) == 0 {
					continue
				}

				iGoto := a.findState(gotoState)
				if iGoto == len(a.states) {
					a.states = append(a.states, gotoState)
					a.transitions = append(a.transitions, nil)
					next = append(next, iGoto)
				}
				a.transitions[iState] = append(a.transitions[iState], &lrTransition{
					iSym:   iSym,
					kind:   transitionKindShift,
					target: iGoto,
				})
			}
		}
		worklist = next
	}

	for _, s := range a.states {
		a.addClosure(s)
	}

	tracer().Debugf("lr0: %d states, %d items", len(a.states), len(a.items))
	return a
}

func (a *lr0Automaton) findState(s *lrState) int {
	for i, e := range a.states {
		if e.equal(s) {
			return i
		}
	}
	return len(a.states)
}

// createGotoState advances the dot of every item of the state over
// iSym and pre-seeds the items of reachable productions whose first
// RHS symbol is iSym, so that state identity can be decided without
// re-closing.
func (a *lr0Automaton) createGotoState(iState int, iSym symbolID) *lrState {
	g := a.g
	gotoState := &lrState{}
	for _, iItem := range a.states[iState].iItems {
		it := a.items[iItem]
		p := g.productions[it.iProd]
		if it.dot >= len(p.iRHS) {
			continue
		}
		iNext := p.iRHS[it.dot]
		if iNext == iSym {
			gotoState.addItem(a.internItem(item{iProd: it.iProd, dot: it.dot + 1}))
		}
		for _, iProd := range g.symbols[iNext].iReachableProds {
			if g.productions[iProd].iRHS[0] == iSym {
				gotoState.addItem(a.internItem(item{iProd: iProd, dot: 1}))
			}
		}
	}
	return gotoState
}

// addClosure adds, for every item with the dot before a symbol, the
// dotted productions of that symbol.
func (a *lr0Automaton) addClosure(s *lrState) {
	g := a.g
	for i := 0; i < len(s.iItems); i++ {
		it := a.items[s.iItems[i]]
		p := g.productions[it.iProd]
		if it.dot >= len(p.iRHS) {
			continue
		}
		for _, iProd := range g.symbols[p.iRHS[it.dot]].iProductions {
			s.addItem(a.internItem(item{iProd: iProd, dot: 0}))
		}
	}
}
