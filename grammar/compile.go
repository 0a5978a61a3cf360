package grammar

import (
	"fmt"

	"github.com/parsepact/parsepact/grammar/lexical"
	"github.com/parsepact/parsepact/grammar/lexical/dfa"
	"github.com/parsepact/parsepact/spec"
)

type compileConfig struct {
	reportingEnabled bool
}

type CompileOption func(config *compileConfig)

// EnableReporting makes Compile generate a description of the built
// tables alongside the artifact.
func EnableReporting() CompileOption {
	return func(config *compileConfig) {
		config.reportingEnabled = true
	}
}

// Compile runs the table construction pipeline over an analyzed
// grammar and freezes the result into the immutable artifact. The
// first fatal error aborts; no partial artifact is returned.
func Compile(gram *Grammar, opts ...CompileOption) (*spec.CompiledGrammar, *spec.Report, error) {
	config := &compileConfig{}
	for _, opt := range opts {
		opt(config)
	}

	gram.calcFirsts()
	gram.calcFollows()
	gram.setPrecedence()
	gram.calcReachableProductions()

	a := genLR0Automaton(gram)
	a.genLookaheads()
	cs, err := a.genReduceTransitions()
	if err != nil {
		return nil, nil, err
	}

	d, err := gram.compileLexSpec()
	if err != nil {
		return nil, nil, err
	}

	cg := freeze(gram, a, d)

	var report *spec.Report
	if config.reportingEnabled {
		report = genReport(gram, a, cs)
	}
	return cg, report, nil
}

// compileLexSpec builds the combined tokenizer over the whitespace
// patterns and every terminal. Whitespace patterns come first so that
// they win token-priority ties; the error pseudo-symbol is not a
// terminal and never reaches the tokenizer.
func (g *Grammar) compileLexSpec() (*dfa.DFA, error) {
	var entries []*lexical.Entry
	for _, pattern := range g.whitespaces {
		entries = append(entries, &lexical.Entry{
			Token:   int(g.iWhitespace),
			Pattern: pattern,
		})
	}
	for i, s := range g.symbols {
		if s.kind != symbolKindTerminal {
			continue
		}
		entries = append(entries, &lexical.Entry{
			Token:   i,
			Pattern: s.name,
			Literal: s.literal,
		})
	}
	return lexical.Compile(entries)
}

// freeze copies the growable construction-time containers into the
// fixed-size packed artifact.
func freeze(g *Grammar, a *lr0Automaton, d *dfa.DFA) *spec.CompiledGrammar {
	symTab := &spec.SymbolTable{}
	for _, s := range g.symbols {
		symTab.Names = append(symTab.Names, s.name)
		symTab.Kinds = append(symTab.Kinds, s.kind.num())
	}

	prodTab := &spec.ProductionTable{}
	for _, p := range g.productions {
		prodTab.Offsets = append(prodTab.Offsets, len(prodTab.Data))
		prodTab.Sizes = append(prodTab.Sizes, 1+len(p.iRHS))
		prodTab.Data = append(prodTab.Data, int(p.iLHS))
		for _, iRHS := range p.iRHS {
			prodTab.Data = append(prodTab.Data, int(iRHS))
		}
		prodTab.Actions = append(prodTab.Actions, p.action)
		prodTab.PrecSymbols = append(prodTab.PrecSymbols, int(p.iPrecSym))
	}

	itemTab := &spec.ItemTable{}
	for _, it := range a.items {
		itemTab.Productions = append(itemTab.Productions, it.iProd)
		itemTab.Dots = append(itemTab.Dots, it.dot)
	}

	stateTab := &spec.StateTable{}
	for _, s := range a.states {
		stateTab.Offsets = append(stateTab.Offsets, len(stateTab.ItemData))
		stateTab.Sizes = append(stateTab.Sizes, len(s.iItems))
		stateTab.ItemData = append(stateTab.ItemData, s.iItems...)
	}

	transTab := &spec.TransitionTable{}
	for _, trs := range a.transitions {
		transTab.Offsets = append(transTab.Offsets, len(transTab.Symbols))
		transTab.Sizes = append(transTab.Sizes, len(trs))
		for _, tr := range trs {
			transTab.Symbols = append(transTab.Symbols, int(tr.iSym))
			switch tr.kind {
			case transitionKindShift:
				transTab.Kinds = append(transTab.Kinds, spec.ActionKindShift)
			case transitionKindReduce:
				transTab.Kinds = append(transTab.Kinds, spec.ActionKindReduce)
			case transitionKindAccept:
				transTab.Kinds = append(transTab.Kinds, spec.ActionKindAccept)
			}
			transTab.Targets = append(transTab.Targets, tr.target)
		}
	}

	dfaTab := &spec.DFATable{}
	for _, s := range d.States {
		dfaTab.TransitionsBegin = append(dfaTab.TransitionsBegin, s.TransitionsBegin)
		dfaTab.Accepting = append(dfaTab.Accepting, s.Accepting)
		dfaTab.Tokens = append(dfaTab.Tokens, s.Token)
	}
	for _, t := range d.Transitions {
		dfaTab.From = append(dfaTab.From, t.From)
		dfaTab.Lo = append(dfaTab.Lo, int(t.Lo))
		dfaTab.Hi = append(dfaTab.Hi, int(t.Hi))
		dfaTab.Next = append(dfaTab.Next, t.Next)
	}

	return &spec.CompiledGrammar{
		Name:             g.name,
		Symbols:          symTab,
		Productions:      prodTab,
		Items:            itemTab,
		States:           stateTab,
		Transitions:      transTab,
		DFA:              dfaTab,
		StartSymbol:      int(g.iStart),
		EndSymbol:        int(g.iEnd),
		ErrorSymbol:      int(g.iError),
		WhitespaceSymbol: int(g.iWhitespace),
	}
}

func genReport(g *Grammar, a *lr0Automaton, cs *conflicts) *spec.Report {
	report := &spec.Report{}

	for i, s := range g.symbols {
		if s.kind != symbolKindTerminal {
			continue
		}
		term := &spec.Terminal{
			Number:     i,
			Name:       s.name,
			Precedence: s.prec,
		}
		switch s.assoc {
		case assocKindLeft:
			term.Associativity = "l"
		case assocKindRight:
			term.Associativity = "r"
		}
		report.Terminals = append(report.Terminals, term)
	}

	for i, p := range g.productions {
		var rhs []string
		for _, iRHS := range p.iRHS {
			rhs = append(rhs, g.symbols[iRHS].name)
		}
		report.Productions = append(report.Productions, &spec.Production{
			Number:     i,
			LHS:        g.symbols[p.iLHS].name,
			RHS:        rhs,
			Action:     p.action,
			Precedence: p.precedence(g.symbols),
		})
	}

	srByState := map[int][]*shiftReduceConflict{}
	for _, c := range cs.sr {
		srByState[c.state] = append(srByState[c.state], c)
	}
	rrByState := map[int][]*reduceReduceConflict{}
	for _, c := range cs.rr {
		rrByState[c.state] = append(rrByState[c.state], c)
	}

	for iState, s := range a.states {
		st := &spec.State{
			Number: iState,
		}
		for _, iItem := range s.iItems {
			st.Items = append(st.Items, describeItem(a.items[iItem], g.productions, g.symbols))
		}
		for _, tr := range a.transitions[iState] {
			name := g.symbols[tr.iSym].name
			switch tr.kind {
			case transitionKindShift:
				st.Actions = append(st.Actions, fmt.Sprintf("shift to state %v on %v", tr.target, name))
			case transitionKindReduce:
				st.Actions = append(st.Actions, fmt.Sprintf("reduce %q on %v", g.productions[tr.target].describe(g.symbols), name))
			case transitionKindAccept:
				st.Actions = append(st.Actions, fmt.Sprintf("accept on %v", name))
			}
		}
		for _, c := range srByState[iState] {
			st.SRConflicts = append(st.SRConflicts, &spec.SRConflict{
				Symbol:       g.symbols[c.iSym].name,
				Production:   c.iProd,
				AdoptedShift: c.adoptedShift,
				ResolvedBy:   string(c.resolvedBy),
			})
		}
		for _, c := range rrByState[iState] {
			st.RRConflicts = append(st.RRConflicts, &spec.RRConflict{
				Symbol:      g.symbols[c.iSym].name,
				Production1: c.iProd1,
				Production2: c.iProd2,
				Adopted:     c.iAdopted,
			})
		}
		report.States = append(report.States, st)
	}

	return report
}
