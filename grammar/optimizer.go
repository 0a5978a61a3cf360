package grammar

import (
	"fmt"
)

// optimize collapses, to a fixed point, every non-terminal that is a
// plain alias for a terminal: a single production S -> T with T
// terminal and no action attached. Every occurrence of S is replaced
// by T and both the production and the symbol are removed. The entry
// non-terminal is exempt so that the synthesized start production
// survives, as is the error symbol.
func (g *Grammar) optimize() error {
	for {
		removed, err := g.removeOneRedundantProduction()
		if err != nil {
			return err
		}
		if !removed {
			break
		}
	}
	return nil
}

func (g *Grammar) removeOneRedundantProduction() (bool, error) {
	entry := g.entrySymbol()
	for i, s := range g.symbols {
		iSym := symbolID(i)
		if iSym == g.iError || iSym == entry {
			continue
		}
		if len(s.iProductions) != 1 {
			continue
		}
		iProd := s.iProductions[0]
		p := g.productions[iProd]
		if len(p.iRHS) != 1 || p.action != "" {
			continue
		}
		iActual := p.iRHS[0]
		if g.symbols[iActual].kind != symbolKindTerminal {
			continue
		}

		tracer().Debugf("optimizer: symbol %q is an alias for terminal %q", s.name, g.symbols[iActual].name)

		g.removeProduction(iProd)
		err := g.replaceAndRemoveSymbol(iSym, iActual)
		if err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

func (g *Grammar) removeProduction(iProd int) {
	g.productions = append(g.productions[:iProd], g.productions[iProd+1:]...)
	for _, s := range g.symbols {
		for j, jProd := range s.iProductions {
			if jProd > iProd {
				s.iProductions[j] = jProd - 1
			}
		}
	}
}

// replaceAndRemoveSymbol rewrites every reference to iReplaced into
// iReplacement, transfers a declared precedence or associativity to
// the replacement unless the replacement carries its own, and erases
// the symbol. Later symbol ids shift down by one.
func (g *Grammar) replaceAndRemoveSymbol(iReplaced, iReplacement symbolID) error {
	replaced := g.symbols[iReplaced]
	replacement := g.symbols[iReplacement]

	if replaced.prec != precNil && replacement.prec != precNil {
		return fmt.Errorf("%w: symbol %v to be replaced by %v", semErrDoubleDecl, replaced.name, replacement.name)
	}
	if replaced.prec != precNil {
		replacement.prec = replaced.prec
		replacement.assoc = replaced.assoc
	}
	if replaced.referredAsPrec {
		replacement.referredAsPrec = true
	}

	ref := func(i *symbolID) {
		if *i == iReplaced {
			*i = iReplacement
		}
		if *i > iReplaced {
			*i = *i - 1
		}
	}
	for _, p := range g.productions {
		ref(&p.iLHS)
		for j := range p.iRHS {
			ref(&p.iRHS[j])
		}
		if p.iPrecSym != symbolNil {
			ref(&p.iPrecSym)
		}
	}

	g.symbols = append(g.symbols[:iReplaced], g.symbols[iReplaced+1:]...)
	return nil
}
