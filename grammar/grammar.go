package grammar

import (
	"fmt"

	verr "github.com/parsepact/parsepact/error"
	"github.com/parsepact/parsepact/spec"
)

// Names of the pseudo-symbols. The leading dot keeps them from
// colliding with user-defined identifiers.
const (
	symbolNameStart      = ".start"
	symbolNameEnd        = ".end"
	symbolNameError      = ".error"
	symbolNameWhitespace = ".whitespace"
)

// Grammar is the analyzed form of a grammar specification: the symbol
// and production arenas plus the whitespace patterns. It is produced
// by GrammarBuilder and consumed by Compile.
type Grammar struct {
	name        string
	symbols     []*symbol
	iStart      symbolID
	iEnd        symbolID
	iError      symbolID
	iWhitespace symbolID
	currentPrec int
	productions []*production
	whitespaces []string
}

type GrammarBuilder struct {
	AST *spec.RootNode
}

func (b *GrammarBuilder) Build() (*Grammar, error) {
	g := &Grammar{
		name: b.AST.Name,
	}
	g.addGenericSymbols()

	for _, decl := range b.AST.AssocDecls {
		err := g.applyAssocDecl(decl)
		if err != nil {
			return nil, err
		}
	}
	for _, ws := range b.AST.Whitespaces {
		g.whitespaces = append(g.whitespaces, ws.Patterns...)
	}
	for _, prod := range b.AST.Productions {
		for _, alt := range prod.Alternatives {
			err := g.addProduction(prod, alt)
			if err != nil {
				return nil, err
			}
		}
	}

	err := g.check()
	if err != nil {
		return nil, err
	}
	err = g.optimize()
	if err != nil {
		return nil, err
	}
	return g, nil
}

// addGenericSymbols inserts the four pseudo-symbols at fixed low ids.
func (g *Grammar) addGenericSymbols() {
	g.iStart = g.addSymbol(symbolNameStart, symbolKindNonTerminal)
	g.iEnd = g.addSymbol(symbolNameEnd, symbolKindEnd)
	g.iError = g.addSymbol(symbolNameError, symbolKindNull)
	g.iWhitespace = g.addSymbol(symbolNameWhitespace, symbolKindNull)
}

func (g *Grammar) addSymbol(name string, kind symbolKind) symbolID {
	g.symbols = append(g.symbols, newSymbol(name, kind))
	return symbolID(len(g.symbols) - 1)
}

// insertOrFindSymbol interns a symbol by (name, kind); repeated
// lookups return the same dense id.
func (g *Grammar) insertOrFindSymbol(name string, kind symbolKind) symbolID {
	for i, s := range g.symbols {
		if s.name == name && s.kind == kind {
			return symbolID(i)
		}
	}
	return g.addSymbol(name, kind)
}

func (g *Grammar) internSymbolNode(n *spec.SymbolNode) symbolID {
	switch n.Kind {
	case spec.SymbolNodeKindError:
		return g.iError
	case spec.SymbolNodeKindLiteral:
		id := g.insertOrFindSymbol(n.Text, symbolKindTerminal)
		g.symbols[id].literal = true
		return id
	case spec.SymbolNodeKindPattern:
		return g.insertOrFindSymbol(n.Text, symbolKindTerminal)
	}
	return g.insertOrFindSymbol(n.Text, symbolKindNonTerminal)
}

// applyAssocDecl opens a new precedence level and assigns it, with the
// declared associativity, to every symbol mentioned.
func (g *Grammar) applyAssocDecl(decl *spec.AssocDeclNode) error {
	var assoc assocKind
	switch decl.Assoc {
	case spec.AssocKindLeft:
		assoc = assocKindLeft
	case spec.AssocKindRight:
		assoc = assocKindRight
	default:
		assoc = assocKindNone
	}

	g.currentPrec++
	for _, n := range decl.Symbols {
		id := g.internSymbolNode(n)
		s := g.symbols[id]
		if s.prec != precNil {
			return &verr.SpecError{
				Cause:  semErrDuplicateAssoc,
				Detail: s.name,
				Row:    n.Pos.Row,
				Col:    n.Pos.Col,
			}
		}
		s.assoc = assoc
		s.prec = g.currentPrec
	}
	return nil
}

func (g *Grammar) addProduction(prod *spec.ProductionNode, alt *spec.AlternativeNode) error {
	iLHS := g.insertOrFindSymbol(prod.LHS, symbolKindNonTerminal)

	// The first non-terminal of the grammar becomes the body of the
	// synthesized start production.
	if len(g.productions) == 0 {
		g.symbols[g.iStart].iProductions = append(g.symbols[g.iStart].iProductions, 0)
		g.productions = append(g.productions, &production{
			iLHS:     g.iStart,
			iRHS:     []symbolID{iLHS},
			iPrecSym: symbolNil,
		})
	}

	p := &production{
		iLHS:     iLHS,
		iPrecSym: symbolNil,
		action:   alt.Action,
	}
	for _, e := range alt.Elements {
		p.iRHS = append(p.iRHS, g.internSymbolNode(e))
	}
	if alt.PrecSym != nil {
		iPrec := g.internSymbolNode(alt.PrecSym)
		g.symbols[iPrec].referredAsPrec = true
		p.iPrecSym = iPrec
	}

	g.symbols[iLHS].iProductions = append(g.symbols[iLHS].iProductions, len(g.productions))
	g.productions = append(g.productions, p)
	return nil
}

// check verifies that every non-terminal is defined and every
// user-defined symbol referenced.
func (g *Grammar) check() error {
	if len(g.productions) == 0 {
		return semErrNoProduction
	}

	for _, s := range g.symbols {
		if s.kind == symbolKindNonTerminal && len(s.iProductions) == 0 && !s.referredAsPrec {
			return fmt.Errorf("%w: %v", semErrUndefinedSym, s.name)
		}
	}

	count := make([]int, len(g.symbols))
	for _, p := range g.productions {
		for _, iRHS := range p.iRHS {
			count[iRHS]++
		}
		if p.iPrecSym != symbolNil {
			count[p.iPrecSym]++
		}
	}
	for i, s := range g.symbols {
		id := symbolID(i)
		if id == g.iStart || id == g.iEnd || id == g.iError || id == g.iWhitespace {
			continue
		}
		if count[i] == 0 {
			return fmt.Errorf("%w: %v", semErrUnusedSymbol, s.name)
		}
	}
	return nil
}

// entrySymbol is the body of the synthesized start production.
func (g *Grammar) entrySymbol() symbolID {
	return g.productions[g.symbols[g.iStart].iProductions[0]].iRHS[0]
}

// calcFirsts computes nullability and the FIRST sets by fixed-point
// iteration. The FIRST set of anything but a non-terminal is the
// symbol itself.
func (g *Grammar) calcFirsts() {
	for {
		nAdded := 0
		for i, s := range g.symbols {
			id := symbolID(i)
			if s.kind != symbolKindNonTerminal {
				if s.addFirst(id) {
					nAdded++
				}
				continue
			}
			for _, iProd := range s.iProductions {
				p := g.productions[iProd]
				nonNullableFound := false
				for _, iRHS := range p.iRHS {
					t := g.symbols[iRHS]
					for _, f := range t.firstSymbols() {
						if s.addFirst(f) {
							nAdded++
						}
					}
					if !t.nullable {
						nonNullableFound = true
						break
					}
				}
				if !nonNullableFound {
					if !s.nullable {
						s.nullable = true
						nAdded++
					}
				}
			}
		}
		if nAdded == 0 {
			break
		}
	}
}

// calcFollows computes the FOLLOW sets by fixed-point iteration. The
// trailing nullable suffix of a production, including the first
// non-nullable symbol, inherits FOLLOW(LHS); every position but the
// last, that non-nullable symbol included, inherits its FIRST set.
func (g *Grammar) calcFollows() {
	g.symbols[g.iStart].addFollow(g.iEnd)
	for {
		nAdded := 0
		for _, s := range g.symbols {
			for _, iProd := range s.iProductions {
				p := g.productions[iProd]
				if p.isEmpty() {
					continue
				}

				iLastBeforeOut := len(p.iRHS) - 1
				for iRHS := len(p.iRHS) - 1; iRHS >= 0; iRHS-- {
					cur := g.symbols[p.iRHS[iRHS]]
					for _, f := range s.followSymbols() {
						if cur.addFollow(f) {
							nAdded++
						}
					}
					iLastBeforeOut = iRHS
					if !cur.nullable {
						break
					}
				}

				for iRHS := 0; iRHS+1 < len(p.iRHS); iRHS++ {
					cur := g.symbols[p.iRHS[iRHS]]
					for _, f := range g.symbols[p.iRHS[iLastBeforeOut]].firstSymbols() {
						if cur.addFollow(f) {
							nAdded++
						}
					}
				}
			}
		}
		if nAdded == 0 {
			break
		}
	}
}

// setPrecedence assigns to every production without an explicit anchor
// the rightmost terminal of its RHS.
func (g *Grammar) setPrecedence() {
	for _, p := range g.productions {
		if p.iPrecSym != symbolNil {
			continue
		}
		for i := len(p.iRHS) - 1; i >= 0; i-- {
			if g.symbols[p.iRHS[i]].kind == symbolKindTerminal {
				p.iPrecSym = p.iRHS[i]
				break
			}
		}
	}
}

// calcReachableProductions records, per symbol, the productions
// reachable by following the leftmost RHS symbol transitively. Empty
// productions are not part of any chain.
func (g *Grammar) calcReachableProductions() {
	for _, s := range g.symbols {
		var reachable []int
		var walk func(cur *symbol)
		walk = func(cur *symbol) {
			for _, iProd := range cur.iProductions {
				p := g.productions[iProd]
				if p.isEmpty() {
					continue
				}
				if addUniqueInt(&reachable, iProd) {
					walk(g.symbols[p.iRHS[0]])
				}
			}
		}
		walk(s)
		s.iReachableProds = reachable
	}
}

func addUniqueInt(to *[]int, v int) bool {
	for _, e := range *to {
		if e == v {
			return false
		}
	}
	*to = append(*to, v)
	return true
}
