package grammar

import (
	"github.com/emirpasic/gods/sets/linkedhashset"

	"github.com/parsepact/parsepact/spec"
)

// symbolID is a dense index into the symbol arena. Inter-object
// references are always indices; the arena can therefore be frozen
// into the fixed artifact by copy.
type symbolID int

const symbolNil = symbolID(-1)

type symbolKind string

const (
	// symbolKindNull covers the error and whitespace pseudo-symbols.
	symbolKindNull        = symbolKind("null")
	symbolKindTerminal    = symbolKind("terminal")
	symbolKindNonTerminal = symbolKind("non-terminal")
	symbolKindEnd         = symbolKind("end")
)

func (k symbolKind) String() string {
	return string(k)
}

func (k symbolKind) num() int {
	switch k {
	case symbolKindTerminal:
		return spec.SymbolKindTerminal
	case symbolKindNonTerminal:
		return spec.SymbolKindNonTerminal
	case symbolKindEnd:
		return spec.SymbolKindEnd
	}
	return spec.SymbolKindNull
}

type assocKind string

const (
	assocKindNone  = assocKind("none")
	assocKindLeft  = assocKind("left")
	assocKindRight = assocKind("right")
)

const (
	precNil = 0
	precMin = 1
)

// symbol is an element of the grammar's symbol arena. The firsts and
// follows sets are insertion-ordered sets of symbol ids.
type symbol struct {
	name           string
	kind           symbolKind
	assoc          assocKind
	prec           int
	referredAsPrec bool

	// literal records that the terminal was introduced by a
	// single-quoted literal and compiles verbatim rather than as a
	// regex.
	literal bool

	// iProductions lists the productions having this symbol on the
	// LHS; iReachableProds the productions reachable from it by
	// leftmost derivation.
	iProductions    []int
	iReachableProds []int

	nullable bool
	firsts   *linkedhashset.Set
	follows  *linkedhashset.Set
}

func newSymbol(name string, kind symbolKind) *symbol {
	return &symbol{
		name:    name,
		kind:    kind,
		assoc:   assocKindNone,
		prec:    precNil,
		firsts:  linkedhashset.New(),
		follows: linkedhashset.New(),
	}
}

func (s *symbol) addFirst(id symbolID) bool {
	if s.firsts.Contains(int(id)) {
		return false
	}
	s.firsts.Add(int(id))
	return true
}

func (s *symbol) addFollow(id symbolID) bool {
	if s.follows.Contains(int(id)) {
		return false
	}
	s.follows.Add(int(id))
	return true
}

// firstSymbols returns the FIRST set in insertion order.
func (s *symbol) firstSymbols() []symbolID {
	vs := s.firsts.Values()
	ids := make([]symbolID, len(vs))
	for i, v := range vs {
		ids[i] = symbolID(v.(int))
	}
	return ids
}

// followSymbols returns the FOLLOW set in insertion order.
func (s *symbol) followSymbols() []symbolID {
	vs := s.follows.Values()
	ids := make([]symbolID, len(vs))
	for i, v := range vs {
		ids[i] = symbolID(v.(int))
	}
	return ids
}
