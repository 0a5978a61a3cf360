package grammar

import (
	"strings"
)

// production is a rule LHS -> RHS*. iPrecSym is the explicit
// precedence anchor, symbolNil until precedence propagation assigns
// the rightmost terminal of the RHS.
type production struct {
	iLHS     symbolID
	iRHS     []symbolID
	iPrecSym symbolID
	action   string
}

func (p *production) isEmpty() bool {
	return len(p.iRHS) == 0
}

// precedence returns the precedence of the anchor symbol, or precNil
// when no anchor is assigned.
func (p *production) precedence(symbols []*symbol) int {
	if p.iPrecSym == symbolNil {
		return precNil
	}
	return symbols[p.iPrecSym].prec
}

// isNullableAfter reports whether every RHS symbol at or past pos is
// nullable.
func (p *production) isNullableAfter(symbols []*symbol, pos int) bool {
	for ; pos < len(p.iRHS); pos++ {
		if !symbols[p.iRHS[pos]].nullable {
			return false
		}
	}
	return true
}

func (p *production) describe(symbols []*symbol) string {
	var b strings.Builder
	b.WriteString(symbols[p.iLHS].name)
	b.WriteString(" :")
	for _, iRHS := range p.iRHS {
		b.WriteString(" ")
		b.WriteString(symbols[iRHS].name)
	}
	return b.String()
}
