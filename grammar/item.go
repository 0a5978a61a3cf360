package grammar

import (
	"strings"
)

// item is a position inside a production. Items live in a global
// deduplicated arena; item ids are arena indices and equality is
// structural.
type item struct {
	iProd int
	dot   int
}

// lrState is an ordered list of item ids. Two states are equal iff
// their item lists are equal as ordered sets.
type lrState struct {
	iItems []int
}

func (s *lrState) equal(o *lrState) bool {
	if len(s.iItems) != len(o.iItems) {
		return false
	}
	for i := range s.iItems {
		if s.iItems[i] != o.iItems[i] {
			return false
		}
	}
	return true
}

func (s *lrState) addItem(iItem int) bool {
	for _, i := range s.iItems {
		if i == iItem {
			return false
		}
	}
	s.iItems = append(s.iItems, iItem)
	return true
}

// findItem returns the id of the item equal to it, searching only this
// state.
func (s *lrState) findItem(items []item, it item) (int, bool) {
	for _, iItem := range s.iItems {
		if items[iItem] == it {
			return iItem, true
		}
	}
	return 0, false
}

func describeItem(it item, prods []*production, symbols []*symbol) string {
	p := prods[it.iProd]
	var b strings.Builder
	b.WriteString(symbols[p.iLHS].name)
	b.WriteString(" :")
	for i := 0; i <= len(p.iRHS); i++ {
		if i == it.dot {
			b.WriteString(" .")
		}
		if i < len(p.iRHS) {
			b.WriteString(" ")
			b.WriteString(symbols[p.iRHS[i]].name)
		}
	}
	return b.String()
}
