package dfa

// rangeBoundary is a partition point of the character space. starts
// reports whether a range begins at this boundary.
type rangeBoundary struct {
	c      byte
	starts bool
}

// unmergedCharRanges stores the boundary points of the character
// ranges inserted so far. Unlike the merged variant, adjacent distinct
// ranges stay split; iteration yields the atomic ranges needed to
// split DFA transitions.
type unmergedCharRanges struct {
	boundaries []rangeBoundary
}

func (s *unmergedCharRanges) set(b, e byte) {
	i := 0
	startNew := false
	for i < len(s.boundaries) && s.boundaries[i].c < b {
		startNew = s.boundaries[i].starts
		i++
	}
	if i == len(s.boundaries) || s.boundaries[i].c != b {
		s.insert(i, rangeBoundary{c: b, starts: true})
		i++
	}
	for i < len(s.boundaries) && s.boundaries[i].c < e {
		startNew = s.boundaries[i].starts
		s.boundaries[i].starts = true
		i++
	}
	if i == len(s.boundaries) || s.boundaries[i].c != e {
		s.insert(i, rangeBoundary{c: e, starts: startNew})
	}
}

func (s *unmergedCharRanges) insert(i int, b rangeBoundary) {
	s.boundaries = append(s.boundaries, rangeBoundary{})
	copy(s.boundaries[i+1:], s.boundaries[i:])
	s.boundaries[i] = b
}

// onAllRanges calls f for every atomic range. A boundary pair whose
// upper boundary is not a range start is skipped.
func (s *unmergedCharRanges) onAllRanges(f func(b, e byte) error) error {
	for i := 0; i+1 < len(s.boundaries); i++ {
		b := s.boundaries[i].c
		e := s.boundaries[i+1].c
		if err := f(b, e); err != nil {
			return err
		}
		if !s.boundaries[i+1].starts {
			i++
		}
	}
	return nil
}
