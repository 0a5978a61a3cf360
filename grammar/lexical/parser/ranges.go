package parser

// charRange is a half-open range [from, to) of characters.
type charRange struct {
	from byte
	to   byte
}

// MergedCharRanges is a set of characters stored as disjoint intervals
// sorted by lower bound. Inserting a range extends and absorbs any
// overlapping neighbours. Used to expand bracket expressions.
type MergedCharRanges struct {
	ranges []charRange
}

func NewMergedCharRanges() *MergedCharRanges {
	return &MergedCharRanges{}
}

// SetChar inserts the single character c.
func (s *MergedCharRanges) SetChar(c byte) {
	s.SetRange(c, c+1)
}

// SetString inserts every character of str.
func (s *MergedCharRanges) SetString(str string) {
	for i := 0; i < len(str); i++ {
		s.SetChar(str[i])
	}
}

// SetRange inserts the half-open range [from, to).
func (s *MergedCharRanges) SetRange(from, to byte) {
	i := 0
	for i < len(s.ranges) && s.ranges[i].to < from {
		i++
	}
	if i == len(s.ranges) {
		s.ranges = append(s.ranges, charRange{from: from, to: to})
		return
	}
	if s.ranges[i].from > to {
		// The new range lies strictly between its neighbours.
		s.ranges = append(s.ranges, charRange{})
		copy(s.ranges[i+1:], s.ranges[i:])
		s.ranges[i] = charRange{from: from, to: to}
		return
	}
	if s.ranges[i].from > from {
		s.ranges[i].from = from
	}
	if s.ranges[i].to < to {
		s.ranges[i].to = to
		for i+1 < len(s.ranges) && s.ranges[i].to >= s.ranges[i+1].from {
			if s.ranges[i+1].to > s.ranges[i].to {
				s.ranges[i].to = s.ranges[i+1].to
			}
			s.ranges = append(s.ranges[:i+1], s.ranges[i+2:]...)
		}
	}
}

// Negate replaces the set with its complement inside [1, charMax).
func (s *MergedCharRanges) Negate() {
	var negated []charRange
	prevEnd := byte(1)
	for _, r := range s.ranges {
		if prevEnd != r.from && prevEnd < r.from {
			negated = append(negated, charRange{from: prevEnd, to: r.from})
		}
		prevEnd = r.to
	}
	if prevEnd < charMax {
		negated = append(negated, charRange{from: prevEnd, to: charMax})
	}
	s.ranges = negated
}

// OnAllRanges calls f for every disjoint interval in increasing order.
func (s *MergedCharRanges) OnAllRanges(f func(from, to byte)) {
	for _, r := range s.ranges {
		f(r.from, r.to)
	}
}
