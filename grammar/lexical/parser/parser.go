package parser

import (
	"github.com/parsepact/parsepact/matcher"
)

// ParseRegex translates a regex pattern into a syntax tree. The
// pattern must be consumed entirely; leftover input is a parse error.
func ParseRegex(pattern string) (Tree, error) {
	if pattern == "" {
		return nil, synErrEmptyPattern
	}
	m := matcher.NewMatcher(pattern)
	t, err := parseOrExpr(m)
	if err != nil {
		return nil, err
	}
	if t == nil || !m.Empty() {
		return nil, synErrInvalidPattern
	}
	return t, nil
}

func parseOrExpr(m *matcher.Matcher) (Tree, error) {
	lhs, err := parseAndExpr(m)
	if err != nil || lhs == nil {
		return lhs, err
	}
	for {
		frame := m.BeginTentativeMatch("orExprSecondPart", false)
		if !m.MatchChar('|') {
			frame.Close()
			return lhs, nil
		}
		rhs, err := parseAndExpr(m)
		if err != nil {
			frame.Close()
			return nil, err
		}
		if rhs == nil {
			frame.Close()
			return lhs, nil
		}
		frame.Accept()
		frame.Close()
		lhs = newAltNode(lhs, rhs)
	}
}

// parseAndExpr matches a postfix expression followed by an optional
// concatenation tail. The tree is right-nested; concatenation is
// associative so the shape is irrelevant.
func parseAndExpr(m *matcher.Matcher) (Tree, error) {
	lhs, err := parsePostfixExpr(m)
	if err != nil || lhs == nil {
		return lhs, err
	}
	rhs, err := parseAndExpr(m)
	if err != nil {
		return nil, err
	}
	if rhs != nil {
		return newConcatNode(lhs, rhs), nil
	}
	return lhs, nil
}

func parsePostfixExpr(m *matcher.Matcher) (Tree, error) {
	t, err := parseBracketExpr(m)
	if err != nil {
		return nil, err
	}
	if t == nil {
		t, err = parseGroup(m)
		if err != nil {
			return nil, err
		}
	}
	if t == nil {
		t = parseDot(m)
	}
	if t == nil {
		t = parseEscapedChar(m)
	}
	if t == nil {
		return nil, nil
	}
	switch m.MatchAnyCharIn("+?*") {
	case '+':
		t = newOneOrMoreNode(t)
	case '?':
		t = newOptionNode(t)
	case '*':
		t = newRepeatNode(t)
	}
	return t, nil
}

func parseGroup(m *matcher.Matcher) (Tree, error) {
	frame := m.BeginTentativeMatch("group", false)
	defer frame.Close()

	if !m.MatchChar('(') {
		return nil, nil
	}
	t, err := parseOrExpr(m)
	if err != nil {
		return nil, err
	}
	if t == nil || !m.MatchChar(')') {
		return nil, nil
	}
	frame.Accept()
	return t, nil
}

// parseDot matches '.', which stands for any character but the null
// character.
func parseDot(m *matcher.Matcher) Tree {
	if !m.MatchChar('.') {
		return nil
	}
	return newRangeSymbolNode(1, charMax)
}

func parseEscapedChar(m *matcher.Matcher) Tree {
	c := m.MatchPossiblyEscapedCharNotIn("|*+?()")
	if c == 0 {
		return nil
	}
	return newSymbolNode(c)
}

func parseBracketExpr(m *matcher.Matcher) (Tree, error) {
	frame := m.BeginTentativeMatch("bracketExpr", false)
	defer frame.Close()

	if !m.MatchChar('[') {
		return nil, nil
	}
	negated := m.MatchChar('^')

	ranges := NewMergedCharRanges()

	// A hyphen right after the opening bracket is a literal hyphen.
	if m.MatchChar('-') {
		ranges.SetChar('-')
	}

	for {
		if cls := matchCharClass(m); cls != nil {
			for _, r := range cls.ranges {
				ranges.SetRange(r.from, r.to)
			}
			continue
		}
		b := m.MatchPossiblyEscapedCharNotIn("^]-")
		if b == 0 {
			break
		}
		rangeFrame := m.BeginTentativeMatch("bracketExprRange", false)
		if m.MatchChar('-') {
			if e := m.MatchPossiblyEscapedCharNotIn("^]-"); e != 0 {
				ranges.SetRange(b, e+1)
				rangeFrame.Accept()
			}
		}
		accepted := rangeFrame.Accepted()
		rangeFrame.Close()
		if !accepted {
			ranges.SetChar(b)
		}
	}

	// A hyphen right before the closing bracket is a literal hyphen.
	if m.MatchChar('-') {
		ranges.SetChar('-')
	}

	if !m.MatchChar(']') {
		return nil, synErrBracketUnclosed
	}
	if negated {
		ranges.Negate()
	}

	var t Tree
	ranges.OnAllRanges(func(from, to byte) {
		t = oneOf(t, newRangeSymbolNode(from, to))
	})
	if t == nil {
		return nil, nil
	}
	frame.Accept()
	return t, nil
}

func matchCharClass(m *matcher.Matcher) *charClass {
	for i, cls := range charClasses {
		if m.MatchStr(cls.name) {
			return &charClasses[i]
		}
	}
	return nil
}
