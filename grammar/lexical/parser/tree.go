package parser

import (
	"fmt"

	"github.com/parsepact/parsepact/matcher"
)

// charMax is the first character past the representable range. The
// lexical pipeline works on the ASCII subset; the null character is
// reserved as the end-of-input marker.
const charMax byte = 0x7f

// Tree is a regex syntax tree. Exactly one of the accessors reports
// ok=true for a given node.
type Tree interface {
	fmt.Stringer

	// Range returns the half-open character range [from, to) of a
	// character node.
	Range() (from byte, to byte, ok bool)

	// Optional returns the content of a '?' node.
	Optional() (Tree, bool)

	// Repeatable returns the content of a '*' node.
	Repeatable() (Tree, bool)

	// OneOrMore returns the content of a '+' node.
	OneOrMore() (Tree, bool)

	// Concatenation returns the operands of a concatenation node.
	Concatenation() (left Tree, right Tree, ok bool)

	// Alternatives returns the operands of an alternation node.
	Alternatives() (left Tree, right Tree, ok bool)
}

var (
	_ Tree = &symbolNode{}
	_ Tree = &concatNode{}
	_ Tree = &altNode{}
	_ Tree = &optionNode{}
	_ Tree = &repeatNode{}
	_ Tree = &oneOrMoreNode{}
)

type treeBase struct {
}

func (treeBase) Range() (byte, byte, bool)         { return 0, 0, false }
func (treeBase) Optional() (Tree, bool)            { return nil, false }
func (treeBase) Repeatable() (Tree, bool)          { return nil, false }
func (treeBase) OneOrMore() (Tree, bool)           { return nil, false }
func (treeBase) Concatenation() (Tree, Tree, bool) { return nil, nil, false }
func (treeBase) Alternatives() (Tree, Tree, bool)  { return nil, nil, false }

type symbolNode struct {
	treeBase
	from byte
	to   byte
}

func newSymbolNode(c byte) *symbolNode {
	return &symbolNode{
		from: c,
		to:   c + 1,
	}
}

func newRangeSymbolNode(from, to byte) *symbolNode {
	return &symbolNode{
		from: from,
		to:   to,
	}
}

func (n *symbolNode) String() string {
	return fmt.Sprintf("char: [%v, %v)", n.from, n.to)
}

func (n *symbolNode) Range() (byte, byte, bool) {
	return n.from, n.to, true
}

type concatNode struct {
	treeBase
	left  Tree
	right Tree
}

func newConcatNode(left, right Tree) *concatNode {
	return &concatNode{
		left:  left,
		right: right,
	}
}

func (n *concatNode) String() string {
	return "concat"
}

func (n *concatNode) Concatenation() (Tree, Tree, bool) {
	return n.left, n.right, true
}

type altNode struct {
	treeBase
	left  Tree
	right Tree
}

func newAltNode(left, right Tree) *altNode {
	return &altNode{
		left:  left,
		right: right,
	}
}

func (n *altNode) String() string {
	return "alt"
}

func (n *altNode) Alternatives() (Tree, Tree, bool) {
	return n.left, n.right, true
}

type optionNode struct {
	treeBase
	left Tree
}

func newOptionNode(left Tree) *optionNode {
	return &optionNode{
		left: left,
	}
}

func (n *optionNode) String() string {
	return "option"
}

func (n *optionNode) Optional() (Tree, bool) {
	return n.left, true
}

type repeatNode struct {
	treeBase
	left Tree
}

func newRepeatNode(left Tree) *repeatNode {
	return &repeatNode{
		left: left,
	}
}

func (n *repeatNode) String() string {
	return "repeat"
}

func (n *repeatNode) Repeatable() (Tree, bool) {
	return n.left, true
}

type oneOrMoreNode struct {
	treeBase
	left Tree
}

func newOneOrMoreNode(left Tree) *oneOrMoreNode {
	return &oneOrMoreNode{
		left: left,
	}
}

func (n *oneOrMoreNode) String() string {
	return "one-or-more"
}

func (n *oneOrMoreNode) OneOrMore() (Tree, bool) {
	return n.left, true
}

func oneOf(ts ...Tree) Tree {
	var alt Tree
	for _, t := range ts {
		if t == nil {
			continue
		}
		if alt == nil {
			alt = t
			continue
		}
		alt = newAltNode(alt, t)
	}
	return alt
}

func concat(ts ...Tree) Tree {
	var cat Tree
	for _, t := range ts {
		if t == nil {
			continue
		}
		if cat == nil {
			cat = t
			continue
		}
		cat = newConcatNode(cat, t)
	}
	return cat
}

// GenLiteralTree builds the tree recognizing exactly text, interpreting
// backslash escapes. Regex metacharacters are inert; this is how
// single-quoted terminals compile.
func GenLiteralTree(text string) (Tree, error) {
	if text == "" {
		return nil, synErrEmptyPattern
	}
	var t Tree
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\\' {
			i++
			if i >= len(text) {
				return nil, synErrIncompletedEscSeq
			}
			c = matcher.EscapeChar(text[i])
		}
		t = concat(t, newSymbolNode(c))
	}
	return t, nil
}
