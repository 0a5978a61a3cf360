package dfa

import (
	"fmt"

	"github.com/parsepact/parsepact/grammar/lexical/parser"
)

type nodeKind int

const (
	nodeKindChar nodeKind = iota
	nodeKindToken
	nodeKindConcat
	nodeKindAlt
	nodeKindOption
	nodeKindRepeat
	nodeKindOneOrMore
)

const nodeNil = -1

// node is an element of the syntax tree arena. Children and the
// firsts/lasts/follows annotations are dense indices into the arena,
// never pointers, because follows may refer forward in the tree.
type node struct {
	kind  nodeKind
	left  int
	right int

	// from and to delimit the half-open character range of a char
	// node. Token marker nodes carry the empty range [0, 0).
	from byte
	to   byte

	// token is the token id reported by a token marker node.
	token int

	nullable bool
	firsts   []int
	lasts    []int
	follows  []int
}

func (n *node) isLeaf() bool {
	return n.kind == nodeKindChar || n.kind == nodeKindToken
}

// TokenTree pairs a parsed regex with the token id it recognizes.
type TokenTree struct {
	Token int
	Tree  parser.Tree
}

// SyntaxTree is the annotated arena form of the combined regex. Each
// input tree is wrapped as a concatenation with a token marker node and
// the wrapped trees are joined by alternation. Node ids are assigned
// in post order.
type SyntaxTree struct {
	nodes []node
	root  int
}

// GenSyntaxTree converts the token trees into a single annotated
// arena: node ids, nullability, firsts, lasts and follows.
func GenSyntaxTree(trees []*TokenTree) (*SyntaxTree, error) {
	if len(trees) == 0 {
		return nil, fmt.Errorf("at least one pattern must be given")
	}
	st := &SyntaxTree{
		root: nodeNil,
	}
	for _, t := range trees {
		expr, err := st.convert(t.Tree)
		if err != nil {
			return nil, err
		}
		marker := st.add(node{
			kind:  nodeKindToken,
			left:  nodeNil,
			right: nodeNil,
			token: t.Token,
		})
		wrapped := st.add(node{
			kind:  nodeKindConcat,
			left:  expr,
			right: marker,
		})
		if st.root == nodeNil {
			st.root = wrapped
		} else {
			st.root = st.add(node{
				kind:  nodeKindAlt,
				left:  st.root,
				right: wrapped,
			})
		}
	}
	st.annotate()
	return st, nil
}

func (st *SyntaxTree) add(n node) int {
	st.nodes = append(st.nodes, n)
	return len(st.nodes) - 1
}

func (st *SyntaxTree) convert(t parser.Tree) (int, error) {
	if from, to, ok := t.Range(); ok {
		return st.add(node{
			kind:  nodeKindChar,
			left:  nodeNil,
			right: nodeNil,
			from:  from,
			to:    to,
		}), nil
	}
	if c, ok := t.Optional(); ok {
		return st.convertUnary(nodeKindOption, c)
	}
	if c, ok := t.Repeatable(); ok {
		return st.convertUnary(nodeKindRepeat, c)
	}
	if c, ok := t.OneOrMore(); ok {
		return st.convertUnary(nodeKindOneOrMore, c)
	}
	if l, r, ok := t.Concatenation(); ok {
		return st.convertBinary(nodeKindConcat, l, r)
	}
	if l, r, ok := t.Alternatives(); ok {
		return st.convertBinary(nodeKindAlt, l, r)
	}
	return nodeNil, fmt.Errorf("invalid tree node: %T", t)
}

func (st *SyntaxTree) convertUnary(kind nodeKind, child parser.Tree) (int, error) {
	c, err := st.convert(child)
	if err != nil {
		return nodeNil, err
	}
	return st.add(node{
		kind:  kind,
		left:  c,
		right: nodeNil,
	}), nil
}

func (st *SyntaxTree) convertBinary(kind nodeKind, left, right parser.Tree) (int, error) {
	l, err := st.convert(left)
	if err != nil {
		return nodeNil, err
	}
	r, err := st.convert(right)
	if err != nil {
		return nodeNil, err
	}
	return st.add(node{
		kind:  kind,
		left:  l,
		right: r,
	}), nil
}

// annotate computes nullable, firsts and lasts bottom-up, then the
// follows links. The arena is in post order, so ascending iteration
// visits children before parents.
func (st *SyntaxTree) annotate() {
	for i := range st.nodes {
		n := &st.nodes[i]
		switch n.kind {
		case nodeKindChar:
			n.nullable = n.from == n.to
			n.firsts = []int{i}
			n.lasts = []int{i}
		case nodeKindToken:
			// The token marker is nullable so that the wrapper
			// concatenation is nullable iff the expression is.
			n.nullable = true
			n.firsts = []int{i}
			n.lasts = []int{i}
		case nodeKindAlt:
			l, r := &st.nodes[n.left], &st.nodes[n.right]
			n.nullable = l.nullable || r.nullable
			n.firsts = appendAll(l.firsts, r.firsts)
			n.lasts = appendAll(l.lasts, r.lasts)
		case nodeKindConcat:
			l, r := &st.nodes[n.left], &st.nodes[n.right]
			n.nullable = l.nullable && r.nullable
			n.firsts = appendAll(l.firsts, nil)
			if l.nullable {
				n.firsts = appendAll(n.firsts, r.firsts)
			}
			n.lasts = appendAll(r.lasts, nil)
			if r.nullable {
				n.lasts = appendAll(n.lasts, l.lasts)
			}
		case nodeKindOption, nodeKindRepeat, nodeKindOneOrMore:
			c := &st.nodes[n.left]
			n.nullable = n.kind != nodeKindOneOrMore || c.nullable
			n.firsts = appendAll(c.firsts, nil)
			n.lasts = appendAll(c.lasts, nil)
		}
	}

	for i := range st.nodes {
		n := st.nodes[i]
		switch n.kind {
		case nodeKindConcat:
			rightFirsts := st.nodes[n.right].firsts
			for _, l := range st.nodes[n.left].lasts {
				st.nodes[l].follows = append(st.nodes[l].follows, rightFirsts...)
			}
		case nodeKindRepeat, nodeKindOneOrMore:
			for _, l := range st.nodes[n.left].lasts {
				if st.nodes[l].isLeaf() {
					st.nodes[l].follows = append(st.nodes[l].follows, n.firsts...)
				}
			}
		}
	}
}

func appendAll(a, b []int) []int {
	r := make([]int, 0, len(a)+len(b))
	r = append(r, a...)
	r = append(r, b...)
	return r
}
