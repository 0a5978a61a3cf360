package spec

import (
	verr "github.com/parsepact/parsepact/error"
	"github.com/parsepact/parsepact/matcher"
)

type Position struct {
	Row int
	Col int
}

type AssocKind string

const (
	AssocKindNone  = AssocKind("none")
	AssocKindLeft  = AssocKind("left")
	AssocKindRight = AssocKind("right")
)

type SymbolNodeKind int

const (
	// SymbolNodeKindID references a non-terminal by identifier.
	SymbolNodeKindID SymbolNodeKind = iota
	// SymbolNodeKindLiteral is a single-quoted terminal pattern.
	SymbolNodeKindLiteral
	// SymbolNodeKindPattern is a double-quoted terminal regex.
	SymbolNodeKindPattern
	// SymbolNodeKindError is the predeclared error token.
	SymbolNodeKindError
)

type RootNode struct {
	Name        string
	AssocDecls  []*AssocDeclNode
	Whitespaces []*WhitespaceNode
	Productions []*ProductionNode
}

type AssocDeclNode struct {
	Assoc   AssocKind
	Symbols []*SymbolNode
	Pos     Position
}

type WhitespaceNode struct {
	Patterns []string
	Pos      Position
}

type ProductionNode struct {
	LHS          string
	Alternatives []*AlternativeNode
	Pos          Position
}

type AlternativeNode struct {
	Elements []*SymbolNode
	PrecSym  *SymbolNode
	Action   string
	Pos      Position
}

type SymbolNode struct {
	Kind SymbolNodeKind
	Text string
	Pos  Position
}

func raiseSyntaxError(m *matcher.Matcher, synErr *SyntaxError) {
	panic(&verr.SpecError{
		Cause: synErr,
		Row:   m.Row(),
		Col:   m.Col(),
	})
}

func raiseError(m *matcher.Matcher, err error) {
	panic(&verr.SpecError{
		Cause: err,
		Row:   m.Row(),
		Col:   m.Col(),
	})
}

// Parse translates a grammar source into its AST. Statement order is
// preserved: associativity declarations accumulate precedence levels
// in source order and the first production determines the grammar's
// entry non-terminal.
func Parse(src string) (root *RootNode, retErr error) {
	defer func() {
		if r := recover(); r != nil {
			retErr = r.(error)
		}
	}()

	m := matcher.NewMatcher(src)
	p := &parser{
		m: m,
	}
	return p.parseRoot(), nil
}

type parser struct {
	m *matcher.Matcher
}

func (p *parser) pos() Position {
	return Position{
		Row: p.m.Row(),
		Col: p.m.Col(),
	}
}

func (p *parser) parseRoot() *RootNode {
	p.m.MatchWhiteSpaceOrComments()
	name, ok := p.m.MatchID()
	if !ok {
		raiseSyntaxError(p.m, synErrNoGrammarName)
	}
	p.m.MatchWhiteSpaceOrComments()
	if !p.m.MatchChar('{') {
		raiseSyntaxError(p.m, synErrNoGrammarBody)
	}

	root := &RootNode{
		Name: name,
	}
	for {
		if decl := p.parseAssocDecl(); decl != nil {
			root.AssocDecls = append(root.AssocDecls, decl)
			continue
		}
		if ws := p.parseWhitespaceStmt(); ws != nil {
			root.Whitespaces = append(root.Whitespaces, ws)
			continue
		}
		if prod := p.parseProductionStmt(); prod != nil {
			root.Productions = append(root.Productions, prod)
			continue
		}
		break
	}

	p.m.MatchWhiteSpaceOrComments()
	if !p.m.MatchChar('}') {
		raiseSyntaxError(p.m, synErrUnclosedGrammar)
	}
	p.m.MatchWhiteSpaceOrComments()
	if !p.m.Empty() {
		raiseSyntaxError(p.m, synErrUnexpectedToken)
	}
	return root
}

func (p *parser) parseAssocDecl() *AssocDeclNode {
	frame := p.m.BeginTentativeMatch("associativityStatement", false)
	defer frame.Close()

	p.m.MatchWhiteSpaceOrComments()
	pos := p.pos()

	var assoc AssocKind
	switch {
	case p.m.MatchStr("%none"):
		assoc = AssocKindNone
	case p.m.MatchStr("%left"):
		assoc = AssocKindLeft
	case p.m.MatchStr("%right"):
		assoc = AssocKindRight
	default:
		return nil
	}

	decl := &AssocDeclNode{
		Assoc: assoc,
		Pos:   pos,
	}
	for {
		sym := p.parseSymbol()
		if sym == nil {
			break
		}
		decl.Symbols = append(decl.Symbols, sym)
	}

	p.m.MatchWhiteSpaceOrComments()
	if !p.m.MatchChar(';') {
		raiseSyntaxError(p.m, synErrNoSemicolon)
	}
	frame.Accept()
	return decl
}

func (p *parser) parseWhitespaceStmt() *WhitespaceNode {
	frame := p.m.BeginTentativeMatch("whitespaceStatement", false)
	defer frame.Close()

	p.m.MatchWhiteSpaceOrComments()
	pos := p.pos()
	if !p.m.MatchStr("%whitespace") {
		return nil
	}

	ws := &WhitespaceNode{
		Pos: pos,
	}
	for {
		p.m.MatchWhiteSpaceOrComments()
		re, ok, err := p.m.MatchRegex()
		if err != nil {
			raiseError(p.m, err)
		}
		if !ok {
			break
		}
		ws.Patterns = append(ws.Patterns, re)
	}
	if len(ws.Patterns) == 0 {
		raiseSyntaxError(p.m, synErrNoWhitespaceRegex)
	}

	p.m.MatchWhiteSpaceOrComments()
	if !p.m.MatchChar(';') {
		raiseSyntaxError(p.m, synErrNoSemicolon)
	}
	frame.Accept()
	return ws
}

func (p *parser) parseProductionStmt() *ProductionNode {
	frame := p.m.BeginTentativeMatch("productionStatement", false)
	defer frame.Close()

	p.m.MatchWhiteSpaceOrComments()
	pos := p.pos()
	lhs, ok := p.m.MatchID()
	if !ok {
		return nil
	}
	p.m.MatchWhiteSpaceOrComments()
	if !p.m.MatchChar(':') {
		return nil
	}

	prod := &ProductionNode{
		LHS: lhs,
		Pos: pos,
	}
	for {
		prod.Alternatives = append(prod.Alternatives, p.parseAlternative())
		if !p.m.MatchChar('|') {
			break
		}
	}

	if !p.m.MatchChar(';') {
		raiseSyntaxError(p.m, synErrNoSemicolon)
	}
	frame.Accept()
	return prod
}

func (p *parser) parseAlternative() *AlternativeNode {
	p.m.MatchWhiteSpaceOrComments()
	alt := &AlternativeNode{
		Pos: p.pos(),
	}
	for {
		sym := p.parseSymbol()
		if sym == nil {
			break
		}
		alt.Elements = append(alt.Elements, sym)
	}

	p.m.MatchWhiteSpaceOrComments()
	if p.m.MatchStr("%precedence") {
		sym := p.parseSymbol()
		if sym == nil {
			raiseSyntaxError(p.m, synErrNoPrecedenceSym)
		}
		alt.PrecSym = sym
	}

	p.m.MatchWhiteSpaceOrComments()
	if p.m.MatchChar('[') {
		p.m.MatchWhiteSpaceOrComments()
		action, ok := p.m.MatchID()
		if !ok {
			raiseSyntaxError(p.m, synErrNoActionID)
		}
		alt.Action = action
		p.m.MatchWhiteSpaceOrComments()
		if !p.m.MatchChar(']') {
			raiseSyntaxError(p.m, synErrUnclosedAction)
		}
	}
	p.m.MatchWhiteSpaceOrComments()
	return alt
}

func (p *parser) parseSymbol() *SymbolNode {
	p.m.MatchWhiteSpaceOrComments()
	pos := p.pos()

	if lit, ok, err := p.m.MatchLiteral(); err != nil {
		raiseError(p.m, err)
	} else if ok {
		return &SymbolNode{
			Kind: SymbolNodeKindLiteral,
			Text: lit,
			Pos:  pos,
		}
	}
	if re, ok, err := p.m.MatchRegex(); err != nil {
		raiseError(p.m, err)
	} else if ok {
		return &SymbolNode{
			Kind: SymbolNodeKindPattern,
			Text: re,
			Pos:  pos,
		}
	}
	if id, ok := p.m.MatchID(); ok {
		if id == "error" {
			return &SymbolNode{
				Kind: SymbolNodeKindError,
				Pos:  pos,
			}
		}
		return &SymbolNode{
			Kind: SymbolNodeKindID,
			Text: id,
			Pos:  pos,
		}
	}
	return nil
}
