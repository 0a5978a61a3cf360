package spec

// Symbol kinds stored in the compiled artifact. The null kind covers
// the error and whitespace pseudo-symbols.
const (
	SymbolKindNull        = 0
	SymbolKindTerminal    = 1
	SymbolKindNonTerminal = 2
	SymbolKindEnd         = 3
)

// Parser action kinds stored in the transition table.
const (
	ActionKindShift  = 1
	ActionKindReduce = 2
	ActionKindAccept = 3
)

// SymbolTable packs the symbols of the grammar; the index is the
// symbol id.
type SymbolTable struct {
	Names []string `json:"names"`
	Kinds []int    `json:"kinds"`
}

// ProductionTable packs every production as [LHS, RHS...] into Data;
// Offsets and Sizes delimit the row of each production. PrecSymbols
// holds each production's precedence anchor, -1 when none.
type ProductionTable struct {
	Data        []int    `json:"data"`
	Offsets     []int    `json:"offsets"`
	Sizes       []int    `json:"sizes"`
	Actions     []string `json:"actions"`
	PrecSymbols []int    `json:"prec_symbols"`
}

// ItemTable packs the LR(0) items; the index is the item id.
type ItemTable struct {
	Productions []int `json:"productions"`
	Dots        []int `json:"dots"`
}

// StateTable packs, for each state, the ids of its items into a flat
// array delimited by Offsets and Sizes.
type StateTable struct {
	ItemData []int `json:"item_data"`
	Offsets  []int `json:"offsets"`
	Sizes    []int `json:"sizes"`
}

// TransitionTable packs, for each state, its parser actions into flat
// arrays delimited by Offsets and Sizes. Targets holds the destination
// state of a shift or the production of a reduce.
type TransitionTable struct {
	Symbols []int `json:"symbols"`
	Kinds   []int `json:"kinds"`
	Targets []int `json:"targets"`
	Offsets []int `json:"offsets"`
	Sizes   []int `json:"sizes"`
}

// DFATable is the flat tokenizer automaton. TransitionsBegin maps a
// state to its first transition; a transition with Lo == Hi is a token
// marker whose Next field holds the token id.
type DFATable struct {
	InitialState     int    `json:"initial_state"`
	TransitionsBegin []int  `json:"transitions_begin"`
	Accepting        []bool `json:"accepting"`
	Tokens           []int  `json:"tokens"`
	From             []int  `json:"from"`
	Lo               []int  `json:"lo"`
	Hi               []int  `json:"hi"`
	Next             []int  `json:"next"`
}

// CompiledGrammar is the immutable artifact produced by the
// construction. All buffers are contiguous and addressable by dense
// indices; the growable form used during construction is frozen into
// this fixed form by copy.
type CompiledGrammar struct {
	Name             string           `json:"name"`
	Symbols          *SymbolTable     `json:"symbols"`
	Productions      *ProductionTable `json:"productions"`
	Items            *ItemTable       `json:"items"`
	States           *StateTable      `json:"states"`
	Transitions      *TransitionTable `json:"transitions"`
	DFA              *DFATable        `json:"dfa"`
	StartSymbol      int              `json:"start_symbol"`
	EndSymbol        int              `json:"end_symbol"`
	ErrorSymbol      int              `json:"error_symbol"`
	WhitespaceSymbol int              `json:"whitespace_symbol"`
}

func (g *CompiledGrammar) SymbolCount() int {
	return len(g.Symbols.Names)
}

func (g *CompiledGrammar) SymbolName(sym int) string {
	return g.Symbols.Names[sym]
}

func (g *CompiledGrammar) SymbolKind(sym int) int {
	return g.Symbols.Kinds[sym]
}

func (g *CompiledGrammar) ProductionCount() int {
	return len(g.Productions.Offsets)
}

func (g *CompiledGrammar) ProductionLHS(prod int) int {
	return g.Productions.Data[g.Productions.Offsets[prod]]
}

// ProductionRHS returns a view of the production's right-hand side.
func (g *CompiledGrammar) ProductionRHS(prod int) []int {
	off := g.Productions.Offsets[prod]
	size := g.Productions.Sizes[prod]
	return g.Productions.Data[off+1 : off+size]
}

func (g *CompiledGrammar) ProductionAction(prod int) string {
	return g.Productions.Actions[prod]
}

func (g *CompiledGrammar) StateCount() int {
	return len(g.Transitions.Offsets)
}

// StateItems returns a view of the item ids of a state.
func (g *CompiledGrammar) StateItems(state int) []int {
	off := g.States.Offsets[state]
	return g.States.ItemData[off : off+g.States.Sizes[state]]
}

// FindTransition looks up the action for (state, sym). It reports the
// action kind and the target state or production.
func (g *CompiledGrammar) FindTransition(state, sym int) (kind int, target int, ok bool) {
	t := g.Transitions
	off := t.Offsets[state]
	for i := off; i < off+t.Sizes[state]; i++ {
		if t.Symbols[i] == sym {
			return t.Kinds[i], t.Targets[i], true
		}
	}
	return 0, 0, false
}

// StateTransitionSymbols returns the symbols for which a state has an
// action, in table order.
func (g *CompiledGrammar) StateTransitionSymbols(state int) []int {
	t := g.Transitions
	off := t.Offsets[state]
	return t.Symbols[off : off+t.Sizes[state]]
}
