package dfa

import (
	"fmt"
)

// tokenNil marks a non-accepting state.
const tokenNil = -1

// DState is a state of the generated automaton. TransitionsBegin is
// the index of the state's first transition in the flat transition
// list.
type DState struct {
	TransitionsBegin int
	Accepting        bool
	Token            int
}

// Transition moves from state From over the character range [Lo, Hi).
// When Lo == Hi the entry is a token marker and Next holds the token
// id instead of a state index.
type Transition struct {
	From int
	Lo   byte
	Hi   byte
	Next int
}

// DFA is the flat automaton produced by the follow-position
// construction. State 0 is the initial state.
type DFA struct {
	States      []DState
	Transitions []Transition
}

// Sizes returns the number of states and transitions so that a caller
// can allocate a fixed-size artifact.
func (d *DFA) Sizes() (nStates, nTransitions int) {
	return len(d.States), len(d.Transitions)
}

// GenDFA derives the automaton from the annotated tree. Each state is
// labelled by a deduplicated, insertion-ordered list of leaf node ids;
// the initial label is the root's firsts.
func GenDFA(st *SyntaxTree) (*DFA, error) {
	d := &DFA{}

	labels := [][]int{
		dedup(st.nodes[st.root].firsts),
	}

	for iState := 0; iState < len(labels); iState++ {
		label := labels[iState]

		recogToken := tokenNil
		var ranges unmergedCharRanges
		for _, leaf := range label {
			n := &st.nodes[leaf]
			ranges.set(n.from, n.to)
			if n.kind == nodeKindToken && recogToken == tokenNil {
				recogToken = n.token
			}
		}

		d.States = append(d.States, DState{
			TransitionsBegin: len(d.Transitions),
			Accepting:        recogToken != tokenNil,
			Token:            recogToken,
		})

		err := ranges.onAllRanges(func(b, e byte) error {
			if b == e {
				if recogToken == tokenNil {
					return fmt.Errorf("token not recognized when chars not accepted")
				}
				d.Transitions = append(d.Transitions, Transition{
					From: iState,
					Lo:   b,
					Hi:   e,
					Next: recogToken,
				})
				return nil
			}

			var next []int
			for _, leaf := range label {
				n := &st.nodes[leaf]
				if b >= n.from && e <= n.to {
					next = appendUnique(next, n.follows)
				}
			}

			iNext := findLabel(labels, next)
			if iNext == len(labels) && len(next) > 0 {
				labels = append(labels, next)
			}
			d.Transitions = append(d.Transitions, Transition{
				From: iState,
				Lo:   b,
				Hi:   e,
				Next: iNext,
			})
			return nil
		})
		if err != nil {
			return nil, err
		}

		tracer().Debugf("dfa: state %d label %v accepting %v token %d", iState, label, recogToken != tokenNil, recogToken)
	}

	return d, nil
}

func dedup(ids []int) []int {
	return appendUnique(nil, ids)
}

func appendUnique(to []int, ids []int) []int {
outer:
	for _, id := range ids {
		for _, e := range to {
			if e == id {
				continue outer
			}
		}
		to = append(to, id)
	}
	return to
}

func findLabel(labels [][]int, label []int) int {
	i := 0
outer:
	for ; i < len(labels); i++ {
		if len(labels[i]) != len(label) {
			continue
		}
		for j := range label {
			if labels[i][j] != label[j] {
				continue outer
			}
		}
		break
	}
	return i
}
