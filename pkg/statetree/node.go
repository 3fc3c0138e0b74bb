// Package statetree builds the depth-limited public betting tree the
// resolver traverses: PlayerState, ChanceState, and TerminalState
// nodes, modeled as an arena of integer-indexed Nodes per the tagged-
// variant design in DESIGN.md rather than three separate pointer
// types, to keep the tree a flat, cheaply-copyable structure.
package statetree

import (
	"github.com/hansjhaland/deepstack-holdem/pkg/cards"
	"github.com/hansjhaland/deepstack-holdem/pkg/holdem"
)

// Kind tags which of the three state variants a Node represents.
type Kind uint8

const (
	PlayerNode Kind = iota
	ChanceNode
	TerminalNode
)

// ChanceEvent is one sampled public-card reveal at a ChanceState, and
// the PlayerState it leads into.
type ChanceEvent struct {
	Cards []cards.Card
	Child int
}

// Node is one entry in a Tree's arena. Its meaning depends on Kind.
type Node struct {
	Kind Kind

	Board []cards.Card
	Pot   float64
	Stage holdem.Stage

	// ParentAction is the action requested at the parent PlayerState
	// that led to this node (a raise or call that could not be afforded
	// may have been realized as a downgraded action). updateStrategy
	// does not read it; it walks the parent's ActionsToChildren.
	ParentAction holdem.Action

	// PlayerState fields.
	ActingPlayer      int
	Stacks            [2]float64
	RaisesLeft        int
	BetToCall         float64
	RoundHistory      []holdem.Action
	Depth             int
	Sigma             [][]float64 // H x 3, row-stochastic
	CumulativeRegret  [][]float64 // H x 3
	PositiveRegret    [][]float64 // H x 3
	VActing           []float64   // length H, written by the downward pass
	VOther            []float64   // length H
	ActionsToChildren map[holdem.Action]int
	// Cutoff marks a PlayerState at or past (end_stage, end_depth): it
	// has no children and its value comes from the value network
	// instead of recursion.
	Cutoff bool

	// ChanceState fields.
	NextStage holdem.Stage
	Events    []ChanceEvent

	// TerminalState fields. FoldWinner is -1 for a showdown terminal,
	// or the index of the player who wins because the other folded.
	FoldWinner int
}

// Tree is an arena of Nodes; children are referenced by index so the
// whole tree can be released at once when a resolve call returns.
type Tree struct {
	Nodes   []*Node
	Limited bool
}

func (t *Tree) add(n *Node) int {
	t.Nodes = append(t.Nodes, n)
	return len(t.Nodes) - 1
}

// Root returns the tree's root node (always index 0).
func (t *Tree) Root() *Node { return t.Nodes[0] }

func newSigmaRow() []float64 {
	row := make([]float64, holdem.NumActions)
	for a := range row {
		row[a] = 1.0 / float64(holdem.NumActions)
	}
	return row
}

func newUniformMatrix(h int) [][]float64 {
	m := make([][]float64, h)
	for i := range m {
		m[i] = newSigmaRow()
	}
	return m
}

func newZeroMatrix(h int) [][]float64 {
	m := make([][]float64, h)
	for i := range m {
		m[i] = make([]float64, holdem.NumActions)
	}
	return m
}
