package statetree

import "github.com/hansjhaland/deepstack-holdem/pkg/holdem"

// raiseUnit is the fixed bet/raise size, expressed in big blinds, per
// spec §4.4: "Raise amount at each stage is the big-blind unit."
const raiseUnit = 1.0

// handleResult is the realized outcome of attempting an action: the
// action actually taken (which may differ from the one requested),
// and the resulting chip state.
type handleResult struct {
	realized  holdem.Action
	pot       float64
	stacks    [2]float64
	betToCall float64
	raises    int
}

// handleFold realizes a fold: the acting player simply leaves the pot
// to the other player. Chip state is unchanged; the caller branches to
// a fold-TerminalState.
func handleFold(n *Node) handleResult {
	return handleResult{realized: holdem.Fold, pot: n.Pot, stacks: n.Stacks, betToCall: n.BetToCall, raises: n.RaisesLeft}
}

// handleCall realizes a call, downgrading it to a fold when the
// acting player cannot match the outstanding bet (spec §7 kind 2).
func handleCall(n *Node) handleResult {
	acting := n.ActingPlayer
	toCall := n.BetToCall
	if toCall > n.Stacks[acting] {
		return handleFold(n)
	}
	stacks := n.Stacks
	stacks[acting] -= toCall
	return handleResult{
		realized:  holdem.Call,
		pot:       n.Pot + toCall,
		stacks:    stacks,
		betToCall: 0,
		raises:    n.RaisesLeft,
	}
}

// handleRaise realizes a raise, downgrading it to a call when no
// raises remain this stage or the player lacks the chips to raise
// (spec §7 kind 2, scenario 6).
func handleRaise(n *Node) handleResult {
	acting := n.ActingPlayer
	needed := n.BetToCall + raiseUnit
	if n.RaisesLeft <= 0 || needed > n.Stacks[acting] {
		return handleCall(n)
	}
	stacks := n.Stacks
	stacks[acting] -= needed
	return handleResult{
		realized:  holdem.Raise,
		pot:       n.Pot + needed,
		stacks:    stacks,
		betToCall: raiseUnit,
		raises:    n.RaisesLeft - 1,
	}
}

// otherPlayer returns the heads-up opponent of p.
func otherPlayer(p int) int { return 1 - p }

// roundCloses reports whether history, after the latest realized
// action has been appended, closes the betting round: two actions
// recorded since the last raise (or since the street began, if there
// was none). appendToRoundHistory resets history to hold just the
// raise itself whenever one occurs, so the raise is always the first
// of those two actions: the single response that follows it is
// therefore enough to close the round, matching spec §4.4's "both
// players have acted once since the last raise".
func roundCloses(historyAfterAppend []holdem.Action) bool {
	return len(historyAfterAppend) >= 2
}

// appendToRoundHistory appends a realized action to the current
// round's history, resetting the history to hold just that action if
// it was a raise (the raise reopens the action, and counts as the
// first of the two actions roundCloses waits for).
func appendToRoundHistory(history []holdem.Action, realized holdem.Action) []holdem.Action {
	if realized == holdem.Raise {
		return []holdem.Action{holdem.Raise}
	}
	return append(append([]holdem.Action(nil), history...), realized)
}
