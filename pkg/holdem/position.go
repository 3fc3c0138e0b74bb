package holdem

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hansjhaland/deepstack-holdem/pkg/cards"
)

// TablePosition names a seat at a heads-up table.
type TablePosition string

const (
	BTN TablePosition = "BTN"
	BB  TablePosition = "BB"
)

// PlayerSpec is one seat's range and stack, as parsed from a position
// string.
type PlayerSpec struct {
	Position TablePosition
	Range    []Combo
	Stack    float64
}

// Position is a fully parsed betting position: both players' ranges
// and stacks, the board, the action history for the current stage,
// whose turn it is, and the derived stage.
type Position struct {
	Players []PlayerSpec
	Pot     float64
	Board   []cards.Card
	History []Action
	ToAct   int
	Stage   Stage
}

// ParsePosition parses a position string of the form
// "POS:RANGE:S<stack>/POS:RANGE:S<stack>|P<pot>|<board>|<history>|><acting position>".
// RANGE is range notation (see ParseRange), two specific cards such as
// "AsKd", or "??" for an unknown range. History is optional. Example:
//
//	"BTN:AA,KK:S100/BB:QQ-JJ:S100|P20|Kh9s4c7d2s||>BTN"
//	"BTN:AsKd:S98/BB:??:S97|P3|Th9h2c|cr|>BTN"
func ParsePosition(fen string) (*Position, error) {
	fen = strings.TrimSpace(fen)
	if fen == "" {
		return nil, fmt.Errorf("empty position string")
	}

	parts := strings.Split(fen, "|")
	if len(parts) < 4 {
		return nil, fmt.Errorf("invalid position format: expected at least 4 |-separated parts, got %d", len(parts))
	}

	playersStr, potStr, boardStr := parts[0], parts[1], parts[2]
	var historyStr, actionStr string
	switch len(parts) {
	case 4:
		actionStr = parts[3]
	case 5:
		historyStr, actionStr = parts[3], parts[4]
	default:
		return nil, fmt.Errorf("invalid position format: too many | separated parts (%d)", len(parts))
	}

	players, err := parsePlayers(playersStr)
	if err != nil {
		return nil, fmt.Errorf("error parsing players: %w", err)
	}
	pot, err := parsePot(potStr)
	if err != nil {
		return nil, fmt.Errorf("error parsing pot: %w", err)
	}
	board, err := parseBoard(boardStr)
	if err != nil {
		return nil, fmt.Errorf("error parsing board: %w", err)
	}
	history, err := parseHistory(historyStr)
	if err != nil {
		return nil, fmt.Errorf("error parsing history: %w", err)
	}
	toAct, err := parseToAct(actionStr, players)
	if err != nil {
		return nil, fmt.Errorf("error parsing acting player: %w", err)
	}

	return &Position{
		Players: players,
		Pot:     pot,
		Board:   board,
		History: history,
		ToAct:   toAct,
		Stage:   stageForBoard(len(board)),
	}, nil
}

func stageForBoard(n int) Stage {
	switch n {
	case 0:
		return PreFlop
	case 3:
		return Flop
	case 4:
		return Turn
	default:
		return River
	}
}

func parsePlayers(s string) ([]PlayerSpec, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty players string")
	}
	var out []PlayerSpec
	for _, part := range strings.Split(s, "/") {
		p, err := parsePlayer(part)
		if err != nil {
			return nil, fmt.Errorf("error parsing player %q: %w", part, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func parsePlayer(s string) (PlayerSpec, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return PlayerSpec{}, fmt.Errorf("invalid player format %q (expected POS:RANGE:S<stack>)", s)
	}
	position := TablePosition(strings.TrimSpace(parts[0]))
	rangeStr := strings.TrimSpace(parts[1])
	stackStr := strings.TrimSpace(parts[2])

	if len(stackStr) < 2 || stackStr[0] != 'S' {
		return PlayerSpec{}, fmt.Errorf("invalid stack format %q (expected S<amount>)", stackStr)
	}
	stack, err := strconv.ParseFloat(stackStr[1:], 64)
	if err != nil {
		return PlayerSpec{}, fmt.Errorf("invalid stack amount %q: %w", stackStr, err)
	}

	var combos []Combo
	if rangeStr != "??" {
		if cs, cerr := cards.ParseCards(rangeStr); cerr == nil && len(cs) == 2 {
			// Specific hole cards, e.g. "AsKd": a single combo.
			combos = []Combo{{Card1: cs[0], Card2: cs[1]}}
		} else {
			combos, err = ParseRange(rangeStr)
			if err != nil {
				return PlayerSpec{}, fmt.Errorf("error parsing range %q: %w", rangeStr, err)
			}
		}
	}

	return PlayerSpec{Position: position, Range: combos, Stack: stack}, nil
}

func parsePot(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != 'P' {
		return 0, fmt.Errorf("invalid pot format %q (expected P<amount>)", s)
	}
	return strconv.ParseFloat(s[1:], 64)
}

func parseBoard(s string) ([]cards.Card, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return nil, nil
	}
	s = strings.ReplaceAll(s, "/", "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("invalid board length %q (must be even)", s)
	}
	n := len(s) / 2
	if n != 3 && n != 4 && n != 5 {
		return nil, fmt.Errorf("invalid board %q (must have 3, 4, or 5 cards)", s)
	}
	board := make([]cards.Card, n)
	for i := 0; i < n; i++ {
		c, err := cards.ParseCard(s[i*2 : i*2+2])
		if err != nil {
			return nil, fmt.Errorf("error parsing board card %q: %w", s[i*2:i*2+2], err)
		}
		board[i] = c
	}
	return board, nil
}

// parseHistory parses an action history string such as "cr" (call,
// raise) or "f". Only the three legal action letters are recognized.
func parseHistory(s string) ([]Action, error) {
	s = strings.TrimSpace(s)
	var out []Action
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'c', 'C':
			out = append(out, Call)
		case 'r', 'R':
			out = append(out, Raise)
		case 'f', 'F':
			out = append(out, Fold)
		default:
			return nil, fmt.Errorf("invalid action character %q at position %d", s[i], i)
		}
	}
	return out, nil
}

func parseToAct(s string, players []PlayerSpec) (int, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '>' {
		return 0, fmt.Errorf("invalid acting-player format %q (expected ><POSITION>)", s)
	}
	pos := TablePosition(s[1:])
	for i, p := range players {
		if p.Position == pos {
			return i, nil
		}
	}
	return 0, fmt.Errorf("position %q not found among players", pos)
}
