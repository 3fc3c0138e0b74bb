// Command resolve runs one depth-limited CFR re-solve from a position
// string and prints the acting player's strategy row for a chosen
// hole pair, plus the action it would sample from that row.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/hansjhaland/deepstack-holdem/pkg/cards"
	"github.com/hansjhaland/deepstack-holdem/pkg/holdem"
	"github.com/hansjhaland/deepstack-holdem/pkg/oracle"
	"github.com/hansjhaland/deepstack-holdem/pkg/resolver"
	"github.com/hansjhaland/deepstack-holdem/pkg/statetree"
	"github.com/hansjhaland/deepstack-holdem/pkg/valuenet"
)

type CLI struct {
	Position string `arg:"" help:"Position string, e.g. \"BTN:AsKd:S98/BB:QhQd:S97|P3|Kh9s4c|cr|>BTN\""`

	EndStage   string  `default:"river" help:"Stage the re-solve stops expanding at: flop, turn, river"`
	EndDepth   int     `default:"2" help:"Player-node depth within EndStage at which the tree is cut off"`
	Iterations int     `short:"T" default:"200" help:"Number of CFR iterations to average the strategy over"`
	MaxEvents  int     `default:"3" help:"Max sampled chance events per street transition"`
	RaisesLeft int     `default:"3" help:"Raises remaining in the current betting round"`
	BetToCall  float64 `default:"0" help:"Chips the acting player must call to stay in"`
	Limited    bool    `help:"Use the 24-card (9 through Ace) limited deck instead of the full 52"`
	Checkpoint string  `help:"Directory of value-network checkpoints (gob files named by CheckpointName); omitted falls back to the 0.5/0.5 cutoff estimate"`
	Seed       int64   `default:"0" help:"RNG seed for chance-event sampling (0 picks a random seed)"`
	HolePair   string  `help:"Specific hole pair to print the strategy row for, e.g. AsKd; defaults to the acting player's first range combo"`
	Verbose    bool    `short:"v" help:"Verbose logging"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli)

	logger := log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel})
	if cli.Verbose {
		logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.DebugLevel})
	}

	if err := run(cli, logger); err != nil {
		logger.Fatal("resolve failed", "error", err)
	}
	kctx.Exit(0)
}

func run(cli CLI, logger *log.Logger) error {
	pos, err := holdem.ParsePosition(cli.Position)
	if err != nil {
		return fmt.Errorf("parsing position: %w", err)
	}
	if len(pos.Players) != 2 {
		return fmt.Errorf("only heads-up positions are supported, got %d players", len(pos.Players))
	}

	endStage, err := parseStage(cli.EndStage)
	if err != nil {
		return err
	}

	o := oracle.New(cli.Limited)
	h := o.H()

	acting := pos.ToAct
	other := 1 - acting
	dead := pos.Board

	rActing, err := oracle.RangeVector(o, pos.Players[acting].Range, dead)
	if err != nil {
		return fmt.Errorf("acting player range: %w", err)
	}
	rOther, err := oracle.RangeVector(o, pos.Players[other].Range, dead)
	if err != nil {
		return fmt.Errorf("other player range: %w", err)
	}

	cfg := statetree.RootConfig{
		ActingPlayer: acting,
		Stacks:       [2]float64{pos.Players[0].Stack, pos.Players[1].Stack},
		Pot:          pos.Pot,
		RaisesLeft:   cli.RaisesLeft,
		BetToCall:    cli.BetToCall,
		Stage:        pos.Stage,
		Board:        pos.Board,
		RoundHistory: pos.History,
	}
	tree, rootIdx := statetree.GenerateRootState(cfg, h)

	seed := cli.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	build := statetree.BuildConfig{MaxEvents: cli.MaxEvents, RaisesPerStage: cli.RaisesLeft, Limited: cli.Limited}
	statetree.GenerateSubtree(tree, rootIdx, endStage, cli.EndDepth, build, rng)

	var net valuenet.Predictor
	if cli.Checkpoint != "" {
		store, err := loadStore(cli.Checkpoint, cli.Limited)
		if err != nil {
			return fmt.Errorf("loading value network checkpoints: %w", err)
		}
		net = store
	}
	logger.Debug("built tree", "nodes", len(tree.Nodes), "h", h, "end_stage", endStage)

	r := resolver.New(o, net)
	r.Logger = logger
	strategy, err := r.Resolve(tree, rootIdx, rActing, rOther, endStage, cli.Iterations)
	if err != nil {
		return fmt.Errorf("resolving: %w", err)
	}

	holeIdx, err := rowToPrint(o, cli, pos, acting)
	if err != nil {
		return err
	}

	row := strategy[holeIdx]
	combo := o.Combo(holeIdx)
	fmt.Printf("%s%s: fold=%.4f call=%.4f raise=%.4f\n", combo.C1, combo.C2, row[0], row[1], row[2])
	fmt.Printf("sampled action: %s\n", sampleAction(row, rng))
	return nil
}

func rowToPrint(o *oracle.Oracle, cli CLI, pos *holdem.Position, acting int) (int, error) {
	if cli.HolePair != "" {
		cs, err := cards.ParseCards(cli.HolePair)
		if err != nil || len(cs) != 2 {
			return 0, fmt.Errorf("hole pair %q must be exactly two cards", cli.HolePair)
		}
		key := cards.HolePairKey(cs[0], cs[1])
		if idx := o.IndexOf(key); idx != -1 {
			return idx, nil
		}
		return 0, fmt.Errorf("hole pair %q not found in this deck configuration", key)
	}
	if len(pos.Players[acting].Range) == 0 {
		return 0, fmt.Errorf("acting player has no concrete range combo; pass --hole-pair explicitly")
	}
	combo := pos.Players[acting].Range[0]
	idx := o.IndexOf(combo.Key())
	if idx == -1 {
		return 0, fmt.Errorf("acting player's first range combo is not representable in this deck configuration")
	}
	return idx, nil
}

func sampleAction(row []float64, rng *rand.Rand) holdem.Action {
	x := rng.Float64()
	cum := 0.0
	for a, p := range row {
		cum += p
		if x <= cum {
			return holdem.Action(a)
		}
	}
	return holdem.Action(len(row) - 1)
}

func parseStage(s string) (holdem.Stage, error) {
	switch s {
	case "flop":
		return holdem.Flop, nil
	case "turn":
		return holdem.Turn, nil
	case "river":
		return holdem.River, nil
	default:
		return 0, fmt.Errorf("unknown end stage %q (want flop, turn, or river)", s)
	}
}

// loadStore loads, for each stage, the checkpoint in dir whose file
// name sorts last among those matching CheckpointName's
// "{stage}_{limited_}*epochs.gob" shape for the given deck
// configuration.
func loadStore(dir string, limited bool) (*valuenet.Store, error) {
	store := valuenet.NewStore(limited)
	for _, stage := range []holdem.Stage{holdem.Flop, holdem.Turn, holdem.River} {
		pattern := dir + "/" + stagePrefix(stage, limited) + "*epochs.gob"
		globbed, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("matching %s: %w", pattern, err)
		}
		var matches []string
		for _, m := range globbed {
			// The full-deck pattern "{stage}_*" also matches limited files.
			if limited || !strings.HasPrefix(filepath.Base(m), stagePrefix(stage, true)) {
				matches = append(matches, m)
			}
		}
		if len(matches) == 0 {
			continue
		}
		sort.Strings(matches)
		path := matches[len(matches)-1]

		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		net, err := valuenet.LoadCheckpoint(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		if err := store.Add(net); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func stagePrefix(stage holdem.Stage, limited bool) string {
	if limited {
		return fmt.Sprintf("%s_limited_", stage)
	}
	return fmt.Sprintf("%s_", stage)
}
