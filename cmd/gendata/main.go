// Command gendata generates value-network training datasets and,
// optionally, trains and checkpoints a network against them, one
// (stage, deck-size) partition per invocation.
package main

import (
	"encoding/gob"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/hansjhaland/deepstack-holdem/pkg/holdem"
	"github.com/hansjhaland/deepstack-holdem/pkg/oracle"
	"github.com/hansjhaland/deepstack-holdem/pkg/valuenet"
)

type CLI struct {
	Stage    string `arg:"" help:"Stage to generate training cases for: flop, turn, river"`
	NumCases int    `arg:"" help:"Number of training cases to generate"`

	Limited bool   `help:"Use the 24-card limited deck instead of the full 52"`
	Out     string `help:"Directory to write the dataset and any checkpoint into" default:"."`
	Seed    int64  `default:"0" help:"RNG seed (0 picks a random seed)"`

	Train     bool    `help:"Train a network on the generated dataset and save a checkpoint"`
	Epochs    int     `default:"50" help:"Training epochs, only used with --train"`
	LearnRate float64 `default:"0.001" help:"SGD learning rate, only used with --train"`

	Verbose bool `short:"v" help:"Verbose logging"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli)

	logger := log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel})
	if cli.Verbose {
		logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.DebugLevel})
	}

	if err := run(cli, logger); err != nil {
		logger.Fatal("gendata failed", "error", err)
	}
	kctx.Exit(0)
}

func run(cli CLI, logger *log.Logger) error {
	stage, err := parseStage(cli.Stage)
	if err != nil {
		return err
	}

	seed := cli.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	runID := uuid.NewString()
	o := oracle.New(cli.Limited)
	logger.Info("generating dataset", "run_id", runID, "stage", stage, "cases", cli.NumCases, "limited", cli.Limited)
	records, err := valuenet.GenerateDataset(o, stage, cli.NumCases, rng)
	if err != nil {
		return fmt.Errorf("generating dataset: %w", err)
	}

	datasetPath := cli.Out + "/" + datasetName(stage, cli.Limited, cli.NumCases) + ".gob"
	if err := saveRecords(datasetPath, records); err != nil {
		return fmt.Errorf("saving dataset: %w", err)
	}
	logger.Info("dataset written", "run_id", runID, "path", datasetPath, "records", len(records))

	if !cli.Train {
		return nil
	}

	h := o.H()
	d := 52 // board multi-hot width: one slot per card in the deck
	if cli.Limited {
		d = 24
	}
	net := valuenet.NewNetwork(stage, cli.Limited, h, d, rng)
	losses := valuenet.Train(net, records, cli.Epochs, cli.LearnRate)
	logger.Info("training complete", "final_loss", losses[len(losses)-1])

	checkpointPath := cli.Out + "/" + valuenet.CheckpointName(stage, cli.Limited, cli.Epochs) + ".gob"
	f, err := os.Create(checkpointPath)
	if err != nil {
		return fmt.Errorf("creating checkpoint file: %w", err)
	}
	defer f.Close()
	if err := valuenet.SaveCheckpoint(f, net); err != nil {
		return fmt.Errorf("saving checkpoint: %w", err)
	}
	logger.Info("checkpoint written", "path", checkpointPath)
	return nil
}

func numPublicCards(stage holdem.Stage) int {
	switch stage {
	case holdem.Flop:
		return 3
	case holdem.Turn:
		return 4
	default:
		return 5
	}
}

func datasetName(stage holdem.Stage, limited bool, numCases int) string {
	if limited {
		return fmt.Sprintf("limited_%s_%d", stage, numCases)
	}
	return fmt.Sprintf("%s_%d", stage, numCases)
}

func saveRecords(path string, records []valuenet.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(records)
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
		return 0, fmt.Errorf("unknown stage %q (want flop, turn, or river)", s)
	}
}
