// Command cheatsheet writes the optional pre-flop cheat-sheet CSV
// (spec §6): win probability by hole-pair type and opponent count.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/hansjhaland/deepstack-holdem/pkg/oracle"
)

type CLI struct {
	Out string `arg:"" help:"CSV file to write the cheat sheet to"`

	MaxOpponents int   `default:"1" help:"Largest opponent count column to compute"`
	Rollouts     int   `default:"2000" help:"Monte Carlo rollouts per (hole-pair type, opponent count) cell"`
	Limited      bool  `help:"Use the 24-card limited deck instead of the full 52"`
	Seed         int64 `default:"0" help:"RNG seed (0 picks a random seed)"`
	Verbose      bool  `short:"v" help:"Verbose logging"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli)

	logger := log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel})
	if cli.Verbose {
		logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.DebugLevel})
	}

	if err := run(cli, logger); err != nil {
		logger.Fatal("cheatsheet failed", "error", err)
	}
	kctx.Exit(0)
}

func run(cli CLI, logger *log.Logger) error {
	seed := cli.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	o := oracle.New(cli.Limited)
	logger.Info("rolling out cheat sheet", "max_opponents", cli.MaxOpponents, "rollouts", cli.Rollouts)
	rows, err := o.GenerateCheatSheet(cli.MaxOpponents, cli.Rollouts, rng)
	if err != nil {
		return fmt.Errorf("generating cheat sheet: %w", err)
	}

	f, err := os.Create(cli.Out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", cli.Out, err)
	}
	defer f.Close()

	if err := oracle.WriteCheatSheet(f, rows); err != nil {
		return fmt.Errorf("writing cheat sheet: %w", err)
	}
	logger.Info("cheat sheet written", "path", cli.Out, "rows", len(rows))
	return nil
}
