package main

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"

	"conjam/internal/app"
	"conjam/internal/core"
	_ "conjam/internal/rules"

	"github.com/integrii/flaggy"
)

func main() {
	flags := app.NewFlags()
	var verbose bool

	flaggy.SetName("conjam")
	flaggy.SetDescription("Real-time cellular automaton in a window")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flags.Bind(&flaggy.DefaultParser.Subcommand)
	flags.BindWindow(&flaggy.DefaultParser.Subcommand)
	flaggy.Bool(&verbose, "", "verbose", "Log session events to stderr")
	flaggy.Parse()

	if verbose {
		core.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg, err := flags.Config()
	if err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}

	if err := app.Run(cfg, flags.Scale); err != nil {
		if errors.Is(err, core.ErrUnsupportedEnvironment) {
			fmt.Fprintln(os.Stderr, "The GUI build of conjam requires the ebiten build tag.")
			fmt.Fprintln(os.Stderr, "Re-run with `go run -tags ebiten ./cmd/conjam` or use ./cmd/conjam-cli.")
			os.Exit(2)
		}
		log.Fatal(err)
	}
}
