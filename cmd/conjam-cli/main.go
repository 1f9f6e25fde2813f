package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"conjam/internal/app"
	"conjam/internal/core"
	"conjam/internal/engine"
	"conjam/internal/render"
	_ "conjam/internal/rules"
	"conjam/internal/shader"
	"conjam/internal/ui"

	"github.com/integrii/flaggy"
	"github.com/logrusorgru/aurora"
)

type options struct {
	verbose  bool
	every    int
	recovers int
	plain    bool
	out      string
	scale    int
	steps    int
}

func main() {
	flags := app.NewFlags()
	opts := options{every: 10, out: "conjam.png", scale: 4, steps: 100}

	flaggy.SetName("conjam-cli")
	flaggy.SetDescription("Headless and terminal front ends of the conjam cellular automaton")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Bool(&opts.verbose, "", "verbose", "Log session events to stderr")

	runCmd := flaggy.NewSubcommand("run")
	runCmd.Description = "Run the frame loop and print progress"
	flags.Bind(runCmd)
	runCmd.Int(&opts.every, "", "every", "Print a status line every N steps")
	runCmd.Int(&opts.recovers, "", "recover", "Re-acquire up to N times after the surface is lost")
	flaggy.AttachSubcommand(runCmd, 1)

	termCmd := flaggy.NewSubcommand("term")
	termCmd.Description = "Show the grid in an interactive terminal view"
	flags.Bind(termCmd)
	termCmd.Bool(&opts.plain, "", "plain", "Draw cells without colors")
	flaggy.AttachSubcommand(termCmd, 1)

	snapCmd := flaggy.NewSubcommand("snapshot")
	snapCmd.Description = "Advance N steps and write the frame as PNG"
	flags.Bind(snapCmd)
	snapCmd.Int(&opts.steps, "n", "count", "Steps to advance before drawing")
	snapCmd.String(&opts.out, "o", "out", "Output PNG path")
	snapCmd.Int(&opts.scale, "", "scale", "Pixels per cell")
	flaggy.AttachSubcommand(snapCmd, 1)

	shaderCmd := flaggy.NewSubcommand("shader")
	shaderCmd.Description = "Print the generated WGSL programs and compile them to SPIR-V"
	flags.Bind(shaderCmd)
	flaggy.AttachSubcommand(shaderCmd, 1)

	flaggy.Parse()

	if opts.verbose {
		core.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg, err := flags.Config()
	if err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case runCmd.Used:
		err = runHeadless(ctx, cfg, opts)
	case termCmd.Used:
		err = runTerminal(ctx, cfg, opts)
	case snapCmd.Used:
		err = runSnapshot(ctx, cfg, opts)
	case shaderCmd.Used:
		err = runShader(cfg)
	default:
		flaggy.ShowHelpAndExit("a subcommand is required")
	}
	if err != nil {
		log.Fatal(err)
	}
}

func runHeadless(ctx context.Context, cfg core.Config, opts options) error {
	fmt.Println(aurora.Colorize("conjam", aurora.CyanFg).String() + " " + ui.ConfigLines(cfg)[0])
	var console *ui.Console
	c := engine.NewContext(cfg, func(context.Context, core.Config) (engine.Surface, error) {
		console = ui.NewConsole(os.Stdout, opts.every)
		return console, nil
	})
	c.OnLost = func(err error) {
		fmt.Println(aurora.Red("lost: " + err.Error()).String())
	}
	sup := &engine.Supervisor{
		Context:       c,
		MaxRecoveries: opts.recovers,
		Observe: func(s engine.Stats) {
			console.Observe(s)
		},
	}
	if err := sup.Run(ctx); err != nil {
		return err
	}
	fmt.Println(aurora.Colorize("finished", aurora.GreenFg).String())
	return nil
}

func runTerminal(ctx context.Context, cfg core.Config, opts options) error {
	session, err := engine.NewSession(cfg)
	if err != nil {
		return err
	}
	glyphs := render.ColorGlyphs()
	if opts.plain {
		glyphs = render.PlainGlyphs
	}
	term, err := ui.NewTerminal(cfg, glyphs)
	if err != nil {
		return err
	}
	defer term.Close()

	loop := engine.NewLoop(session, term)
	loop.Observe = term.Observe
	return term.Run(ctx, func(ctx context.Context) error {
		if err := term.Draw(session.Frame()); err != nil {
			return err
		}
		return loop.Run(ctx)
	})
}

func runSnapshot(ctx context.Context, cfg core.Config, opts options) error {
	session, err := engine.NewSession(cfg)
	if err != nil {
		return err
	}
	for i := 0; i < opts.steps; i++ {
		if err := session.Step(ctx); err != nil {
			return err
		}
	}
	snap := render.NewSnapshot(render.NewFromConfig(cfg), opts.scale)
	defer snap.Close()
	if err := snap.Draw(session.Frame()); err != nil {
		return err
	}

	f, err := os.Create(opts.out)
	if err != nil {
		return err
	}
	if err := snap.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", opts.out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("%s step %d, %d active, wrote %s\n",
		aurora.Colorize(session.Name(), aurora.CyanFg), session.StepCount(), session.Population(), opts.out)
	return nil
}

func runShader(cfg core.Config) error {
	compute, cell, err := shader.Build(cfg)
	if err != nil {
		return err
	}
	for _, m := range []shader.Module{compute, cell} {
		fmt.Println(aurora.Colorize("// "+m.Label, aurora.GreenFg).String())
		fmt.Println(m.WGSL)
		fmt.Printf("// %d SPIR-V words\n\n", len(m.SPIRV))
	}
	return nil
}
