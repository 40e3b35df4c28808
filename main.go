package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/LianHaeming/sleepwell/config"
)

// BuildVersion is set at compile time via -ldflags.
var BuildVersion = "dev"

// CLI is the root command line.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"sleepwell.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable debug logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Serve   ServeCmd   `cmd:"" default:"1" help:"Run the web dashboard and JSON API"`
	Log     LogCmd     `cmd:"" help:"Log a sleep session"`
	History HistoryCmd `cmd:"" help:"List logged sleep sessions, newest first"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a sleep session by id"`
	Stats   StatsCmd   `cmd:"" help:"Show sleep analytics"`
	Routine RoutineCmd `cmd:"" help:"Manage the bedtime routine checklist"`

	cfg config.Config `kong:"-"`
}

// AfterApply loads configuration and sets up logging once flags are parsed.
func (c *CLI) AfterApply() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Verbose {
		cfg.LogLevel = "debug"
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	c.cfg = cfg
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("sleepwell"),
		kong.Description("Track your sleep, build better habits, rest better."),
		kong.UsageOnError(),
		kong.Vars{"version": BuildVersion},
	)
	ctx.FatalIfErrorf(ctx.Run(&cli))
}
