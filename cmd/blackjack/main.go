package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/console"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version     kong.VersionFlag `short:"v" help:"Show version"`
	Config      string           `short:"c" help:"HCL table configuration file" default:"blackjack.hcl" type:"path"`
	Decks       int              `help:"Decks shuffled into the shoe (overrides the config file)"`
	Players     int              `short:"p" help:"Number of players (prompts when omitted)"`
	Seed        int64            `help:"Shuffle seed, random when zero"`
	NoSurrender bool             `help:"Disallow surrender"`
	Rounds      bool             `help:"Show round headers and per-round results"`
	Debug       bool             `help:"Enable debug logging"`
	LogFile     string           `help:"Log file" default:"blackjack.log" type:"path"`
	NoColor     bool             `help:"Disable colour output"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Play blackjack against the dealer in your terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := cli.Run()
	ctx.FatalIfErrorf(err)
}

func (c *CLI) Run() error {
	if c.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	logFile, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()

	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "BLACKJACK",
	})
	if c.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := c.loadRules()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := randutil.Seed(c.Seed)
	logger.Info("Starting game", "casino", cfg.CasinoName, "decks", cfg.Decks, "seed", seed)

	con := console.New(os.Stdin, os.Stdout, logger.WithPrefix("console"))
	con.Welcome(cfg)

	names, err := c.seatPlayers(ctx, con, cfg)
	if err != nil {
		return err
	}

	renderer := console.NewRenderer(os.Stdout, game.FormattingOptions{ShowRounds: c.Rounds, ShowShoe: c.Debug})
	collector := statistics.NewCollector()
	bus := game.NewEventBus()
	bus.Subscribe(renderer)
	bus.Subscribe(collector)

	table, err := game.NewTable(con,
		game.WithRules(cfg),
		game.WithRNG(randutil.New(seed)),
		game.WithLogger(logger),
		game.WithEventBus(bus),
	)
	if err != nil {
		return err
	}
	for _, name := range names {
		if _, err := table.AddPlayer(name); err != nil {
			return err
		}
	}

	err = table.Run(ctx)
	renderer.Summary(collector)
	if verr := collector.Validate(); verr != nil {
		logger.Warn("Session statistics are inconsistent", "error", verr)
	}
	if game.IsGameOver(err) {
		logger.Info("Game interrupted", "rounds", table.Round())
		return nil
	}
	return err
}

func (c *CLI) loadRules() (game.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return cfg, err
	}
	if c.Decks > 0 {
		cfg.Decks = c.Decks
	}
	if c.NoSurrender {
		cfg.SurrenderAllowed = false
	}
	return cfg, cfg.Validate()
}

func (c *CLI) seatPlayers(ctx context.Context, con *console.Console, cfg game.Config) ([]string, error) {
	count := c.Players
	switch {
	case count > cfg.MaxPlayers:
		return nil, fmt.Errorf("%w: %d seats", console.ErrTooManyPlayers, cfg.MaxPlayers)
	case count < 0:
		return nil, console.ErrNoPlayers
	case count == 0:
		var err error
		if count, err = con.PlayerCount(ctx, cfg.MaxPlayers); err != nil {
			return nil, err
		}
	}
	return con.PlayerNames(ctx, count)
}
