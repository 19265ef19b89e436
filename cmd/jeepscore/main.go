package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/jeepscore/jeepscore/internal/config"
	"github.com/jeepscore/jeepscore/internal/manager"
	"github.com/jeepscore/jeepscore/internal/store"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Config  string           `short:"c" help:"Path to config file" type:"path"`
	Debug   bool             `help:"Enable debug logging"`
	NoColor bool             `help:"Disable color output"`

	Start     StartCmd     `cmd:"" help:"Start a new game from name=bid pairs"`
	Status    StatusCmd    `cmd:"" help:"Show the current game"`
	Board     BoardCmd     `cmd:"" help:"Show the current scoreboard"`
	Inc       IncCmd       `cmd:"" help:"Increment the running count"`
	Dec       DecCmd       `cmd:"" help:"Decrement the running count"`
	End       EndCmd       `cmd:"" help:"End the current game"`
	Reset     ResetCmd     `cmd:"" help:"Abandon the current game"`
	Name      NameCmd      `cmd:"" help:"Name the current game"`
	Algorithm AlgorithmCmd `cmd:"" help:"Switch the scoring algorithm"`
	History   HistoryCmd   `cmd:"" help:"Work with saved games"`
	Play      PlayCmd      `cmd:"" help:"Open the interactive play screen"`
}

// appContext carries the wired-up dependencies into command Run methods.
type appContext struct {
	logger  *log.Logger
	config  *config.Config
	manager *manager.Manager
	closer  func() error
}

func (app *appContext) close() {
	if app.closer != nil {
		if err := app.closer(); err != nil {
			app.logger.Error("failed to close store", "err", err)
		}
	}
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("jeepscore"),
		kong.Description("Round-based bidding and counting scorekeeper"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	app, err := newAppContext(&cli)
	ctx.FatalIfErrorf(err)
	defer app.close()

	err = ctx.Run(app)
	ctx.FatalIfErrorf(err)
}

func newAppContext(cli *CLI) (*appContext, error) {
	cfg, err := config.LoadOrDefault(cli.Config)
	if err != nil {
		return nil, err
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	if cli.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	s, closer, err := openStore(cfg.Store)
	if err != nil {
		return nil, err
	}

	return &appContext{
		logger:  logger,
		config:  cfg,
		manager: manager.New(s, logger, manager.WithRetention(cfg.Game.RetentionCap())),
		closer:  closer,
	}, nil
}

func openStore(cfg *config.StoreConfig) (store.Store, func() error, error) {
	switch cfg.Driver {
	case "memory":
		return store.NewMemoryStore(), nil, nil
	case "sqlite":
		s, err := store.NewSQLiteStore(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case "file":
		s, err := store.NewFileStore(cfg.Path)
		return s, nil, err
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
