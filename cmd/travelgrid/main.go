package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/Makepad-fr/travelgrid/internal/catalog"
	"github.com/Makepad-fr/travelgrid/internal/cli"
	"github.com/Makepad-fr/travelgrid/internal/config"
	"github.com/Makepad-fr/travelgrid/internal/logging"
	"github.com/Makepad-fr/travelgrid/internal/tui"
	"github.com/Makepad-fr/travelgrid/internal/ui"
)

const defaultConfigFile = "config.yaml"

func main() {
	os.Exit(run())
}

func run() int {
	// Root flags (apply to every subcommand)
	flags := pflag.NewFlagSet("travelgrid", pflag.ContinueOnError)
	flags.SetInterspersed(false)
	configFile := flags.String("config", "", "config file (default ./config.yaml when present)")
	theme := flags.String("theme", "", "classic, neon or mono")
	noColor := flags.Bool("no-color", false, "disable colored output")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			cli.PrintHelp()
			return 0
		}
		ui.Fail(err.Error())
		return 2
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		ui.Fail("load .env: " + err.Error())
	}

	if *configFile == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			*configFile = defaultConfigFile
		}
	}
	cfg, err := config.Load(*configFile)
	if err != nil {
		ui.Fail("config: " + err.Error())
		return 1
	}

	if *theme == "" {
		*theme = cfg.UI.Theme
	}
	ui.SetTheme(*theme)
	ui.SetColorForcing(false, *noColor || cfg.UI.NoColor)

	args := flags.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		return 2
	}

	log, closer, err := newLogger(cfg, args[0] == "ui")
	if err != nil {
		ui.Fail("logger: " + err.Error())
		return 1
	}
	defer closer.Close()
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var svc *catalog.Service
	defer func() {
		if svc != nil {
			if err := svc.Close(); err != nil {
				log.Warn("close catalog", "err", err)
			}
		}
	}()

	code := cli.Run(ctx, args, cli.Env{
		Open: func(ctx context.Context) (tui.Catalog, error) {
			s, err := catalog.Open(ctx, cfg, log)
			if err != nil {
				return nil, err
			}
			svc = s
			return s, nil
		},
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	return code
}

// newLogger logs to stderr, or to a file while the full-screen UI runs.
func newLogger(cfg *config.Config, interactive bool) (*slog.Logger, io.Closer, error) {
	if interactive {
		return logging.ToFile(cfg.Local.Dir, "travelgrid.log", cfg.Logger.Level)
	}
	return logging.New(os.Stderr, cfg.Logger.Level), io.NopCloser(nil), nil
}
