package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"squarelife/internal/app"
	"squarelife/internal/config"
	"squarelife/internal/core"
	"squarelife/internal/data"
	"squarelife/internal/logging"
	"squarelife/internal/sims/squarelife"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := app.NewConfig()
	flags.Bind(flag.CommandLine)
	flag.Parse()

	cfg := config.Defaults()
	if flags.ConfigPath != "" {
		loaded, err := config.Load(flags.ConfigPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	applyFlags(cfg, flags)

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	sim, err := buildSim(cfg, flags, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.Run.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Run.Timeout)
		defer cancel()
	}

	runner := app.NewRunner(sim, log, cfg.Run.TPS, cfg.Run.ReportEvery)
	// Zero defers to the sim's configured seed, which already carries -set.
	runner.Reset(0)

	done, err := runner.Run(ctx, cfg.Run.Ticks)
	if err != nil && ctx.Err() == nil {
		return err
	}
	log.Info("run finished", zap.Int("ticks", done), zap.Bool("interrupted", err != nil))
	return nil
}

func applyFlags(cfg *config.Config, flags *app.Config) {
	if flags.GenomeFile != "" {
		cfg.GenomeFile = flags.GenomeFile
	}
	if flags.Ticks >= 0 {
		cfg.Run.Ticks = flags.Ticks
	}
	if flags.TPS >= 0 {
		cfg.Run.TPS = flags.TPS
	}
	if flags.Seed != 0 {
		cfg.World.Seed = flags.Seed
	}
	if flags.LogLevel != "" {
		cfg.Logging.Level = flags.LogLevel
	}
}

func buildSim(cfg *config.Config, flags *app.Config, log *zap.Logger) (core.Sim, error) {
	params := map[string]string{
		"w":                 strconv.Itoa(cfg.World.Width),
		"h":                 strconv.Itoa(cfg.World.Height),
		"seed":              strconv.FormatInt(cfg.World.Seed, 10),
		"initial_organisms": strconv.Itoa(cfg.World.InitialOrganisms),
		"max_population":    strconv.Itoa(cfg.World.MaxPopulation),
	}
	for k, v := range flags.Set.Map() {
		params[k] = v
	}

	if flags.Sim != "squarelife" {
		factory, ok := core.Sims()[flags.Sim]
		if !ok {
			return nil, fmt.Errorf("unknown sim %q (available: %s)", flags.Sim, strings.Join(core.SimNames(), ", "))
		}
		return factory(params), nil
	}

	genomes := data.DefaultGenomes()
	if cfg.GenomeFile != "" {
		loaded, err := data.LoadGenomes(cfg.GenomeFile)
		if err != nil {
			return nil, fmt.Errorf("load genomes: %w", err)
		}
		if len(loaded) == 0 {
			return nil, fmt.Errorf("genome file %s defines no genomes", cfg.GenomeFile)
		}
		genomes = loaded
	}

	wc := squarelife.FromMap(params)
	wc.Genomes = genomes
	world := squarelife.NewWithConfig(wc)
	world.SetLogger(log.Named("world"))

	log.Info("world configured",
		zap.Int("width", wc.Width),
		zap.Int("height", wc.Height),
		zap.Int("initial_organisms", wc.Params.InitialOrganisms),
		zap.Int("max_population", wc.Params.MaxPopulation),
		zap.Int("genomes", len(genomes)),
	)
	return world, nil
}
