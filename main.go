package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/quantfarm/backtester/config"
	"github.com/quantfarm/backtester/data"
	"github.com/quantfarm/backtester/engine"
	"github.com/quantfarm/backtester/strategies"
)

func main() {
	app := cli.NewApp()
	app.Name = "backtester"
	app.Usage = "event driven backtesting of trading strategies over historical candle data"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Value:   "config.json",
			Usage:   "path to the run configuration file",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "log every replayed timestep",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.ReadConfigFromFile(c.String("config"))
	if err != nil {
		return err
	}
	verbose := cfg.Verbose || c.Bool("verbose")
	logger, err := newLogger(verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	sugar := logger.Sugar()

	startDate, err := cfg.ParsedStartDate()
	if err != nil {
		return err
	}
	endDate, err := cfg.ParsedEndDate()
	if err != nil {
		return err
	}

	e, err := engine.New(engine.Settings{
		InitialCapital: cfg.InitialCapital,
		CommissionRate: cfg.CommissionRate,
		SlippageRate:   cfg.SlippageRate,
		RiskFreeRate:   cfg.RiskFreeRate,
		StartDate:      startDate,
		EndDate:        endDate,
	}, sugar)
	if err != nil {
		return err
	}

	for i := range cfg.DataSettings {
		series, err := data.SeriesFromCSV(cfg.DataSettings[i].Symbol, cfg.DataSettings[i].Path)
		if err != nil {
			return fmt.Errorf("could not load %v: %w", cfg.DataSettings[i].Path, err)
		}
		if err = e.AddData(series); err != nil {
			return err
		}
		sugar.Infof("loaded %v bars for %v", series.Len(), series.Symbol())
	}

	if cfg.Benchmark != nil {
		benchmark, err := data.SeriesFromCSV(cfg.Benchmark.Symbol, cfg.Benchmark.Path)
		if err != nil {
			return fmt.Errorf("could not load benchmark %v: %w", cfg.Benchmark.Path, err)
		}
		if err = e.SetBenchmarkData(benchmark); err != nil {
			return err
		}
		sugar.Infof("loaded %v benchmark bars for %v", benchmark.Len(), benchmark.Symbol())
	}

	strategy, err := strategies.LoadStrategyByName(cfg.StrategySettings.Name)
	if err != nil {
		return err
	}
	if len(cfg.StrategySettings.CustomSettings) > 0 {
		if err = strategy.SetCustomSettings(cfg.StrategySettings.CustomSettings); err != nil {
			return err
		}
	}
	e.SetStrategy(strategy.OnTimestep)
	sugar.Infof("running strategy %v", strategy.Name())

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := e.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Print(results.Metrics.Report())
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}
