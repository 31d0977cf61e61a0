package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/magefree/mage-legality/internal/config"
	"github.com/magefree/mage-legality/internal/game/expr"
	"github.com/magefree/mage-legality/internal/game/restriction"
	"github.com/magefree/mage-legality/internal/scenario"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath   = flag.String("config", "", "path to configuration file")
	scenarioPath = flag.String("scenario", "", "path to scenario file")
	version      = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()
	os.Exit(legality(*configPath, *scenarioPath))
}

// legality runs a check and returns the process exit code: 0 when every
// verdict matches its expectation, 1 on errors, 2 on bad usage and 3 when
// some verdict is unexpected.
func legality(configFile, scenarioFile string) int {
	if scenarioFile == "" {
		fmt.Fprintln(os.Stderr, "usage: legality [-config config.yaml] -scenario scenario.yaml")
		return 2
	}

	// Load configuration
	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	logger.Debug("starting legality check",
		zap.String("version", version),
		zap.String("config", configFile),
		zap.String("scenario", scenarioFile),
	)

	sc, err := scenario.Load(scenarioFile)
	if err != nil {
		logger.Error("failed to load scenario", zap.Error(err))
		return 1
	}
	logger.Debug("scenario loaded",
		zap.String("name", sc.Name),
		zap.Int("turn", sc.Game.Turn().TurnNumber()),
		zap.Stringer("step", sc.Game.Step()),
		zap.Int("candidates", len(sc.Candidates)),
	)

	opts, err := cfg.Engine.CheckerOptions()
	if err != nil {
		logger.Error("invalid engine configuration", zap.Error(err))
		return 1
	}
	exprs := expr.New(logger, cfg.Engine.EvaluatorOptions()...)
	checker := restriction.NewChecker(exprs, append(opts, restriction.WithLogger(logger))...)

	mismatches, err := run(os.Stdout, checker, sc)
	if err != nil {
		logger.Error("legality check failed", zap.Error(err))
		return 1
	}
	if mismatches > 0 {
		logger.Warn("verdicts differ from expectations", zap.Int("mismatches", mismatches))
		return 3
	}
	return 0
}

// run prints one verdict per candidate and counts the verdicts that differ
// from the scenario's expectations.
func run(w io.Writer, checker *restriction.Checker, sc *scenario.Scenario) (int, error) {
	mismatches := 0
	for _, c := range sc.Candidates {
		result, err := checker.Evaluate(c.Card, c.Ability)
		if err != nil {
			return mismatches, fmt.Errorf("%s: %w", c.Ability.Name(), err)
		}

		verdict := "LEGAL"
		if !result.Legal {
			verdict = fmt.Sprintf("ILLEGAL %s: %s", result.Stage, result.Reason)
		}
		if c.Expect != nil && !c.Expect.Matches(result) {
			verdict += " (unexpected)"
			mismatches++
		}
		fmt.Fprintf(w, "%s\t%s\n", c.Ability.Name(), verdict)
	}
	return mismatches, nil
}

func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
