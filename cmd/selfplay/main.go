package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/domino14/gameengines/automatic"
	"github.com/domino14/gameengines/config"
)

var (
	GitVersion string
)

func setupLogging(cfg *config.Config) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	var logger zerolog.Logger
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")
}

func seeds(cfg *config.Config) ([][32]byte, error) {
	n := cfg.GetInt(config.ConfigNumGames)
	path := cfg.GetString(config.ConfigSeedFile)
	if path == "" {
		return automatic.GenerateSeeds(n), nil
	}
	s, err := automatic.LoadSeeds(path)
	if err != nil {
		return nil, err
	}
	if len(s) > n {
		s = s[:n]
	}
	log.Info().Str("path", path).Int("seeds", len(s)).Msg("replaying seeds")
	return s, nil
}

func run(ctx context.Context, cfg *config.Config) error {
	gameSeeds, err := seeds(cfg)
	if err != nil {
		return err
	}
	if out := cfg.GetString(config.ConfigOutput); out != "" {
		if err := os.MkdirAll(out, 0o755); err != nil {
			return err
		}
		if err := automatic.SaveSeeds(gameSeeds, filepath.Join(out, "seeds.txt")); err != nil {
			return err
		}
	}

	summary, err := automatic.PlayGames(ctx, cfg, gameSeeds)
	if err != nil {
		return err
	}
	summary.Results = nil
	enc := yaml.NewEncoder(os.Stdout)
	defer enc.Close()
	return enc.Encode(summary)
}

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	setupLogging(cfg)
	log.Info().Str("version", GitVersion).Msgf("Loaded config: %v", cfg.SanitizedSettings())

	if cfg.GetString(config.ConfigCPUProfile) != "" {
		f, err := os.Create(cfg.GetString(config.ConfigCPUProfile))
		if err != nil {
			panic("could not create CPU profile: " + err.Error())
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			panic("could not start CPU profile: " + err.Error())
		}
		defer pprof.StopCPUProfile()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("selfplay failed")
		stop()
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}
