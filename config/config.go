package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug          = "debug"
	ConfigGame           = "game"
	ConfigNumGames       = "num-games"
	ConfigThreads        = "threads"
	ConfigSeedFile       = "seed-file"
	ConfigSaveFormat     = "save-format"
	ConfigPermissivePlay = "permissive-play"
	ConfigOutput         = "output"
	ConfigCPUProfile     = "cpu-profile"
)

const (
	GameTower      = "tower"
	GameNestedGrid = "nestedgrid"
)

type Config struct {
	viper.Viper
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigGame, GameTower)
	c.SetDefault(ConfigNumGames, 100)
	c.SetDefault(ConfigThreads, runtime.NumCPU())
	c.SetDefault(ConfigSeedFile, "")
	c.SetDefault(ConfigSaveFormat, "yaml")
	c.SetDefault(ConfigPermissivePlay, false)
	c.SetDefault(ConfigOutput, "")
	c.SetDefault(ConfigCPUProfile, "")
}

// Load reads settings from command-line args, then GAMEENGINES_*
// environment variables, then defaults, in order of precedence.
func (c *Config) Load(args []string) error {
	c.Viper = *viper.New()
	c.setDefaults()

	fs := pflag.NewFlagSet("gameengines", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "turn on debug logging")
	fs.String(ConfigGame, GameTower, "which game to play: tower or nestedgrid")
	fs.Int(ConfigNumGames, 100, "number of games to play")
	fs.Int(ConfigThreads, runtime.NumCPU(), "number of games played at once")
	fs.String(ConfigSeedFile, "", "file of per-game seeds to replay; fresh seeds are generated if empty")
	fs.String(ConfigSaveFormat, "yaml", "persistence strategy used to save positions")
	fs.Bool(ConfigPermissivePlay, false, "apply moves without checking legality")
	fs.String(ConfigOutput, "", "directory to save final positions in; nothing is saved if empty")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}

	c.SetEnvPrefix("gameengines")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	return c.validate()
}

func (c *Config) validate() error {
	switch g := c.GetString(ConfigGame); g {
	case GameTower, GameNestedGrid:
	default:
		return fmt.Errorf("unknown game %q", g)
	}
	if c.GetInt(ConfigNumGames) < 0 {
		return fmt.Errorf("%s must not be negative", ConfigNumGames)
	}
	if c.GetInt(ConfigThreads) < 1 {
		return fmt.Errorf("%s must be at least 1", ConfigThreads)
	}
	return nil
}

// SanitizedSettings returns the settings for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}

// DefaultConfig returns the default settings, without reading flags or
// the environment.
func DefaultConfig() *Config {
	c := &Config{Viper: *viper.New()}
	c.setDefaults()
	return c
}
