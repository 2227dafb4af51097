package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	FileName  = "alienfield"
	EnvPrefix = "ALIENFIELD"
)

type ArenaSettings struct {
	HalfExtent float64 `mapstructure:"halfExtent"`
	CellSize   float64 `mapstructure:"cellSize"`
	Aliens     int     `mapstructure:"aliens"`
	Asteroids  int     `mapstructure:"asteroids"`
	Seed       int64   `mapstructure:"seed"`
	TickRate   int     `mapstructure:"tickRate"`
}

// Settings is everything the commands read at start-up. Per-alien tuning
// lives in the prefabs instead.
type Settings struct {
	LogLevel     string        `mapstructure:"logLevel"`
	PrefabDir    string        `mapstructure:"prefabDir"`
	SensorScript string        `mapstructure:"sensorScript"`
	Watch        bool          `mapstructure:"watch"`
	Arena        ArenaSettings `mapstructure:"arena"`
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("prefabDir", "prefabs")
	viper.SetDefault("sensorScript", "")
	viper.SetDefault("watch", false)

	viper.SetDefault("arena.halfExtent", 400.0)
	viper.SetDefault("arena.cellSize", 100.0)
	viper.SetDefault("arena.aliens", 6)
	viper.SetDefault("arena.asteroids", 40)
	viper.SetDefault("arena.seed", 0)
	viper.SetDefault("arena.tickRate", 60)
}

// Load reads alienfield.yaml from configDir on top of the defaults, then
// applies ALIENFIELD_* environment overrides (ALIENFIELD_ARENA_ALIENS and so
// on). A missing file is not an error.
func Load(configDir string) (Settings, error) {
	setDefaults()

	viper.SetConfigName(FileName)
	viper.SetConfigType("yaml")
	if configDir != "" {
		viper.AddConfigPath(configDir)
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("config: read %s: %w", FileName, err)
		}
	}

	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("config: decode: %w", err)
	}
	return s, nil
}
