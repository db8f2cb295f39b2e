package main

import (
	"strings"

	"github.com/spf13/viper"

	goban "github.com/tenuki/goban"
)

type Config struct {
	BoardSize int     `mapstructure:"BOARD_SIZE"`
	Komi      float32 `mapstructure:"KOMI"`
	Handicap  int     `mapstructure:"HANDICAP"`
	KoRule    string  `mapstructure:"KO_RULE"`
	Scoring   string  `mapstructure:"SCORING"`
	Name      string  `mapstructure:"ENGINE_NAME"`
	Debug     bool    `mapstructure:"DEBUG"`
}

// Setup loads the configuration file, falling back to defaults when no
// file is present.
func Setup(cfgPath string) (*Config, error) {
	viper.SetDefault("BOARD_SIZE", 19)
	viper.SetDefault("KOMI", 7.5)
	viper.SetDefault("HANDICAP", 0)
	viper.SetDefault("KO_RULE", "simple")
	viper.SetDefault("SCORING", "area")
	viper.SetDefault("ENGINE_NAME", "goban")
	viper.SetDefault("DEBUG", false)

	if cfgPath != "" {
		viper.SetConfigFile(cfgPath)
		if err := viper.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Rules translates the configuration into a rule set.
func (c *Config) Rules() goban.Rules {
	rules := goban.Rules{
		BoardSize: c.BoardSize,
		Komi:      c.Komi,
		Handicap:  c.Handicap,
	}
	switch strings.ToLower(c.KoRule) {
	case "positional":
		rules.Ko = goban.PositionalSuperko
	case "situational":
		rules.Ko = goban.SituationalSuperko
	default:
		rules.Ko = goban.SimpleKo
	}
	if strings.ToLower(c.Scoring) == "territory" {
		rules.Scoring = goban.TerritoryScoring
	}
	return rules
}
