// Package config holds the file locations and logging settings shared by the
// trainer and the predictor UI.
//
// Settings come from an optional TOML file:
//
//	data_path  = "data/synthetic_dataset_with_districts.csv"
//	model_path = "models/impact_model.json"
//	chart_path = "charts/impact_score.png"
//	log_level  = "info"
//	log_file   = "sipp.log"
//
// Relative paths are resolved against the working directory. Keys that are
// absent keep their defaults.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	sippErrors "github.com/ezoic/sipp/pkg/errors"
)

// DefaultFile is read when no explicit path is given, if it exists.
const DefaultFile = "sipp.toml"

// Defaults.
const (
	DefaultDataPath  = "data/synthetic_dataset_with_districts.csv"
	DefaultModelPath = "models/impact_model.json"
	DefaultChartPath = "charts/impact_score.png"
	DefaultLogLevel  = "info"
	DefaultLogFile   = "sipp.log"
)

// Config is the program configuration.
type Config struct {
	DataPath  string `toml:"data_path"`
	ModelPath string `toml:"model_path"`
	ChartPath string `toml:"chart_path"`
	LogLevel  string `toml:"log_level"`
	LogFile   string `toml:"log_file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DataPath:  DefaultDataPath,
		ModelPath: DefaultModelPath,
		ChartPath: DefaultChartPath,
		LogLevel:  DefaultLogLevel,
		LogFile:   DefaultLogFile,
	}
}

// Load returns the configuration from path. An empty path reads DefaultFile
// when present and falls back to Default otherwise; an explicit path that
// does not exist is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	if _, err := os.Stat(path); err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, sippErrors.Wrapf(err, "config %s", path)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Default(), sippErrors.Wrapf(err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Default(), sippErrors.Newf("config %s: unknown key %q", path, undecoded[0].String())
	}

	if err := cfg.Validate(); err != nil {
		return Default(), sippErrors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Validate rejects empty required paths.
func (c Config) Validate() error {
	switch {
	case c.DataPath == "":
		return sippErrors.NewValueError("config", "data_path must not be empty")
	case c.ModelPath == "":
		return sippErrors.NewValueError("config", "model_path must not be empty")
	case c.ChartPath == "":
		return sippErrors.NewValueError("config", "chart_path must not be empty")
	}
	return nil
}
