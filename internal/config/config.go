package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/leengari/airquery/internal/infrastructure/logging"
	"github.com/leengari/airquery/internal/query/operations/join"
)

// Environment variables that override the config file
const (
	EnvAirQuality = "AIRQUERY_AIR_QUALITY"
	EnvUHF        = "AIRQUERY_UHF"
	EnvPairing    = "AIRQUERY_PAIRING"
	EnvWidth      = "AIRQUERY_WIDTH"
	EnvLogLevel   = "AIRQUERY_LOG_LEVEL"
	EnvSeqURL     = "AIRQUERY_SEQ_URL"
)

// DotEnvFile is loaded, if present, before the environment is read
const DotEnvFile = ".env.local"

type Data struct {
	AirQuality string `yaml:"air_quality"`
	UHF        string `yaml:"uhf"`
}

type Output struct {
	Width int   `yaml:"width"`
	Clear *bool `yaml:"clear"`
}

type Log struct {
	Level  string `yaml:"level"`
	SeqURL string `yaml:"seq_url"`
}

// Config is the full runtime configuration
type Config struct {
	Data    Data   `yaml:"data"`
	Pairing string `yaml:"pairing"`
	Output  Output `yaml:"output"`
	Log     Log    `yaml:"log"`
}

// Default returns the configuration used when nothing else is set
func Default() *Config {
	clearScreen := true
	return &Config{
		Data: Data{
			AirQuality: "air_quality.csv",
			UHF:        "uhf.csv",
		},
		Pairing: string(join.PairEach),
		Output: Output{
			Width: 200,
			Clear: &clearScreen,
		},
		Log: Log{
			Level: "warn",
		},
	}
}

// Load builds the configuration from defaults, .env.local, the YAML file at
// path and the environment, in that order. A missing file at path is not an
// error; a file that exists but does not parse is.
// The result is not validated: callers apply their own overrides first and
// then call Validate.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			var file Config
			if err := yaml.Unmarshal(raw, &file); err != nil {
				return nil, errors.Wrapf(err, "parse config %s", path)
			}
			cfg.merge(&file)
		case os.IsNotExist(err):
			// defaults only
		default:
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadDotEnv reads variables from path into the environment.
// Only a missing file is ignored.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || os.IsNotExist(err) {
		return nil
	}
	return errors.Wrapf(err, "load %s", path)
}

// merge copies every value set in other over c
func (c *Config) merge(other *Config) {
	if other.Data.AirQuality != "" {
		c.Data.AirQuality = other.Data.AirQuality
	}
	if other.Data.UHF != "" {
		c.Data.UHF = other.Data.UHF
	}
	if other.Pairing != "" {
		c.Pairing = other.Pairing
	}
	if other.Output.Width != 0 {
		c.Output.Width = other.Output.Width
	}
	if other.Output.Clear != nil {
		c.Output.Clear = other.Output.Clear
	}
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
	if other.Log.SeqURL != "" {
		c.Log.SeqURL = other.Log.SeqURL
	}
}

// ClearScreen reports whether the shell clears the screen between queries
func (c *Config) ClearScreen() bool {
	return c.Output.Clear == nil || *c.Output.Clear
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvAirQuality); v != "" {
		c.Data.AirQuality = v
	}
	if v := os.Getenv(EnvUHF); v != "" {
		c.Data.UHF = v
	}
	if v := os.Getenv(EnvPairing); v != "" {
		c.Pairing = v
	}
	if v := os.Getenv(EnvWidth); v != "" {
		w, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errors.Wrapf(err, "%s", EnvWidth)
		}
		c.Output.Width = w
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvSeqURL); v != "" {
		c.Log.SeqURL = v
	}
	return nil
}

// Validate checks values that would otherwise fail late
func (c *Config) Validate() error {
	if c.Data.AirQuality == "" {
		return errors.New("data.air_quality must be set")
	}
	if c.Data.UHF == "" {
		return errors.New("data.uhf must be set")
	}
	if _, err := join.ParsePairingMode(c.Pairing); err != nil {
		return errors.Wrap(err, "pairing")
	}
	if c.Output.Width <= 0 {
		return errors.Errorf("output.width must be positive, got %d", c.Output.Width)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log.level")
	}
	return nil
}

// PairingMode returns the validated pairing mode
func (c *Config) PairingMode() join.PairingMode {
	mode, err := join.ParsePairingMode(c.Pairing)
	if err != nil {
		return join.PairEach
	}
	return mode
}

// LogOptions converts the log section for logging.SetupLogger
func (c *Config) LogOptions() logging.Options {
	return logging.Options{
		Level:  c.Log.Level,
		SeqURL: c.Log.SeqURL,
	}
}
