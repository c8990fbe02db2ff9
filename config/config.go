// Package config loads the motif configuration from a YAML file with
// MOTIF_* environment overrides.
package config

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	chess "github.com/0x5844/motif"
	"github.com/0x5844/motif/corpus"
	"github.com/0x5844/motif/index"
)

// Config is the top-level configuration.
type Config struct {
	Corpus  CorpusConfig  `yaml:"corpus"`
	Index   IndexConfig   `yaml:"index"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// CorpusConfig locates the position corpus.
type CorpusConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
}

// IndexConfig selects which pieces become instances.
type IndexConfig struct {
	TrackedTypes  []string `yaml:"trackedTypes"`
	TrackedColors string   `yaml:"trackedColors"`
}

// LoggingConfig controls log level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus text file written after a run.
// An empty Textfile disables it.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// Load reads the YAML file at path, if any, applies environment overrides
// and validates the result.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read is Load without validation, for callers that layer further
// overrides on top and validate once at the end.
func Read(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "reading config file %s", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parsing config file %s", path)
		}
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Corpus: CorpusConfig{
			Format: corpus.FormatPuzzleCSV.String(),
		},
		Index: IndexConfig{
			TrackedTypes:  []string{"knight", "bishop"},
			TrackedColors: index.TrackEnemy.String(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MOTIF_CORPUS_PATH"); v != "" {
		cfg.Corpus.Path = v
	}
	if v := os.Getenv("MOTIF_CORPUS_FORMAT"); v != "" {
		cfg.Corpus.Format = v
	}
	if v := os.Getenv("MOTIF_INDEX_TRACKED_TYPES"); v != "" {
		cfg.Index.TrackedTypes = strings.Split(v, ",")
	}
	if v := os.Getenv("MOTIF_INDEX_TRACKED_COLORS"); v != "" {
		cfg.Index.TrackedColors = v
	}
	if v := os.Getenv("MOTIF_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("MOTIF_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("MOTIF_METRICS_TEXTFILE"); v != "" {
		cfg.Metrics.Textfile = v
	}
}

// Validate checks every enumerated setting.
func (c *Config) Validate() error {
	if _, err := corpus.ParseFormat(c.Corpus.Format); err != nil {
		return errors.Wrap(err, "config: corpus.format")
	}
	if _, err := c.TrackedTypes(); err != nil {
		return err
	}
	if _, ok := index.ParseTrackedColors(c.Index.TrackedColors); !ok {
		return errors.Newf("config: index.trackedColors %q is not one of enemy, both", c.Index.TrackedColors)
	}
	return nil
}

// CorpusFormat returns the parsed corpus format.
func (c *Config) CorpusFormat() corpus.Format {
	f, _ := corpus.ParseFormat(c.Corpus.Format)
	return f
}

// TrackedTypes parses the tracked piece type names.
func (c *Config) TrackedTypes() ([]chess.PieceType, error) {
	if len(c.Index.TrackedTypes) == 0 {
		return nil, errors.New("config: index.trackedTypes is empty")
	}
	types := make([]chess.PieceType, 0, len(c.Index.TrackedTypes))
	for _, name := range c.Index.TrackedTypes {
		pt := chess.PieceTypeFromName(strings.ToLower(strings.TrimSpace(name)))
		switch pt {
		case chess.Knight, chess.Bishop, chess.Rook, chess.Queen:
			types = append(types, pt)
		default:
			return nil, errors.Newf("config: index.trackedTypes: %q cannot be tracked", name)
		}
	}
	return types, nil
}

// IndexOptions translates the configuration into index build options.
func (c *Config) IndexOptions() ([]index.Option, error) {
	types, err := c.TrackedTypes()
	if err != nil {
		return nil, err
	}
	colors, ok := index.ParseTrackedColors(c.Index.TrackedColors)
	if !ok {
		return nil, errors.Newf("config: index.trackedColors %q is not one of enemy, both", c.Index.TrackedColors)
	}
	return []index.Option{
		index.WithTrackedTypes(types...),
		index.WithTrackedColors(colors),
	}, nil
}
