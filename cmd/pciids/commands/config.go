package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/pciids/pciids-go/pkg/pciids"
)

// Output formats for lookup commands.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Config holds the CLI settings. Values are layered: defaults, then the
// optional YAML config file, then PCIIDS_* environment variables, then flags.
type Config struct {
	// DB is a pci.ids file to parse instead of the embedded database.
	DB string `yaml:"db" env:"PCIIDS_DB"`

	// Snapshot is a CBOR snapshot to load instead of parsing.
	Snapshot string `yaml:"snapshot" env:"PCIIDS_SNAPSHOT"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"PCIIDS_LOG_LEVEL"`

	// Format is the lookup output format: text or yaml.
	Format string `yaml:"format" env:"PCIIDS_FORMAT"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Format:   FormatText,
	}
}

// LoadConfig builds a Config from the defaults, the YAML file at path (if
// non-empty) and the environment.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}

	return cfg, nil
}

// SetSource applies the -db and -snapshot flag values. A source named on
// the command line replaces the source from the config file or environment;
// naming both is left for Validate to reject.
func (c *Config) SetSource(db, snapshot string) {
	if db == "" && snapshot == "" {
		return
	}
	c.DB, c.Snapshot = db, snapshot
}

// Validate checks the config for invalid combinations.
func (c Config) Validate() error {
	if c.DB != "" && c.Snapshot != "" {
		return errors.New("db and snapshot are mutually exclusive")
	}
	switch c.Format {
	case FormatText, FormatYAML:
	default:
		return fmt.Errorf("unknown format: %s", c.Format)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Source describes where the table is loaded from.
func (c Config) Source() string {
	switch {
	case c.Snapshot != "":
		return "snapshot " + c.Snapshot
	case c.DB != "":
		return c.DB
	default:
		return "embedded"
	}
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// NewLogger returns a text logger writing to w at the given level.
func NewLogger(level string, w io.Writer) (*slog.Logger, error) {
	l, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}

// OpenTable loads the table selected by cfg.
func OpenTable(cfg Config, logger *slog.Logger) (*pciids.Table, error) {
	var (
		tbl *pciids.Table
		err error
	)

	switch {
	case cfg.Snapshot != "":
		var data []byte
		data, err = os.ReadFile(cfg.Snapshot)
		if err != nil {
			return nil, fmt.Errorf("reading snapshot: %w", err)
		}
		tbl, err = pciids.UnmarshalSnapshot(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.Snapshot, err)
		}
	case cfg.DB != "":
		tbl, err = pciids.ParseFile(cfg.DB, pciids.WithLogger(logger))
		if err != nil {
			return nil, err
		}
	default:
		tbl = pciids.Default()
	}

	st := tbl.Stats()
	logger.Debug("table loaded", "source", cfg.Source(), "vendors", st.Vendors, "classes", st.Classes)
	return tbl, nil
}
