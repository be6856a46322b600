// Package config loads triangulation run settings from YAML files and turns
// them into an engine.Config.
//
// Omitted keys keep the defaults of Default(); a key that is present is taken
// as written, so an explicit 0 is validated rather than replaced. A max_cm of
// 0 means unbounded.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/triangulation/engine"
	"github.com/katalvlaran/triangulation/group"
	"github.com/katalvlaran/triangulation/logging"
	"github.com/katalvlaran/triangulation/overlap"
	"github.com/katalvlaran/triangulation/schedule"
)

// ErrInvalidConfig is returned for malformed or out-of-range settings.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config mirrors the YAML file layout.
type Config struct {
	Analysis Analysis `yaml:"analysis"`
	Log      Log      `yaml:"log"`
	Report   Report   `yaml:"report"`
}

// Analysis holds the grouping parameters.
type Analysis struct {
	MinOverlapBP int64   `yaml:"min_overlap_bp"`
	MinGroupSize int     `yaml:"min_group_size"`
	Policy       string  `yaml:"policy"`
	StrictAbove  int     `yaml:"strict_above"`
	MinCM        float64 `yaml:"min_cm"`
	MaxCM        float64 `yaml:"max_cm"`
	Workers      int     `yaml:"workers"`
	Strategy     string  `yaml:"strategy"`
	Index        string  `yaml:"index"`
}

// Log selects level, format and an optional file.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Report selects the text style and the optional export paths.
type Report struct {
	Style string `yaml:"style"`
	CSV   string `yaml:"csv"`
	XLSX  string `yaml:"xlsx"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Analysis: Analysis{
			MinOverlapBP: group.DefaultMinOverlap,
			MinGroupSize: group.DefaultMinGroupSize,
			Policy:       group.Star.String(),
			Workers:      schedule.DefaultWorkers(),
			Strategy:     schedule.Parallel.String(),
			Index:        overlap.Tree.String(),
		},
		Log:    Log{Level: "info", Format: string(logging.Text)},
		Report: Report{Style: "detailed"},
	}
}

// Load reads and parses the YAML file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default() and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := decodeStrict(data, &c); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func decodeStrict(data []byte, c *Config) error {
	if len(data) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err := dec.Decode(c)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// Validate checks every field that Engine() and the CLI rely on.
func (c Config) Validate() error {
	if _, err := c.Engine(); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch logging.Format(c.Log.Format) {
	case logging.JSON, logging.Text:
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalidConfig, c.Log.Format)
	}
	switch c.Report.Style {
	case "detailed", "summary", "listing":
	default:
		return fmt.Errorf("%w: report style %q", ErrInvalidConfig, c.Report.Style)
	}
	return nil
}

// Engine converts the analysis section into an engine.Config and validates it.
// The returned error wraps both ErrInvalidConfig and the underlying cause.
func (c Config) Engine() (engine.Config, error) {
	a := c.Analysis
	policy, err := group.ParsePolicy(a.Policy)
	if err != nil {
		return engine.Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	strategy, err := schedule.ParseStrategy(a.Strategy)
	if err != nil {
		return engine.Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	index, err := overlap.ParseStrategy(a.Index)
	if err != nil {
		return engine.Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	maxCM := a.MaxCM
	if maxCM == 0 {
		maxCM = math.Inf(1)
	}
	ec := engine.Config{
		MinOverlapBP:  a.MinOverlapBP,
		MinGroupSize:  a.MinGroupSize,
		Policy:        policy,
		StrictAbove:   a.StrictAbove,
		MinCM:         a.MinCM,
		MaxCM:         maxCM,
		Workers:       a.Workers,
		Strategy:      strategy,
		IndexStrategy: index,
	}
	if err := ec.Validate(); err != nil {
		return engine.Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return ec, nil
}
