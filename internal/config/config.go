package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrorPolicy controls what happens when an individual removal hits a hard
// failure (permission denied, I/O error). Missing targets are never failures.
type ErrorPolicy string

const (
	// PolicyContinue collects hard failures, keeps processing the remaining
	// targets, and reports them at the end with a non-zero exit
	PolicyContinue ErrorPolicy = "continue"
	// PolicyAbort stops the run at the first hard failure
	PolicyAbort ErrorPolicy = "abort"
)

type LoggingCfg struct {
	Dir          string `yaml:"dir" json:"dir"`                     // Log directory; empty disables the log file
	RotationDays int    `yaml:"rotation_days" json:"rotation_days"` // Days to keep logs before rotation
}

type MetricsCfg struct {
	// TextfilePath is where the post-run Prometheus textfile is written,
	// for collection by node_exporter's textfile collector. Empty disables it.
	TextfilePath string `yaml:"textfile_path" json:"textfile_path"`
}

type Config struct {
	WorkingDir   string      `yaml:"working_dir" json:"working_dir"`
	PlanPath     string      `yaml:"plan_path" json:"plan_path"`
	DatabasePath string      `yaml:"database_path" json:"database_path"` // SQLite removal history; empty disables it
	ErrorPolicy  ErrorPolicy `yaml:"error_policy" json:"error_policy"`
	Logging      LoggingCfg  `yaml:"logging" json:"logging"`
	Metrics      MetricsCfg  `yaml:"metrics" json:"metrics"`
}

var (
	errNoWorkingDir  = errors.New("configuration must specify working_dir")
	errInvalidPath   = errors.New("path must be absolute")
	errUnknownPolicy = errors.New("error_policy must be \"continue\" or \"abort\"")
)

// Load reads a config file and applies validation and defaults
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := decode(f)
	if err != nil {
		return nil, err
	}
	if err := cfg.validateAndDefault(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a config with all defaults applied and the given working
// directory, for runs without a config file
func Default(workingDir string) (*Config, error) {
	cfg := &Config{WorkingDir: workingDir}
	if err := cfg.validateAndDefault(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(r io.Reader) (*Config, error) {
	cfg := &Config{}
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return cfg, nil
}

func (c *Config) validateAndDefault() error {
	if c.WorkingDir == "" {
		return errNoWorkingDir
	}

	wd, err := cleanAbsolute(c.WorkingDir)
	if err != nil {
		return err
	}
	c.WorkingDir = wd

	switch c.ErrorPolicy {
	case "":
		c.ErrorPolicy = PolicyContinue
	case PolicyContinue, PolicyAbort:
	default:
		return fmt.Errorf("%w: %q", errUnknownPolicy, c.ErrorPolicy)
	}

	if c.Logging.RotationDays <= 0 {
		c.Logging.RotationDays = 30
	}

	// PlanPath, DatabasePath and Metrics.TextfilePath stay empty unless set:
	// empty means built-in plan, no history and no textfile respectively.
	if c.PlanPath != "" && !filepath.IsAbs(c.PlanPath) {
		c.PlanPath = filepath.Join(c.WorkingDir, c.PlanPath)
	}

	return nil
}

func cleanAbsolute(p string) (string, error) {
	if p == "" {
		return "", errInvalidPath
	}
	cp := filepath.Clean(p)
	if !filepath.IsAbs(cp) {
		abs, err := filepath.Abs(cp)
		if err != nil {
			return "", fmt.Errorf("%w: %s", errInvalidPath, p)
		}
		cp = abs
	}
	return cp, nil
}
