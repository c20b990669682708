package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DirName is the per-user directory under $HOME holding config and workbooks.
const DirName = ".releve"

// Global configuration structure.
type Global struct {
	AnalysisURL string `mapstructure:"analysis_url" yaml:"analysis_url"`
	// 0 disables the client timeout.
	HTTPTimeoutSec int    `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`
	DefaultRows    int    `mapstructure:"default_rows" yaml:"default_rows"`
	DefaultCols    int    `mapstructure:"default_cols" yaml:"default_cols"`
	WorkbooksDir   string `mapstructure:"workbooks_dir" yaml:"workbooks_dir"`
	PlotOutput     string `mapstructure:"plot_output" yaml:"plot_output"`
}

// HTTPTimeout returns the configured client timeout.
func (c *Global) HTTPTimeout() time.Duration {
	if c.HTTPTimeoutSec <= 0 {
		return 0
	}
	return time.Duration(c.HTTPTimeoutSec) * time.Second
}

func homeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, DirName), nil
}

// ExpandHome resolves a leading "~" against the user's home directory.
func ExpandHome(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return filepath.Clean(p), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	rest := strings.TrimLeft(strings.TrimPrefix(p, "~"), `/\`)
	return filepath.Join(home, rest), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.releve/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := homeDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env (RELEVE_*) > config file > defaults. Command-line flags are
// applied on top by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("RELEVE")
	v.AutomaticEnv()

	v.SetDefault("analysis_url", "http://localhost:8888/api/analyze")
	v.SetDefault("http_timeout_sec", 0)
	v.SetDefault("default_rows", 11)
	v.SetDefault("default_cols", 5)
	v.SetDefault("workbooks_dir", "")
	v.SetDefault("plot_output", "plot.html")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := homeDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.WorkbooksDir == "" {
		dir, err := homeDir()
		if err != nil {
			return nil, err
		}
		c.WorkbooksDir = filepath.Join(dir, "workbooks")
	}
	if c.DefaultRows < 1 {
		c.DefaultRows = 1
	}
	if c.DefaultCols < 1 {
		c.DefaultCols = 1
	}
	return &c, nil
}
