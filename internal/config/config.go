// Package config resolves where the VRCX database lives and where
// report artifacts go. Ambient state (environment, per-OS defaults) is
// read only here, at startup, and handed to the rest of the program as
// plain values.
package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// DBName is the database file VRCX maintains inside its data dir.
const DBName = "VRCX.sqlite3"

// Config holds resolved paths and output settings for one run.
type Config struct {
	DataDir   string
	DBPath    string
	OutputDir string
	Verbose   bool
}

// Default returns a Config pointing at the platform's VRCX data
// directory and a local export directory.
func Default() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf(
			"determining home directory: %w", err,
		)
	}
	return Config{
		DataDir:   defaultDataDir(home),
		OutputDir: "vrcx_exports",
	}, nil
}

// defaultDataDir mirrors where VRCX keeps its database on each OS.
func defaultDataDir(home string) string {
	switch runtime.GOOS {
	case "windows":
		if v := os.Getenv("APPDATA"); v != "" {
			return filepath.Join(v, "VRCX")
		}
		return filepath.Join(home, "AppData", "Roaming", "VRCX")
	case "darwin":
		return filepath.Join(
			home, "Library", "Application Support", "VRCX",
		)
	default:
		return filepath.Join(home, ".config", "VRCX")
	}
}

// Load builds a Config by layering: defaults < env < flags. The
// provided FlagSet must already be parsed; only flags that were
// explicitly set override the lower layers.
func Load(fs *flag.FlagSet) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, err
	}
	cfg.loadEnv()
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, DBName)
	}
	applyFlags(&cfg, fs)
	return cfg, nil
}

func (c *Config) loadEnv() {
	if v := os.Getenv("VRCX_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	// Full-path override wins over the data-dir join.
	if v := os.Getenv("VRCX_DATABASE_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("VRCX_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
}

// RegisterFlags registers the path and diagnostics flags on fs. The
// caller must call fs.Parse before passing fs to Load.
func RegisterFlags(fs *flag.FlagSet) {
	fs.String("db", "", "Path to the VRCX database file")
	fs.String("out", "", "Directory for exported files")
	fs.Bool("verbose", false, "Verbose diagnostic output")
}

// applyFlags copies explicitly-set flags from fs into cfg.
func applyFlags(cfg *Config, fs *flag.FlagSet) {
	if fs == nil {
		return
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "db":
			cfg.DBPath = f.Value.String()
		case "out":
			cfg.OutputDir = f.Value.String()
		case "verbose":
			cfg.Verbose = f.Value.String() == "true"
		}
	})
}
