// Package config parses cmd/rcipestv's flags, matching the teacher's
// main.go flag.String/flag.Bool style, layered with environment-variable
// fallbacks the way danielhkuo-quickly-pick's cliparse.ParseFlags layers
// CLI flags over env vars, plus optional .env loading via godotenv.
package config

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
)

// Config holds cmd/rcipestv's run-time settings.
type Config struct {
	Debug         bool
	HistoryDBPath string
	LogDir        string
}

// ParseFlags registers rcipestv's flags on the default flag.CommandLine
// (alongside klog's own flags, exactly as the teacher's main.go registers
// -token/-debug next to klog.InitFlags) and parses args. It loads a .env
// file first, if one is present, the same way quickly-pick/server/main.go
// does before reading its own environment variables.
func ParseFlags(args []string) (Config, error) {
	_ = godotenv.Load() // optional; absence is not an error

	var cfg Config
	flag.BoolVar(&cfg.Debug, "debug", false, "keep the diagnostic log on even for cases that send -65 (logging off)")
	flag.StringVar(&cfg.HistoryDBPath, "history-db", "", "path to an optional case-history SQLite database")
	flag.StringVar(&cfg.LogDir, "log-dir", "", "directory recorded as Config.LogDir (not passed to klog; use klog's -log_dir)")

	if err := flag.CommandLine.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.HistoryDBPath == "" {
		cfg.HistoryDBPath = os.Getenv("RCIPE_HISTORY_DB")
	}
	if cfg.LogDir == "" {
		cfg.LogDir = os.Getenv("RCIPE_LOG_DIR")
	}
	if cfg.LogDir == "" {
		cfg.LogDir = "."
	}
	if !cfg.Debug {
		cfg.Debug = os.Getenv("RCIPE_DEBUG") == "1"
	}

	return cfg, nil
}
