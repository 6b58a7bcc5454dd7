package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"znkr.io/tokendiff/diff"
	"znkr.io/tokendiff/tokendiff/config"
	"znkr.io/tokendiff/tokendiff/report"
)

// loadConfig reads the file given with --config, if any, and applies the flags that override
// config values.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("loading config: %v", err)
		}
	}

	if f := cmd.Flags().Lookup("format"); f != nil && f.Changed {
		cfg.Format = f.Value.String()
	}
	if f := cmd.Flags().Lookup("addr"); f != nil && f.Changed {
		cfg.Addr = f.Value.String()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %v", path, err)
	}
	return string(b), nil
}

func writeResult(w io.Writer, cfg *config.Config, res diff.Result) error {
	return report.Write(w, cfg.Format, res, report.Options{ShowEqual: cfg.ShowEqual})
}
