package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := rootCmd().Execute(); err != nil {
		if !errors.Is(err, errChanges) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tokendiff [command]",
		Short:         "Token level diffs of space separated text",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().String("config", "", "path to a TOML config file")
	cmd.PersistentFlags().String("format", "", "output format: text, json, or yaml (overrides config)")

	cmd.AddCommand(diffCmd())
	cmd.AddCommand(watchCmd())
	cmd.AddCommand(serveCmd())
	return cmd
}
