package main

import (
	"errors"

	"github.com/spf13/cobra"

	"znkr.io/tokendiff/diff"
)

// errChanges is returned by the diff command with --exit-code if the texts differ.
var errChanges = errors.New("texts differ")

func diffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff OLD NEW",
		Short: "Diff two texts given as arguments, or two files with --files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			oldText, newText := args[0], args[1]
			if files, _ := cmd.Flags().GetBool("files"); files {
				if oldText, err = readFile(args[0]); err != nil {
					return err
				}
				if newText, err = readFile(args[1]); err != nil {
					return err
				}
			}

			res := diff.Diff(oldText, newText)
			if err := writeResult(cmd.OutOrStdout(), cfg, res); err != nil {
				return err
			}

			if exitCode, _ := cmd.Flags().GetBool("exit-code"); exitCode && res.HasChanges {
				return errChanges
			}
			return nil
		},
	}
	cmd.Flags().Bool("files", false, "treat OLD and NEW as file paths")
	cmd.Flags().Bool("exit-code", false, "exit with status 1 if the texts differ")
	return cmd
}
