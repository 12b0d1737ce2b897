package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"keyva/internal/diagfmt"
	"keyva/internal/driver"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] <file.kv>",
	Short: "Execute a keyva script",
	Long:  `Run parses and executes a keyva script statement by statement. Pass "-" to read from stdin.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runExecution,
}

func runExecution(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	var result *driver.RunResult
	if args[0] == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		result = driver.RunBytes("<stdin>", content, runLimits(cfg), cmd.OutOrStdout(), cmd.ErrOrStderr())
	} else {
		result, err = driver.RunFile(args[0], runLimits(cfg), cmd.OutOrStdout(), cmd.ErrOrStderr())
		if err != nil {
			return fmt.Errorf("failed to run %s: %w", args[0], err)
		}
	}

	if result.Bag.Len() > 0 {
		result.Bag.Sort()
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:       useColor(cmd, os.Stderr),
			ShowNotes:   true,
			ShowPreview: true,
		})
	}
	// A parse error halts the rest of the buffer but is already rendered;
	// only a file that cannot be read fails the command.
	return nil
}
