package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"keyva/internal/diagfmt"
	"keyva/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <path>...",
	Short: "Parse keyva scripts without executing them",
	Long:  `Check parses every given script (directories expand to their *.kv files) and reports diagnostics`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "parallel workers (0 = GOMAXPROCS)")
	checkCmd.Flags().Bool("cache", false, "cache token streams under $XDG_CACHE_HOME/keyva")
	checkCmd.Flags().String("format", "pretty", "diagnostic format (pretty|json)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	jobs, _ := cmd.Flags().GetInt("jobs")
	useCache, _ := cmd.Flags().GetBool("cache")
	format, _ := cmd.Flags().GetString("format")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	paths, err := expandPaths(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no *.kv files found")
	}

	// Cache warming is independent of the parse results; a cache failure
	// never fails the check.
	if useCache {
		if cache, err := driver.OpenDiskCache("keyva"); err == nil {
			for _, p := range paths {
				_, _, _ = driver.TokenizeCached(cache, p, cfg.Limits.MaxDiagnostics)
			}
		}
	}

	results, err := driver.CheckPaths(cmd.Context(), paths, checkLimits(cfg), jobs)
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if res.Bag.Len() > 0 {
			res.Bag.Sort()
			switch format {
			case "json":
				if err := diagfmt.JSON(cmd.OutOrStdout(), res.Bag, res.FileSet, diagfmt.JSONOpts{
					IncludePositions: true,
					IncludeNotes:     true,
				}); err != nil {
					return err
				}
			default:
				diagfmt.Pretty(os.Stderr, res.Bag, res.FileSet, diagfmt.PrettyOpts{
					Color:       useColor(cmd, os.Stderr),
					ShowNotes:   true,
					ShowPreview: true,
				})
			}
		}
		if res.Bag.HasErrors() {
			failed++
		} else if !quiet && format != "json" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d statements)\n", res.Path, res.Stmts)
		}
	}

	if failed > 0 {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("%d of %d files had errors", failed, len(results))
	}
	return nil
}

// expandPaths flattens files and directories into a script list.
func expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			// Let the check surface an I/O diagnostic for it.
			paths = append(paths, arg)
			continue
		}
		if info.IsDir() {
			files, err := driver.ListScripts(arg)
			if err != nil {
				return nil, err
			}
			paths = append(paths, files...)
			continue
		}
		paths = append(paths, arg)
	}
	return paths, nil
}
