package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"astgen/internal/driver"
)

var generateCmd = &cobra.Command{
	Use:   "generate [flags] [grammar.json...]",
	Short: "Generate AST type definitions from grammar files",
	Long: `Generate derives one algebraic type per grammar rule and prints the
resulting mutually-recursive type block. With no arguments the grammar
is taken from the nearest astgen.toml.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringP("out", "o", "", "write the type block to a file instead of stdout")
	generateCmd.Flags().Int("jobs", 0, "maximum concurrent grammars (0 = one per CPU)")
	generateCmd.Flags().Bool("cache", false, "reuse cached results for unchanged grammars")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	outPath, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		manifest, found, err := loadManifest(".")
		if err != nil {
			return err
		}
		if !found {
			return errors.New(noManifestMessage)
		}
		paths = []string{manifest.grammarPath()}
		if outPath == "" {
			outPath = manifest.outputPath()
		}
	}
	if outPath != "" && len(paths) > 1 {
		return fmt.Errorf("--out accepts a single grammar, got %d", len(paths))
	}

	var cache *driver.DiskCache
	if useCache {
		cache, err = driver.OpenDiskCache("astgen")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
	}

	results, err := driver.GenerateAll(cmd.Context(), paths, jobs, cache)
	if err != nil {
		return err
	}

	for _, res := range results {
		if outPath != "" {
			if err := os.WriteFile(outPath, []byte(res.Block), 0o644); err != nil {
				return err
			}
		} else {
			fmt.Fprint(cmd.OutOrStdout(), res.Block)
		}
		if !quiet {
			printStatus(cmd, res)
		}
	}
	return nil
}

func printStatus(cmd *cobra.Command, res *driver.Result) {
	ok := "ok"
	if useColor(cmd, os.Stderr) {
		ok = color.GreenString("ok")
	}
	suffix := ""
	if res.Cached {
		suffix = " (cached)"
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s: %d types%s\n", ok, res.GrammarName, len(res.TypeNames), suffix)
}
