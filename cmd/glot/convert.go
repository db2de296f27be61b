package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"glot/internal/backend"
	"glot/internal/diagfmt"
	"glot/internal/driver"
	"glot/internal/project"
)

var convertCmd = &cobra.Command{
	Use:   "convert [flags] <file.ts|directory>",
	Short: "Convert TypeScript examples to a target language",
	Long: `Convert a TypeScript example file, or every .ts file under a directory,
into the selected target language. Output goes to stdout unless --write is
given, in which case converted files are placed next to their inputs (or in
the manifest's output directory).`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("target", "t", "", "target backend (default from glot.toml, else csharp)")
	convertCmd.Flags().Bool("write", false, "write converted files instead of printing to stdout")
	convertCmd.Flags().StringP("out", "o", "", "output directory for --write (overrides glot.toml)")
	convertCmd.Flags().IntP("jobs", "j", 0, "number of parallel workers in directory mode")
	convertCmd.Flags().Bool("cache", false, "reuse cached conversions for unchanged inputs")
	convertCmd.Flags().String("format", "pretty", "diagnostic format (pretty|short)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	target, err := cmd.Flags().GetString("target")
	if err != nil {
		return err
	}
	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return err
	}
	outDir, err := cmd.Flags().GetString("out")
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
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if format != "pretty" && format != "short" {
		return fmt.Errorf("unsupported diagnostic format: %s (supported: pretty, short)", format)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	input := args[0]
	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("cannot stat %s: %w", input, err)
	}

	manifest, err := project.LoadOrDefault(manifestStart(input, info.IsDir()))
	if err != nil {
		return err
	}
	cfg := manifest.Config
	if target == "" {
		target = cfg.Project.Target
	}
	if outDir == "" && cfg.Output.Dir != "" {
		outDir = filepath.Join(manifest.Root, cfg.Output.Dir)
	}

	opts := driver.Options{
		Target:              target,
		MaxDiagnostics:      maxDiagnostics,
		PreferStructLiteral: cfg.PreferStruct(),
		Jobs:                jobs,
		Cache:               useCache || cfg.Cache.Enabled,
		CacheDir:            cfg.Cache.Dir,
	}

	var results []*driver.Result
	if info.IsDir() {
		results, err = driver.ConvertDir(cmd.Context(), input, opts)
	} else {
		var res *driver.Result
		res, err = driver.ConvertFile(cmd.Context(), input, opts)
		if res != nil {
			results = append(results, res)
		}
	}
	if err != nil {
		return err
	}

	be, ok := backend.Lookup(opts.Target)
	if !ok {
		return backend.ErrUnknown(opts.Target)
	}

	errorCount := 0
	for _, res := range results {
		if format == "short" {
			diagfmt.Short(os.Stderr, res.Bag, res.FileSet)
		} else {
			diagfmt.Pretty(os.Stderr, res.Bag, res.FileSet, diagfmt.Options{WithNotes: true})
		}
		if res.Bag.HasErrors() {
			errorCount++
		}
		if write {
			if err := writeOutput(res, outDir, be.FileExtension()); err != nil {
				return err
			}
		} else {
			if len(results) > 1 {
				fmt.Fprintf(os.Stdout, "// %s\n", res.Path())
			}
			fmt.Fprint(os.Stdout, res.Output)
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("conversion finished with errors in %d file(s)", errorCount)
	}
	return nil
}

func manifestStart(input string, isDir bool) string {
	if isDir {
		return input
	}
	return filepath.Dir(input)
}

func writeOutput(res *driver.Result, outDir, ext string) error {
	in := res.Path()
	base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in)) + ext
	dir := filepath.Dir(in)
	if outDir != "" {
		dir = outDir
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create output directory %s: %w", dir, err)
		}
	}
	out := filepath.Join(dir, base)
	if err := os.WriteFile(out, []byte(res.Output), 0o644); err != nil {
		return fmt.Errorf("cannot write %s: %w", out, err)
	}
	fmt.Fprintln(os.Stderr, "wrote", out)
	return nil
}
