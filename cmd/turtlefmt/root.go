package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/elevont/turtlefmt/internal/canon"
	"github.com/elevont/turtlefmt/internal/diffcheck"
	"github.com/elevont/turtlefmt/internal/format"
	"github.com/elevont/turtlefmt/internal/turtleio"
)

// errCheckFailed is returned when --check finds at least one file that is
// not already in canonical form; the diffs have already been printed to
// standard output by then.
var errCheckFailed = errors.New("turtlefmt: one or more files are not formatted")

// errBatchFailed is returned when one or more files in a batch failed to
// process; individual failures are logged as they happen and the batch
// continues to the next file (spec.md §7).
var errBatchFailed = errors.New("turtlefmt: one or more files failed to process")

// cliFlags mirrors the flag table of spec.md §6, plus the supplemented
// preset flags of SPEC_FULL.md.
type cliFlags struct {
	check               bool
	force               bool
	labelAllBlankNodes  bool
	indentation         string
	noPrtrSorting       bool
	noSparqlSyntax      bool
	singleLeafedNewLine bool
	canonicalize        bool
	quiet               bool
	verbose             bool
	predOrder           []string
	subjTypeOrder       []string
	predOrderPreset     string
	subjTypeOrderPreset string
}

var flags cliFlags

var rootCmd = &cobra.Command{
	Use:   "turtlefmt <FILE_OR_DIR>...",
	Short: "Reformat Turtle (.ttl) documents into a canonical layout",
	Long: `turtlefmt rewrites Turtle documents into a deterministic, canonical
layout: stable subject/predicate/object ordering, minimal-escape literal
short forms, and consistent indentation.

Pass one or more files or directories; directories are walked recursively
for files with a .ttl suffix.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFormat,
}

func init() {
	rootCmd.Flags().BoolVarP(&flags.check, "check", "c", false, "check that files are already formatted; do not write changes")
	rootCmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite output even if it is equal to the input")
	rootCmd.Flags().BoolVarP(&flags.labelAllBlankNodes, "label-all-blank-nodes", "l", false, "never inline blank nodes; always emit them as labelled top-level subjects")
	rootCmd.Flags().StringVarP(&flags.indentation, "indentation", "i", "  ", "indentation unit used per nesting level")
	rootCmd.Flags().BoolVar(&flags.noPrtrSorting, "no-prtr-sorting", false, "ignore prtr:sortingId annotations when ordering blank node subjects")
	rootCmd.Flags().BoolVar(&flags.noSparqlSyntax, "no-sparql-syntax", false, "use @prefix/@base instead of PREFIX/BASE in the prologue")
	rootCmd.Flags().BoolVarP(&flags.singleLeafedNewLine, "single-leafed-new-lines", "n", false, "place every predicate, object and nested '[' on its own line, unconditionally")
	rootCmd.Flags().BoolVar(&flags.canonicalize, "canonicalize", false, "relabel blank nodes to a deterministic canonical form before formatting")
	rootCmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().StringSliceVar(&flags.predOrder, "pred-order", nil, "priority list of predicate IRIs or prefixed names")
	rootCmd.Flags().StringSliceVar(&flags.subjTypeOrder, "subj-type-order", nil, "priority list of rdf:type IRIs or prefixed names for grouping subjects")
	rootCmd.Flags().StringVar(&flags.predOrderPreset, "pred-order-preset", "", "named predicate order preset: owl, skos, shacl, shex, rdf")
	rootCmd.Flags().StringVar(&flags.subjTypeOrderPreset, "subj-type-order-preset", "", "named subject type order preset: owl, skos, shacl, shex, rdf")
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case flags.verbose:
		level = slog.LevelDebug
	case flags.quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func buildOptions() (format.Options, error) {
	opts := format.DefaultOptions()
	opts.Indentation = flags.indentation
	opts.LabelAllBlankNodes = flags.labelAllBlankNodes
	opts.PrtrSorting = !flags.noPrtrSorting
	opts.SparqlSyntax = !flags.noSparqlSyntax
	opts.SingleLeafedNewLines = flags.singleLeafedNewLine
	opts.PredicateOrder = flags.predOrder
	opts.SubjectTypeOrder = flags.subjTypeOrder

	if flags.predOrderPreset != "" {
		preset, ok := format.PredicateOrderPresets[flags.predOrderPreset]
		if !ok {
			return opts, fmt.Errorf("unknown --pred-order-preset %q", flags.predOrderPreset)
		}
		opts.PredicateOrder = append(append([]string{}, preset...), opts.PredicateOrder...)
	}
	if flags.subjTypeOrderPreset != "" {
		preset, ok := format.SubjectTypeOrderPresets[flags.subjTypeOrderPreset]
		if !ok {
			return opts, fmt.Errorf("unknown --subj-type-order-preset %q", flags.subjTypeOrderPreset)
		}
		opts.SubjectTypeOrder = append(append([]string{}, preset...), opts.SubjectTypeOrder...)
	}
	return opts, nil
}

func runFormat(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)
	opts, err := buildOptions()
	if err != nil {
		return err
	}

	files, err := collectTurtleFiles(args)
	if err != nil {
		return err
	}

	unformatted := false
	failed := false
	for _, path := range files {
		logger.Debug("processing file", "path", path)
		if err := processFile(cmd, path, opts, logger, &unformatted); err != nil {
			logger.Error("failed to process file", "path", path, "error", err)
			failed = true
			continue
		}
	}

	if failed {
		return errBatchFailed
	}
	if flags.check && unformatted {
		return errCheckFailed
	}
	return nil
}

func processFile(cmd *cobra.Command, path string, opts format.Options, logger *slog.Logger, unformatted *bool) error {
	raw, err := os.ReadFile(path) // #nosec G304 -- path comes from CLI args/directory walk, not untrusted input
	if err != nil {
		return fmt.Errorf("turtlefmt: read %s: %w", path, err)
	}

	doc, err := turtleio.Load(string(raw))
	if err != nil {
		return fmt.Errorf("turtlefmt: %s: %w", path, err)
	}

	if flags.canonicalize {
		doc, err = canon.Canonicalize(doc)
		if err != nil {
			return fmt.Errorf("turtlefmt: canonicalize %s: %w", path, err)
		}
	}

	out, err := format.Format(doc, opts)
	if err != nil {
		return fmt.Errorf("turtlefmt: format %s: %w", path, err)
	}

	if flags.check {
		diff, err := diffcheck.Unified(path, string(raw), out)
		if err != nil {
			return fmt.Errorf("turtlefmt: diff %s: %w", path, err)
		}
		if diff != "" {
			*unformatted = true
			cmd.Print(diff)
		}
		return nil
	}

	if out == string(raw) && !flags.force {
		logger.Debug("already formatted", "path", path)
		return nil
	}
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil { // #nosec G306 -- matches source file's existing permissions intent
		return fmt.Errorf("turtlefmt: write %s: %w", path, err)
	}
	if !flags.quiet {
		cmd.Println("formatted", path)
	}
	return nil
}

// collectTurtleFiles expands the CLI's <FILE_OR_DIR>... arguments,
// recursing into directories for files with a .ttl suffix (spec.md §6's
// batch mode, grounded on original_source/src/main.rs::add_files_with_suffix).
func collectTurtleFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("turtlefmt: %w", err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, ".ttl") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("turtlefmt: walk %s: %w", arg, err)
		}
	}
	return files, nil
}

// exitCodeFor maps a top-level error to the process exit code documented
// in spec.md §6: 0 on success, 1 when --check finds unformatted files, 2
// on any other failure (parse error, I/O error, bad flag value).
func exitCodeFor(err error) int {
	if errors.Is(err, errCheckFailed) {
		return 1
	}
	return 2
}
