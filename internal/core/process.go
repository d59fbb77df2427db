// Package core drives formatting passes over batches of local or remote
// notebook files.
package core

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"

	"github.com/julien-sobczak/nbfmt/internal/databricks"
	"github.com/julien-sobczak/nbfmt/internal/notebook"
	"github.com/julien-sobczak/nbfmt/pkg/console"
	"github.com/julien-sobczak/nbfmt/pkg/text"
)

// Mode selects what to do with files whose formatted content differs.
type Mode int

const (
	// ModeWrite rewrites changed files in place.
	ModeWrite Mode = iota
	// ModeCheck only reports which files would change.
	ModeCheck
	// ModeDiff prints a unified diff per changed file.
	ModeDiff
)

type Options struct {
	Mode Mode
	// Parallel bounds the number of files formatted concurrently.
	// Zero means one worker per CPU.
	Parallel int
	// Progress displays a progress bar while reporting results.
	Progress bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

// Report tallies one batch.
type Report struct {
	Changed   int
	Unchanged int
	Skipped   int
}

type fileResult struct {
	file    File
	content string
	output  string
	skipped bool
}

// ProcessFiles formats every file and applies the mode action on the ones
// that changed. Files are formatted concurrently (each file carries its own
// config, so workers never share mutable state); results are reported in
// input order.
//
// A file the code formatter rejects aborts the whole batch. Files that are
// not notebooks, not decodable text, or not Python-source remote notebooks
// are skipped and counted as unchanged.
func ProcessFiles(files []File, cfg notebook.Config, formatters notebook.Formatters, opts Options) (Report, error) {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	workers := opts.Parallel
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]fileResult, len(files))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			result, err := formatFile(file, cfg, formatters)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	var progress *console.ProgressLog
	if opts.Progress && len(files) > 1 {
		progress = console.NewProgressLog(len(files), console.ToWriter(out), console.ShowPercent())
	}

	var report Report
	for i, result := range results {
		if progress != nil {
			progress.Log(i+1, result.file.Path())
		}
		if result.skipped {
			report.Skipped++
			continue
		}
		if result.output == result.content {
			report.Unchanged++
			continue
		}
		report.Changed++

		name := filepath.Base(result.file.Path())
		switch opts.Mode {
		case ModeDiff:
			diff := notebook.UnifiedDiff(result.content, result.output,
				name+" (before)", name+" (after)")
			printDiff(out, diff)
		case ModeCheck:
			color.New(color.Bold).Fprintf(out, "would reformat %s\n", result.file.Path())
		default:
			if err := result.file.Write(result.output); err != nil {
				return report, fmt.Errorf("writing %s: %w", result.file.Path(), err)
			}
			color.New(color.Bold).Fprintf(out, "reformatted %s\n", result.file.Path())
		}
	}
	if progress != nil {
		progress.Clear("")
	}

	printTally(out, report, len(files), opts.Mode == ModeCheck)
	return report, nil
}

func formatFile(file File, cfg notebook.Config, formatters notebook.Formatters) (fileResult, error) {
	CurrentLogger().Infof("Formatting %s", file.Path())
	content, err := file.Read()
	if err != nil {
		if errors.Is(err, databricks.ErrUnsupportedFormat) {
			CurrentLogger().Warnf("Skipping %s: %v", file.Path(), err)
			return fileResult{file: file, skipped: true}, nil
		}
		return fileResult{}, fmt.Errorf("reading %s: %w", file.Path(), err)
	}

	if !utf8.ValidString(content) {
		CurrentLogger().Warnf("Skipping %s: not a valid text file", file.Path())
		return fileResult{file: file, skipped: true}, nil
	}
	if !notebook.IsNotebook(content) {
		CurrentLogger().Debugf("Skipping %s: not a Databricks notebook", file.Path())
		return fileResult{file: file, skipped: true}, nil
	}

	output, err := notebook.Format(content, cfg, formatters)
	if err != nil {
		return fileResult{}, fmt.Errorf("formatting %s: %w", file.Path(), err)
	}
	CurrentLogger().Tracef("Formatted %s (%d bytes in, %d bytes out, changed=%t)",
		file.Path(), len(content), len(output), output != content)
	return fileResult{file: file, content: content, output: output}, nil
}

func printDiff(w io.Writer, diff string) {
	for _, line := range text.Lines(diff) {
		switch {
		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			color.New(color.FgRed).Fprintln(w, line)
		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			color.New(color.FgGreen).Fprintln(w, line)
		default:
			fmt.Fprintln(w, line)
		}
	}
}

// printTally writes the final summary. Skipped files count as left unchanged:
// they were analyzed and not modified.
func printTally(w io.Writer, report Report, total int, dryRun bool) {
	unchanged := total - report.Changed

	conditional := ""
	if dryRun {
		conditional = "would be "
	}

	var parts []string
	if report.Changed > 0 {
		count := color.MagentaString("%d", report.Changed)
		parts = append(parts, color.New(color.Bold).Sprintf("%s files %sreformatted", count, conditional))
	}
	if unchanged > 0 {
		count := color.GreenString("%d", unchanged)
		parts = append(parts, fmt.Sprintf("%s files %sleft unchanged", count, conditional))
	}

	color.New(color.Bold).Fprintln(w, "All done!")
	fmt.Fprintln(w, strings.Join(parts, ", "))
}
