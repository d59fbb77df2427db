package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/julien-sobczak/nbfmt/internal/core"
	"github.com/julien-sobczak/nbfmt/internal/databricks"
	"github.com/julien-sobczak/nbfmt/internal/notebook"
	"github.com/julien-sobczak/nbfmt/internal/pyfmt"
	"github.com/julien-sobczak/nbfmt/internal/sqlfmt"
)

// Overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

var verboseInfo bool
var verboseDebug bool
var verboseTrace bool

var lineLength int
var sqlUpper bool
var sqlLower bool
var twoSpaceIndent bool
var checkOnly bool
var diffOnly bool
var remoteFiles bool
var profileName string
var parallel int
var showVersion bool

var rootCmd = &cobra.Command{
	Use:   "nbfmt [paths...]",
	Short: "Formatting tool for Databricks Python notebooks",
	Long: `Formatting tool for Databricks Python notebooks.

Python cells are formatted using black, and SQL cells are reindented with
normalized keyword case. Directories are added recursively. Only files
starting with the Databricks notebook header are processed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		if showVersion {
			fmt.Printf("nbfmt, version %s\n", color.GreenString(version))
			return nil
		}

		if err := mutuallyExclusive(cmd, "check", "diff"); err != nil {
			return err
		}
		if err := mutuallyExclusive(cmd, "sql-upper", "sql-lower"); err != nil {
			return err
		}

		// Enable verbose output. The most verbose level wins when multiple flags are passed.
		if verboseInfo {
			core.CurrentLogger().SetVerboseLevel(core.VerboseInfo)
		}
		if verboseDebug {
			core.CurrentLogger().SetVerboseLevel(core.VerboseDebug)
		}
		if verboseTrace {
			core.CurrentLogger().SetVerboseLevel(core.VerboseTrace)
		}

		if len(args) == 0 {
			color.New(color.Bold).Println("No Path provided. Nothing to do.")
			return nil
		}

		cfg, err := buildConfig(cmd)
		if err != nil {
			return err
		}

		files, err := collectFiles(args)
		if err != nil {
			return err
		}

		formatters := notebook.Formatters{
			Code: pyfmt.New(),
			SQL:  sqlfmt.New(),
		}

		mode := core.ModeWrite
		switch {
		case checkOnly:
			mode = core.ModeCheck
		case diffOnly:
			mode = core.ModeDiff
		}

		report, err := core.ProcessFiles(files, cfg, formatters, core.Options{
			Mode:     mode,
			Parallel: parallel,
			Progress: verboseInfo && mode == core.ModeWrite,
		})
		if err != nil {
			return err
		}

		if checkOnly && report.Changed > 0 {
			// Exit with the number of files that would change.
			os.Exit(report.Changed)
		}
		return nil
	},
}

// buildConfig merges the defaults, the .nbfmt.toml file, and the command-line
// flags, in increasing order of precedence.
func buildConfig(cmd *cobra.Command) (notebook.Config, error) {
	cfg := notebook.DefaultConfig()

	cwd, err := os.Getwd()
	if err != nil {
		return cfg, err
	}
	configFile, err := core.ReadConfigFile(cwd)
	if err != nil {
		return cfg, err
	}
	cfg = configFile.Apply(cfg)

	if cmd.Flags().Changed("line-length") {
		cfg.LineLength = lineLength
	}
	if cmd.Flags().Changed("indent-with-two-spaces") {
		cfg.TwoSpaceIndent = twoSpaceIndent
	}
	if sqlLower {
		cfg.SQLKeywordCase = notebook.Lowercase
	} else if cmd.Flags().Changed("sql-upper") {
		cfg.SQLKeywordCase = notebook.Uppercase
	}
	return cfg, nil
}

func collectFiles(args []string) ([]core.File, error) {
	if remoteFiles {
		// Credentials may come from a .env file next to the working directory.
		_ = godotenv.Load()

		profile, err := databricks.LoadProfile(profileName)
		if err != nil {
			return nil, err
		}
		client := databricks.NewClient(profile)

		paths, err := core.ResolveRemotePaths(client, args)
		if err != nil {
			return nil, err
		}
		files := make([]core.File, 0, len(paths))
		for _, path := range paths {
			files = append(files, core.NewRemoteNotebook(path, client))
		}
		return files, nil
	}

	paths, err := core.ResolvePaths(args)
	if err != nil {
		return nil, err
	}
	files := make([]core.File, 0, len(paths))
	for _, path := range paths {
		files = append(files, core.NewLocalFile(path))
	}
	return files, nil
}

func mutuallyExclusive(cmd *cobra.Command, names ...string) error {
	used := 0
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			used++
		}
	}
	if used > 1 {
		styled := make([]string, 0, len(names))
		for _, name := range names {
			styled = append(styled, color.CyanString("--%s", name))
		}
		return fmt.Errorf("only one of %s may be used at the same time", strings.Join(styled, ", "))
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseInfo, "v", "", false, "enable verbose info output")
	rootCmd.PersistentFlags().BoolVarP(&verboseDebug, "vv", "", false, "enable verbose debug output")
	rootCmd.PersistentFlags().BoolVarP(&verboseTrace, "vvv", "", false, "enable verbose trace output")

	rootCmd.Flags().IntVarP(&lineLength, "line-length", "", notebook.DefaultLineLength, "How many characters per line to allow")
	rootCmd.Flags().BoolVarP(&sqlUpper, "sql-upper", "", true, "SQL keywords should be UPPERCASE")
	rootCmd.Flags().BoolVarP(&sqlLower, "sql-lower", "", false, "SQL keywords should be lowercase")
	rootCmd.Flags().BoolVarP(&twoSpaceIndent, "indent-with-two-spaces", "", true, "Use two spaces for indentation in Python cells instead of black's default of four (Databricks uses two spaces)")
	rootCmd.Flags().BoolVarP(&checkOnly, "check", "", false, "Don't write the files back, just return the status. Exit code 0 means nothing would change")
	rootCmd.Flags().BoolVarP(&diffOnly, "diff", "", false, "Don't write the files back, just output a diff for each file on stdout")
	rootCmd.Flags().BoolVarP(&remoteFiles, "remote", "r", false, "Treat filenames as paths to notebooks on your Databricks host")
	rootCmd.Flags().StringVarP(&profileName, "profile", "p", "DEFAULT", "Databricks profile to use with --remote")
	rootCmd.Flags().IntVarP(&parallel, "parallel", "t", 0, "Number of files to format concurrently (default: one per CPU)")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "", false, "Display version information and exit")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
