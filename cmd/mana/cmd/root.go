// Package cmd implements the mana command line: a cobra tree grounded in
// open-component-model's cli/cmd and termfx-morfx's cmd/morfx, wrapping
// internal/loader, internal/docgen and internal/manalog for a batch CLI
// rather than an interactive one.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/hassan/mana/internal/config"
	"github.com/hassan/mana/internal/diag"
	"github.com/hassan/mana/internal/loader"
	"github.com/hassan/mana/internal/manalog"
)

var (
	manifestPath string
	searchPaths  []string
	projectRoot  string
	stdLibRoot   string
	logLevel     string
)

// Root is the mana CLI's base command.
var Root = &cobra.Command{
	Use:   "mana [command]",
	Short: "The Mana compiler front-end CLI",
	Long: `mana drives the Mana compiler front-end: module loading, symbol
resolution and documentation generation, independent of the middle- and
back-end passes that turn a resolved AST into a running program.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	DisableAutoGenTag: true,
}

func init() {
	Root.PersistentFlags().StringVar(&manifestPath, "manifest", "mana.yaml", "path to the mana.yaml manifest")
	Root.PersistentFlags().StringSliceVar(&searchPaths, "search-path", nil, "additional module search path (repeatable)")
	Root.PersistentFlags().StringVar(&projectRoot, "project-root", "", "project root, overrides the manifest")
	Root.PersistentFlags().StringVar(&stdLibRoot, "std-lib-root", "", "standard library root, overrides the manifest and MANA_LIB")
	Root.PersistentFlags().StringVar(&logLevel, "loglevel", "warn", "log level (debug, info, warn, error)")

	Root.AddCommand(loadCmd)
	Root.AddCommand(docCmd)
	Root.AddCommand(checkCmd)
}

// Execute runs the root command; called once from main.main.
func Execute() {
	if err := Root.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLoader builds a Loader from the manifest plus any flag overrides.
// Precedence (highest first): CLI flags, the manifest, the
// environment-derived standard-library root default (SPEC_FULL's
// Configuration section).
func newLoader(sink diag.Sink) (*loader.Loader, error) {
	manifest, err := config.LoadIfExists(manifestPath)
	if err != nil {
		return nil, err
	}
	resolved := config.Resolve(manifest)

	if projectRoot != "" {
		resolved.ProjectRoot = projectRoot
	}
	if stdLibRoot != "" {
		resolved.StdLibRoot = stdLibRoot
	}
	if len(searchPaths) > 0 {
		resolved.SearchPaths = append(resolved.SearchPaths, searchPaths...)
	}

	return loader.FromConfig(resolved, sink), nil
}

func parseLogLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("invalid log level: %s", level)
	}
}

func loggerFromFlags() (logr.Logger, error) {
	level, err := parseLogLevel(logLevel)
	if err != nil {
		return logr.Logger{}, err
	}
	return manalog.New(os.Stderr, level), nil
}

func printDiagnostics(cmd *cobra.Command, sink *diag.CollectingSink) {
	for _, err := range sink.Errors() {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %s\n", err.Error())
	}
}
