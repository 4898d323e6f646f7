package cmd

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hassan/mana/internal/diag"
	"github.com/hassan/mana/internal/manalog"
)

var checkCmd = &cobra.Command{
	Use:   "check <path>",
	Short: "Load every .mana file under a directory, accumulating diagnostics instead of stopping at the first",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	sink := diag.NewCollectingSink()
	l, err := newLoader(sink)
	if err != nil {
		return err
	}

	logger, err := loggerFromFlags()
	if err != nil {
		return err
	}
	ctx := manalog.NewContext(cmd.Context(), logger.WithValues("session_id", l.SessionID))

	loaded := 0
	walkErr := filepath.WalkDir(args[0], func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".mana" {
			return nil
		}
		if _, loadErr := l.LoadFile(ctx, path); loadErr == nil {
			loaded++
		}
		return nil
	})
	if walkErr != nil {
		return walkErr
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d module(s) loaded, %d diagnostic(s)\n", loaded, len(sink.Errors()))
	printDiagnostics(cmd, sink)
	if sink.HasErrors() {
		return fmt.Errorf("check found %d diagnostic(s)", len(sink.Errors()))
	}
	return nil
}
