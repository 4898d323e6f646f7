package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hassan/mana/internal/diag"
	"github.com/hassan/mana/internal/docgen"
	"github.com/hassan/mana/internal/manalog"
)

var docCmd = &cobra.Command{
	Use:   "doc <module-path>",
	Short: "Generate Markdown documentation for one module",
	Args:  cobra.ExactArgs(1),
	RunE:  runDoc,
}

func runDoc(cmd *cobra.Command, args []string) error {
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

	mod, loadErr := l.LoadModule(ctx, args[0], "")
	if loadErr != nil {
		printDiagnostics(cmd, sink)
		return loadErr
	}

	fmt.Fprint(cmd.OutOrStdout(), docgen.Generate(mod.AST))
	printDiagnostics(cmd, sink)
	return nil
}
