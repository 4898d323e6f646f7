package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/hassan/mana/internal/diag"
	"github.com/hassan/mana/internal/manalog"
)

var loadCmd = &cobra.Command{
	Use:   "load <module-path>",
	Short: "Resolve and load one module plus its transitive dependencies, and print its export table",
	Args:  cobra.ExactArgs(1),
	RunE:  runLoad,
}

func runLoad(cmd *cobra.Command, args []string) error {
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

	exports := mod.Exports.GetAllExports()
	sort.Slice(exports, func(i, j int) bool { return exports[i].Name < exports[j].Name })

	fmt.Fprintf(cmd.OutOrStdout(), "module %s (%s)\n", mod.Name, mod.FilePath)
	for _, sym := range exports {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", sym.Kind, sym.Name)
	}
	printDiagnostics(cmd, sink)
	return nil
}
