package cli

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/consolidator/internal/adapters/driving/tui"
	"github.com/custodia-labs/consolidator/internal/logger"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Review and consolidate duplicates interactively",
	Long: `Open a full-screen view of the project's assets.

From the asset list, enter shows who references an asset and s compares
asset content to suggest duplicate groups. Opening a group previews the
slot rewrites; r applies them and d deletes the duplicates once nothing
references them (y confirms). ? lists every key.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// recoverTUI turns a panic in the terminal UI into *err, logging the stack.
// It must be deferred directly.
func recoverTUI(err *error) {
	r := recover()
	if r == nil {
		return
	}
	log := logger.Logger("tui")
	log.Error().Bytes("stack", debug.Stack()).Msgf("panic: %v", r)
	*err = fmt.Errorf("terminal UI crashed: %v", r)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer recoverTUI(&err)

	if err := requireService(); err != nil {
		return err
	}

	app, err := tui.NewApp(tui.NewPorts(consolidationService))
	if err != nil {
		return err
	}
	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("running terminal UI: %w", err)
	}
	return nil
}
