package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/consolidator/internal/core/domain"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past replace and delete runs",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of runs")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output runs as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if err := requireService(); err != nil {
		return err
	}

	runs, err := consolidationService.History(cmd.Context(), historyLimit)
	if errors.Is(err, domain.ErrNotImplemented) {
		cmd.Println("History is not recorded for this project.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if historyJSON {
		data, err := json.MarshalIndent(runs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal history: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(runs) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.StartedAt.Local().Format(time.DateTime),
			r.Kind,
			strconv.Itoa(r.Applied),
			strconv.Itoa(r.Failed),
			r.Summary,
		})
	}
	cmd.Println(renderTable(
		[]string{"Started", "Kind", "Applied", "Failed", "Summary"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	))
	return nil
}
