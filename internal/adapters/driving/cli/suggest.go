package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/consolidator/internal/manifest"
)

var suggestWrite string

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Propose duplicate groups from identical content",
	Long: `Groups assets whose content is byte-identical. The asset with the
smallest path becomes each group's master. With --write the groups are
saved as a TOML file for plan and replace.`,
	Args: cobra.NoArgs,
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().StringVarP(&suggestWrite, "write", "w", "", "write groups to a TOML file")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, _ []string) error {
	if err := requireService(); err != nil {
		return err
	}
	ctx := cmd.Context()

	lookup, err := loadAssetLookup(ctx)
	if err != nil {
		return err
	}
	groups, err := consolidationService.SuggestGroups(ctx)
	if err != nil {
		return fmt.Errorf("suggest failed: %w", err)
	}

	if len(groups) == 0 {
		cmd.Println("No duplicate content found.")
		return nil
	}

	p := newPalette(cmd.OutOrStdout())
	entries := make([]manifest.GroupEntry, 0, len(groups))
	for i, g := range groups {
		cmd.Println(p.heading.Render(fmt.Sprintf("Group %d: %s", i+1, lookup.Name(g.Master))))
		e := manifest.GroupEntry{Master: lookup.Name(g.Master)}
		for _, d := range g.Duplicates {
			cmd.Printf("  %s\n", lookup.Name(d))
			e.Duplicates = append(e.Duplicates, lookup.Name(d))
		}
		entries = append(entries, e)
	}

	if suggestWrite == "" {
		return nil
	}
	data, err := manifest.EncodeGroups(entries)
	if err != nil {
		return fmt.Errorf("failed to encode groups: %w", err)
	}
	if err := os.WriteFile(suggestWrite, data, 0600); err != nil {
		return fmt.Errorf("failed to write groups: %w", err)
	}
	cmd.Printf("Wrote %d groups to %s\n", len(entries), suggestWrite)
	return nil
}
