package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var usagesCmd = &cobra.Command{
	Use:   "usages [asset]...",
	Short: "Show where assets are referenced",
	Long:  `Scans every consumer and lists the property slots that reference the given assets.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runUsages,
}

func init() {
	rootCmd.AddCommand(usagesCmd)
}

func runUsages(cmd *cobra.Command, args []string) error {
	if err := requireService(); err != nil {
		return err
	}
	ctx := cmd.Context()

	lookup, err := loadAssetLookup(ctx)
	if err != nil {
		return err
	}
	index, err := consolidationService.FindUsages(ctx, lookup.ResolveAll(args))
	if err != nil {
		return fmt.Errorf("failed to find usages: %w", err)
	}

	if index.IsEmpty() {
		cmd.Println("No references found.")
		return nil
	}

	var rows [][]string
	for _, id := range index.Assets() {
		for _, site := range index.Sites(id) {
			rows = append(rows, []string{lookup.Name(id), string(site.Consumer), string(site.Property)})
		}
	}
	cmd.Println(renderTable([]string{"Asset", "Consumer", "Property"}, rows, nil))
	cmd.Printf("%d references to %d assets\n", index.Total(), index.Len())
	return nil
}
