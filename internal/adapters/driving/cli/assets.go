package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/consolidator/internal/core/domain"
)

var assetsJSON bool

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "List known assets",
	Long: `Lists every asset in the project with its identity.
Commands accept either an asset id or an asset path.`,
	Args: cobra.NoArgs,
	RunE: runAssets,
}

func init() {
	assetsCmd.Flags().BoolVar(&assetsJSON, "json", false, "output assets as JSON")
	rootCmd.AddCommand(assetsCmd)
}

func runAssets(cmd *cobra.Command, _ []string) error {
	if err := requireService(); err != nil {
		return err
	}

	assets, err := consolidationService.Assets(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list assets: %w", err)
	}

	if assetsJSON {
		data, err := json.MarshalIndent(assets, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal assets: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(assets) == 0 {
		cmd.Println("No assets found.")
		return nil
	}

	rows := make([][]string, 0, len(assets))
	for _, a := range assets {
		rows = append(rows, []string{a.Label, a.Ref.Path, string(a.ID)})
	}
	cmd.Println(renderTable([]string{"Label", "Path", "ID"}, rows, nil))
	return nil
}

func loadAssetLookup(ctx context.Context) (*domain.AssetLookup, error) {
	assets, err := consolidationService.Assets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	return domain.NewAssetLookup(assets), nil
}
