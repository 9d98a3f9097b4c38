package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/consolidator/internal/manifest"
)

var importWatch bool

var importCmd = &cobra.Command{
	Use:   "import [manifest.toml]",
	Short: "Import assets and consumers from a manifest",
	Long: `Loads a TOML project manifest into the project store.
Assets are replaced by path and consumers by id, so importing the
same manifest twice is harmless. Consumers the manifest no longer
declares are dropped; assets are never removed by import.

With --watch the manifest is re-imported each time it changes, until
interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVarP(&importWatch, "watch", "w", false, "re-import when the manifest changes")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if projectImporter == nil {
		return errors.New("project store not configured")
	}

	if importWatch {
		return watchImport(cmd, args[0])
	}

	m, err := manifest.Load(args[0])
	if err != nil {
		return err
	}
	if err := m.Apply(cmd.Context(), projectImporter); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	p := newPalette(cmd.OutOrStdout())
	cmd.Println(p.success.Render(fmt.Sprintf("Imported %d assets and %d consumers.", len(m.Assets), len(m.Consumers))))
	return nil
}

func watchImport(cmd *cobra.Command, path string) error {
	p := newPalette(cmd.OutOrStdout())
	cmd.Printf("Watching %s (Ctrl-C to stop)\n", path)
	return manifest.Watch(cmd.Context(), path, projectImporter, func(m *manifest.Manifest, err error) {
		if err != nil {
			cmd.Println(p.failure.Render("import failed: " + err.Error()))
			return
		}
		cmd.Println(p.success.Render(fmt.Sprintf("Imported %d assets and %d consumers.", len(m.Assets), len(m.Consumers))))
	})
}
