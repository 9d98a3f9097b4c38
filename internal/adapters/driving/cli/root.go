// Package cli provides the consolidator command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/consolidator/internal/adapters/driven/config/file"
	"github.com/custodia-labs/consolidator/internal/adapters/driven/identity"
	"github.com/custodia-labs/consolidator/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/consolidator/internal/core/ports/driven"
	"github.com/custodia-labs/consolidator/internal/core/ports/driving"
	"github.com/custodia-labs/consolidator/internal/core/services"
	"github.com/custodia-labs/consolidator/internal/logger"
	"github.com/custodia-labs/consolidator/internal/manifest"
)

// version is set at build time.
var version = "dev"

// skipSetup marks commands that run without a project store.
const skipSetup = "skip-setup"

var (
	verbose          bool
	configDir        string
	dataDir          string
	identityStrategy string
)

// Services used by commands. Set by setup or injected with SetServices.
var (
	consolidationService driving.ConsolidationService
	projectImporter      manifest.Importer
	configStore          driven.ConfigStore
	closeServices        func() error
)

var rootCmd = &cobra.Command{
	Use:   "consolidator",
	Short: "Consolidate duplicate assets in a project",
	Long: `Consolidator finds every reference to duplicate assets, rewrites them
to point at a chosen master and deletes duplicates once nothing uses them.

Typical workflow:
  consolidator import project.toml
  consolidator suggest --write groups.toml
  consolidator replace --groups groups.toml
  consolidator delete <duplicate>...`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.consolidator)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "project data directory (default ~/.consolidator/data)")
	rootCmd.PersistentFlags().StringVar(&identityStrategy, "identity", "",
		fmt.Sprintf("asset identity strategy: %s or %s", identity.StrategyPath, identity.StrategyContent))
}

// Execute runs the root command. An interrupt cancels the running
// command; a replace in progress stops after the current rewrite.
// The project store is closed whether or not the command succeeded.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if closeErr := teardown(); closeErr != nil && err == nil {
		err = fmt.Errorf("closing project: %w", closeErr)
	}
	return err
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetServices injects services, bypassing store setup.
func SetServices(svc driving.ConsolidationService, importer manifest.Importer, cfg driven.ConfigStore) {
	consolidationService = svc
	projectImporter = importer
	configStore = cfg
}

func setup(cmd *cobra.Command, _ []string) error {
	if verbose {
		logger.SetVerbose(true)
	}
	if consolidationService != nil {
		return nil
	}
	if cmd.Annotations[skipSetup] == "true" {
		return nil
	}

	if err := ensureConfigStore(); err != nil {
		return err
	}

	settings := services.LoadSettings(configStore)
	if dataDir != "" {
		settings.DataDir = dataDir
	}
	if identityStrategy != "" {
		settings.IdentityStrategy = identityStrategy
	}
	if settings.Verbose {
		logger.SetVerbose(true)
	}

	store, err := sqlite.NewStore(settings.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open project: %w", err)
	}
	resolver, err := identity.New(settings.IdentityStrategy, store.AssetStore())
	if err != nil {
		_ = store.Close()
		return err
	}
	logger.Debug("Project %s, identity strategy %s", store.Path(), resolver.Name())

	consolidationService = services.NewConsolidationService(
		store.AssetStore(),
		store.Reflection(),
		resolver,
		store.RunStore(),
	)
	projectImporter = store
	closeServices = store.Close
	return nil
}

func teardown() error {
	if closeServices == nil {
		return nil
	}
	err := closeServices()
	closeServices = nil
	consolidationService = nil
	projectImporter = nil
	return err
}

func ensureConfigStore() error {
	if configStore != nil {
		return nil
	}
	cfg, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("failed to open config: %w", err)
	}
	configStore = cfg
	return nil
}

func requireService() error {
	if consolidationService == nil {
		return errors.New("consolidation service not configured")
	}
	return nil
}
