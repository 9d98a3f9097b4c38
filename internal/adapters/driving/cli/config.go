package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/consolidator/internal/adapters/driven/identity"
	"github.com/custodia-labs/consolidator/internal/core/domain"
	"github.com/custodia-labs/consolidator/internal/core/services"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and change settings",
	Long: `Settings live in ~/.consolidator/config.toml.

Keys:
  identity.strategy   path or content
  storage.data_dir    project data directory
  output.verbose      true or false`,
	Annotations: map[string]string{skipSetup: "true"},
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show effective settings",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipSetup: "true"},
	RunE:        runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:         "set [key] [value]",
	Short:       "Change a setting",
	Args:        cobra.ExactArgs(2),
	Annotations: map[string]string{skipSetup: "true"},
	RunE:        runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if err := ensureConfigStore(); err != nil {
		return err
	}
	s := services.LoadSettings(configStore)

	dir := s.DataDir
	if dir == "" {
		dir = "(default)"
	}
	rows := [][]string{
		{domain.SettingIdentityStrategy, s.IdentityStrategy},
		{domain.SettingDataDir, dir},
		{domain.SettingVerbose, strconv.FormatBool(s.Verbose)},
	}
	cmd.Println(renderTable([]string{"Key", "Value"}, rows, nil))
	cmd.Printf("Config file: %s\n", configStore.Path())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := ensureConfigStore(); err != nil {
		return err
	}
	key, raw := args[0], args[1]

	// The store rejects unknown keys.
	var value any = raw
	switch key {
	case domain.SettingIdentityStrategy:
		if err := identity.ValidateStrategy(raw); err != nil {
			return err
		}
	case domain.SettingVerbose:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%w: %s expects true or false", domain.ErrInvalidInput, key)
		}
		value = b
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}
	cmd.Printf("%s = %v\n", key, value)
	return nil
}
