package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/consolidator/internal/core/domain"
	"github.com/custodia-labs/consolidator/internal/manifest"
)

// Group selection flags shared by plan and replace.
var (
	groupsFile      string
	groupMaster     string
	groupDuplicates []string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Preview reference rewrites",
	Long: `Validates duplicate groups and lists every reference that replace would
rewrite, without changing anything.

Groups come from a TOML file (--groups) or a single group on the command
line (--master with one or more --duplicate).`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

var replaceCmd = &cobra.Command{
	Use:   "replace",
	Short: "Rewrite duplicate references to their master",
	Long: `Rewrites every reference to a duplicate so it points at the group's master.
Each rewrite is applied on its own; failures are reported and the rest
still apply. Running replace again after a partial run is safe.`,
	Args: cobra.NoArgs,
	RunE: runReplace,
}

func init() {
	for _, c := range []*cobra.Command{planCmd, replaceCmd} {
		c.Flags().StringVarP(&groupsFile, "groups", "g", "", "TOML file of duplicate groups")
		c.Flags().StringVarP(&groupMaster, "master", "m", "", "master asset id or path")
		c.Flags().StringSliceVarP(&groupDuplicates, "duplicate", "d", nil, "duplicate asset id or path (repeatable)")
		rootCmd.AddCommand(c)
	}
}

func runPlan(cmd *cobra.Command, _ []string) error {
	if err := requireService(); err != nil {
		return err
	}
	ctx := cmd.Context()

	lookup, groups, err := selectGroups(ctx)
	if err != nil {
		return err
	}
	plan, err := consolidationService.Plan(ctx, groups)
	if err != nil {
		return fmt.Errorf("plan failed: %w", err)
	}

	if plan.IsEmpty() {
		cmd.Println("Nothing to rewrite.")
		return nil
	}

	rows := make([][]string, 0, plan.Len())
	for _, op := range plan.Ops {
		rows = append(rows, []string{
			string(op.Site.Consumer),
			string(op.Site.Property),
			lookup.Name(op.From),
			lookup.Name(op.To),
		})
	}
	cmd.Println(renderTable([]string{"Consumer", "Property", "From", "To"}, rows, nil))
	cmd.Printf("%d references would be rewritten\n", plan.Len())
	return nil
}

func runReplace(cmd *cobra.Command, _ []string) error {
	if err := requireService(); err != nil {
		return err
	}
	ctx := cmd.Context()

	lookup, groups, err := selectGroups(ctx)
	if err != nil {
		return err
	}
	report, err := consolidationService.Replace(ctx, groups)
	if err != nil {
		return fmt.Errorf("replace failed: %w", err)
	}

	p := newPalette(cmd.OutOrStdout())
	if len(report.Failures) > 0 {
		rows := make([][]string, 0, len(report.Failures))
		for _, f := range report.Failures {
			rows = append(rows, []string{f.Op.Site.String(), lookup.Name(f.Op.From), f.Reason})
		}
		cmd.Println(renderTable([]string{"Site", "From", "Reason"}, rows, nil))
	}

	if !report.Complete() {
		cmd.Println(p.warning.Render(report.Summary()))
		return fmt.Errorf("replace incomplete: %s", report.Summary())
	}
	cmd.Println(p.success.Render(report.Summary()))
	return nil
}

// selectGroups builds duplicate groups from the group flags.
func selectGroups(ctx context.Context) (*domain.AssetLookup, []domain.DuplicateGroup, error) {
	if groupsFile != "" && groupMaster != "" {
		return nil, nil, errors.New("use either --groups or --master, not both")
	}

	var entries []manifest.GroupEntry
	switch {
	case groupsFile != "":
		loaded, err := manifest.LoadGroups(groupsFile)
		if err != nil {
			return nil, nil, err
		}
		entries = loaded
	case groupMaster != "":
		entries = []manifest.GroupEntry{{Master: groupMaster, Duplicates: groupDuplicates}}
	default:
		return nil, nil, errors.New("no groups given: use --groups or --master with --duplicate")
	}

	lookup, err := loadAssetLookup(ctx)
	if err != nil {
		return nil, nil, err
	}
	groups := make([]domain.DuplicateGroup, 0, len(entries))
	for _, e := range entries {
		groups = append(groups, domain.DuplicateGroup{
			Master:     lookup.Resolve(e.Master),
			Duplicates: lookup.ResolveAll(e.Duplicates),
		})
	}
	return lookup, groups, nil
}
