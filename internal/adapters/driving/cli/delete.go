package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/consolidator/internal/core/domain"
)

var deleteYes bool

// stdinIsTerminal reports whether confirmation can be asked interactively.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var candidatesCmd = &cobra.Command{
	Use:   "candidates [asset]...",
	Short: "Show which assets are safe to delete",
	Long:  `Rescans all consumers and shows how many references remain to each asset.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCandidates,
}

var deleteCmd = &cobra.Command{
	Use:   "delete [asset]...",
	Short: "Delete assets that are no longer referenced",
	Long: `Rescans all consumers immediately before deleting and removes only the
assets with no remaining references. Assets still in use are refused.

Asks for confirmation unless --yes is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "delete without asking for confirmation")
	rootCmd.AddCommand(candidatesCmd)
	rootCmd.AddCommand(deleteCmd)
}

func runCandidates(cmd *cobra.Command, args []string) error {
	if err := requireService(); err != nil {
		return err
	}
	ctx := cmd.Context()

	lookup, err := loadAssetLookup(ctx)
	if err != nil {
		return err
	}
	candidates, err := consolidationService.DeletionCandidates(ctx, lookup.ResolveAll(args))
	if err != nil {
		return fmt.Errorf("failed to check candidates: %w", err)
	}

	printCandidates(cmd, lookup, candidates)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	if err := requireService(); err != nil {
		return err
	}
	ctx := cmd.Context()

	lookup, err := loadAssetLookup(ctx)
	if err != nil {
		return err
	}
	ids := lookup.ResolveAll(args)

	if !deleteYes {
		candidates, err := consolidationService.DeletionCandidates(ctx, ids)
		if err != nil {
			return fmt.Errorf("failed to check candidates: %w", err)
		}
		printCandidates(cmd, lookup, candidates)

		ok, err := confirmDelete(cmd, countEligible(candidates))
		if err != nil {
			return err
		}
		if !ok {
			cmd.Println("Aborted.")
			return nil
		}
	}

	report, err := consolidationService.DeleteUnreferenced(ctx, ids)
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}

	p := newPalette(cmd.OutOrStdout())
	for _, id := range report.Deleted {
		cmd.Println(p.success.Render("deleted  " + lookup.Name(id)))
	}
	for _, c := range report.Refused {
		cmd.Println(p.warning.Render(fmt.Sprintf("kept     %s (%d references)", lookup.Name(c.Asset), c.RemainingReferences)))
	}
	for _, f := range report.Failures {
		cmd.Println(p.failure.Render(fmt.Sprintf("failed   %s: %v", lookup.Name(f.Asset), f.Err)))
	}
	cmd.Println(report.Summary())

	if len(report.Failures) > 0 {
		return fmt.Errorf("delete incomplete: %d failed", len(report.Failures))
	}
	return nil
}

func printCandidates(cmd *cobra.Command, lookup *domain.AssetLookup, candidates []domain.DeletionCandidate) {
	if len(candidates) == 0 {
		cmd.Println("No candidates.")
		return
	}
	rows := make([][]string, 0, len(candidates))
	for _, c := range candidates {
		status := "in use"
		if c.Eligible() {
			status = "safe to delete"
		}
		rows = append(rows, []string{lookup.Name(c.Asset), strconv.Itoa(c.RemainingReferences), status})
	}
	cmd.Println(renderTable([]string{"Asset", "References", "Status"}, rows, []columnAlignment{alignLeft, alignRight, alignLeft}))
}

func countEligible(candidates []domain.DeletionCandidate) int {
	n := 0
	for _, c := range candidates {
		if c.Eligible() {
			n++
		}
	}
	return n
}

// confirmDelete asks on stdin. Without a terminal it refuses, since
// nobody can answer.
func confirmDelete(cmd *cobra.Command, eligible int) (bool, error) {
	if eligible == 0 {
		return false, nil
	}
	if !stdinIsTerminal() {
		return false, fmt.Errorf("%w: stdin is not a terminal, pass --yes to delete", domain.ErrNotConfirmed)
	}

	cmd.Printf("Delete %d assets? [y/N]: ", eligible)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
