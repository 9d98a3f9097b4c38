package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/consolidator/internal/core/domain"
)

// AssetOutput is one catalog asset.
type AssetOutput struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Path  string `json:"path"`
}

// ListAssetsInput is the input schema for the list_assets tool.
type ListAssetsInput struct{}

// ListAssetsOutput is the output schema for the list_assets tool.
type ListAssetsOutput struct {
	Assets []AssetOutput `json:"assets"`
	Count  int           `json:"count"`
}

// AssetsInput names assets by id or path.
type AssetsInput struct {
	Assets []string `json:"assets" jsonschema:"asset ids or paths"`
}

// UsageOutput is one reference site.
type UsageOutput struct {
	Asset    string `json:"asset"`
	Consumer string `json:"consumer"`
	Property string `json:"property"`
}

// FindUsagesOutput is the output schema for the find_usages tool.
type FindUsagesOutput struct {
	Usages []UsageOutput `json:"usages"`
	Count  int           `json:"count"`
}

// GroupInput is one duplicate group.
type GroupInput struct {
	Master     string   `json:"master" jsonschema:"master asset id or path"`
	Duplicates []string `json:"duplicates" jsonschema:"duplicate asset ids or paths"`
}

// GroupsInput is the input schema for plan_replace and replace.
type GroupsInput struct {
	Groups []GroupInput `json:"groups" jsonschema:"duplicate groups to consolidate"`
}

// RewriteOutput is one planned or failed rewrite.
type RewriteOutput struct {
	Consumer string `json:"consumer"`
	Property string `json:"property"`
	From     string `json:"from"`
	To       string `json:"to"`
	Reason   string `json:"reason,omitempty"`
}

// PlanOutput is the output schema for the plan_replace tool.
type PlanOutput struct {
	Rewrites []RewriteOutput `json:"rewrites"`
	Count    int             `json:"count"`
}

// ReplaceOutput is the output schema for the replace tool.
type ReplaceOutput struct {
	Summary  string          `json:"summary"`
	Applied  int             `json:"applied"`
	Failures []RewriteOutput `json:"failures,omitempty"`
	Skipped  int             `json:"skipped"`
}

// CandidateOutput is one deletion candidate.
type CandidateOutput struct {
	Asset      string `json:"asset"`
	References int    `json:"references"`
	Eligible   bool   `json:"eligible"`
	Reason     string `json:"reason,omitempty"`
}

// CandidatesOutput is the output schema for the deletion_candidates tool.
type CandidatesOutput struct {
	Candidates []CandidateOutput `json:"candidates"`
}

// DeleteOutput is the output schema for the delete_unreferenced tool.
type DeleteOutput struct {
	Summary  string            `json:"summary"`
	Deleted  []string          `json:"deleted"`
	Refused  []CandidateOutput `json:"refused,omitempty"`
	Failures map[string]string `json:"failures,omitempty"`
}

// SuggestInput is the input schema for the suggest_groups tool.
type SuggestInput struct{}

// SuggestOutput is the output schema for the suggest_groups tool.
type SuggestOutput struct {
	Groups []GroupInput `json:"groups"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_assets",
		Description: "List every asset in the project with its id and path",
	}, s.handleListAssets)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_usages",
		Description: "List the consumer property slots that reference the given assets",
	}, s.handleFindUsages)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "plan_replace",
		Description: "Preview the rewrites that replace would apply, without changing anything",
	}, s.handlePlan)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "replace",
		Description: "Rewrite references to duplicates so they point at each group's master",
	}, s.handleReplace)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "deletion_candidates",
		Description: "Show how many references remain to each asset",
	}, s.handleCandidates)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_unreferenced",
		Description: "Delete the given assets that have no remaining references; referenced assets are kept",
	}, s.handleDelete)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "suggest_groups",
		Description: "Propose duplicate groups from byte-identical asset content",
	}, s.handleSuggest)
}

func (s *Server) handleListAssets(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListAssetsInput,
) (*mcp.CallToolResult, ListAssetsOutput, error) {
	assets, err := s.ports.Consolidation.Assets(ctx)
	if err != nil {
		return nil, ListAssetsOutput{}, err
	}

	output := ListAssetsOutput{
		Assets: make([]AssetOutput, len(assets)),
		Count:  len(assets),
	}
	for i, a := range assets {
		output.Assets[i] = AssetOutput{ID: string(a.ID), Label: a.Label, Path: a.Ref.Path}
	}
	return nil, output, nil
}

func (s *Server) handleFindUsages(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AssetsInput,
) (*mcp.CallToolResult, FindUsagesOutput, error) {
	lookup, err := s.lookup(ctx)
	if err != nil {
		return nil, FindUsagesOutput{}, err
	}

	index, err := s.ports.Consolidation.FindUsages(ctx, lookup.ResolveAll(input.Assets))
	if err != nil {
		return nil, FindUsagesOutput{}, err
	}

	output := FindUsagesOutput{Usages: []UsageOutput{}}
	for _, id := range index.Assets() {
		for _, site := range index.Sites(id) {
			output.Usages = append(output.Usages, UsageOutput{
				Asset:    lookup.Name(id),
				Consumer: string(site.Consumer),
				Property: string(site.Property),
			})
		}
	}
	output.Count = len(output.Usages)
	return nil, output, nil
}

func (s *Server) handlePlan(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GroupsInput,
) (*mcp.CallToolResult, PlanOutput, error) {
	lookup, groups, err := s.groups(ctx, input)
	if err != nil {
		return nil, PlanOutput{}, err
	}

	plan, err := s.ports.Consolidation.Plan(ctx, groups)
	if err != nil {
		return nil, PlanOutput{}, err
	}

	output := PlanOutput{Rewrites: make([]RewriteOutput, 0, plan.Len()), Count: plan.Len()}
	for _, op := range plan.Ops {
		output.Rewrites = append(output.Rewrites, rewriteOutput(lookup, op, ""))
	}
	return nil, output, nil
}

func (s *Server) handleReplace(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GroupsInput,
) (*mcp.CallToolResult, ReplaceOutput, error) {
	lookup, groups, err := s.groups(ctx, input)
	if err != nil {
		return nil, ReplaceOutput{}, err
	}

	report, err := s.ports.Consolidation.Replace(ctx, groups)
	if err != nil {
		return nil, ReplaceOutput{}, err
	}

	output := ReplaceOutput{
		Summary: report.Summary(),
		Applied: len(report.Applied),
		Skipped: len(report.Skipped),
	}
	for _, f := range report.Failures {
		output.Failures = append(output.Failures, rewriteOutput(lookup, f.Op, f.Reason))
	}
	return nil, output, nil
}

func (s *Server) handleCandidates(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AssetsInput,
) (*mcp.CallToolResult, CandidatesOutput, error) {
	lookup, err := s.lookup(ctx)
	if err != nil {
		return nil, CandidatesOutput{}, err
	}

	candidates, err := s.ports.Consolidation.DeletionCandidates(ctx, lookup.ResolveAll(input.Assets))
	if err != nil {
		return nil, CandidatesOutput{}, err
	}

	output := CandidatesOutput{Candidates: make([]CandidateOutput, len(candidates))}
	for i, c := range candidates {
		output.Candidates[i] = candidateOutput(lookup, c)
	}
	return nil, output, nil
}

func (s *Server) handleDelete(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AssetsInput,
) (*mcp.CallToolResult, DeleteOutput, error) {
	lookup, err := s.lookup(ctx)
	if err != nil {
		return nil, DeleteOutput{}, err
	}

	report, err := s.ports.Consolidation.DeleteUnreferenced(ctx, lookup.ResolveAll(input.Assets))
	if err != nil {
		return nil, DeleteOutput{}, err
	}

	output := DeleteOutput{Summary: report.Summary(), Deleted: make([]string, 0, len(report.Deleted))}
	for _, id := range report.Deleted {
		output.Deleted = append(output.Deleted, lookup.Name(id))
	}
	for _, c := range report.Refused {
		output.Refused = append(output.Refused, candidateOutput(lookup, c))
	}
	if len(report.Failures) > 0 {
		output.Failures = make(map[string]string, len(report.Failures))
		for _, f := range report.Failures {
			output.Failures[lookup.Name(f.Asset)] = f.Err.Error()
		}
	}
	return nil, output, nil
}

func (s *Server) handleSuggest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ SuggestInput,
) (*mcp.CallToolResult, SuggestOutput, error) {
	lookup, err := s.lookup(ctx)
	if err != nil {
		return nil, SuggestOutput{}, err
	}

	groups, err := s.ports.Consolidation.SuggestGroups(ctx)
	if err != nil {
		return nil, SuggestOutput{}, err
	}

	output := SuggestOutput{Groups: make([]GroupInput, len(groups))}
	for i, g := range groups {
		dups := make([]string, len(g.Duplicates))
		for j, d := range g.Duplicates {
			dups[j] = lookup.Name(d)
		}
		output.Groups[i] = GroupInput{Master: lookup.Name(g.Master), Duplicates: dups}
	}
	return nil, output, nil
}

// groups resolves tool input into duplicate groups.
func (s *Server) groups(ctx context.Context, input GroupsInput) (*domain.AssetLookup, []domain.DuplicateGroup, error) {
	if len(input.Groups) == 0 {
		return nil, nil, fmt.Errorf("%w: no groups given", domain.ErrInvalidInput)
	}
	lookup, err := s.lookup(ctx)
	if err != nil {
		return nil, nil, err
	}
	groups := make([]domain.DuplicateGroup, len(input.Groups))
	for i, g := range input.Groups {
		groups[i] = domain.DuplicateGroup{
			Master:     lookup.Resolve(g.Master),
			Duplicates: lookup.ResolveAll(g.Duplicates),
		}
	}
	return lookup, groups, nil
}

func rewriteOutput(lookup *domain.AssetLookup, op domain.RewriteOp, reason string) RewriteOutput {
	return RewriteOutput{
		Consumer: string(op.Site.Consumer),
		Property: string(op.Site.Property),
		From:     lookup.Name(op.From),
		To:       lookup.Name(op.To),
		Reason:   reason,
	}
}

func candidateOutput(lookup *domain.AssetLookup, c domain.DeletionCandidate) CandidateOutput {
	out := CandidateOutput{
		Asset:      lookup.Name(c.Asset),
		References: c.RemainingReferences,
		Eligible:   c.Eligible(),
	}
	if err := c.Refusal(); err != nil {
		out.Reason = err.Error()
	}
	return out
}
