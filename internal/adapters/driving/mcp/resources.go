package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/consolidator/internal/core/domain"
)

const (
	uriScheme = "consolidator://"

	historyLimit = 50
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "assets",
		Name:        "assets",
		Description: "Asset catalog with ids, labels and paths",
		MIMEType:    "application/json",
	}, s.handleAssetsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "assets/{assetId}/usages",
		Name:        "asset-usages",
		Description: "Consumer property slots referencing one asset",
		MIMEType:    "application/json",
	}, s.handleUsagesResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "history",
		Name:        "history",
		Description: "Recent replace and delete runs",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)
}

func (s *Server) handleAssetsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	assets, err := s.ports.Consolidation.Assets(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}

	infos := make([]AssetOutput, len(assets))
	for i, a := range assets {
		infos[i] = AssetOutput{ID: string(a.ID), Label: a.Label, Path: a.Ref.Path}
	}
	return jsonResult(req.Params.URI, infos)
}

func (s *Server) handleUsagesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// consolidator://assets/{assetId}/usages
	id := extractAssetID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	index, err := s.ports.Consolidation.FindUsages(ctx, []domain.AssetID{domain.AssetID(id)})
	if err != nil {
		return nil, fmt.Errorf("finding usages: %w", err)
	}

	sites := index.Sites(domain.AssetID(id))
	usages := make([]UsageOutput, len(sites))
	for i, site := range sites {
		usages[i] = UsageOutput{Asset: id, Consumer: string(site.Consumer), Property: string(site.Property)}
	}
	return jsonResult(req.Params.URI, usages)
}

func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	runs, err := s.ports.Consolidation.History(ctx, historyLimit)
	if errors.Is(err, domain.ErrNotImplemented) {
		return jsonResult(req.Params.URI, []domain.RunRecord{})
	}
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	return jsonResult(req.Params.URI, runs)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractAssetID extracts the asset id from consolidator://assets/{assetId}/usages.
func extractAssetID(uri string) string {
	const prefix = uriScheme + "assets/"
	const suffix = "/usages"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}
