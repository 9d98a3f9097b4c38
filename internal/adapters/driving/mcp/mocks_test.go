package mcp

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/custodia-labs/consolidator/internal/core/domain"
)

// MockConsolidationService is a mock implementation of driving.ConsolidationService.
type MockConsolidationService struct {
	mock.Mock
}

func (m *MockConsolidationService) Assets(ctx context.Context) ([]domain.Asset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Asset), args.Error(1)
}

func (m *MockConsolidationService) FindUsages(ctx context.Context, ids []domain.AssetID) (*domain.UsageIndex, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UsageIndex), args.Error(1)
}

func (m *MockConsolidationService) Plan(ctx context.Context, groups []domain.DuplicateGroup) (*domain.RewritePlan, error) {
	args := m.Called(ctx, groups)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RewritePlan), args.Error(1)
}

func (m *MockConsolidationService) Replace(ctx context.Context, groups []domain.DuplicateGroup) (*domain.RewriteReport, error) {
	args := m.Called(ctx, groups)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RewriteReport), args.Error(1)
}

func (m *MockConsolidationService) DeletionCandidates(ctx context.Context, ids []domain.AssetID) ([]domain.DeletionCandidate, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DeletionCandidate), args.Error(1)
}

func (m *MockConsolidationService) DeleteUnreferenced(ctx context.Context, ids []domain.AssetID) (*domain.DeletionReport, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeletionReport), args.Error(1)
}

func (m *MockConsolidationService) SuggestGroups(ctx context.Context) ([]domain.DuplicateGroup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DuplicateGroup), args.Error(1)
}

func (m *MockConsolidationService) History(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RunRecord), args.Error(1)
}

func testAssets() []domain.Asset {
	return []domain.Asset{
		{ID: "id-master", Label: "master", Ref: domain.AssetReference{Handle: "h1", Path: "Assets/master.png"}},
		{ID: "id-dup", Label: "dup", Ref: domain.AssetReference{Handle: "h2", Path: "Assets/dup.png"}},
	}
}
