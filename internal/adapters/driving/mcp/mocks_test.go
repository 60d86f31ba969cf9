package mcp

import (
	"context"

	"github.com/praxishq/knowledge-rag/internal/core/domain"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	result   *domain.QueryResult
	err      error
	lastOpts domain.QueryOptions
}

func (m *mockQueryService) Search(
	_ context.Context,
	query string,
	opts domain.QueryOptions,
) (*domain.QueryResult, error) {
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &domain.QueryResult{Query: query, Results: []domain.QueryHit{}}, nil
}

// mockSourceService is a mock implementation of driving.SourceService.
type mockSourceService struct {
	sources []domain.SourceInfo
	stats   domain.Stats
	err     error
}

func (m *mockSourceService) List(_ context.Context) ([]domain.SourceInfo, error) {
	return m.sources, m.err
}

func (m *mockSourceService) Stats(_ context.Context) (domain.Stats, error) {
	return m.stats, m.err
}
