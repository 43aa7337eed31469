package mocks

import (
	"context"

	"github.com/guttosm/parcel-service/internal/domain/dto"
	"github.com/guttosm/parcel-service/internal/domain/model"
	"github.com/guttosm/parcel-service/internal/packing"
	"github.com/stretchr/testify/mock"
)

type MockParcelCalculator struct {
	mock.Mock
}

func (m *MockParcelCalculator) Pack(ctx context.Context, items []packing.Item, containers []packing.Container) (packing.Result, error) {
	args := m.Called(ctx, items, containers)
	res, _ := args.Get(0).(packing.Result)
	return res, args.Error(1)
}

func (m *MockParcelCalculator) Fit(ctx context.Context, items []packing.Item, container packing.Container) (packing.Result, bool, error) {
	args := m.Called(ctx, items, container)
	res, _ := args.Get(0).(packing.Result)
	return res, args.Bool(1), args.Error(2)
}

func (m *MockParcelCalculator) InvalidateCache() {
	m.Called()
}

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) Products(ctx context.Context, category string) ([]model.Product, error) {
	args := m.Called(ctx, category)
	products, _ := args.Get(0).([]model.Product)
	return products, args.Error(1)
}

func (m *MockCatalogService) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]string)
	return categories, args.Error(1)
}

func (m *MockCatalogService) ResolveCart(ctx context.Context, lines []dto.CartLine) ([]packing.Item, error) {
	args := m.Called(ctx, lines)
	items, _ := args.Get(0).([]packing.Item)
	return items, args.Error(1)
}

type MockContainerService struct {
	mock.Mock
}

func (m *MockContainerService) Containers(ctx context.Context) ([]packing.Container, string) {
	args := m.Called(ctx)
	containers, _ := args.Get(0).([]packing.Container)
	return containers, args.String(1)
}

type MockLoggingService struct {
	mock.Mock
}

func (m *MockLoggingService) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockLoggingService) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	return m.Called(ctx, entries).Error(0)
}

func (m *MockLoggingService) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	args := m.Called(ctx, opts)
	entries, _ := args.Get(0).([]model.LogEntry)
	return entries, args.Error(1)
}

func (m *MockLoggingService) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string) (packing.Result, bool) {
	args := m.Called(key)
	res, _ := args.Get(0).(packing.Result)
	return res, args.Bool(1)
}

func (m *MockCache) Set(key string, value packing.Result) {
	m.Called(key, value)
}

func (m *MockCache) Invalidate(key string) {
	m.Called(key)
}

func (m *MockCache) Clear() {
	m.Called()
}

func (m *MockCache) Stop() {
	m.Called()
}
