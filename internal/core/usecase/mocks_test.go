package usecase

import (
	"avacasa/internal/core/domain"
	"context"

	"github.com/stretchr/testify/mock"
)

type MockPropertyStorage struct {
	mock.Mock
}

func (m *MockPropertyStorage) FindWithFilters(ctx context.Context, filters domain.FindPropertiesFilters) (*domain.FindPropertiesResult, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FindPropertiesResult), args.Error(1)
}

func (m *MockPropertyStorage) GetPublishedBySlug(ctx context.Context, slug string) (*domain.PropertyDetails, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PropertyDetails), args.Error(1)
}

type MockSearchEventPublisher struct {
	mock.Mock
}

func (m *MockSearchEventPublisher) PublishSearchPerformed(ctx context.Context, event domain.SearchPerformedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) ListSearchLocations(ctx context.Context) ([]domain.SearchLocation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SearchLocation), args.Error(1)
}
