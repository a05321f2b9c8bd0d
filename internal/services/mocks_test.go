package service

import (
	"context"
	"time"

	models "github.com/fathima-sithara/uriel-service/internal/media"
	"github.com/fathima-sithara/uriel-service/internal/repository"
	"github.com/stretchr/testify/mock"
)

type StoreMock struct {
	mock.Mock
}

func (m *StoreMock) Insert(ctx context.Context, media *models.Media) (string, error) {
	args := m.Called(ctx, media)
	return args.String(0), args.Error(1)
}

func (m *StoreMock) List(ctx context.Context, f repository.Filter) ([]*models.Media, error) {
	args := m.Called(ctx, f)
	if v := args.Get(0); v != nil {
		return v.([]*models.Media), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *StoreMock) IncrementDownloads(ctx context.Context, id string, at time.Time) (*models.Media, error) {
	args := m.Called(ctx, id, at)
	if v := args.Get(0); v != nil {
		return v.(*models.Media), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *StoreMock) Top(ctx context.Context, limit int64) ([]*models.Media, error) {
	args := m.Called(ctx, limit)
	if v := args.Get(0); v != nil {
		return v.([]*models.Media), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *StoreMock) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *StoreMock) CollectionNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) PublishDownloaded(ctx context.Context, media *models.Media) error {
	return m.Called(ctx, media).Error(0)
}

func (m *PublisherMock) Close() error {
	return m.Called().Error(0)
}
