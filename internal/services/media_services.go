package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fathima-sithara/uriel-service/internal/events"
	models "github.com/fathima-sithara/uriel-service/internal/media"
	"github.com/fathima-sithara/uriel-service/internal/metrics"
	"github.com/fathima-sithara/uriel-service/internal/repository"
	"go.uber.org/zap"
)

const (
	DefaultTopLimit = 10
	publishTimeout  = 2 * time.Second
)

type Options struct {
	MaxTopLimit int
	OpTimeout   time.Duration
}

type MediaService struct {
	store   repository.Store // nil when the database is not configured or unreachable
	pub     events.Publisher
	metrics *metrics.Metrics
	log     *zap.SugaredLogger
	opts    Options
	clock   func() time.Time

	publishTimeout time.Duration
	inflight       sync.WaitGroup // download events not yet handed to the broker
}

func NewMediaService(store repository.Store, pub events.Publisher, m *metrics.Metrics, log *zap.SugaredLogger, opts Options) *MediaService {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	if opts.MaxTopLimit <= 0 {
		opts.MaxTopLimit = 100
	}
	if opts.OpTimeout <= 0 {
		opts.OpTimeout = 5 * time.Second
	}
	return &MediaService{
		store:          store,
		pub:            pub,
		metrics:        m,
		log:            log,
		opts:           opts,
		clock:          time.Now,
		publishTimeout: publishTimeout,
	}
}

// Create validates the payload and stores a new record with zero downloads.
func (s *MediaService) Create(ctx context.Context, in *models.MediaCreate) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}
	if s.store == nil {
		return "", models.ErrStoreUnavailable
	}
	ctx, cancel := context.WithTimeout(ctx, s.opts.OpTimeout)
	defer cancel()

	id, err := s.store.Insert(ctx, models.NewMedia(in))
	if err != nil {
		return "", fmt.Errorf("insert media: %w", err)
	}
	s.log.Infow("media created", "id", id, "kind", in.Kind)
	return id, nil
}

func (s *MediaService) List(ctx context.Context, f repository.Filter) ([]*models.Media, error) {
	if s.store == nil {
		return nil, models.ErrStoreUnavailable
	}
	ctx, cancel := context.WithTimeout(ctx, s.opts.OpTimeout)
	defer cancel()

	out, err := s.store.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	return out, nil
}

// Download adds one download to the record and returns its post-update state.
func (s *MediaService) Download(ctx context.Context, id string) (*models.Media, error) {
	if s.store == nil {
		return nil, models.ErrStoreUnavailable
	}
	opCtx, cancel := context.WithTimeout(ctx, s.opts.OpTimeout)
	defer cancel()

	m, err := s.store.IncrementDownloads(opCtx, id, s.clock().UTC())
	if err != nil {
		return nil, err
	}
	s.metrics.IncDownload(string(m.Kind))

	s.inflight.Add(1)
	go s.publishDownloaded(context.WithoutCancel(ctx), m.Clone())
	return m, nil
}

// publishDownloaded runs off the request path; a slow broker never delays the response.
func (s *MediaService) publishDownloaded(ctx context.Context, m *models.Media) {
	defer s.inflight.Done()
	ctx, cancel := context.WithTimeout(ctx, s.publishTimeout)
	defer cancel()
	if err := s.pub.PublishDownloaded(ctx, m); err != nil {
		s.log.Warnw("publish download event failed", "id", m.ID.Hex(), "error", err)
	}
}

// Wait blocks until every pending download event is published or has timed out.
// Call it before closing the publisher.
func (s *MediaService) Wait() {
	s.inflight.Wait()
}

// Top returns up to limit records ordered by downloads, highest first.
func (s *MediaService) Top(ctx context.Context, limit int) ([]*models.Media, error) {
	if limit <= 0 {
		return nil, models.FieldInvalid("limit", "gt", "limit must be greater than 0")
	}
	if limit > s.opts.MaxTopLimit {
		limit = s.opts.MaxTopLimit
	}
	if s.store == nil {
		return nil, models.ErrStoreUnavailable
	}
	ctx, cancel := context.WithTimeout(ctx, s.opts.OpTimeout)
	defer cancel()

	out, err := s.store.Top(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("top media: %w", err)
	}
	return out, nil
}
