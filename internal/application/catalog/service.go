package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/narwhalmedia/splice/internal/domain/catalog"
	"github.com/narwhalmedia/splice/internal/domain/events"
	"github.com/narwhalmedia/splice/pkg/cache"
	apperrors "github.com/narwhalmedia/splice/pkg/errors"
)

// Options tunes the catalog service
type Options struct {
	// MaxUploadBytes caps accepted files; zero uses catalog.MaxUploadBytes
	MaxUploadBytes int64
	// KeyPrefix is prepended to storage keys
	KeyPrefix string
	// CacheTTL keeps looked-up records in memory; zero disables caching
	CacheTTL time.Duration
}

// Service handles use case orchestration for the media catalog
type Service struct {
	repo      catalog.Repository
	storage   catalog.Storage
	prober    catalog.Prober
	publisher events.EventPublisher
	opts      Options
	records   *cache.TTLCache[uuid.UUID, *catalog.MediaRecord]
	logger    *zap.Logger
}

// NewService creates a new catalog service. publisher may be nil.
func NewService(
	repo catalog.Repository,
	storage catalog.Storage,
	prober catalog.Prober,
	publisher events.EventPublisher,
	opts Options,
	logger *zap.Logger,
) *Service {
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = "media"
	}
	s := &Service{
		repo:      repo,
		storage:   storage,
		prober:    prober,
		publisher: publisher,
		opts:      opts,
		logger:    logger.Named("catalog"),
	}
	if opts.CacheTTL > 0 {
		s.records = cache.New[uuid.UUID, *catalog.MediaRecord](opts.CacheTTL, opts.CacheTTL)
	}
	return s
}

// Close releases the record cache
func (s *Service) Close() {
	if s.records != nil {
		s.records.Close()
	}
}

// Start begins an upload in the background and returns immediately
func (s *Service) Start(ctx context.Context, req UploadRequest) *UploadJob {
	job := newUploadJob(req.Name)
	go func() {
		record, err := s.run(ctx, job, req)
		job.finish(record, err)
	}()
	return job
}

// Import uploads a file and waits for the result
func (s *Service) Import(ctx context.Context, req UploadRequest) (*catalog.MediaRecord, error) {
	return s.Start(ctx, req).Wait(ctx)
}

func (s *Service) run(ctx context.Context, job *UploadJob, req UploadRequest) (*catalog.MediaRecord, error) {
	logger := s.logger.With(
		zap.String("job_id", job.ID().String()),
		zap.String("name", req.Name),
		zap.String("mime_type", req.MIMEType),
	)
	job.report(ProgressStarted)

	if err := catalog.ValidateUpload(req.MIMEType, req.Size, s.opts.MaxUploadBytes); err != nil {
		logger.Info("upload rejected", zap.Error(err))
		return nil, apperrors.Invalid(err.Error(), map[string]string{"file": err.Error()}, err)
	}
	job.report(ProgressValidated)

	key := s.storageKey(job.ID(), req.Name)
	var seconds float64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		seconds = s.probe(gctx, logger, req)
		return nil
	})
	g.Go(func() error {
		return s.store(gctx, key, req.Path)
	})
	if err := g.Wait(); err != nil {
		logger.Error("failed to store upload", zap.Error(err))
		return nil, apperrors.Wrap(apperrors.ErrorTypeUnavailable, "failed to store media", err)
	}
	job.report(ProgressProbed)

	url, err := s.storage.GetURL(ctx, key)
	if err != nil {
		s.discard(ctx, logger, key)
		return nil, apperrors.Wrap(apperrors.ErrorTypeUnavailable, "failed to resolve media url", err)
	}

	record := catalog.NewMediaRecord(req.Name, req.MIMEType, req.Size, seconds, key, url)
	if err := s.repo.Save(ctx, record); err != nil {
		s.discard(ctx, logger, key)
		return nil, fmt.Errorf("saving media record: %w", err)
	}
	job.report(ProgressDone)

	logger.Info("media uploaded",
		zap.String("media_id", record.ID.String()),
		zap.String("duration", record.Duration),
		zap.String("size", record.SizeLabel))
	s.publish(ctx, catalog.NewMediaUploadedEvent(record))
	return record, nil
}

// probe reads the duration, falling back to catalog.FallbackSeconds when the
// type has no timeline or the file cannot be read.
func (s *Service) probe(ctx context.Context, logger *zap.Logger, req UploadRequest) float64 {
	if !strings.HasPrefix(req.MIMEType, "video/") && !strings.HasPrefix(req.MIMEType, "audio/") {
		return catalog.FallbackSeconds
	}
	if s.prober == nil {
		return catalog.FallbackSeconds
	}

	d, err := s.prober.Probe(ctx, req.Path, req.MIMEType)
	if err != nil || d <= 0 {
		logger.Warn("could not read media duration, using fallback",
			zap.Error(err),
			zap.Int("fallback_seconds", catalog.FallbackSeconds))
		return catalog.FallbackSeconds
	}
	return d.Seconds()
}

func (s *Service) store(ctx context.Context, key, src string) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	return s.storage.Store(ctx, key, f)
}

func (s *Service) discard(ctx context.Context, logger *zap.Logger, key string) {
	if err := s.storage.Delete(ctx, key); err != nil && !errors.Is(err, catalog.ErrStorageKeyNotFound) {
		logger.Warn("failed to discard stored blob", zap.String("key", key), zap.Error(err))
	}
}

func (s *Service) storageKey(id uuid.UUID, name string) string {
	return path.Join(s.opts.KeyPrefix, id.String()+strings.ToLower(filepath.Ext(name)))
}

// Get returns one media record
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*catalog.MediaRecord, error) {
	if s.records != nil {
		if record, ok := s.records.Get(id); ok {
			return record, nil
		}
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalog.ErrMediaNotFound) {
			return nil, apperrors.NotFound(fmt.Sprintf("media %s not found", id))
		}
		return nil, fmt.Errorf("finding media record: %w", err)
	}
	if s.records != nil {
		s.records.Set(id, record)
	}
	return record, nil
}

// List returns every media record, oldest first
func (s *Service) List(ctx context.Context) ([]*catalog.MediaRecord, error) {
	records, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing media records: %w", err)
	}
	return records, nil
}

// Remove deletes a record and its stored bytes
func (s *Service) Remove(ctx context.Context, id uuid.UUID) error {
	record, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, record.StorageKey); err != nil && !errors.Is(err, catalog.ErrStorageKeyNotFound) {
		return apperrors.Wrap(apperrors.ErrorTypeUnavailable, "failed to delete media blob", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting media record: %w", err)
	}
	if s.records != nil {
		s.records.Delete(id)
	}

	s.logger.Info("media removed", zap.String("media_id", id.String()), zap.String("name", record.Name))
	s.publish(ctx, catalog.NewMediaRemovedEvent(record))
	return nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := s.publisher.PublishEvent(pubCtx, event); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("event_type", event.EventType()),
			zap.Error(err))
	}
}
