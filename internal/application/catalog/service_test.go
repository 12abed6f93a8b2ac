package catalog_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	appcatalog "github.com/narwhalmedia/splice/internal/application/catalog"
	"github.com/narwhalmedia/splice/internal/domain/catalog"
	"github.com/narwhalmedia/splice/internal/domain/events"
	apperrors "github.com/narwhalmedia/splice/pkg/errors"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Save(ctx context.Context, record *catalog.MediaRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockRepo) FindByID(ctx context.Context, id uuid.UUID) (*catalog.MediaRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.MediaRecord), args.Error(1)
}

func (m *mockRepo) FindAll(ctx context.Context) ([]*catalog.MediaRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.MediaRecord), args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Store(ctx context.Context, key string, reader io.Reader) error {
	args := m.Called(ctx, key, reader)
	return args.Error(0)
}

func (m *mockStorage) Retrieve(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *mockStorage) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *mockStorage) GetURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

type mockProber struct {
	mock.Mock
}

func (m *mockProber) Probe(ctx context.Context, path, mimeType string) (time.Duration, error) {
	args := m.Called(ctx, path, mimeType)
	return args.Get(0).(time.Duration), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishEvent(ctx context.Context, event events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type fixture struct {
	repo      *mockRepo
	storage   *mockStorage
	prober    *mockProber
	publisher *mockPublisher
	service   *appcatalog.Service
	dir       string
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		repo:      new(mockRepo),
		storage:   new(mockStorage),
		prober:    new(mockProber),
		publisher: new(mockPublisher),
		dir:       t.TempDir(),
	}
	f.service = appcatalog.NewService(f.repo, f.storage, f.prober, f.publisher,
		appcatalog.Options{}, zaptest.NewLogger(t))
	return f
}

func (f *fixture) file(t *testing.T, name string) string {
	p := filepath.Join(f.dir, name)
	require.NoError(t, os.WriteFile(p, []byte("payload"), 0o644))
	return p
}

func keyWithExt(ext string) interface{} {
	return mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "media/") && strings.HasSuffix(key, ext)
	})
}

func isEvent(eventType string) interface{} {
	return mock.MatchedBy(func(e events.Event) bool { return e.EventType() == eventType })
}

func collect(job *appcatalog.UploadJob) []int {
	var seen []int
	for pct := range job.Progress() {
		seen = append(seen, pct)
	}
	return seen
}

func TestService_UploadVideo(t *testing.T) {
	// Arrange
	f := newFixture(t)
	src := f.file(t, "Interview.MP4")
	f.prober.On("Probe", mock.Anything, src, "video/mp4").Return(95400*time.Millisecond, nil)
	f.storage.On("Store", mock.Anything, keyWithExt(".mp4"), mock.Anything).Return(nil)
	f.storage.On("GetURL", mock.Anything, keyWithExt(".mp4")).Return("file:///data/media/x.mp4", nil)
	f.repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.MediaRecord")).Return(nil)
	f.publisher.On("PublishEvent", mock.Anything, isEvent(catalog.EventTypeMediaUploaded)).Return(nil)

	// Act
	job := f.service.Start(context.Background(), appcatalog.UploadRequest{
		Name: "Interview.MP4", MIMEType: "video/mp4", Size: 2048, Path: src,
	})
	progress := collect(job)
	record, err := job.Wait(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []int{0, 30, 80, 100}, progress)
	assert.Equal(t, "01:35", record.Duration)
	assert.Equal(t, "2 KB", record.SizeLabel)
	assert.Equal(t, "file:///data/media/x.mp4", record.SourceURL)
	assert.Empty(t, record.ThumbnailURL)
	f.repo.AssertExpectations(t)
	f.storage.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestService_RejectsUnsupportedType(t *testing.T) {
	f := newFixture(t)

	job := f.service.Start(context.Background(), appcatalog.UploadRequest{
		Name: "doc.pdf", MIMEType: "application/pdf", Size: 10, Path: "/nope",
	})
	progress := collect(job)
	_, err := job.Result()

	assert.Equal(t, []int{0}, progress)
	assert.True(t, apperrors.IsBadRequest(err))
	assert.True(t, errors.Is(err, catalog.ErrUnsupportedType))
	assert.Contains(t, apperrors.FieldsOf(err)["file"], "Unsupported file type: application/pdf")
	f.storage.AssertNotCalled(t, "Store", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_ProbeFailureFallsBack(t *testing.T) {
	f := newFixture(t)
	src := f.file(t, "song.mp3")
	f.prober.On("Probe", mock.Anything, src, "audio/mpeg").Return(time.Duration(0), errors.New("corrupt"))
	f.storage.On("Store", mock.Anything, keyWithExt(".mp3"), mock.Anything).Return(nil)
	f.storage.On("GetURL", mock.Anything, mock.Anything).Return("u", nil)
	f.repo.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.publisher.On("PublishEvent", mock.Anything, mock.Anything).Return(nil)

	record, err := f.service.Import(context.Background(), appcatalog.UploadRequest{
		Name: "song.mp3", MIMEType: "audio/mpeg", Size: 10, Path: src,
	})

	require.NoError(t, err)
	assert.Equal(t, "00:05", record.Duration)
}

func TestService_StillSkipsProbe(t *testing.T) {
	f := newFixture(t)
	src := f.file(t, "logo.png")
	f.storage.On("Store", mock.Anything, keyWithExt(".png"), mock.Anything).Return(nil)
	f.storage.On("GetURL", mock.Anything, mock.Anything).Return("https://cdn/logo.png", nil)
	f.repo.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.publisher.On("PublishEvent", mock.Anything, mock.Anything).Return(nil)

	record, err := f.service.Import(context.Background(), appcatalog.UploadRequest{
		Name: "logo.png", MIMEType: "image/png", Size: 10, Path: src,
	})

	require.NoError(t, err)
	assert.Equal(t, "00:05", record.Duration)
	assert.Equal(t, "https://cdn/logo.png", record.ThumbnailURL)
	f.prober.AssertNotCalled(t, "Probe", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_StoreFailure(t *testing.T) {
	f := newFixture(t)
	src := f.file(t, "clip.webm")
	f.prober.On("Probe", mock.Anything, src, "video/webm").Return(3*time.Second, nil)
	f.storage.On("Store", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))

	job := f.service.Start(context.Background(), appcatalog.UploadRequest{
		Name: "clip.webm", MIMEType: "video/webm", Size: 10, Path: src,
	})
	progress := collect(job)
	_, err := job.Result()

	assert.Equal(t, []int{0, 30}, progress)
	assert.True(t, apperrors.IsUnavailable(err))
	f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_SaveFailureDiscardsBlob(t *testing.T) {
	f := newFixture(t)
	src := f.file(t, "clip.mp4")
	f.prober.On("Probe", mock.Anything, src, "video/mp4").Return(3*time.Second, nil)
	f.storage.On("Store", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.storage.On("GetURL", mock.Anything, mock.Anything).Return("u", nil)
	f.storage.On("Delete", mock.Anything, keyWithExt(".mp4")).Return(nil)
	f.repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("db down"))

	_, err := f.service.Import(context.Background(), appcatalog.UploadRequest{
		Name: "clip.mp4", MIMEType: "video/mp4", Size: 10, Path: src,
	})

	require.Error(t, err)
	f.storage.AssertCalled(t, "Delete", mock.Anything, keyWithExt(".mp4"))
	f.publisher.AssertNotCalled(t, "PublishEvent", mock.Anything, mock.Anything)
}

func TestService_Remove(t *testing.T) {
	f := newFixture(t)
	record := catalog.NewMediaRecord("a.mp4", "video/mp4", 10, 3, "media/a.mp4", "u")
	f.repo.On("FindByID", mock.Anything, record.ID).Return(record, nil)
	f.storage.On("Delete", mock.Anything, "media/a.mp4").Return(catalog.ErrStorageKeyNotFound)
	f.repo.On("Delete", mock.Anything, record.ID).Return(nil)
	f.publisher.On("PublishEvent", mock.Anything, isEvent(catalog.EventTypeMediaRemoved)).Return(nil)

	require.NoError(t, f.service.Remove(context.Background(), record.ID))

	f.repo.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestService_RemoveUnknown(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()
	f.repo.On("FindByID", mock.Anything, id).Return(nil, catalog.ErrMediaNotFound)

	err := f.service.Remove(context.Background(), id)

	assert.True(t, apperrors.IsNotFound(err))
	f.storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestService_List(t *testing.T) {
	f := newFixture(t)
	records := []*catalog.MediaRecord{catalog.NewMediaRecord("a.mp4", "video/mp4", 1, 1, "k", "u")}
	f.repo.On("FindAll", mock.Anything).Return(records, nil)

	got, err := f.service.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestService_GetCachesRecords(t *testing.T) {
	f := newFixture(t)
	f.service = appcatalog.NewService(f.repo, f.storage, f.prober, f.publisher,
		appcatalog.Options{CacheTTL: time.Minute}, zaptest.NewLogger(t))
	t.Cleanup(f.service.Close)
	record := catalog.NewMediaRecord("a.mp4", "video/mp4", 10, 3, "media/a.mp4", "u")
	f.repo.On("FindByID", mock.Anything, record.ID).Return(record, nil).Once()
	f.storage.On("Delete", mock.Anything, "media/a.mp4").Return(nil)
	f.repo.On("Delete", mock.Anything, record.ID).Return(nil)
	f.publisher.On("PublishEvent", mock.Anything, mock.Anything).Return(nil)

	first, err := f.service.Get(context.Background(), record.ID)
	require.NoError(t, err)
	second, err := f.service.Get(context.Background(), record.ID)
	require.NoError(t, err)

	assert.Same(t, first, second)
	f.repo.AssertNumberOfCalls(t, "FindByID", 1)

	require.NoError(t, f.service.Remove(context.Background(), record.ID))
	f.repo.On("FindByID", mock.Anything, record.ID).Return(nil, catalog.ErrMediaNotFound)
	_, err = f.service.Get(context.Background(), record.ID)
	assert.True(t, apperrors.IsNotFound(err))
}
