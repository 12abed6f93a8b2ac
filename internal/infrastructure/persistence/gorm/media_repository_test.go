package gorm_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"

	"github.com/narwhalmedia/splice/internal/config"
	"github.com/narwhalmedia/splice/internal/domain/catalog"
	"github.com/narwhalmedia/splice/internal/domain/timeline"
	gormrepo "github.com/narwhalmedia/splice/internal/infrastructure/persistence/gorm"
)

type MediaRepositoryTestSuite struct {
	suite.Suite
	repo *gormrepo.MediaRepository
	ctx  context.Context
}

func (s *MediaRepositoryTestSuite) SetupTest() {
	s.repo = gormrepo.NewMediaRepository(gormrepo.NewTestDB(s.T()))
	s.ctx = context.Background()
}

func TestMediaRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(MediaRepositoryTestSuite))
}

func (s *MediaRepositoryTestSuite) TestSaveAndFindByID() {
	// Arrange
	record := catalog.NewMediaRecord("intro.mp4", "video/mp4", 2048, 93.7, "media/intro.mp4", "file:///media/intro.mp4")

	// Act
	err := s.repo.Save(s.ctx, record)
	s.Require().NoError(err)
	found, err := s.repo.FindByID(s.ctx, record.ID)

	// Assert
	s.Require().NoError(err)
	s.Equal(record.ID, found.ID)
	s.Equal("intro.mp4", found.Name)
	s.Equal(timeline.MediaTypeVideo, found.Type)
	s.Equal("01:33", found.Duration)
	s.Equal(93, found.DurationSeconds)
	s.Equal("2 KB", found.SizeLabel)
	s.Equal("media/intro.mp4", found.StorageKey)
	s.WithinDuration(record.CreatedAt, found.CreatedAt, time.Second)
}

func (s *MediaRepositoryTestSuite) TestFindByID_NotFound() {
	// Act
	found, err := s.repo.FindByID(s.ctx, uuid.New())

	// Assert
	s.Nil(found)
	s.ErrorIs(err, catalog.ErrMediaNotFound)
}

func (s *MediaRepositoryTestSuite) TestFindAll_OldestFirst() {
	// Arrange
	older := catalog.NewMediaRecord("b.wav", "audio/wav", 10, 4, "media/b.wav", "u/b")
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	newer := catalog.NewMediaRecord("a.png", "image/png", 10, 0, "media/a.png", "u/a")
	s.Require().NoError(s.repo.Save(s.ctx, newer))
	s.Require().NoError(s.repo.Save(s.ctx, older))

	// Act
	records, err := s.repo.FindAll(s.ctx)

	// Assert
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal(older.ID, records[0].ID)
	s.Equal(newer.ID, records[1].ID)
	s.Equal("u/a", records[1].ThumbnailURL)
}

func (s *MediaRepositoryTestSuite) TestDelete() {
	// Arrange
	record := catalog.NewMediaRecord("c.mp3", "audio/mpeg", 10, 1, "media/c.mp3", "u/c")
	s.Require().NoError(s.repo.Save(s.ctx, record))

	// Act
	err := s.repo.Delete(s.ctx, record.ID)

	// Assert
	s.Require().NoError(err)
	_, err = s.repo.FindByID(s.ctx, record.ID)
	s.ErrorIs(err, catalog.ErrMediaNotFound)
	s.ErrorIs(s.repo.Delete(s.ctx, record.ID), catalog.ErrMediaNotFound)
}

func TestNewDB_SQLiteFile(t *testing.T) {
	cfg := config.Default("splice-test")
	cfg.Database.Path = filepath.Join(t.TempDir(), "nested", "splice.db")

	db, cleanup, err := gormrepo.NewDB(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer cleanup()

	assert.True(t, db.Migrator().HasTable(&gormrepo.MediaRecordModel{}))
}

func TestNewDB_UnknownDriver(t *testing.T) {
	cfg := config.Default("splice-test")
	cfg.Database.Driver = "oracle"

	_, _, err := gormrepo.NewDB(cfg, zaptest.NewLogger(t))
	assert.Error(t, err)
}
