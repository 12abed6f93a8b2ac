package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/narwhalmedia/splice/internal/domain/catalog"
)

// UploadJob tracks one upload running in the background
type UploadJob struct {
	id       uuid.UUID
	name     string
	progress chan int
	done     chan struct{}
	record   *catalog.MediaRecord
	err      error
}

func newUploadJob(name string) *UploadJob {
	return &UploadJob{
		id:       uuid.New(),
		name:     name,
		progress: make(chan int, 4),
		done:     make(chan struct{}),
	}
}

// ID returns the job id
func (j *UploadJob) ID() uuid.UUID { return j.id }

// Name returns the name of the file being uploaded
func (j *UploadJob) Name() string { return j.name }

// Progress delivers percentage milestones and is closed when the job ends.
// A failed job stops at the last milestone it reached.
func (j *UploadJob) Progress() <-chan int { return j.progress }

// Done is closed when the job ends
func (j *UploadJob) Done() <-chan struct{} { return j.done }

// Result returns the outcome. It is only meaningful after Done is closed.
func (j *UploadJob) Result() (*catalog.MediaRecord, error) {
	return j.record, j.err
}

// Wait blocks until the job ends or ctx is cancelled
func (j *UploadJob) Wait(ctx context.Context) (*catalog.MediaRecord, error) {
	select {
	case <-j.done:
		return j.record, j.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (j *UploadJob) report(pct int) {
	j.progress <- pct
}

func (j *UploadJob) finish(record *catalog.MediaRecord, err error) {
	j.record = record
	j.err = err
	close(j.progress)
	close(j.done)
}
