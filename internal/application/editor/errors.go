package editor

import (
	"errors"
	"fmt"

	"github.com/narwhalmedia/splice/internal/domain/catalog"
	"github.com/narwhalmedia/splice/internal/domain/timeline"
	apperrors "github.com/narwhalmedia/splice/pkg/errors"
)

var (
	// ErrDragInProgress is returned when a second drag starts before the first ended
	ErrDragInProgress = errors.New("another clip is being dragged")

	// ErrDragEnded is returned when updating a drag that has already ended
	ErrDragEnded = errors.New("drag has ended")

	// ErrSessionClosed is returned by every operation after Close
	ErrSessionClosed = errors.New("editor session closed")
)

// translate maps domain errors onto application errors
func translate(err error) error {
	if err == nil {
		return nil
	}

	var verr *timeline.ValidationError
	var terr *timeline.TrimErrors
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		return err
	case errors.As(err, &terr):
		return apperrors.Invalid("invalid trim", terr.Fields(), err)
	case errors.As(err, &verr):
		return apperrors.Invalid(verr.Message, map[string]string{verr.Field: verr.Message}, err)
	case errors.Is(err, timeline.ErrClipNotFound):
		return apperrors.Wrap(apperrors.ErrorTypeNotFound, "clip not found", err)
	case errors.Is(err, catalog.ErrMediaNotFound):
		return apperrors.Wrap(apperrors.ErrorTypeNotFound, "media not found", err)
	case errors.Is(err, timeline.ErrClipNotTrimmable):
		return apperrors.Wrap(apperrors.ErrorTypeBadRequest, "only video and audio clips can be trimmed", err)
	case errors.Is(err, ErrDragInProgress), errors.Is(err, ErrDragEnded):
		return apperrors.Wrap(apperrors.ErrorTypeConflict, err.Error(), err)
	case errors.Is(err, ErrSessionClosed):
		return apperrors.Wrap(apperrors.ErrorTypeUnavailable, err.Error(), err)
	default:
		return apperrors.Wrap(apperrors.ErrorTypeInternal, fmt.Sprintf("editor: %v", err), err)
	}
}
