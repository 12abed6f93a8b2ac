package catalog

import "errors"

var (
	// ErrMediaNotFound is returned when a media record cannot be found
	ErrMediaNotFound = errors.New("media not found")

	// ErrUnsupportedType is returned when an upload has a content type the catalog does not accept
	ErrUnsupportedType = errors.New("unsupported media type")

	// ErrFileTooLarge is returned when an upload exceeds the size limit
	ErrFileTooLarge = errors.New("file too large")

	// ErrStorageKeyNotFound is returned when a stored blob does not exist
	ErrStorageKeyNotFound = errors.New("storage key not found")

	// ErrProbeUnsupported is returned by probers that cannot read a content type
	ErrProbeUnsupported = errors.New("probe not supported for content type")
)

// UploadError carries the user-facing reason an upload was refused
type UploadError struct {
	Err     error
	Message string
}

func (e *UploadError) Error() string {
	return e.Message
}

func (e *UploadError) Unwrap() error {
	return e.Err
}
