package catalog

import "fmt"

// MaxUploadBytes is the largest file the catalog accepts
const MaxUploadBytes int64 = 500 * 1024 * 1024

// AllowedMIMETypes lists the content types accepted for upload
var AllowedMIMETypes = []string{
	"video/mp4",
	"video/webm",
	"video/quicktime",
	"audio/mp3",
	"audio/mpeg",
	"audio/wav",
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/gif",
}

// IsAllowedMIMEType reports whether uploads of mimeType are accepted
func IsAllowedMIMEType(mimeType string) bool {
	for _, allowed := range AllowedMIMETypes {
		if allowed == mimeType {
			return true
		}
	}
	return false
}

// ValidateUpload checks the content type and size of a file before it is
// stored. maxBytes of zero or less uses MaxUploadBytes.
func ValidateUpload(mimeType string, size, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = MaxUploadBytes
	}
	if !IsAllowedMIMEType(mimeType) {
		msg := fmt.Sprintf("Unsupported file type: %s. Please upload MP4, WebM, MP3, WAV, JPG, PNG, or GIF files.", mimeType)
		return &UploadError{Err: ErrUnsupportedType, Message: msg}
	}
	if size > maxBytes {
		return &UploadError{
			Err:     ErrFileTooLarge,
			Message: fmt.Sprintf("File size too large. Maximum size is %dMB.", maxBytes/(1024*1024)),
		}
	}
	return nil
}
