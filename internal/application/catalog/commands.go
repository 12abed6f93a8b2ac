package catalog

// UploadRequest describes a file waiting on local disk to enter the catalog
type UploadRequest struct {
	// Name is the original filename; its extension decides the media type
	Name     string
	MIMEType string
	Size     int64
	// Path is where the bytes can be read from while the upload runs
	Path string
}

// Upload progress milestones
const (
	ProgressStarted   = 0
	ProgressValidated = 30
	ProgressProbed    = 80
	ProgressDone      = 100
)
