package gateway

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	catalogapp "github.com/narwhalmedia/splice/internal/application/catalog"
	"github.com/narwhalmedia/splice/internal/domain/catalog"
	grpcsvc "github.com/narwhalmedia/splice/internal/infrastructure/grpc"
	apperrors "github.com/narwhalmedia/splice/pkg/errors"
)

// multipartOverhead leaves room for part headers around the file body
const multipartOverhead = 1 << 20

// uploadMedia accepts a multipart form with a "file" part, spools it to
// disk and waits for the catalog upload job to finish
func (g *Gateway) uploadMedia(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	if g.uploads == nil {
		g.writeError(w, status.Error(codes.Unimplemented, "uploads are disabled"))
		return
	}

	limit := g.opts.MaxUploadBytes
	if limit <= 0 {
		limit = catalog.MaxUploadBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)

	reader, err := r.MultipartReader()
	if err != nil {
		g.writeError(w, status.Error(codes.InvalidArgument, "expected multipart/form-data"))
		return
	}

	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			g.writeError(w, status.Error(codes.InvalidArgument, `missing "file" part`))
			return
		}
		if err != nil {
			g.writeError(w, status.Error(codes.InvalidArgument, "reading multipart body: "+err.Error()))
			return
		}
		if part.FormName() != "file" {
			part.Close()
			continue
		}

		g.receive(w, r, part, limit)
		part.Close()
		return
	}
}

func (g *Gateway) receive(w http.ResponseWriter, r *http.Request, part *multipart.Part, limit int64) {
	name := filepath.Base(part.FileName())
	mimeType := contentType(part, name)

	if err := catalog.ValidateUpload(mimeType, 0, limit); err != nil {
		g.writeError(w, apperrors.Invalid(err.Error(), map[string]string{"file": err.Error()}, err))
		return
	}

	tmp, err := os.CreateTemp(g.opts.TempDir, "splice-upload-*")
	if err != nil {
		g.writeError(w, err)
		return
	}
	// the job owns the spool file once it has started
	handedOff := false
	defer func() {
		if !handedOff {
			os.Remove(tmp.Name())
		}
	}()

	// one byte past the limit is enough for the catalog to reject the size
	size, err := io.Copy(tmp, io.LimitReader(part, limit+1))
	closeErr := tmp.Close()
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			size = limit + 1
		} else {
			g.writeError(w, status.Error(codes.InvalidArgument, "reading upload: "+err.Error()))
			return
		}
	}
	if closeErr != nil {
		g.writeError(w, closeErr)
		return
	}

	job := g.uploads.Start(r.Context(), catalogapp.UploadRequest{
		Name:     name,
		MIMEType: mimeType,
		Size:     size,
		Path:     tmp.Name(),
	})
	handedOff = true
	go g.removeWhenDone(job, tmp.Name())
	g.logger.Debug("upload spooled",
		zap.String("job_id", job.ID().String()),
		zap.String("name", name),
		zap.Int64("size", size))

	record, err := job.Wait(r.Context())
	if err != nil {
		g.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, grpcsvc.ToProtoMedia(record))
}

// removeWhenDone deletes the spool file after the job has finished with it,
// even when the client went away first
func (g *Gateway) removeWhenDone(job *catalogapp.UploadJob, path string) {
	<-job.Done()
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		g.logger.Warn("failed to remove upload spool file", zap.String("path", path), zap.Error(err))
	}
}

// contentType prefers the part header and falls back to the file extension
func contentType(part *multipart.Part, name string) string {
	if v := part.Header.Get("Content-Type"); v != "" {
		if mt, _, err := mime.ParseMediaType(v); err == nil && mt != "application/octet-stream" {
			return mt
		}
	}
	if mt := mime.TypeByExtension(filepath.Ext(name)); mt != "" {
		if parsed, _, err := mime.ParseMediaType(mt); err == nil {
			return parsed
		}
	}
	return "application/octet-stream"
}
