package web

import (
	"bytes"
	"errors"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/vcfcsv/internal/core"
	"github.com/JonMunkholm/vcfcsv/internal/fsutil"
	"github.com/JonMunkholm/vcfcsv/internal/logging"
)

// Response headers carrying conversion counts.
const (
	HeaderProcessed = "X-Contacts-Processed"
	HeaderSkipped   = "X-Contacts-Skipped"
	HeaderRunID     = "X-Run-ID"
)

// multipartOverhead is allowed on top of the file size limit for the
// multipart envelope.
const multipartOverhead = 1 << 20

// maxMemory is the part of a multipart form kept in memory; larger files
// spill to temporary files.
const maxMemory = 8 << 20

// handleIndex renders the upload form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	templ.Handler(uploadPage(s.cfg.Upload.MaxFileSize)).ServeHTTP(w, r)
}

// handleHealth reports liveness and conversion slot usage.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"conversions": s.limiter.Status(),
	})
}

// handleConvert converts an uploaded vCard file and returns the CSV as an
// attachment. The whole CSV is buffered so that a failed conversion can
// still produce a JSON error.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			err = core.ErrNoFile
		}
		s.respondError(w, r, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			err = core.ErrNoFile
		}
		s.respondError(w, r, err)
		return
	}
	defer file.Close()

	switch {
	case header.Size > maxSize:
		s.respondError(w, r, core.ErrUploadTooLarge)
		return
	case header.Size == 0:
		s.respondError(w, r, core.ErrEmptyUpload)
		return
	}

	if err := s.limiter.Acquire(r.Context()); err != nil {
		s.respondError(w, r, err)
		return
	}
	defer s.limiter.Release()

	var out bytes.Buffer
	res, err := s.service.Convert(r.Context(), file, &out)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info("upload converted",
		"file", header.Filename,
		"run_id", res.RunID,
		"processed", res.Processed,
		"skipped", res.Skipped,
	)

	h := w.Header()
	h.Set("Content-Type", "text/csv; charset=utf-8")
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": outputName(header.Filename),
	}))
	h.Set("Content-Length", strconv.Itoa(out.Len()))
	h.Set(HeaderProcessed, strconv.Itoa(res.Processed))
	h.Set(HeaderSkipped, strconv.Itoa(res.Skipped))
	h.Set(HeaderRunID, res.RunID)
	w.WriteHeader(http.StatusOK)
	out.WriteTo(w)
}

// outputName derives the download name from the uploaded file name.
func outputName(uploaded string) string {
	// Browsers on Windows may send a full path.
	base := filepath.Base(strings.ReplaceAll(uploaded, `\`, "/"))
	if base == "." || base == "/" || base == "" {
		base = "contacts.vcf"
	}
	ext := filepath.Ext(base)
	if ext == base {
		ext = ""
	}
	return strings.TrimSuffix(base, ext) + fsutil.OutputExtension
}
