// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-file-keeper/internal/app"
	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/internal/utils"
	"github.com/MKhiriev/go-file-keeper/models"
	"github.com/go-chi/chi/v5"
)

const (
	uploadFormField = "file"

	// multipartMemory is how much of a multipart body is kept in memory
	// before the remainder spills to temporary files.
	multipartMemory = 8 << 20

	defaultContentType = "application/octet-stream"

	dispositionAttachment = "attachment"
	dispositionInline     = "inline"
)

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoUserInContext)
		return
	}

	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		log.Err(err).Msg("error parsing multipart form")
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, ErrFileTooLarge)
			return
		}
		writeError(w, r, ErrNoFileUploaded)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(uploadFormField)
	if err != nil {
		log.Err(err).Msg("no file in multipart form")
		writeError(w, r, ErrNoFileUploaded)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType
	}

	fileID, err := h.services.FileService.Upload(r.Context(), models.UploadRequest{
		UserID:      userID,
		FileName:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
	}, file)
	if err != nil {
		log.Err(err).Str("file_name", header.Filename).Msg("upload failed")
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.UploadResponse{Message: app.MsgFileUploaded, FileID: fileID}, http.StatusOK)
}

func (h *Handler) listFiles(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoUserInContext)
		return
	}

	files, err := h.services.FileService.List(r.Context(), userID)
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("error listing files")
		writeError(w, r, err)
		return
	}
	if files == nil {
		files = []models.UploadedFile{}
	}

	utils.WriteJSON(w, files, http.StatusOK)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	h.streamFile(w, r, dispositionAttachment)
}

func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	h.streamFile(w, r, dispositionInline)
}

func (h *Handler) streamFile(w http.ResponseWriter, r *http.Request, disposition string) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoUserInContext)
		return
	}

	fileID, err := parseFileID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	file, content, err := h.services.FileService.Download(r.Context(), userID, fileID)
	if err != nil {
		logger.FromRequest(r).Err(err).Int64("file_id", fileID).Msg("download refused")
		writeError(w, r, err)
		return
	}
	defer content.Close()

	writeFile(w, r, file, content, disposition)
}

// serveUpload streams a blob addressed by its storage key. The key alone
// grants nothing: the row holding it must belong to the caller.
func (h *Handler) serveUpload(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoUserInContext)
		return
	}

	file, content, err := h.services.FileService.OpenByStorageKey(r.Context(), userID, chi.URLParam(r, "name"))
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("raw blob access refused")
		writeError(w, r, err)
		return
	}
	defer content.Close()

	writeFile(w, r, file, content, dispositionInline)
}

func (h *Handler) deleteFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoUserInContext)
		return
	}

	fileID, err := parseFileID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.FileService.Delete(r.Context(), userID, fileID); err != nil {
		logger.FromRequest(r).Err(err).Int64("file_id", fileID).Msg("delete refused")
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgFileDeleted}, http.StatusOK)
}

func parseFileID(r *http.Request) (int64, error) {
	fileID, err := strconv.ParseInt(chi.URLParam(r, "fileId"), 10, 64)
	if err != nil {
		return 0, ErrInvalidFileID
	}
	return fileID, nil
}

// writeFile sets the content headers from the stored metadata and copies
// content to w. Inline responses are sandboxed so that uploaded markup
// cannot run scripts on this origin.
func writeFile(w http.ResponseWriter, r *http.Request, file models.UploadedFile, content io.Reader, disposition string) {
	contentType := file.ContentType
	if contentType == "" {
		contentType = defaultContentType
	}

	header := w.Header()
	header.Set("Content-Type", contentType)
	header.Set("Content-Length", strconv.FormatInt(file.Size, 10))
	header.Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": file.FileName}))
	header.Set("X-Content-Type-Options", "nosniff")
	if disposition == dispositionInline {
		header.Set("Content-Security-Policy", "sandbox")
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, content); err != nil {
		// headers are already sent, the client sees a truncated body
		logger.FromRequest(r).Err(err).Int64("file_id", file.FileID).Msg("error streaming file")
	}
}
