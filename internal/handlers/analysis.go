package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/perceptlab/insight-api/internal/analysis"
	"github.com/perceptlab/insight-api/internal/models"
	"github.com/perceptlab/insight-api/internal/services"
	"github.com/perceptlab/insight-api/internal/utils"
)

type AnalysisHandler struct {
	service     services.AnalysisService
	logger      *utils.Logger
	maxFileSize int64
}

func NewAnalysisHandler(service services.AnalysisService, logger *utils.Logger, maxFileSize int64) *AnalysisHandler {
	return &AnalysisHandler{
		service:     service,
		logger:      logger,
		maxFileSize: maxFileSize,
	}
}

// TranscribeAudio handles the conversation skill: base64 audio in, full
// transcription result out.
func (h *AnalysisHandler) TranscribeAudio(w http.ResponseWriter, r *http.Request) {
	var req models.TranscribeAudioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, utils.NewBadRequestError("Invalid JSON body"))
		return
	}

	if req.Audio == "" {
		h.respondError(w, utils.NewBadRequestError("No audio data provided"))
		return
	}

	result, err := h.service.ProcessAudio(r.Context(), req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// DescribeImage handles the image skill.
func (h *AnalysisHandler) DescribeImage(w http.ResponseWriter, r *http.Request) {
	var req models.DescribeImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, utils.NewBadRequestError("Invalid JSON body"))
		return
	}

	if req.Image == "" {
		h.respondError(w, utils.NewBadRequestError("No image provided"))
		return
	}

	description, err := h.service.DescribeImage(r.Context(), req.Image)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, models.DescribeImageResponse{Description: description})
}

// Summarize handles the document skill's JSON flow ({url} or {text}).
func (h *AnalysisHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req models.SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, utils.NewBadRequestError("Invalid JSON body"))
		return
	}

	if req.URL == "" && req.Text == "" {
		h.respondError(w, utils.NewBadRequestError("No content to summarize"))
		return
	}

	summary, err := h.service.SummarizeContent(r.Context(), req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, models.SummarizeResponse{Summary: summary})
}

// SummarizeUpload handles the document skill's multipart flow: a .txt,
// .pdf or .docx file is extracted server-side and summarized.
func (h *AnalysisHandler) SummarizeUpload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxFileSize {
		h.respondError(w, utils.NewBadRequestError("File size exceeds the upload limit"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)

	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			h.respondError(w, utils.NewBadRequestError("File size exceeds the upload limit"))
			return
		}
		h.respondError(w, utils.NewBadRequestError("Invalid form data"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, utils.NewBadRequestError("No file provided"))
		return
	}
	defer file.Close()

	contentType := determineContentType(header.Filename, header.Header.Get("Content-Type"))

	h.logger.Info("Document upload",
		"filename", header.Filename,
		"reported_content_type", header.Header.Get("Content-Type"),
		"determined_content_type", contentType)

	data, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
	if err != nil {
		h.respondError(w, utils.NewInternalError("Failed to read file"))
		return
	}
	if int64(len(data)) > h.maxFileSize {
		h.respondError(w, utils.NewBadRequestError("File size exceeds the upload limit"))
		return
	}
	if len(data) == 0 {
		h.respondError(w, utils.NewBadRequestError("Uploaded file is empty"))
		return
	}

	summary, err := h.service.SummarizeUpload(r.Context(), data, contentType)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, models.SummarizeResponse{Summary: summary})
}

// determineContentType maps the filename extension to a MIME type, falling
// back to the header the client sent. The extension wins because browsers
// are inconsistent about DOCX and plain-text MIME types.
func determineContentType(filename, headerContentType string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".txt":
		return "text/plain"
	}
	return headerContentType
}

func (h *AnalysisHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", "error", err)
	}
}

// respondError maps classified analysis failures and AppErrors onto the
// edge contract: {"error": message} with a status per failure kind. Raw
// backend diagnostics stay in the logs.
func (h *AnalysisHandler) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	var appErr *utils.AppError
	var classified *analysis.Error

	switch {
	case errors.As(err, &appErr):
		status = appErr.StatusCode
		message = appErr.Message
	case errors.As(err, &classified):
		status = statusForKind(classified.Kind)
		message = classified.Message
		if classified.Detail != "" {
			h.logger.Error("Backend diagnostics", "kind", classified.Kind, "detail", classified.Detail)
		}
	}

	h.logger.Error("Request error", "status", status, "error", message)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func statusForKind(kind analysis.ErrorKind) int {
	switch kind {
	case analysis.KindMissingCredential:
		return http.StatusInternalServerError
	case analysis.KindUnsupportedFormat, analysis.KindMalformedInput:
		return http.StatusBadRequest
	case analysis.KindFetchFailed:
		return http.StatusBadGateway
	case analysis.KindQuotaExceeded:
		return http.StatusPaymentRequired
	default:
		return http.StatusBadGateway
	}
}
