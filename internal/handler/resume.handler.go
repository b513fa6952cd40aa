package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/wisemik/veretha-backend/internal/service"
	"github.com/wisemik/veretha-backend/pkg/pdftext"
	"github.com/wisemik/veretha-backend/pkg/response"

	"go.uber.org/zap"
)

const maxUploadSize = 10 << 20 // 10 MB

type ResumeHandler struct {
	service *service.ResumeService
	logger  *zap.Logger
}

func NewResumeHandler(s *service.ResumeService, logger *zap.Logger) *ResumeHandler {
	return &ResumeHandler{service: s, logger: logger}
}

// readUploadedPDF pulls the "file" part out of a multipart form and
// extracts its plain text.
func readUploadedPDF(r *http.Request) (string, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return "", err
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	return pdftext.Extract(bytes.NewReader(data), int64(len(data)))
}

// ExtractText returns the plain text of an uploaded PDF resume.
func (h *ResumeHandler) ExtractText(w http.ResponseWriter, r *http.Request) {
	text, err := readUploadedPDF(r)
	if err != nil {
		if errors.Is(err, pdftext.ErrEmptyDocument) {
			response.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Warn("pdf extraction failed", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "could not read PDF file")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"text": text})
}

// Score rates a resume against a job description. The resume may arrive as
// an uploaded PDF ("file") or as form text ("resume_text").
func (h *ResumeHandler) Score(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid form data")
		return
	}

	jobDescription := r.FormValue("job_description")
	if jobDescription == "" {
		response.Error(w, http.StatusBadRequest, "job_description is required")
		return
	}

	resumeText := r.FormValue("resume_text")
	if resumeText == "" {
		var err error
		resumeText, err = readUploadedPDF(r)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "provide resume_text or a PDF file")
			return
		}
	}

	score, err := h.service.Score(r.Context(), resumeText, jobDescription)
	if err != nil {
		h.logger.Error("resume scoring failed", zap.Error(err))
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, score)
}
