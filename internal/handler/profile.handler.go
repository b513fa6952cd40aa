package handler

import (
	"net/http"
	"strings"

	"github.com/wisemik/veretha-backend/internal/service"
	"github.com/wisemik/veretha-backend/pkg/response"

	"go.uber.org/zap"
)

type ProfileHandler struct {
	service *service.ProfileService
	logger  *zap.Logger
}

func NewProfileHandler(s *service.ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{service: s, logger: logger}
}

// LinkedInProfile looks up the profile behind a LinkedIn URL.
func (h *ProfileHandler) LinkedInProfile(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" || !strings.Contains(url, "linkedin.com/") {
		response.Error(w, http.StatusBadRequest, "a linkedin.com profile url is required")
		return
	}

	profile, err := h.service.Lookup(r.Context(), url)
	if err != nil {
		h.logger.Warn("linkedin lookup failed", zap.String("url", url), zap.Error(err))
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, profile)
}
