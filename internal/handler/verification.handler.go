package handler

import (
	"net/http"

	"github.com/wisemik/veretha-backend/internal/domain"
	"github.com/wisemik/veretha-backend/internal/provider/worldid"
	"github.com/wisemik/veretha-backend/internal/service"
	"github.com/wisemik/veretha-backend/pkg/response"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type VerificationHandler struct {
	service *service.VerificationService
	logger  *zap.Logger
}

func NewVerificationHandler(s *service.VerificationService, logger *zap.Logger) *VerificationHandler {
	return &VerificationHandler{service: s, logger: logger}
}

// VerifyProof relays a World ID proof and answers with the provider verdict.
func (h *VerificationHandler) VerifyProof(w http.ResponseWriter, r *http.Request) {
	var req worldid.VerifyRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.logger.Info("verifying credential", zap.String("action", req.Action))

	if _, err := h.service.VerifyProof(r.Context(), &req); err != nil {
		h.logger.Warn("credential verification failed", zap.Error(err))
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{
		"code":   "success",
		"detail": "This action verified correctly!",
	})
}

type setVerifiedRequest struct {
	Email              string `json:"email"`
	VerificationStatus string `json:"verification_status"`
}

// SetVerified records the verification level for an email.
func (h *VerificationHandler) SetVerified(w http.ResponseWriter, r *http.Request) {
	var req setVerifiedRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" {
		response.Error(w, http.StatusBadRequest, "email required")
		return
	}

	status := domain.VerificationStatus(req.VerificationStatus)
	if err := h.service.SetStatus(r.Context(), req.Email, status); err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{
		"email":    req.Email,
		"verified": req.VerificationStatus,
	})
}

// GetVerified returns the verification level for an email.
func (h *VerificationHandler) GetVerified(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email == "" {
		response.Error(w, http.StatusBadRequest, "email required")
		return
	}

	status, err := h.service.GetStatus(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{
		"email":    email,
		"verified": string(status),
	})
}
