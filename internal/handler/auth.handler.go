package handler

import (
	"net/http"

	"github.com/wisemik/veretha-backend/internal/service"
	"github.com/wisemik/veretha-backend/pkg/response"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service *service.AuthService
	logger  *zap.Logger
}

func NewAuthHandler(s *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{service: s, logger: logger}
}

// Register creates a new account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.logger.Warn("register failed", zap.String("email", req.Email), zap.Error(err))
		writeError(w, err)
		return
	}

	h.logger.Info("user registered", zap.Int64("user_id", user.ID))
	response.JSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  interface{} `json:"user"`
	Token string      `json:"token"`
}

// Login checks credentials and returns the profile plus a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, loginResponse{User: user, Token: token})
}
