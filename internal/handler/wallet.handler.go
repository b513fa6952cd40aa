package handler

import (
	"net/http"

	"github.com/wisemik/veretha-backend/internal/middleware"
	"github.com/wisemik/veretha-backend/internal/service"
	"github.com/wisemik/veretha-backend/pkg/response"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type WalletHandler struct {
	wallets *service.WalletService
	auth    *service.AuthService
	logger  *zap.Logger
}

func NewWalletHandler(wallets *service.WalletService, auth *service.AuthService, logger *zap.Logger) *WalletHandler {
	return &WalletHandler{wallets: wallets, auth: auth, logger: logger}
}

func userIDFromContext(r *http.Request) (int64, bool) {
	userID, ok := r.Context().Value(middleware.ContextUserID).(int64)
	return userID, ok && userID != 0
}

// CreateWallet provisions a custodial wallet for the authenticated user.
func (h *WalletHandler) CreateWallet(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.auth.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	wallet, err := h.wallets.CreateWallet(r.Context(), user)
	if err != nil {
		h.logger.Error("wallet creation failed", zap.Int64("user_id", userID), zap.Error(err))
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, wallet)
}

// GetWallet returns the authenticated user's wallet record.
func (h *WalletHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	wallet, err := h.wallets.GetUserWallet(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, wallet)
}

type transferRequest struct {
	WalletID           string `json:"wallet_id"`
	DestinationAddress string `json:"destination_address"`
	Amount             string `json:"amount"`
	TokenID            string `json:"token_id"`
	FeeLevel           string `json:"fee_level"`
}

// Transfer submits an outbound transfer from the user's custodial wallet.
func (h *WalletHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req transferRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.WalletID == "" || req.DestinationAddress == "" || req.Amount == "" {
		response.Error(w, http.StatusBadRequest, "wallet_id, destination_address and amount are required")
		return
	}

	// only allow transfers out of the caller's own wallet
	wallet, err := h.wallets.GetUserWallet(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if wallet.ID != req.WalletID {
		response.Error(w, http.StatusForbidden, "wallet does not belong to user")
		return
	}

	txID, err := h.wallets.Transfer(r.Context(), req.WalletID, req.DestinationAddress, req.Amount, req.TokenID, req.FeeLevel)
	if err != nil {
		h.logger.Error("transfer failed",
			zap.Int64("user_id", userID),
			zap.String("wallet_id", req.WalletID),
			zap.Error(err))
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"transaction_id": txID})
}

// Balance relays the provider balance for a wallet.
func (h *WalletHandler) Balance(w http.ResponseWriter, r *http.Request) {
	walletID := chi.URLParam(r, "walletID")
	if walletID == "" {
		response.Error(w, http.StatusBadRequest, "wallet ID required")
		return
	}

	amount, err := h.wallets.Balance(r.Context(), walletID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{
		"wallet_id": walletID,
		"amount":    amount,
	})
}
