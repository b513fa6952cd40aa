package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wisemik/veretha-backend/internal/provider/circle"
	"github.com/wisemik/veretha-backend/internal/provider/proxycurl"
	"github.com/wisemik/veretha-backend/internal/provider/worldid"
	"github.com/wisemik/veretha-backend/pkg/response"
	"github.com/wisemik/veretha-backend/pkg/xerrors"
)

func decodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// writeError maps service and provider failures onto HTTP statuses.
// Provider errors are relayed with the provider's own status and detail.
func writeError(w http.ResponseWriter, err error) {
	var circleErr *circle.APIError
	if errors.As(err, &circleErr) {
		status := circleErr.StatusCode
		if status < 400 {
			// 2xx with a broken body, surface as bad gateway
			status = http.StatusBadGateway
		}
		response.ErrorDetail(w, status, "wallet provider error", circleErr.Message)
		return
	}

	var wldErr *worldid.APIError
	if errors.As(err, &wldErr) {
		response.Error(w, wldErr.StatusCode, wldErr.Detail)
		return
	}

	var pcErr *proxycurl.APIError
	if errors.As(err, &pcErr) {
		response.ErrorDetail(w, pcErr.StatusCode, "profile provider error", pcErr.Body)
		return
	}

	switch {
	case errors.Is(err, xerrors.ErrEmailAlreadyInUse),
		errors.Is(err, xerrors.ErrInvalidCredentials),
		errors.Is(err, xerrors.ErrInvalidEmailFormat),
		errors.Is(err, xerrors.ErrPasswordRequired),
		errors.Is(err, xerrors.ErrInvalidVerification),
		errors.Is(err, xerrors.ErrInvalidInput):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, xerrors.ErrUserNotFound),
		errors.Is(err, xerrors.ErrWalletNotFound),
		errors.Is(err, xerrors.ErrVerificationNotFound),
		errors.Is(err, xerrors.ErrNotFound):
		response.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, xerrors.ErrUnauthorized):
		response.Error(w, http.StatusUnauthorized, err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
