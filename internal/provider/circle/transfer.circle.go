package circle

import (
	"context"
	"net/http"
)

type transferRequest struct {
	IdempotencyKey         string   `json:"idempotencyKey"`
	EntitySecretCiphertext string   `json:"entitySecretCiphertext"`
	Amounts                []string `json:"amounts"`
	DestinationAddress     string   `json:"destinationAddress"`
	FeeLevel               string   `json:"feeLevel"`
	TokenID                string   `json:"tokenId"`
	WalletID               string   `json:"walletId"`
}

type transferResponse struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

type balanceResponse struct {
	Data struct {
		TokenBalances []struct {
			Amount string `json:"amount"`
			Token  struct {
				ID     string `json:"id"`
				Symbol string `json:"symbol"`
			} `json:"token"`
		} `json:"tokenBalances"`
	} `json:"data"`
}

// CreateTransfer moves tokens from a custodial wallet to a destination
// address and returns the provider transaction ID. Chain confirmation is the
// caller's problem; we relay the accepted transaction and stop there.
func (c *Client) CreateTransfer(ctx context.Context, walletID, destinationAddress, amount, tokenID, feeLevel string) (string, error) {
	ciphertext, idemKey, err := c.Entity.Envelope()
	if err != nil {
		return "", err
	}

	var res transferResponse
	err = c.do(ctx, http.MethodPost, "/v1/w3s/developer/transactions/transfer", transferRequest{
		IdempotencyKey:         idemKey,
		EntitySecretCiphertext: ciphertext,
		Amounts:                []string{amount},
		DestinationAddress:     destinationAddress,
		FeeLevel:               feeLevel,
		TokenID:                tokenID,
		WalletID:               walletID,
	}, &res)
	if err != nil {
		return "", err
	}

	if res.Data.ID == "" {
		return "", &APIError{StatusCode: http.StatusOK, Message: "transaction id missing in response"}
	}
	return res.Data.ID, nil
}

// WalletBalance returns the first token balance of a wallet, "0" when the
// wallet holds nothing yet.
func (c *Client) WalletBalance(ctx context.Context, walletID string) (string, error) {
	var res balanceResponse
	if err := c.do(ctx, http.MethodGet, "/v1/w3s/wallets/"+walletID+"/balances", nil, &res); err != nil {
		return "", err
	}

	if len(res.Data.TokenBalances) == 0 {
		return "0", nil
	}
	return res.Data.TokenBalances[0].Amount, nil
}
