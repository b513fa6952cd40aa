package circle

import (
	"context"
	"net/http"
)

type createWalletSetRequest struct {
	IdempotencyKey         string `json:"idempotencyKey"`
	EntitySecretCiphertext string `json:"entitySecretCiphertext"`
	Name                   string `json:"name"`
}

type walletSetResponse struct {
	Data struct {
		WalletSet struct {
			ID string `json:"id"`
		} `json:"walletSet"`
	} `json:"data"`
}

type createWalletRequest struct {
	IdempotencyKey         string           `json:"idempotencyKey"`
	EntitySecretCiphertext string           `json:"entitySecretCiphertext"`
	Blockchains            []string         `json:"blockchains"`
	Count                  int              `json:"count"`
	Metadata               []walletMetadata `json:"metadata"`
	WalletSetID            string           `json:"walletSetId"`
}

type walletMetadata struct {
	Name  string `json:"name"`
	RefID string `json:"refId"`
}

type createWalletResponse struct {
	Data struct {
		Wallets []struct {
			ID      string `json:"id"`
			Address string `json:"address"`
		} `json:"wallets"`
	} `json:"data"`
}

// CreateWalletSet provisions a new wallet set and returns its ID.
// The set name is the registrant's email, matching the provider console view.
func (c *Client) CreateWalletSet(ctx context.Context, name string) (string, error) {
	ciphertext, idemKey, err := c.Entity.Envelope()
	if err != nil {
		return "", err
	}

	var res walletSetResponse
	err = c.do(ctx, http.MethodPost, "/v1/w3s/developer/walletSets", createWalletSetRequest{
		IdempotencyKey:         idemKey,
		EntitySecretCiphertext: ciphertext,
		Name:                   name,
	}, &res)
	if err != nil {
		return "", err
	}

	if res.Data.WalletSet.ID == "" {
		return "", &APIError{StatusCode: http.StatusOK, Message: "walletSet.id missing in response"}
	}
	return res.Data.WalletSet.ID, nil
}

// CreateWallet provisions one wallet inside a wallet set and returns its
// ID and on-chain address.
func (c *Client) CreateWallet(ctx context.Context, walletSetID, name, refID string) (id, address string, err error) {
	ciphertext, idemKey, err := c.Entity.Envelope()
	if err != nil {
		return "", "", err
	}

	var res createWalletResponse
	err = c.do(ctx, http.MethodPost, "/v1/w3s/developer/wallets", createWalletRequest{
		IdempotencyKey:         idemKey,
		EntitySecretCiphertext: ciphertext,
		Blockchains:            []string{c.Blockchain},
		Count:                  1,
		Metadata:               []walletMetadata{{Name: name, RefID: refID}},
		WalletSetID:            walletSetID,
	}, &res)
	if err != nil {
		return "", "", err
	}

	if len(res.Data.Wallets) == 0 || res.Data.Wallets[0].ID == "" {
		return "", "", &APIError{StatusCode: http.StatusOK, Message: "wallets missing in response"}
	}
	return res.Data.Wallets[0].ID, res.Data.Wallets[0].Address, nil
}
