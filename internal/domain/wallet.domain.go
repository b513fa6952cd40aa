// internal/domain/wallet.domain.go
package domain

import "time"

// Wallet is a custodial wallet provisioned at Circle for a user.
// The provider holds the keys; we only keep the identifiers.
type Wallet struct {
	ID          string    `json:"id"` // Circle wallet ID
	UserID      int64     `json:"user_id"`
	WalletSetID string    `json:"wallet_set_id"`
	Address     string    `json:"address"`
	Blockchain  string    `json:"blockchain"`
	CreatedAt   time.Time `json:"created_at"`
}
