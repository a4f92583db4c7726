package wallets

import "github.com/google/uuid"

// Store manages data regarding wallets.
type Store interface {
	// Get wallet details.
	Wallet(id uuid.UUID) (Wallet, error)

	// List all wallets owned by a user.
	OwnerWallets(ownerID uuid.UUID) ([]Wallet, error)

	// Insert a new wallet.
	InsertWallet(w *Wallet) error
}
