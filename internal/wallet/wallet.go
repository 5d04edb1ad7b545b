package wallet

import (
	"context"

	"github.com/rocketscienceinc/mines-backend/internal/entity"
)

// Account is a connected ledger account.
type Account struct {
	Address        string `json:"address"`
	SequenceNumber uint64 `json:"sequence_number,string"`
}

// TxResult is the outcome of a submitted transaction once the ledger has
// executed it.
type TxResult struct {
	Hash     string `json:"hash"`
	Success  bool   `json:"success"`
	VMStatus string `json:"vm_status"`
}

// Wallet connects accounts and submits transactions on their behalf. A
// returned error means the transaction was not applied on the ledger.
type Wallet interface {
	Connect(ctx context.Context, address string) (*Account, error)
	SignAndSubmitTransaction(ctx context.Context, sender string, tx entity.Transaction) (*TxResult, error)
}
