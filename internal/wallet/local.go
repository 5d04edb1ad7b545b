package wallet

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"

	"golang.org/x/crypto/sha3"

	"github.com/rocketscienceinc/mines-backend/internal/apperror"
	"github.com/rocketscienceinc/mines-backend/internal/entity"
)

// LocalWallet accepts every well-formed account and applies every transaction.
// It keeps a sequence number per account so each transaction gets a distinct
// hash.
type LocalWallet struct {
	mu        sync.Mutex
	sequences map[string]uint64
}

func NewLocalWallet() *LocalWallet {
	return &LocalWallet{sequences: make(map[string]uint64)}
}

func (that *LocalWallet) Connect(_ context.Context, address string) (*Account, error) {
	addr, err := entity.NormalizeAddress(address)
	if err != nil {
		return nil, err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	seq, ok := that.sequences[addr]
	if !ok {
		that.sequences[addr] = 0
	}

	return &Account{Address: addr, SequenceNumber: seq}, nil
}

// SignAndSubmitTransaction applies tx for any well-formed sender, connected in
// this process or not, so sessions survive a restart of the server.
func (that *LocalWallet) SignAndSubmitTransaction(_ context.Context, sender string, tx entity.Transaction) (*TxResult, error) {
	addr, err := entity.NormalizeAddress(sender)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrWalletNotConnected, err)
	}

	payload, err := json.Marshal(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction: %w", err)
	}

	that.mu.Lock()
	seq := that.sequences[addr]
	that.sequences[addr] = seq + 1
	that.mu.Unlock()

	hash := sha3.New256()
	hash.Write([]byte(addr))
	hash.Write(binary.BigEndian.AppendUint64(nil, seq))
	hash.Write(payload)

	return &TxResult{
		Hash:     "0x" + hex.EncodeToString(hash.Sum(nil)),
		Success:  true,
		VMStatus: "Executed successfully",
	}, nil
}
