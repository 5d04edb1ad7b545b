package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rocketscienceinc/mines-backend/internal/apperror"
	"github.com/rocketscienceinc/mines-backend/internal/entity"
)

const maxErrorBody = 512

// RestWallet talks to a ledger gateway that holds the account keys and signs
// on the player's behalf.
type RestWallet struct {
	logger  *slog.Logger
	baseURL string
	client  *http.Client
}

type submitRequest struct {
	Sender  string       `json:"sender"`
	Payload entryPayload `json:"payload"`
}

type entryPayload struct {
	Type string `json:"type"`
	entity.Transaction
}

func NewRestWallet(logger *slog.Logger, baseURL string, timeout time.Duration) *RestWallet {
	return &RestWallet{
		logger:  logger,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (that *RestWallet) Connect(ctx context.Context, address string) (*Account, error) {
	log := that.logger.With("method", "Connect")

	addr, err := entity.NormalizeAddress(address)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, that.baseURL+"/v1/accounts/"+url.PathEscape(addr), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build account request: %w", err)
	}

	var account Account
	if err = that.do(req, &account); err != nil {
		log.Error("failed to fetch account", "address", addr, "error", err)
		return nil, fmt.Errorf("%w: %w", apperror.ErrWalletNotConnected, err)
	}

	if account.Address == "" {
		account.Address = addr
	}

	return &account, nil
}

func (that *RestWallet) SignAndSubmitTransaction(ctx context.Context, sender string, tx entity.Transaction) (*TxResult, error) {
	log := that.logger.With("method", "SignAndSubmitTransaction", "function", tx.Function)

	body, err := json.Marshal(submitRequest{
		Sender:  sender,
		Payload: entryPayload{Type: "entry_function_payload", Transaction: tx},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, that.baseURL+"/v1/transactions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build transaction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var result TxResult
	if err = that.do(req, &result); err != nil {
		log.Error("failed to submit transaction", "error", err)
		return nil, fmt.Errorf("%w: %w", apperror.ErrTransactionFailed, err)
	}

	if !result.Success {
		log.Warn("transaction was not applied", "hash", result.Hash, "vm_status", result.VMStatus)
		return &result, fmt.Errorf("%w: %s", apperror.ErrTransactionFailed, result.VMStatus)
	}

	log.Debug("transaction applied", "hash", result.Hash)

	return &result, nil
}

func (that *RestWallet) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := that.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
