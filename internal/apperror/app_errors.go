package apperror

import "errors"

var (
	ErrInvalidBet         = errors.New("bet amount must be a positive number")
	ErrInvalidAddress     = errors.New("invalid account address")
	ErrNoActiveRound      = errors.New("no active round")
	ErrRoundInProgress    = errors.New("round is still in progress")
	ErrWalletNotConnected = errors.New("wallet is not connected")
	ErrTransactionFailed  = errors.New("transaction failed")
	ErrInvalidToken       = errors.New("invalid session token")
)
