package entity

import "strconv"

const (
	DefaultContractModule = "0x1::mines_game"

	FunctionInitializeGame = "initialize_game"
	FunctionRevealTile     = "reveal_tile"
	FunctionCashOut        = "cash_out"
)

// Transaction is an entry function call on the Mines contract. The wallet
// signs and submits it; the game only needs to know if it succeeded.
type Transaction struct {
	Function          string   `json:"function"`
	TypeArguments     []string `json:"type_arguments"`
	FunctionArguments []string `json:"arguments"`
}

func InitializeGameTx(module string, bet float64) Transaction {
	return newTransaction(module, FunctionInitializeGame, strconv.FormatFloat(bet, 'f', -1, 64))
}

func RevealTileTx(module string, row, col int) Transaction {
	return newTransaction(module, FunctionRevealTile, strconv.Itoa(row), strconv.Itoa(col))
}

func CashOutTx(module string) Transaction {
	return newTransaction(module, FunctionCashOut)
}

func newTransaction(module, function string, args ...string) Transaction {
	if module == "" {
		module = DefaultContractModule
	}

	if args == nil {
		args = []string{}
	}

	return Transaction{
		Function:          module + "::" + function,
		TypeArguments:     []string{},
		FunctionArguments: args,
	}
}
