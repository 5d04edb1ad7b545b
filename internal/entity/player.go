package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/mines-backend/internal/apperror"
)

const maxAddressDigits = 64

// Player is a connected wallet account. ID is the normalized account address.
type Player struct {
	ID     string `json:"id"`
	GameID string `json:"game_id,omitempty"`
}

// NormalizeAddress lowercases an account address and checks that it is "0x"
// followed by 1 to 64 hex digits.
func NormalizeAddress(address string) (string, error) {
	addr := strings.ToLower(strings.TrimSpace(address))

	digits, ok := strings.CutPrefix(addr, "0x")
	if !ok || digits == "" || len(digits) > maxAddressDigits {
		return "", fmt.Errorf("%w: %q", apperror.ErrInvalidAddress, address)
	}

	for _, r := range digits {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			return "", fmt.Errorf("%w: %q", apperror.ErrInvalidAddress, address)
		}
	}

	return addr, nil
}

// ShortAddress renders an address as "0x1234...abcd" for status lines.
func ShortAddress(address string) string {
	if len(address) <= 10 {
		return address
	}

	return address[:6] + "..." + address[len(address)-4:]
}
