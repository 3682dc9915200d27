package utils

import (
	"encoding/base64"
	"errors"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

var suiAddressRegex = regexp.MustCompile(`^0x[0-9a-fA-F]{1,64}$`)

// IsValidEvmAddress checks if the provided string is a hex encoded 20 byte address.
func IsValidEvmAddress(address string) bool {
	return common.IsHexAddress(address)
}

// IsValidSuiAddress checks the 0x-prefixed hex format of a Sui address.
func IsValidSuiAddress(address string) bool {
	return suiAddressRegex.MatchString(address)
}

// ParsePositiveAmount parses a decimal string and rejects zero, negative and
// non-numeric input.
func ParsePositiveAmount(amount string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(amount)
	if trimmed == "" {
		return decimal.Zero, errors.New("amount is empty")
	}
	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, err
	}
	if !value.IsPositive() {
		return decimal.Zero, errors.New("amount must be positive")
	}
	return value, nil
}

// IsBase64Encoded checks if the given string is a valid Base64 encoded string.
// Note: it does not check the actual content of the string.
func IsBase64Encoded(s string) bool {
	if len(s)%4 != 0 {
		return false
	}
	base64Regex := regexp.MustCompile(`^[a-zA-Z0-9+/]*={0,2}$`)
	if !base64Regex.MatchString(s) {
		return false
	}
	_, err := base64.StdEncoding.DecodeString(s)
	return err == nil
}
