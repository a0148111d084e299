// Package chainsim derives simulated chain identifiers.
//
// Nothing here is a real key, signature or digest chain. Addresses and hashes
// are sha256 based display strings that are unique for practical purposes only.
package chainsim

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// WalletAddress returns a 0x-prefixed 40 hex char handle for userID created at t.
func WalletAddress(userID string, t time.Time) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s-%d", userID, t.UnixNano())))
	return "0x" + hex.EncodeToString(sum[:])[:40]
}

// TransactionHash returns a 0x-prefixed pseudo-hash for (address, amount, t).
func TransactionHash(address string, amount decimal.Decimal, t time.Time) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s-%s-%d", address, amount.String(), t.UnixNano())))
	return "0x" + hex.EncodeToString(sum[:])
}

// ContentHash returns the hex sha256 of content.
func ContentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
