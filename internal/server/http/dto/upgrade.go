package dto

import "github.com/shopspring/decimal"

// UpgradeRequest selects the payment method. Amount only applies to crypto and
// must cover the Pro price.
type UpgradeRequest struct {
	Method string           `json:"method"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

// UpgradeResponse reports the outcome of an upgrade attempt.
type UpgradeResponse struct {
	Success     bool                 `json:"success"`
	Message     string               `json:"message"`
	Tier        string               `json:"tier,omitempty"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
}
