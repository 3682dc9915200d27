package types

import (
	"github.com/shopspring/decimal"
)

type BridgeStatus string

const (
	BridgePending   BridgeStatus = "PENDING"
	BridgeCompleted BridgeStatus = "COMPLETED"
	BridgeFailed    BridgeStatus = "FAILED"
)

func (s BridgeStatus) String() string {
	return string(s)
}

func (s BridgeStatus) IsTerminal() bool {
	return s == BridgeCompleted || s == BridgeFailed
}

// Asset identifies an amount of a token on a chain. Symbol is informational,
// gateways resolve the token address from their chain config.
type Asset struct {
	ChainId string
	Symbol  string
	Amount  decimal.Decimal
}

// BridgeOperation is mutated only by status polling. Completed and Failed are terminal.
type BridgeOperation struct {
	SourceTxHash      string          `json:"source_tx_hash"`
	Status            BridgeStatus    `json:"status"`
	DestinationTxHash string          `json:"destination_tx_hash,omitempty"`
	DestinationAmount decimal.Decimal `json:"destination_amount"`
}

type BridgeDetails struct {
	DestinationTxHash string
	DestinationAmount *decimal.Decimal
}

type BridgeQuote struct {
	ChainId       string          `json:"chain_id"`
	AmountIn      decimal.Decimal `json:"amount_in"`
	AmountOut     decimal.Decimal `json:"amount_out"`
	EstimatedGas  uint64          `json:"estimated_gas"`
	SponsoredCost decimal.Decimal `json:"sponsored_cost"`
}

// ReturnBridgeReceipt identifies the cross-chain message emitted by a
// destination-to-source transfer. The signed VAA is keyed by
// (EmitterChain, Emitter, Sequence).
type ReturnBridgeReceipt struct {
	TxHash       string
	EmitterChain uint16
	Emitter      string
	Sequence     uint64
}

type SwapDirection string

const (
	UsdcToNative SwapDirection = "USDC_TO_SUI"
	NativeToUsdc SwapDirection = "SUI_TO_USDC"
)

type SwapResult struct {
	AmountOut decimal.Decimal
	TxHash    string
}
