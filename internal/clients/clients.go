package clients

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/suistake/bridge-saga-service/internal/clients/bridgeapi"
	"github.com/suistake/bridge-saga-service/internal/clients/evm"
	"github.com/suistake/bridge-saga-service/internal/clients/relayer"
	"github.com/suistake/bridge-saga-service/internal/clients/sui"
	"github.com/suistake/bridge-saga-service/internal/config"
	"github.com/suistake/bridge-saga-service/internal/locker"
	"github.com/suistake/bridge-saga-service/internal/types"
)

type Clients struct {
	Evm       *evm.EvmGateway
	Sui       *sui.SuiClient
	Relayer   *relayer.RelayerClient
	BridgeApi *bridgeapi.BridgeApiClient

	// Composites handed to the sagas.
	Bridge       *SourceBridge
	ReturnBridge *ReturnBridge
	Wallet       *DestinationWallet
}

func New(cfg *config.Config, nonceLocker locker.Locker) (*Clients, error) {
	evmGateway, err := evm.NewEvmGateway(&cfg.Evm, cfg.Sui.WormholeChainId, nonceLocker)
	if err != nil {
		return nil, err
	}
	targets := make(map[string]relayer.BridgeTarget, len(cfg.Evm.Chains))
	for _, chainID := range evmGateway.ChainIDs() {
		chain, err := evmGateway.Chain(chainID)
		if err != nil {
			return nil, err
		}
		targets[chainID] = relayer.BridgeTarget{
			WormholeChainId: chain.WormholeChainId(),
			Recipient:       chain.RelayerAddress().Hex(),
		}
	}

	suiClient := sui.NewSuiClient(&cfg.Sui)
	relayerClient := relayer.NewRelayerClient(&cfg.Relayer, &cfg.Sui, targets)
	bridgeApiClient := bridgeapi.NewBridgeApiClient(&cfg.BridgeApi)

	return &Clients{
		Evm:          evmGateway,
		Sui:          suiClient,
		Relayer:      relayerClient,
		BridgeApi:    bridgeApiClient,
		Bridge:       &SourceBridge{evm: evmGateway, tracker: bridgeApiClient},
		ReturnBridge: &ReturnBridge{relayer: relayerClient, guardian: bridgeApiClient, evm: evmGateway},
		Wallet:       &DestinationWallet{relayer: relayerClient, sui: suiClient},
	}, nil
}

// Ping checks every upstream the sagas depend on.
func (c *Clients) Ping(ctx context.Context) error {
	if err := c.Evm.Ping(ctx); err != nil {
		return err
	}
	if err := c.Sui.Ping(ctx); err != nil {
		return fmt.Errorf("sui: %w", err)
	}
	if err := c.Relayer.Ping(ctx); err != nil {
		return fmt.Errorf("relayer: %w", err)
	}
	return nil
}

// SourceBridge submits on the source chain and tracks delivery through the bridge indexer.
type SourceBridge struct {
	evm     *evm.EvmGateway
	tracker *bridgeapi.BridgeApiClient
}

func (b *SourceBridge) Quote(ctx context.Context, asset types.Asset) (*types.BridgeQuote, error) {
	return b.evm.Quote(ctx, asset)
}

func (b *SourceBridge) ExecuteSponsoredBridge(
	ctx context.Context, asset types.Asset, from, to string,
) (*types.BridgeOperation, error) {
	return b.evm.ExecuteSponsoredBridge(ctx, asset, from, to)
}

func (b *SourceBridge) CheckStatus(ctx context.Context, sourceTxHash string) (types.BridgeStatus, error) {
	return b.tracker.CheckStatus(ctx, sourceTxHash)
}

func (b *SourceBridge) GetDetails(ctx context.Context, sourceTxHash string) (*types.BridgeDetails, error) {
	return b.tracker.GetDetails(ctx, sourceTxHash)
}

// ReturnBridge sends through the relayer, waits on the guardians and redeems on the source chain.
type ReturnBridge struct {
	relayer  *relayer.RelayerClient
	guardian *bridgeapi.BridgeApiClient
	evm      *evm.EvmGateway
}

func (b *ReturnBridge) BridgeToSource(
	ctx context.Context, owner, chainID string, amount decimal.Decimal,
) (*types.ReturnBridgeReceipt, error) {
	return b.relayer.BridgeToSource(ctx, owner, chainID, amount)
}

func (b *ReturnBridge) FetchVAA(ctx context.Context, receipt types.ReturnBridgeReceipt) ([]byte, error) {
	return b.guardian.FetchVAA(ctx, receipt)
}

func (b *ReturnBridge) RedeemVAA(ctx context.Context, chainID string, vaa []byte) (types.PendingTransaction, error) {
	return b.evm.RedeemVAA(ctx, chainID, vaa)
}

// DestinationWallet resolves accounts through the relayer and reads balances from the node.
type DestinationWallet struct {
	relayer *relayer.RelayerClient
	sui     *sui.SuiClient
}

func (w *DestinationWallet) Address(ctx context.Context, user string) (string, error) {
	return w.relayer.Address(ctx, user)
}

func (w *DestinationWallet) StableBalance(ctx context.Context, owner string) (decimal.Decimal, error) {
	return w.sui.StableBalance(ctx, owner)
}
