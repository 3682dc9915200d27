package evm

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/suistake/bridge-saga-service/internal/config"
	"github.com/suistake/bridge-saga-service/internal/locker"
	"github.com/suistake/bridge-saga-service/internal/types"
)

// EvmGateway routes calls to the ChainClient of the requested source chain.
type EvmGateway struct {
	chains           map[string]*ChainClient
	ids              []string
	destinationChain uint16
}

func NewEvmGateway(cfg *config.EvmConfig, destinationChain uint16, nonceLocker locker.Locker) (*EvmGateway, error) {
	chains := make(map[string]*ChainClient, len(cfg.Chains))
	for name, chainCfg := range cfg.Chains {
		client, err := NewChainClient(name, chainCfg, cfg, nonceLocker)
		if err != nil {
			return nil, err
		}
		chains[name] = client
	}
	return newEvmGateway(chains, destinationChain), nil
}

func newEvmGateway(chains map[string]*ChainClient, destinationChain uint16) *EvmGateway {
	ids := make([]string, 0, len(chains))
	for id := range chains {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return &EvmGateway{chains: chains, ids: ids, destinationChain: destinationChain}
}

func (g *EvmGateway) Chain(chainID string) (*ChainClient, error) {
	client, ok := g.chains[chainID]
	if !ok {
		return nil, fmt.Errorf("unsupported source chain %s", chainID)
	}
	return client, nil
}

func (g *EvmGateway) ChainIDs() []string {
	return append([]string(nil), g.ids...)
}

func (g *EvmGateway) GetAccountStatus(ctx context.Context, chainID, user string) (*types.AccountStatus, error) {
	client, err := g.Chain(chainID)
	if err != nil {
		return nil, err
	}
	return client.AccountStatus(ctx, user)
}

func (g *EvmGateway) Finalize(
	ctx context.Context, chainID, user string, repay, payout decimal.Decimal,
) (types.PendingTransaction, error) {
	client, err := g.Chain(chainID)
	if err != nil {
		return nil, err
	}
	return client.FinalizeRewards(ctx, user, repay, payout)
}

func (g *EvmGateway) Quote(ctx context.Context, asset types.Asset) (*types.BridgeQuote, error) {
	client, err := g.Chain(asset.ChainId)
	if err != nil {
		return nil, err
	}
	return client.QuoteBridge(ctx, asset.Amount)
}

// ExecuteSponsoredBridge moves asset from the source chain account from to
// the destination chain account to.
func (g *EvmGateway) ExecuteSponsoredBridge(
	ctx context.Context, asset types.Asset, from, to string,
) (*types.BridgeOperation, error) {
	client, err := g.Chain(asset.ChainId)
	if err != nil {
		return nil, err
	}
	txHash, err := client.SponsoredBridge(ctx, from, asset.Amount, g.destinationChain, to)
	if err != nil {
		return nil, err
	}
	return &types.BridgeOperation{
		SourceTxHash: txHash,
		Status:       types.BridgePending,
	}, nil
}

func (g *EvmGateway) RedeemVAA(ctx context.Context, chainID string, vaa []byte) (types.PendingTransaction, error) {
	client, err := g.Chain(chainID)
	if err != nil {
		return nil, err
	}
	return client.CompleteTransfer(ctx, vaa)
}

// Ping succeeds when every configured chain answers.
func (g *EvmGateway) Ping(ctx context.Context) error {
	for _, id := range g.ids {
		if err := g.chains[id].Ping(ctx); err != nil {
			return fmt.Errorf("evm chain %s: %w", id, err)
		}
	}
	return nil
}
