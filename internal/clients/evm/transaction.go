package evm

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog/log"

	"github.com/suistake/bridge-saga-service/internal/types"
	"github.com/suistake/bridge-saga-service/internal/utils"
)

type pendingTransaction struct {
	client *ChainClient
	hash   common.Hash
}

func (c *ChainClient) pending(hash common.Hash) *pendingTransaction {
	return &pendingTransaction{client: c, hash: hash}
}

func (p *pendingTransaction) Hash() string {
	return p.hash.Hex()
}

// Wait polls for the receipt until it is mined or the receipt timeout elapses.
// RPC errors while polling are retried.
func (p *pendingTransaction) Wait(ctx context.Context) (*types.TxReceipt, error) {
	c := p.client
	var mined *ethtypes.Receipt
	err := utils.PollUntil(ctx, c.receiptPollInterval, c.receiptTimeout, func(ctx context.Context) (bool, error) {
		receipt, err := withClient(ctx, c, "eth_getTransactionReceipt",
			func(ctx context.Context, client *ethclient.Client) (*ethtypes.Receipt, error) {
				return client.TransactionReceipt(ctx, p.hash)
			},
		)
		if errors.Is(err, ethereum.NotFound) {
			return false, nil
		}
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("txHash", p.Hash()).Msg("failed to fetch receipt, will retry")
			return false, nil
		}
		mined = receipt
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	if mined == nil {
		return nil, nil
	}
	var blockNumber uint64
	if mined.BlockNumber != nil {
		blockNumber = mined.BlockNumber.Uint64()
	}
	return &types.TxReceipt{
		TxHash:      mined.TxHash.Hex(),
		BlockNumber: blockNumber,
		Succeeded:   mined.Status == ethtypes.ReceiptStatusSuccessful,
	}, nil
}
