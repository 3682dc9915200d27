package evm

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/suistake/bridge-saga-service/internal/config"
	"github.com/suistake/bridge-saga-service/internal/locker"
	"github.com/suistake/bridge-saga-service/internal/observability/metrics"
	"github.com/suistake/bridge-saga-service/internal/types"
)

const (
	stableDecimals = 6
	weiDecimals    = 18
	// one transaction per call submitted by SponsoredBridge
	sponsoredBridgeTxCount = 3
)

type contractCall struct {
	contract common.Address
	abi      abi.ABI
	method   string
	args     []interface{}
}

// ChainClient is the relayer's view of one source chain: escrow reads, escrow
// settlement and the token bridge. Transactions are signed with the relayer key.
type ChainClient struct {
	name                string
	cfg                 config.EvmChainConfig
	chainID             *big.Int
	key                 *ecdsa.PrivateKey
	relayer             common.Address
	escrow              common.Address
	tokenBridge         common.Address
	usdc                common.Address
	gasLimit            uint64
	requestTimeout      time.Duration
	receiptPollInterval time.Duration
	receiptTimeout      time.Duration
	locker              locker.Locker
}

func NewChainClient(
	name string, cfg config.EvmChainConfig, evmCfg *config.EvmConfig, nonceLocker locker.Locker,
) (*ChainClient, error) {
	key, err := parsePrivateKey(cfg.RelayerKey())
	if err != nil {
		return nil, fmt.Errorf("evm chain %s: %w", name, err)
	}
	return &ChainClient{
		name:                name,
		cfg:                 cfg,
		chainID:             big.NewInt(cfg.ChainId),
		key:                 key,
		relayer:             crypto.PubkeyToAddress(key.PublicKey),
		escrow:              common.HexToAddress(cfg.EscrowAddress),
		tokenBridge:         common.HexToAddress(cfg.TokenBridge),
		usdc:                common.HexToAddress(cfg.UsdcAddress),
		gasLimit:            evmCfg.GasLimit,
		requestTimeout:      evmCfg.RequestTimeout,
		receiptPollInterval: evmCfg.ReceiptPollInterval,
		receiptTimeout:      evmCfg.ReceiptTimeout,
		locker:              nonceLocker,
	}, nil
}

func parsePrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	hexKey = strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	if hexKey == "" {
		return nil, errors.New("relayer private key is not set")
	}
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return key, nil
}

// RelayerAddress is the account that pays gas and receives return-leg funds.
func (c *ChainClient) RelayerAddress() common.Address {
	return c.relayer
}

func (c *ChainClient) WormholeChainId() uint16 {
	return c.cfg.WormholeChainId
}

func (c *ChainClient) clientName() string {
	return "evm:" + c.name
}

// withClient runs f against each configured RPC endpoint in order until one succeeds.
func withClient[T any](
	ctx context.Context, c *ChainClient, method string, f func(ctx context.Context, client *ethclient.Client) (T, error),
) (res T, err error) {
	done := metrics.StartClientRequestDurationTimer(c.clientName(), method)
	defer func() { done(err) }()

	for _, url := range c.cfg.RpcUrls {
		res, err = callEndpoint(ctx, c.requestTimeout, url, f)
		if err == nil {
			return
		}
		if ctx.Err() != nil {
			return
		}
		if !errors.Is(err, ethereum.NotFound) {
			log.Ctx(ctx).Warn().Err(err).Str("chain", c.name).Str("method", method).
				Msgf("evm rpc call to %s failed", url)
		}
	}
	return
}

func callEndpoint[T any](
	ctx context.Context, timeout time.Duration, url string,
	f func(ctx context.Context, client *ethclient.Client) (T, error),
) (T, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	client, err := ethclient.DialContext(callCtx, url)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("dial rpc: %w", err)
	}
	defer client.Close()
	return f(callCtx, client)
}

func (c *ChainClient) Ping(ctx context.Context) error {
	_, err := withClient(ctx, c, "eth_blockNumber", func(ctx context.Context, client *ethclient.Client) (uint64, error) {
		return client.BlockNumber(ctx)
	})
	return err
}

func (c *ChainClient) AccountStatus(ctx context.Context, user string) (*types.AccountStatus, error) {
	if !common.IsHexAddress(user) {
		return nil, fmt.Errorf("invalid user address %q", user)
	}
	out, err := withClient(ctx, c, "getAccountStatus", func(ctx context.Context, client *ethclient.Client) ([]interface{}, error) {
		contract := bind.NewBoundContract(c.escrow, escrowABI, client, client, client)
		var out []interface{}
		err := contract.Call(&bind.CallOpts{Context: ctx}, &out, "getAccountStatus", common.HexToAddress(user))
		return out, err
	})
	if err != nil {
		return nil, fmt.Errorf("getAccountStatus: %w", err)
	}
	if len(out) != 4 {
		return nil, fmt.Errorf("getAccountStatus: unexpected output length %d", len(out))
	}
	escrowed, okEscrowed := out[0].(*big.Int)
	debt, okDebt := out[1].(*big.Int)
	reputation, okReputation := out[2].(*big.Int)
	blacklisted, okBlacklisted := out[3].(bool)
	if !okEscrowed || !okDebt || !okReputation || !okBlacklisted {
		return nil, errors.New("getAccountStatus: unexpected output types")
	}
	return &types.AccountStatus{
		EscrowedAmount:  fromBaseUnits(escrowed, stableDecimals),
		OutstandingDebt: fromBaseUnits(debt, stableDecimals),
		Reputation:      reputation.Uint64(),
		Blacklisted:     blacklisted,
	}, nil
}

func (c *ChainClient) FinalizeRewards(
	ctx context.Context, user string, repay, payout decimal.Decimal,
) (types.PendingTransaction, error) {
	if !common.IsHexAddress(user) {
		return nil, fmt.Errorf("invalid user address %q", user)
	}
	txs, err := c.submit(ctx, contractCall{
		contract: c.escrow,
		abi:      escrowABI,
		method:   "finalizeRewards",
		args: []interface{}{
			common.HexToAddress(user), toBaseUnits(repay, stableDecimals), toBaseUnits(payout, stableDecimals),
		},
	})
	if err != nil {
		return nil, err
	}
	return c.pending(txs[0].Hash()), nil
}

// SponsoredBridge pulls amount from the user's approved allowance into the
// relayer account, then locks it in the token bridge for recipient on the
// destination chain. It returns once the bridge transfer is mined.
func (c *ChainClient) SponsoredBridge(
	ctx context.Context, from string, amount decimal.Decimal, recipientChain uint16, recipient string,
) (string, error) {
	if !common.IsHexAddress(from) {
		return "", fmt.Errorf("invalid source address %q", from)
	}
	units := toBaseUnits(amount, stableDecimals)
	if units.Sign() <= 0 {
		return "", fmt.Errorf("amount %s is below the token precision", amount)
	}
	txs, err := c.submit(ctx,
		contractCall{
			contract: c.usdc,
			abi:      erc20ABI,
			method:   "transferFrom",
			args:     []interface{}{common.HexToAddress(from), c.relayer, units},
		},
		contractCall{
			contract: c.usdc,
			abi:      erc20ABI,
			method:   "approve",
			args:     []interface{}{c.tokenBridge, units},
		},
		contractCall{
			contract: c.tokenBridge,
			abi:      tokenBridgeABI,
			method:   "transferTokens",
			args: []interface{}{
				c.usdc, units, recipientChain, common.HexToHash(recipient), big.NewInt(0), uint32(time.Now().Unix()),
			},
		},
	)
	if err != nil {
		return "", err
	}
	bridgeTx := c.pending(txs[len(txs)-1].Hash())
	receipt, err := bridgeTx.Wait(ctx)
	if err != nil {
		return "", fmt.Errorf("bridge transaction %s: %w", bridgeTx.Hash(), err)
	}
	if receipt == nil || !receipt.Succeeded {
		return "", fmt.Errorf("bridge transaction %s reverted", bridgeTx.Hash())
	}
	return bridgeTx.Hash(), nil
}

func (c *ChainClient) CompleteTransfer(ctx context.Context, vaa []byte) (types.PendingTransaction, error) {
	txs, err := c.submit(ctx, contractCall{
		contract: c.tokenBridge,
		abi:      tokenBridgeABI,
		method:   "completeTransfer",
		args:     []interface{}{vaa},
	})
	if err != nil {
		return nil, err
	}
	return c.pending(txs[0].Hash()), nil
}

// QuoteBridge prices the sponsored bridge at the current gas price. The token
// bridge moves USDC one to one.
func (c *ChainClient) QuoteBridge(ctx context.Context, amount decimal.Decimal) (*types.BridgeQuote, error) {
	gasPrice, err := withClient(ctx, c, "eth_gasPrice", func(ctx context.Context, client *ethclient.Client) (*big.Int, error) {
		return client.SuggestGasPrice(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("suggest gas price: %w", err)
	}
	gas := c.gasLimit * sponsoredBridgeTxCount
	cost := new(big.Int).Mul(gasPrice, new(big.Int).SetUint64(gas))
	return &types.BridgeQuote{
		ChainId:       c.name,
		AmountIn:      amount,
		AmountOut:     amount,
		EstimatedGas:  gas,
		SponsoredCost: fromBaseUnits(cost, weiDecimals),
	}, nil
}

func (c *ChainClient) lockKey() string {
	return fmt.Sprintf("relayer-nonce:%s:%s", c.chainID.String(), strings.ToLower(c.relayer.Hex()))
}

// submit signs and broadcasts calls with consecutive relayer nonces. The nonce
// lock is held from the nonce read until the last broadcast. Once a
// transaction is out the remaining calls stay on the same endpoint.
func (c *ChainClient) submit(ctx context.Context, calls ...contractCall) ([]*ethtypes.Transaction, error) {
	unlock, err := c.locker.Lock(ctx, c.lockKey())
	if err != nil {
		return nil, fmt.Errorf("failed to acquire relayer lock: %w", err)
	}
	defer unlock()

	done := metrics.StartClientRequestDurationTimer(c.clientName(), calls[len(calls)-1].method)
	var sent []*ethtypes.Transaction
	for _, url := range c.cfg.RpcUrls {
		var sendErr error
		sent, sendErr = c.submitTo(ctx, url, calls)
		if sendErr == nil {
			done(nil)
			return sent, nil
		}
		err = sendErr
		if len(sent) > 0 || ctx.Err() != nil {
			break
		}
		log.Ctx(ctx).Warn().Err(sendErr).Str("chain", c.name).Msgf("relayer submission via %s failed", url)
	}
	if err == nil {
		err = errors.New("no rpc endpoints configured")
	}
	done(err)
	if len(sent) > 0 {
		return nil, fmt.Errorf("%s after %d of %d transactions were sent: %w", calls[len(sent)].method, len(sent), len(calls), err)
	}
	return nil, err
}

func (c *ChainClient) submitTo(ctx context.Context, url string, calls []contractCall) ([]*ethtypes.Transaction, error) {
	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dial rpc: %w", err)
	}
	defer client.Close()

	readCtx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()
	nonce, err := client.PendingNonceAt(readCtx, c.relayer)
	if err != nil {
		return nil, fmt.Errorf("pending nonce: %w", err)
	}
	gasPrice, err := client.SuggestGasPrice(readCtx)
	if err != nil {
		return nil, fmt.Errorf("suggest gas price: %w", err)
	}

	txs := make([]*ethtypes.Transaction, 0, len(calls))
	for i, call := range calls {
		auth, err := bind.NewKeyedTransactorWithChainID(c.key, c.chainID)
		if err != nil {
			return txs, fmt.Errorf("transactor: %w", err)
		}
		sendCtx, cancel := context.WithTimeout(ctx, c.requestTimeout)
		auth.Context = sendCtx
		auth.Nonce = new(big.Int).SetUint64(nonce + uint64(i))
		auth.GasLimit = c.gasLimit
		auth.GasPrice = gasPrice

		contract := bind.NewBoundContract(call.contract, call.abi, client, client, client)
		tx, err := contract.Transact(auth, call.method, call.args...)
		cancel()
		if err != nil {
			return txs, fmt.Errorf("%s tx: %w", call.method, err)
		}
		log.Ctx(ctx).Info().Str("chain", c.name).Str("method", call.method).
			Str("txHash", tx.Hash().Hex()).Uint64("nonce", tx.Nonce()).Msg("relayer transaction sent")
		txs = append(txs, tx)
	}
	return txs, nil
}

func toBaseUnits(amount decimal.Decimal, decimals int32) *big.Int {
	return amount.Shift(decimals).BigInt()
}

func fromBaseUnits(units *big.Int, decimals int32) decimal.Decimal {
	return decimal.NewFromBigInt(units, -decimals)
}
