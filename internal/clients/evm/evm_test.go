package evm

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suistake/bridge-saga-service/internal/config"
	"github.com/suistake/bridge-saga-service/internal/locker"
	"github.com/suistake/bridge-saga-service/internal/types"
)

const (
	testChainId   = 8453
	relayerKeyEnv = "TEST_EVM_RELAYER_KEY"
	escrowAddr    = "0x00000000000000000000000000000000000000e5"
	bridgeAddr    = "0x00000000000000000000000000000000000000b1"
	usdcAddr      = "0x00000000000000000000000000000000000000c0"
	userAddr      = "0x1111111111111111111111111111111111111111"
)

type rpcRequest struct {
	Id     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

// fakeNode answers the subset of the Ethereum JSON-RPC used by ChainClient.
type fakeNode struct {
	t  *testing.T
	mu sync.Mutex

	nonce          uint64
	callOutput     []byte
	sent           []*ethtypes.Transaction
	receiptStatus  uint64
	pendingPolls   int
	receiptQueries int
	failSendAfter  int
}

func (n *fakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	require.NoError(n.t, json.NewDecoder(r.Body).Decode(&req))

	n.mu.Lock()
	defer n.mu.Unlock()

	var result any
	var rpcErr any
	switch req.Method {
	case "eth_chainId":
		result = hexutil.EncodeUint64(testChainId)
	case "eth_blockNumber":
		result = hexutil.EncodeUint64(100)
	case "eth_getTransactionCount":
		result = hexutil.EncodeUint64(n.nonce)
	case "eth_gasPrice":
		result = hexutil.EncodeBig(big.NewInt(2_000_000_000))
	case "eth_call":
		result = hexutil.Encode(n.callOutput)
	case "eth_sendRawTransaction":
		if n.failSendAfter > 0 && len(n.sent) >= n.failSendAfter {
			rpcErr = map[string]any{"code": -32000, "message": "nonce too low"}
			break
		}
		var raw string
		require.NoError(n.t, json.Unmarshal(req.Params[0], &raw))
		tx := new(ethtypes.Transaction)
		require.NoError(n.t, tx.UnmarshalBinary(hexutil.MustDecode(raw)))
		n.sent = append(n.sent, tx)
		n.nonce++
		result = tx.Hash().Hex()
	case "eth_getTransactionReceipt":
		n.receiptQueries++
		if n.receiptQueries <= n.pendingPolls {
			result = nil
			break
		}
		var hash common.Hash
		require.NoError(n.t, json.Unmarshal(req.Params[0], &hash))
		result = &ethtypes.Receipt{
			Status:            n.receiptStatus,
			CumulativeGasUsed: 21000,
			Logs:              []*ethtypes.Log{},
			TxHash:            hash,
			GasUsed:           21000,
			BlockNumber:       big.NewInt(101),
		}
	default:
		rpcErr = map[string]any{"code": -32601, "message": "method not found"}
	}

	response := map[string]any{"jsonrpc": "2.0", "id": req.Id}
	if rpcErr != nil {
		response["error"] = rpcErr
	} else {
		response["result"] = result
	}
	w.Header().Set("Content-Type", "application/json")
	require.NoError(n.t, json.NewEncoder(w).Encode(response))
}

func (n *fakeNode) sentTransactions() []*ethtypes.Transaction {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]*ethtypes.Transaction(nil), n.sent...)
}

func setupChainClient(t *testing.T, node *fakeNode, extraUrls ...string) *ChainClient {
	node.t = t
	server := httptest.NewServer(node)
	t.Cleanup(server.Close)

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	t.Setenv(relayerKeyEnv, hex.EncodeToString(crypto.FromECDSA(key)))

	chainCfg := config.EvmChainConfig{
		ChainId:         testChainId,
		RpcUrls:         append(extraUrls, server.URL),
		EscrowAddress:   escrowAddr,
		TokenBridge:     bridgeAddr,
		UsdcAddress:     usdcAddr,
		WormholeChainId: 30,
		RelayerKeyEnv:   relayerKeyEnv,
	}
	evmCfg := &config.EvmConfig{
		Chains:              map[string]config.EvmChainConfig{"base": chainCfg},
		RequestTimeout:      time.Second,
		GasLimit:            300_000,
		ReceiptPollInterval: time.Millisecond,
		ReceiptTimeout:      200 * time.Millisecond,
	}
	client, err := NewChainClient("base", chainCfg, evmCfg, locker.NewLocalLocker())
	require.NoError(t, err)
	return client
}

func decodeCall(t *testing.T, tx *ethtypes.Transaction, method string, contract string) []interface{} {
	require.NotNil(t, tx.To())
	assert.Equal(t, common.HexToAddress(contract), *tx.To())
	parsed := map[string]struct {
		inputs func([]byte) ([]interface{}, error)
		id     []byte
	}{
		"finalizeRewards":  {escrowABI.Methods["finalizeRewards"].Inputs.Unpack, escrowABI.Methods["finalizeRewards"].ID},
		"transferFrom":     {erc20ABI.Methods["transferFrom"].Inputs.Unpack, erc20ABI.Methods["transferFrom"].ID},
		"approve":          {erc20ABI.Methods["approve"].Inputs.Unpack, erc20ABI.Methods["approve"].ID},
		"transferTokens":   {tokenBridgeABI.Methods["transferTokens"].Inputs.Unpack, tokenBridgeABI.Methods["transferTokens"].ID},
		"completeTransfer": {tokenBridgeABI.Methods["completeTransfer"].Inputs.Unpack, tokenBridgeABI.Methods["completeTransfer"].ID},
	}
	entry, ok := parsed[method]
	require.True(t, ok, method)
	require.Equal(t, entry.id, tx.Data()[:4], "unexpected selector for %s", method)
	args, err := entry.inputs(tx.Data()[4:])
	require.NoError(t, err)
	return args
}

func TestAccountStatus(t *testing.T) {
	output, err := escrowABI.Methods["getAccountStatus"].Outputs.Pack(
		big.NewInt(100_000_000), big.NewInt(2_500_000), big.NewInt(7), false,
	)
	require.NoError(t, err)
	client := setupChainClient(t, &fakeNode{callOutput: output})

	status, err := client.AccountStatus(context.Background(), userAddr)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(status.EscrowedAmount), "got %s", status.EscrowedAmount)
	assert.True(t, decimal.RequireFromString("2.5").Equal(status.OutstandingDebt), "got %s", status.OutstandingDebt)
	assert.Equal(t, uint64(7), status.Reputation)
	assert.False(t, status.Blacklisted)

	_, err = client.AccountStatus(context.Background(), "not-an-address")
	assert.ErrorContains(t, err, "invalid user address")
}

func TestAccountStatusFallsBackToNextRpc(t *testing.T) {
	output, err := escrowABI.Methods["getAccountStatus"].Outputs.Pack(
		big.NewInt(1_000_000), big.NewInt(0), big.NewInt(0), true,
	)
	require.NoError(t, err)
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(down.Close)
	client := setupChainClient(t, &fakeNode{callOutput: output}, down.URL)

	status, err := client.AccountStatus(context.Background(), userAddr)
	require.NoError(t, err)
	assert.True(t, status.Blacklisted)
}

func TestFinalizeRewards(t *testing.T) {
	node := &fakeNode{nonce: 5, receiptStatus: ethtypes.ReceiptStatusSuccessful, pendingPolls: 2}
	client := setupChainClient(t, node)

	tx, err := client.FinalizeRewards(
		context.Background(), userAddr, decimal.RequireFromString("2.5"), decimal.RequireFromString("47.25"),
	)
	require.NoError(t, err)

	sent := node.sentTransactions()
	require.Len(t, sent, 1)
	assert.Equal(t, uint64(5), sent[0].Nonce())
	assert.Equal(t, uint64(300_000), sent[0].Gas())
	args := decodeCall(t, sent[0], "finalizeRewards", escrowAddr)
	assert.Equal(t, common.HexToAddress(userAddr), args[0])
	assert.Equal(t, big.NewInt(2_500_000), args[1])
	assert.Equal(t, big.NewInt(47_250_000), args[2])

	receipt, err := tx.Wait(context.Background())
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.Equal(t, sent[0].Hash().Hex(), receipt.TxHash)
	assert.True(t, receipt.Succeeded)
	assert.Equal(t, uint64(101), receipt.BlockNumber)
}

func TestWaitTimesOut(t *testing.T) {
	node := &fakeNode{pendingPolls: 1 << 30}
	client := setupChainClient(t, node)

	tx, err := client.CompleteTransfer(context.Background(), []byte("vaa"))
	require.NoError(t, err)

	_, err = tx.Wait(context.Background())
	require.Error(t, err)
}

func TestSponsoredBridge(t *testing.T) {
	node := &fakeNode{nonce: 9, receiptStatus: ethtypes.ReceiptStatusSuccessful}
	client := setupChainClient(t, node)
	recipient := "0x9f3a"

	txHash, err := client.SponsoredBridge(context.Background(), userAddr, decimal.NewFromInt(100), 21, recipient)
	require.NoError(t, err)

	sent := node.sentTransactions()
	require.Len(t, sent, 3)
	for i, tx := range sent {
		assert.Equal(t, uint64(9+i), tx.Nonce())
	}
	assert.Equal(t, sent[2].Hash().Hex(), txHash)

	units := big.NewInt(100_000_000)
	pull := decodeCall(t, sent[0], "transferFrom", usdcAddr)
	assert.Equal(t, []interface{}{common.HexToAddress(userAddr), client.RelayerAddress(), units}, pull)

	approval := decodeCall(t, sent[1], "approve", usdcAddr)
	assert.Equal(t, []interface{}{common.HexToAddress(bridgeAddr), units}, approval)

	transfer := decodeCall(t, sent[2], "transferTokens", bridgeAddr)
	assert.Equal(t, common.HexToAddress(usdcAddr), transfer[0])
	assert.Equal(t, units, transfer[1])
	assert.Equal(t, uint16(21), transfer[2])
	assert.Equal(t, [32]byte(common.HexToHash(recipient)), transfer[3])
}

func TestSponsoredBridgeReverted(t *testing.T) {
	node := &fakeNode{receiptStatus: ethtypes.ReceiptStatusFailed}
	client := setupChainClient(t, node)

	_, err := client.SponsoredBridge(context.Background(), userAddr, decimal.NewFromInt(1), 21, "0x1")
	assert.ErrorContains(t, err, "reverted")
}

func TestSponsoredBridgePartialSubmission(t *testing.T) {
	node := &fakeNode{failSendAfter: 1}
	client := setupChainClient(t, node)

	_, err := client.SponsoredBridge(context.Background(), userAddr, decimal.NewFromInt(1), 21, "0x1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "approve after 1 of 3 transactions were sent")
	assert.Len(t, node.sentTransactions(), 1)
}

func TestSponsoredBridgeRejectsDust(t *testing.T) {
	client := setupChainClient(t, &fakeNode{})

	_, err := client.SponsoredBridge(context.Background(), userAddr, decimal.RequireFromString("0.0000001"), 21, "0x1")
	assert.ErrorContains(t, err, "below the token precision")
}

func TestQuoteBridge(t *testing.T) {
	client := setupChainClient(t, &fakeNode{})

	quote, err := client.QuoteBridge(context.Background(), decimal.NewFromInt(50))
	require.NoError(t, err)
	assert.Equal(t, "base", quote.ChainId)
	assert.Equal(t, uint64(900_000), quote.EstimatedGas)
	assert.True(t, decimal.NewFromInt(50).Equal(quote.AmountOut))
	// 900k gas at 2 gwei
	assert.True(t, decimal.RequireFromString("0.0018").Equal(quote.SponsoredCost), "got %s", quote.SponsoredCost)
}

func TestConcurrentSubmissionsUseDistinctNonces(t *testing.T) {
	node := &fakeNode{nonce: 1}
	client := setupChainClient(t, node)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.CompleteTransfer(context.Background(), []byte("vaa"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	nonces := map[uint64]bool{}
	for _, tx := range node.sentTransactions() {
		nonces[tx.Nonce()] = true
	}
	assert.Len(t, nonces, 5)
}

func TestGatewayRouting(t *testing.T) {
	node := &fakeNode{receiptStatus: ethtypes.ReceiptStatusSuccessful}
	gateway := newEvmGateway(map[string]*ChainClient{"base": setupChainClient(t, node)}, 21)

	assert.Equal(t, []string{"base"}, gateway.ChainIDs())

	_, err := gateway.GetAccountStatus(context.Background(), "arbitrum", userAddr)
	assert.ErrorContains(t, err, "unsupported source chain arbitrum")

	op, err := gateway.ExecuteSponsoredBridge(
		context.Background(), types.Asset{ChainId: "base", Symbol: "USDC", Amount: decimal.NewFromInt(3)}, userAddr, "0xabc",
	)
	require.NoError(t, err)
	assert.Equal(t, types.BridgePending, op.Status)
	assert.NotEmpty(t, op.SourceTxHash)

	require.NoError(t, gateway.Ping(context.Background()))
}
