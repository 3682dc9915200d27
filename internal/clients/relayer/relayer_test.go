package relayer_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suistake/bridge-saga-service/internal/clients/relayer"
	"github.com/suistake/bridge-saga-service/internal/config"
	"github.com/suistake/bridge-saga-service/internal/types"
)

const apiKeyEnv = "TEST_RELAYER_API_KEY"

func writeData(t *testing.T, w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"data": data}))
}

func setupRelayer(t *testing.T, router *chi.Mux) *relayer.RelayerClient {
	t.Setenv(apiKeyEnv, "secret")
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return relayer.NewRelayerClient(
		&config.RelayerConfig{Url: server.URL, ApiKeyEnv: apiKeyEnv, Timeout: time.Second},
		&config.SuiConfig{WormholeChainId: 21, WormholeEmitter: "ccceeb29"},
		map[string]relayer.BridgeTarget{
			"base": {WormholeChainId: 30, Recipient: "0x00000000000000000000000000000000000000aa"},
		},
	)
}

func TestAddress(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/v1/accounts/{user}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		if chi.URLParam(r, "user") == "0xunknown" {
			writeData(t, w, map[string]string{})
			return
		}
		writeData(t, w, map[string]string{"address": "0xsui" + chi.URLParam(r, "user")[2:]})
	})
	client := setupRelayer(t, router)

	address, err := client.Address(context.Background(), "0xabc")
	require.NoError(t, err)
	assert.Equal(t, "0xsuiabc", address)

	_, err = client.Address(context.Background(), "0xunknown")
	assert.ErrorContains(t, err, "no destination account")
}

func TestStakeAndClaim(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/v1/stake", func(w http.ResponseWriter, r *http.Request) {
		var request relayer.StakeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		assert.Equal(t, relayer.StakeRequest{Owner: "0xowner", Amount: "45.5", Validator: "0xval"}, request)
		writeData(t, w, relayer.StakeResponse{TxDigest: "digest-stake", Validator: "0xval"})
	})
	router.Post("/v1/withdraw-stake", func(w http.ResponseWriter, r *http.Request) {
		writeData(t, w, relayer.WithdrawStakeResponse{TxDigest: "digest-claim", Amount: "46.1"})
	})
	client := setupRelayer(t, router)

	receipt, err := client.Stake(context.Background(), "0xowner", decimal.RequireFromString("45.5"), "0xval")
	require.NoError(t, err)
	assert.Equal(t, &types.StakeReceipt{TxHash: "digest-stake", ValidatorAddress: "0xval"}, receipt)

	claim, err := client.ClaimRewards(context.Background(), "0xowner")
	require.NoError(t, err)
	assert.Equal(t, "digest-claim", claim.TxHash)
	assert.True(t, decimal.RequireFromString("46.1").Equal(claim.Amount))
}

func TestSwap(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/v1/swap/quote", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "10", r.URL.Query().Get("amount"))
		assert.Equal(t, string(types.NativeToUsdc), r.URL.Query().Get("direction"))
		writeData(t, w, relayer.SwapResponse{AmountOut: "12.34"})
	})
	router.Post("/v1/swap", func(w http.ResponseWriter, r *http.Request) {
		writeData(t, w, relayer.SwapResponse{TxDigest: "digest-swap", AmountOut: "not-a-number"})
	})
	client := setupRelayer(t, router)

	quote, err := client.Quote(context.Background(), decimal.NewFromInt(10), types.NativeToUsdc)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("12.34").Equal(quote))

	_, err = client.Swap(context.Background(), "0xowner", decimal.NewFromInt(10), types.UsdcToNative)
	assert.ErrorContains(t, err, "invalid swapped amount")
}

func TestBridgeToSource(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/v1/bridge", func(w http.ResponseWriter, r *http.Request) {
		var request relayer.BridgeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		assert.Equal(t, uint16(30), request.TargetChain)
		assert.Equal(t, "0x00000000000000000000000000000000000000aa", request.Recipient)
		writeData(t, w, relayer.BridgeResponse{TxDigest: "digest-bridge", Sequence: 812})
	})
	client := setupRelayer(t, router)

	receipt, err := client.BridgeToSource(context.Background(), "0xowner", "base", decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.Equal(t, &types.ReturnBridgeReceipt{
		TxHash:       "digest-bridge",
		EmitterChain: 21,
		Emitter:      "ccceeb29",
		Sequence:     812,
	}, receipt)

	_, err = client.BridgeToSource(context.Background(), "0xowner", "arbitrum", decimal.NewFromInt(5))
	assert.ErrorContains(t, err, "unsupported source chain arbitrum")
}

func TestServerErrors(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/v1/stake", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	client := setupRelayer(t, router)

	_, err := client.Stake(context.Background(), "0xowner", decimal.NewFromInt(1), "0xval")
	require.Error(t, err)
	var apiErr *types.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, types.GatewayError, apiErr.ErrorCode)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}
