package relayer

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/shopspring/decimal"

	baseclient "github.com/suistake/bridge-saga-service/internal/clients/base"
	"github.com/suistake/bridge-saga-service/internal/config"
	"github.com/suistake/bridge-saga-service/internal/types"
)

// BridgeTarget is where return-leg funds land on a source chain.
type BridgeTarget struct {
	WormholeChainId uint16
	Recipient       string
}

type response[T any] struct {
	Data T `json:"data"`
}

type AccountResponse struct {
	Address string `json:"address"`
}

type StakeRequest struct {
	Owner     string `json:"owner"`
	Amount    string `json:"amount"`
	Validator string `json:"validator"`
}

type StakeResponse struct {
	TxDigest  string `json:"tx_digest"`
	Validator string `json:"validator"`
}

type WithdrawStakeRequest struct {
	Owner string `json:"owner"`
}

type WithdrawStakeResponse struct {
	TxDigest string `json:"tx_digest"`
	Amount   string `json:"amount"`
}

type SwapRequest struct {
	Owner     string `json:"owner"`
	Amount    string `json:"amount"`
	Direction string `json:"direction"`
}

type SwapResponse struct {
	TxDigest  string `json:"tx_digest"`
	AmountOut string `json:"amount_out"`
}

type BridgeRequest struct {
	Owner       string `json:"owner"`
	Amount      string `json:"amount"`
	TargetChain uint16 `json:"target_chain"`
	Recipient   string `json:"recipient"`
}

type BridgeResponse struct {
	TxDigest string `json:"tx_digest"`
	Sequence uint64 `json:"sequence"`
}

// RelayerClient talks to the signing service that owns the per-user Sui
// accounts. Every state-changing Sui transaction goes through it.
type RelayerClient struct {
	config        *config.RelayerConfig
	httpClient    *http.Client
	defaultHeader map[string]string
	targets       map[string]BridgeTarget
	emitterChain  uint16
	emitter       string
}

func NewRelayerClient(
	config *config.RelayerConfig, sui *config.SuiConfig, targets map[string]BridgeTarget,
) *RelayerClient {
	httpClient := &http.Client{}
	defaultHeader := map[string]string{
		"Accept": "application/json",
	}
	if config.ApiKeyEnv != "" {
		defaultHeader["X-Api-Key"] = os.Getenv(config.ApiKeyEnv)
	}
	return &RelayerClient{
		config:        config,
		httpClient:    httpClient,
		defaultHeader: defaultHeader,
		targets:       targets,
		emitterChain:  sui.WormholeChainId,
		emitter:       sui.WormholeEmitter,
	}
}

// Necessary for the BaseClient interface
func (c *RelayerClient) GetName() string {
	return "relayer"
}

func (c *RelayerClient) GetBaseURL() string {
	return c.config.Url
}

func (c *RelayerClient) GetDefaultRequestTimeout() time.Duration {
	return c.config.Timeout
}

func (c *RelayerClient) GetHttpClient() *http.Client {
	return c.httpClient
}

func (c *RelayerClient) Ping(ctx context.Context) error {
	opts := &baseclient.BaseClientOptions{
		Path:    "/healthcheck",
		Headers: c.defaultHeader,
	}
	_, err := baseclient.SendRequest[any, map[string]any](ctx, c, http.MethodGet, opts, nil)
	if err != nil {
		return err
	}
	return nil
}

// Address resolves the Sui account managed on behalf of a source chain user.
func (c *RelayerClient) Address(ctx context.Context, user string) (string, error) {
	opts := &baseclient.BaseClientOptions{
		Path:    fmt.Sprintf("/v1/accounts/%s", url.PathEscape(user)),
		Headers: c.defaultHeader,
		Label:   "/v1/accounts",
	}
	resp, err := baseclient.SendRequest[any, response[AccountResponse]](
		ctx, c, http.MethodGet, opts, nil,
	)
	if err != nil {
		return "", err
	}
	if resp.Data.Address == "" {
		return "", fmt.Errorf("no destination account for user %s", user)
	}
	return resp.Data.Address, nil
}

func (c *RelayerClient) Stake(
	ctx context.Context, owner string, amount decimal.Decimal, validator string,
) (*types.StakeReceipt, error) {
	opts := &baseclient.BaseClientOptions{
		Path:    "/v1/stake",
		Headers: c.defaultHeader,
	}
	request := &StakeRequest{Owner: owner, Amount: amount.String(), Validator: validator}
	resp, err := baseclient.SendRequest[StakeRequest, response[StakeResponse]](
		ctx, c, http.MethodPost, opts, request,
	)
	if err != nil {
		return nil, err
	}
	return &types.StakeReceipt{
		TxHash:           resp.Data.TxDigest,
		ValidatorAddress: resp.Data.Validator,
	}, nil
}

func (c *RelayerClient) ClaimRewards(ctx context.Context, owner string) (*types.ClaimReceipt, error) {
	opts := &baseclient.BaseClientOptions{
		Path:    "/v1/withdraw-stake",
		Headers: c.defaultHeader,
	}
	resp, err := baseclient.SendRequest[WithdrawStakeRequest, response[WithdrawStakeResponse]](
		ctx, c, http.MethodPost, opts, &WithdrawStakeRequest{Owner: owner},
	)
	if err != nil {
		return nil, err
	}
	amount, parseErr := parseAmount("withdrawn amount", resp.Data.Amount)
	if parseErr != nil {
		return nil, parseErr
	}
	return &types.ClaimReceipt{TxHash: resp.Data.TxDigest, Amount: amount}, nil
}

func (c *RelayerClient) Quote(
	ctx context.Context, amount decimal.Decimal, direction types.SwapDirection,
) (decimal.Decimal, error) {
	query := url.Values{}
	query.Set("amount", amount.String())
	query.Set("direction", string(direction))
	opts := &baseclient.BaseClientOptions{
		Path:    "/v1/swap/quote?" + query.Encode(),
		Headers: c.defaultHeader,
		Label:   "/v1/swap/quote",
	}
	resp, err := baseclient.SendRequest[any, response[SwapResponse]](
		ctx, c, http.MethodGet, opts, nil,
	)
	if err != nil {
		return decimal.Zero, err
	}
	return parseAmount("quoted amount", resp.Data.AmountOut)
}

func (c *RelayerClient) Swap(
	ctx context.Context, owner string, amount decimal.Decimal, direction types.SwapDirection,
) (*types.SwapResult, error) {
	opts := &baseclient.BaseClientOptions{
		Path:    "/v1/swap",
		Headers: c.defaultHeader,
	}
	request := &SwapRequest{Owner: owner, Amount: amount.String(), Direction: string(direction)}
	resp, err := baseclient.SendRequest[SwapRequest, response[SwapResponse]](
		ctx, c, http.MethodPost, opts, request,
	)
	if err != nil {
		return nil, err
	}
	amountOut, parseErr := parseAmount("swapped amount", resp.Data.AmountOut)
	if parseErr != nil {
		return nil, parseErr
	}
	return &types.SwapResult{AmountOut: amountOut, TxHash: resp.Data.TxDigest}, nil
}

// BridgeToSource locks owner's USDC in the Sui token bridge for the relayer
// account of chainID. The returned receipt keys the VAA lookup.
func (c *RelayerClient) BridgeToSource(
	ctx context.Context, owner, chainID string, amount decimal.Decimal,
) (*types.ReturnBridgeReceipt, error) {
	target, ok := c.targets[chainID]
	if !ok {
		return nil, fmt.Errorf("unsupported source chain %s", chainID)
	}
	opts := &baseclient.BaseClientOptions{
		Path:    "/v1/bridge",
		Headers: c.defaultHeader,
	}
	request := &BridgeRequest{
		Owner:       owner,
		Amount:      amount.String(),
		TargetChain: target.WormholeChainId,
		Recipient:   target.Recipient,
	}
	resp, err := baseclient.SendRequest[BridgeRequest, response[BridgeResponse]](
		ctx, c, http.MethodPost, opts, request,
	)
	if err != nil {
		return nil, err
	}
	return &types.ReturnBridgeReceipt{
		TxHash:       resp.Data.TxDigest,
		EmitterChain: c.emitterChain,
		Emitter:      c.emitter,
		Sequence:     resp.Data.Sequence,
	}, nil
}

func parseAmount(field, value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q from relayer", field, value)
	}
	return amount, nil
}
