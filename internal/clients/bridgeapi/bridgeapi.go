package bridgeapi

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	baseclient "github.com/suistake/bridge-saga-service/internal/clients/base"
	"github.com/suistake/bridge-saga-service/internal/config"
	"github.com/suistake/bridge-saga-service/internal/types"
	"github.com/suistake/bridge-saga-service/internal/utils"
)

const (
	targetStatusCompleted = "completed"
	targetStatusFailed    = "failed"
	emitterHexLength      = 64
)

type OperationTransaction struct {
	TxHash string `json:"txHash"`
}

type OperationChain struct {
	Transaction OperationTransaction `json:"transaction"`
	Status      string               `json:"status"`
}

type OperationData struct {
	TokenAmount string `json:"tokenAmount"`
}

type Operation struct {
	Id          string          `json:"id"`
	SourceChain *OperationChain `json:"sourceChain"`
	TargetChain *OperationChain `json:"targetChain"`
	Data        *OperationData  `json:"data"`
}

// Refer to https://api.wormholescan.io/swagger/index.html
type OperationsResponse struct {
	Operations []Operation `json:"operations"`
}

type SignedVaaResponse struct {
	VaaBytes string `json:"vaaBytes"`
}

type endpoint struct {
	name       string
	baseUrl    string
	timeout    time.Duration
	httpClient *http.Client
}

// Necessary for the BaseClient interface
func (e *endpoint) GetName() string {
	return e.name
}

func (e *endpoint) GetBaseURL() string {
	return e.baseUrl
}

func (e *endpoint) GetDefaultRequestTimeout() time.Duration {
	return e.timeout
}

func (e *endpoint) GetHttpClient() *http.Client {
	return e.httpClient
}

// BridgeApiClient tracks token bridge transfers through the public bridge
// indexer and fetches guardian-signed VAAs.
type BridgeApiClient struct {
	status        *endpoint
	guardian      *endpoint
	defaultHeader map[string]string
}

func NewBridgeApiClient(config *config.BridgeApiConfig) *BridgeApiClient {
	httpClient := &http.Client{}
	return &BridgeApiClient{
		status: &endpoint{
			name:       "bridge-status",
			baseUrl:    config.StatusUrl,
			timeout:    config.Timeout,
			httpClient: httpClient,
		},
		guardian: &endpoint{
			name:       "guardian",
			baseUrl:    config.GuardianUrl,
			timeout:    config.Timeout,
			httpClient: httpClient,
		},
		defaultHeader: map[string]string{
			"Accept": "application/json",
		},
	}
}

func (c *BridgeApiClient) operation(ctx context.Context, sourceTxHash string) (*Operation, error) {
	query := url.Values{}
	query.Set("txHash", sourceTxHash)
	opts := &baseclient.BaseClientOptions{
		Path:    "/api/v1/operations?" + query.Encode(),
		Headers: c.defaultHeader,
		Label:   "/api/v1/operations",
	}
	resp, err := baseclient.SendRequest[any, OperationsResponse](
		ctx, c.status, http.MethodGet, opts, nil,
	)
	if err != nil {
		// The indexer answers 404 until it has seen the source transaction.
		if err.ErrorCode == types.NotFound {
			return nil, nil
		}
		return nil, err
	}
	if len(resp.Operations) == 0 {
		return nil, nil
	}
	return &resp.Operations[0], nil
}

// CheckStatus reports Pending until the indexer has seen the transfer land on
// the target chain.
func (c *BridgeApiClient) CheckStatus(ctx context.Context, sourceTxHash string) (types.BridgeStatus, error) {
	op, err := c.operation(ctx, sourceTxHash)
	if err != nil {
		return "", err
	}
	if op == nil || op.TargetChain == nil {
		return types.BridgePending, nil
	}
	switch strings.ToLower(op.TargetChain.Status) {
	case targetStatusCompleted:
		return types.BridgeCompleted, nil
	case targetStatusFailed:
		return types.BridgeFailed, nil
	default:
		return types.BridgePending, nil
	}
}

func (c *BridgeApiClient) GetDetails(ctx context.Context, sourceTxHash string) (*types.BridgeDetails, error) {
	op, err := c.operation(ctx, sourceTxHash)
	if err != nil {
		return nil, err
	}
	details := &types.BridgeDetails{}
	if op == nil {
		return details, nil
	}
	if op.TargetChain != nil {
		details.DestinationTxHash = op.TargetChain.Transaction.TxHash
	}
	if op.Data != nil && op.Data.TokenAmount != "" {
		amount, parseErr := decimal.NewFromString(op.Data.TokenAmount)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid token amount %q for %s", op.Data.TokenAmount, sourceTxHash)
		}
		details.DestinationAmount = &amount
	}
	return details, nil
}

// FetchVAA returns nil while the guardians have not signed the message yet.
func (c *BridgeApiClient) FetchVAA(ctx context.Context, receipt types.ReturnBridgeReceipt) ([]byte, error) {
	emitter, err := paddedEmitter(receipt.Emitter)
	if err != nil {
		return nil, err
	}
	opts := &baseclient.BaseClientOptions{
		Path: fmt.Sprintf(
			"/v1/signed_vaa/%d/%s/%d", receipt.EmitterChain, emitter, receipt.Sequence,
		),
		Headers: c.defaultHeader,
		Label:   "/v1/signed_vaa",
	}
	resp, apiErr := baseclient.SendRequest[any, SignedVaaResponse](
		ctx, c.guardian, http.MethodGet, opts, nil,
	)
	if apiErr != nil {
		if apiErr.ErrorCode == types.NotFound {
			return nil, nil
		}
		return nil, apiErr
	}
	if resp.VaaBytes == "" {
		return nil, nil
	}
	if !utils.IsBase64Encoded(resp.VaaBytes) {
		return nil, errors.New("guardian returned a malformed vaa")
	}
	return base64.StdEncoding.DecodeString(resp.VaaBytes)
}

func paddedEmitter(emitter string) (string, error) {
	hex := strings.ToLower(strings.TrimPrefix(emitter, "0x"))
	if hex == "" || len(hex) > emitterHexLength {
		return "", fmt.Errorf("invalid emitter address %q", emitter)
	}
	return strings.Repeat("0", emitterHexLength-len(hex)) + hex, nil
}
