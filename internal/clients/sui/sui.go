package sui

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	baseclient "github.com/suistake/bridge-saga-service/internal/clients/base"
	"github.com/suistake/bridge-saga-service/internal/config"
	"github.com/suistake/bridge-saga-service/internal/types"
	"github.com/suistake/bridge-saga-service/internal/utils"
)

const (
	// MIST per SUI
	nativeDecimals = 9
	stableDecimals = 6
	// commissionRate is reported in basis points
	commissionBase = 100
	millisPerDay   = int64(24 * time.Hour / time.Millisecond)

	stakeStatusActive  = "Active"
	stakeStatusPending = "Pending"
)

type SuiValidator struct {
	SuiAddress     string `json:"suiAddress"`
	Name           string `json:"name"`
	CommissionRate string `json:"commissionRate"`
	NextEpochStake string `json:"nextEpochStake"`
}

// Refer to https://docs.sui.io/sui-api-ref#suix_getlatestsuisystemstate
type SuiSystemState struct {
	Epoch            string         `json:"epoch"`
	EpochDurationMs  string         `json:"epochDurationMs"`
	ActiveValidators []SuiValidator `json:"activeValidators"`
	// Pairs of [address, epochs at risk]
	AtRiskValidators [][]string `json:"atRiskValidators"`
}

type ValidatorApy struct {
	Address string  `json:"address"`
	Apy     float64 `json:"apy"`
}

type ValidatorsApy struct {
	Apys  []ValidatorApy `json:"apys"`
	Epoch string         `json:"epoch"`
}

type Balance struct {
	CoinType        string `json:"coinType"`
	CoinObjectCount int    `json:"coinObjectCount"`
	TotalBalance    string `json:"totalBalance"`
}

type Stake struct {
	StakedSuiId      string `json:"stakedSuiId"`
	StakeActiveEpoch string `json:"stakeActiveEpoch"`
	Principal        string `json:"principal"`
	Status           string `json:"status"`
	EstimatedReward  string `json:"estimatedReward,omitempty"`
}

type DelegatedStake struct {
	ValidatorAddress string  `json:"validatorAddress"`
	StakingPool      string  `json:"stakingPool"`
	Stakes           []Stake `json:"stakes"`
}

// SuiClient is a read-only Sui full node client. Signing happens in the relayer.
type SuiClient struct {
	config        *config.SuiConfig
	httpClient    *http.Client
	defaultHeader map[string]string
}

func NewSuiClient(config *config.SuiConfig) *SuiClient {
	httpClient := &http.Client{}
	defaultHeader := map[string]string{
		"Accept": "application/json",
	}
	return &SuiClient{
		config,
		httpClient,
		defaultHeader,
	}
}

// Necessary for the BaseClient interface
func (c *SuiClient) GetName() string {
	return "sui"
}

func (c *SuiClient) GetBaseURL() string {
	return c.config.RpcUrl
}

func (c *SuiClient) GetDefaultRequestTimeout() time.Duration {
	return c.config.RequestTimeout
}

func (c *SuiClient) GetHttpClient() *http.Client {
	return c.httpClient
}

func (c *SuiClient) Ping(ctx context.Context) error {
	_, err := baseclient.CallJsonRpc[string](ctx, c, c.defaultHeader, "sui_getChainIdentifier")
	if err != nil {
		return err
	}
	return nil
}

func (c *SuiClient) systemState(ctx context.Context) (*SuiSystemState, error) {
	state, err := baseclient.CallJsonRpc[SuiSystemState](
		ctx, c, c.defaultHeader, "suix_getLatestSuiSystemState",
	)
	if err != nil {
		return nil, err
	}
	return state, nil
}

// ActiveValidators joins the active set with the validator APYs of the
// current epoch. Validators flagged at risk will not participate next epoch.
func (c *SuiClient) ActiveValidators(ctx context.Context) ([]types.ValidatorInfo, error) {
	state, err := c.systemState(ctx)
	if err != nil {
		return nil, err
	}
	apys, rpcErr := baseclient.CallJsonRpc[ValidatorsApy](
		ctx, c, c.defaultHeader, "suix_getValidatorsApy",
	)
	if rpcErr != nil {
		return nil, rpcErr
	}

	apyByAddress := make(map[string]float64, len(apys.Apys))
	for _, apy := range apys.Apys {
		apyByAddress[utils.NormalizeAddress(apy.Address)] = apy.Apy
	}
	atRisk := make(map[string]bool, len(state.AtRiskValidators))
	for _, pair := range state.AtRiskValidators {
		if len(pair) > 0 {
			atRisk[utils.NormalizeAddress(pair[0])] = true
		}
	}

	validators := make([]types.ValidatorInfo, 0, len(state.ActiveValidators))
	for _, v := range state.ActiveValidators {
		address := utils.NormalizeAddress(v.SuiAddress)
		commissionBps, err := strconv.ParseFloat(v.CommissionRate, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid commission rate %q for validator %s", v.CommissionRate, address)
		}
		nextStake, err := decimal.NewFromString(v.NextEpochStake)
		if err != nil {
			nextStake = decimal.Zero
		}
		validators = append(validators, types.ValidatorInfo{
			Address:                  v.SuiAddress,
			CommissionPercent:        commissionBps / commissionBase,
			APYPercent:               apyByAddress[address] * 100,
			WillParticipateNextEpoch: !atRisk[address] && nextStake.IsPositive(),
		})
	}
	return validators, nil
}

// StableBalance returns the USDC balance of owner in whole USDC.
func (c *SuiClient) StableBalance(ctx context.Context, owner string) (decimal.Decimal, error) {
	balance, err := baseclient.CallJsonRpc[Balance](
		ctx, c, c.defaultHeader, "suix_getBalance", owner, c.config.UsdcCoinType,
	)
	if err != nil {
		return decimal.Zero, err
	}
	return fromBaseUnits(balance.TotalBalance, stableDecimals)
}

// StakingRewards sums every active or pending stake of owner. The staking
// duration counts whole days since the oldest stake became active.
func (c *SuiClient) StakingRewards(ctx context.Context, owner string) (*types.StakingRewards, error) {
	stakes, rpcErr := baseclient.CallJsonRpc[[]DelegatedStake](
		ctx, c, c.defaultHeader, "suix_getStakes", owner,
	)
	if rpcErr != nil {
		return nil, rpcErr
	}

	result := &types.StakingRewards{}
	oldestActiveEpoch := int64(-1)
	for _, delegated := range *stakes {
		for _, stake := range delegated.Stakes {
			if stake.Status != stakeStatusActive && stake.Status != stakeStatusPending {
				continue
			}
			principal, err := fromBaseUnits(stake.Principal, nativeDecimals)
			if err != nil {
				return nil, err
			}
			result.StakedAmount = result.StakedAmount.Add(principal)
			if stake.Status != stakeStatusActive {
				continue
			}
			result.HasActiveStake = true
			if stake.EstimatedReward != "" {
				reward, err := fromBaseUnits(stake.EstimatedReward, nativeDecimals)
				if err != nil {
					return nil, err
				}
				result.RewardsEarned = result.RewardsEarned.Add(reward)
			}
			activeEpoch, err := strconv.ParseInt(stake.StakeActiveEpoch, 10, 64)
			if err == nil && (oldestActiveEpoch < 0 || activeEpoch < oldestActiveEpoch) {
				oldestActiveEpoch = activeEpoch
			}
		}
	}
	if oldestActiveEpoch < 0 {
		return result, nil
	}

	state, err := c.systemState(ctx)
	if err != nil {
		return nil, err
	}
	currentEpoch, err := strconv.ParseInt(state.Epoch, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid epoch %q: %w", state.Epoch, err)
	}
	epochDurationMs, err := strconv.ParseInt(state.EpochDurationMs, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid epoch duration %q: %w", state.EpochDurationMs, err)
	}
	if elapsed := currentEpoch - oldestActiveEpoch; elapsed > 0 {
		result.StakingDurationDays = elapsed * epochDurationMs / millisPerDay
	}
	return result, nil
}

func fromBaseUnits(value string, decimals int32) (decimal.Decimal, error) {
	units, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid base unit amount %q: %w", value, err)
	}
	return units.Shift(-decimals), nil
}
