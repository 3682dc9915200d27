package services

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/suistake/bridge-saga-service/internal/db"
	"github.com/suistake/bridge-saga-service/internal/db/model"
	"github.com/suistake/bridge-saga-service/internal/observability/tracing"
	"github.com/suistake/bridge-saga-service/internal/types"
	"github.com/suistake/bridge-saga-service/internal/utils"
)

type StakingPositionPublic struct {
	StakeTxHash      string `json:"stake_tx_hash"`
	UserAddress      string `json:"user_address"`
	ValidatorAddress string `json:"validator_address"`
	StakedAmount     string `json:"staked_amount"`
	SourceChainId    string `json:"source_chain_id"`
	CreatedAt        string `json:"created_at"`
	// Only the newest position of a user is current, earlier ones were superseded.
	Current bool `json:"current"`
}

func fromStakingPositionDocument(d model.StakingPositionDocument) StakingPositionPublic {
	return StakingPositionPublic{
		StakeTxHash:      d.StakeTxHash,
		UserAddress:      d.UserAddress,
		ValidatorAddress: d.ValidatorAddress,
		StakedAmount:     d.StakedAmount,
		SourceChainId:    d.SourceChainId,
		CreatedAt:        time.Unix(d.CreatedAt, 0).UTC().Format(time.RFC3339),
	}
}

func (s *Services) StakingPositionsByUser(
	ctx context.Context, user string, pageToken string,
) ([]StakingPositionPublic, string, *types.Error) {
	if err := validateUser(user); err != nil {
		return nil, "", err
	}
	resultMap, err := s.DbClient.FindStakingPositionsByUser(ctx, utils.NormalizeAddress(user), pageToken)
	if err != nil {
		if db.IsInvalidPaginationTokenError(err) {
			log.Ctx(ctx).Warn().Err(err).Msg("Invalid pagination token when fetching staking positions")
			return nil, "", types.NewError(http.StatusBadRequest, types.BadRequest, err)
		}
		log.Ctx(ctx).Error().Err(err).Msg("Failed to find staking positions by user")
		return nil, "", types.NewInternalServiceError(err)
	}

	positions := make([]StakingPositionPublic, 0, len(resultMap.Data))
	for i, d := range resultMap.Data {
		p := fromStakingPositionDocument(d)
		// Results are newest first, the head of the first page is current.
		p.Current = pageToken == "" && i == 0
		positions = append(positions, p)
	}
	return positions, resultMap.PaginationToken, nil
}

func (s *Services) LatestStakingPosition(ctx context.Context, user string) (*StakingPositionPublic, *types.Error) {
	if err := validateUser(user); err != nil {
		return nil, err
	}
	position, err := s.DbClient.FindLatestStakingPosition(ctx, utils.NormalizeAddress(user))
	if err != nil {
		if db.IsNotFoundError(err) {
			return nil, types.NewErrorWithMsg(http.StatusNotFound, types.NotFound, "No staking position for user")
		}
		log.Ctx(ctx).Error().Err(err).Msg("Failed to find latest staking position")
		return nil, types.NewInternalServiceError(err)
	}
	p := fromStakingPositionDocument(*position)
	p.Current = true
	return &p, nil
}

// GetRewards computes a fresh reward snapshot for user.
func (s *Services) GetRewards(ctx context.Context, user string) (*types.RewardSnapshot, *types.Error) {
	if err := validateUser(user); err != nil {
		return nil, err
	}
	snapshot, err := tracing.WrapWithSpan(ctx, "rewardSnapshot", func() (*types.RewardSnapshot, error) {
		return s.snapshots.Compute(ctx, utils.NormalizeAddress(user))
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("user", user).Msg("Failed to compute reward snapshot")
		return nil, types.NewError(http.StatusBadGateway, types.GatewayError, err)
	}
	return snapshot, nil
}
