package handlers

import (
	"net/http"

	"github.com/suistake/bridge-saga-service/internal/types"
)

// GetStakingPositions @Summary Get staking positions of a user
// @Description Positions are append-only, newest first. The first entry is the current one.
// @Produce json
// @Param user_address query string true "User EVM address"
// @Param pagination_key query string false "Pagination key to fetch the next page"
// @Success 200 {object} PublicResponse[[]services.StakingPositionPublic]{array} "List of positions and pagination token"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Router /v1/staking/positions [get]
func (h *Handler) GetStakingPositions(request *http.Request) (*Result, *types.Error) {
	user, err := parseRequiredQuery(request, "user_address")
	if err != nil {
		return nil, err
	}
	positions, paginationKey, err := h.services.StakingPositionsByUser(
		request.Context(), user, parsePaginationQuery(request),
	)
	if err != nil {
		return nil, err
	}
	return NewResultWithPagination(positions, paginationKey), nil
}

func (h *Handler) GetLatestStakingPosition(request *http.Request) (*Result, *types.Error) {
	user, err := parseRequiredQuery(request, "user_address")
	if err != nil {
		return nil, err
	}
	position, err := h.services.LatestStakingPosition(request.Context(), user)
	if err != nil {
		return nil, err
	}
	return NewResult(position), nil
}

// GetRewards @Summary Get a fresh reward snapshot
// @Description Reads the stake on Sui and the loan on the source chain and reports whether the user can finalize.
// @Produce json
// @Param user_address query string true "User EVM address"
// @Success 200 {object} PublicResponse[types.RewardSnapshot] "Reward snapshot"
// @Failure 502 {object} types.Error "Upstream unavailable"
// @Router /v1/rewards [get]
func (h *Handler) GetRewards(request *http.Request) (*Result, *types.Error) {
	user, err := parseRequiredQuery(request, "user_address")
	if err != nil {
		return nil, err
	}
	snapshot, err := h.services.GetRewards(request.Context(), user)
	if err != nil {
		return nil, err
	}
	return NewResult(snapshot), nil
}

func (h *Handler) GetBridgeQuote(request *http.Request) (*Result, *types.Error) {
	chainID, err := parseRequiredQuery(request, "source_chain_id")
	if err != nil {
		return nil, err
	}
	amount, err := parseRequiredQuery(request, "amount")
	if err != nil {
		return nil, err
	}
	quote, err := h.services.QuoteBridge(request.Context(), chainID, amount)
	if err != nil {
		return nil, err
	}
	return NewResult(quote), nil
}
