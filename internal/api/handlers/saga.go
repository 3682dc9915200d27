package handlers

import (
	"net/http"

	"github.com/suistake/bridge-saga-service/internal/types"
)

type FinalizeRequestPayload struct {
	UserAddress   string `json:"user_address"`
	SourceChainId string `json:"source_chain_id"`
}

// SubmitStake godoc
// @Summary Stake escrowed USDC on Sui
// @Description Bridges the amount to Sui, swaps it and stakes it with the best validator. This is an async operation,
// @Description poll /v1/saga-runs with the returned request id.
// @Accept json
// @Produce json
// @Param payload body types.StakeRequest true "Stake request"
// @Success 202 {object} PublicResponse[services.SagaRunPublic] "Request accepted"
// @Failure 400 {object} types.Error "Invalid request payload"
// @Router /v1/stake [post]
func (h *Handler) SubmitStake(request *http.Request) (*Result, *types.Error) {
	payload, err := parsePayload[types.StakeRequest](request)
	if err != nil {
		return nil, err
	}
	run, err := h.services.SubmitStake(request.Context(), *payload)
	if err != nil {
		return nil, err
	}
	return NewAcceptedResult(run), nil
}

// SubmitFinalize godoc
// @Summary Unwind a stake and settle the escrow
// @Description Claims the stake, bridges it back and repays the loan. This is an async operation.
// @Accept json
// @Produce json
// @Param payload body FinalizeRequestPayload true "Finalize request"
// @Success 202 {object} PublicResponse[services.SagaRunPublic] "Request accepted"
// @Failure 400 {object} types.Error "Invalid request payload"
// @Router /v1/finalize [post]
func (h *Handler) SubmitFinalize(request *http.Request) (*Result, *types.Error) {
	payload, err := parsePayload[FinalizeRequestPayload](request)
	if err != nil {
		return nil, err
	}
	run, err := h.services.SubmitFinalize(request.Context(), payload.UserAddress, payload.SourceChainId)
	if err != nil {
		return nil, err
	}
	return NewAcceptedResult(run), nil
}

// GetSagaRun godoc
// @Summary Get the state of a stake or finalize request
// @Produce json
// @Param request_id query string true "Request id returned on submission"
// @Success 200 {object} PublicResponse[services.SagaRunPublic] "Saga run"
// @Failure 404 {object} types.Error "Saga run not found"
// @Router /v1/saga-runs [get]
func (h *Handler) GetSagaRun(request *http.Request) (*Result, *types.Error) {
	requestId, err := parseRequiredQuery(request, "request_id")
	if err != nil {
		return nil, err
	}
	run, err := h.services.GetSagaRun(request.Context(), requestId)
	if err != nil {
		return nil, err
	}
	return NewResult(run), nil
}
