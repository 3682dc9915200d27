package handlers

import (
	"net/http"

	"github.com/suistake/bridge-saga-service/internal/services"
	"github.com/suistake/bridge-saga-service/internal/types"
)

type StopMonitoringPublic struct {
	UserAddress string `json:"user_address"`
	Stopped     bool   `json:"stopped"`
}

func (h *Handler) StartMonitoring(request *http.Request) (*Result, *types.Error) {
	payload, err := parsePayload[FinalizeRequestPayload](request)
	if err != nil {
		return nil, err
	}
	if err := h.services.StartMonitoring(request.Context(), payload.UserAddress, payload.SourceChainId); err != nil {
		return nil, err
	}
	return NewResult(services.MonitoredUserPublic{
		UserAddress:   payload.UserAddress,
		SourceChainId: payload.SourceChainId,
	}), nil
}

func (h *Handler) StopMonitoring(request *http.Request) (*Result, *types.Error) {
	user, err := parseRequiredQuery(request, "user_address")
	if err != nil {
		return nil, err
	}
	stopped, err := h.services.StopMonitoring(request.Context(), user)
	if err != nil {
		return nil, err
	}
	return NewResult(StopMonitoringPublic{UserAddress: user, Stopped: stopped}), nil
}

func (h *Handler) ListMonitored(request *http.Request) (*Result, *types.Error) {
	return NewResult(h.services.ListMonitored()), nil
}
