package api

import (
	"github.com/go-chi/chi"
)

func (a *Server) SetupRoutes(r *chi.Mux) {
	handlers := a.handlers
	r.Get("/healthcheck", registerHandler(handlers.HealthCheck))

	r.Post("/v1/stake", registerHandler(handlers.SubmitStake))
	r.Post("/v1/finalize", registerHandler(handlers.SubmitFinalize))
	r.Get("/v1/saga-runs", registerHandler(handlers.GetSagaRun))

	r.Get("/v1/staking/positions", registerHandler(handlers.GetStakingPositions))
	r.Get("/v1/staking/positions/latest", registerHandler(handlers.GetLatestStakingPosition))
	r.Get("/v1/rewards", registerHandler(handlers.GetRewards))
	r.Get("/v1/bridge/quote", registerHandler(handlers.GetBridgeQuote))

	r.Post("/v1/monitoring", registerHandler(handlers.StartMonitoring))
	r.Delete("/v1/monitoring", registerHandler(handlers.StopMonitoring))
	r.Get("/v1/monitoring", registerHandler(handlers.ListMonitored))
}
