package utils

import (
	"github.com/suistake/bridge-saga-service/internal/types"
)

// QualifiedStatesToRunning returns the saga run states that may move to "running".
// A run is consumed once, so only a pending run can start.
func QualifiedStatesToRunning() []types.SagaRunState {
	return []types.SagaRunState{types.SagaRunPending}
}

// QualifiedStatesToCompleted returns the states that may move to a terminal state.
func QualifiedStatesToCompleted() []types.SagaRunState {
	return []types.SagaRunState{types.SagaRunRunning}
}
