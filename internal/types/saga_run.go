package types

type SagaRunState string

const (
	SagaRunPending   SagaRunState = "pending"
	SagaRunRunning   SagaRunState = "running"
	SagaRunSucceeded SagaRunState = "succeeded"
	SagaRunFailed    SagaRunState = "failed"
)

func (s SagaRunState) ToString() string {
	return string(s)
}

type SagaKind string

const (
	StakeSaga    SagaKind = "stake"
	FinalizeSaga SagaKind = "finalize"
)

func (k SagaKind) ToString() string {
	return string(k)
}
