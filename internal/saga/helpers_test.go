package saga_test

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/suistake/bridge-saga-service/internal/config"
)

func testSagaConfig() config.SagaConfig {
	return config.SagaConfig{
		BridgePollInterval: time.Millisecond,
		BridgeTimeout:      50 * time.Millisecond,
		VaaPollInterval:    time.Millisecond,
		VaaTimeout:         50 * time.Millisecond,
		AnnualRate:         0.05,
		MinStakingDays:     7,
		NativeDecimals:     9,
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// decEq matches a decimal argument by value, "99" matches "99.0".
func decEq(s string) interface{} {
	want := dec(s)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}
