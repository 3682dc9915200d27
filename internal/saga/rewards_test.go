package saga_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/suistake/bridge-saga-service/internal/saga"
)

func TestEstimateRewards(t *testing.T) {
	rate := dec("0.05")

	tests := []struct {
		principal string
		days      int64
		expected  string
	}{
		{"100", 7, "0.095890411"},
		{"98.0", 7, "0.093972603"},
		{"365", 1, "0.05"},
		{"0", 7, "0"},
	}
	for _, tt := range tests {
		got := saga.EstimateRewards(dec(tt.principal), rate, tt.days, 9)
		assert.True(t, got.Equal(dec(tt.expected)), "principal %s: got %s", tt.principal, got)
	}
}

func TestEstimateRewardsRoundsToNativeDecimals(t *testing.T) {
	got := saga.EstimateRewards(decimal.NewFromInt(100), dec("0.05"), 7, 9)
	assert.Equal(t, "0.095890411", got.String())
}
