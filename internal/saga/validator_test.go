package saga_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/suistake/bridge-saga-service/internal/saga"
	"github.com/suistake/bridge-saga-service/internal/types"
	"github.com/suistake/bridge-saga-service/tests/mocks"
)

func TestScore(t *testing.T) {
	assert.InDelta(t, 61.7, saga.Score(types.ValidatorInfo{
		CommissionPercent: 1, APYPercent: 5, WillParticipateNextEpoch: true,
	}), 1e-9)
	assert.InDelta(t, 28.6, saga.Score(types.ValidatorInfo{
		CommissionPercent: 10, APYPercent: 4, WillParticipateNextEpoch: false,
	}), 1e-9)
}

func TestSelectBestPicksHighestScore(t *testing.T) {
	source := mocks.NewValidatorSource(t)
	source.On("ActiveValidators", mock.Anything).Return([]types.ValidatorInfo{
		{Address: "0xA", CommissionPercent: 1, APYPercent: 5, WillParticipateNextEpoch: true},
		{Address: "0xB", CommissionPercent: 10, APYPercent: 4, WillParticipateNextEpoch: true},
	}, nil)

	selector := saga.NewValidatorSelector(source, nil)
	assert.Equal(t, "0xA", selector.SelectBest(context.Background()))
}

func TestSelectBestBreaksTiesByOrder(t *testing.T) {
	source := mocks.NewValidatorSource(t)
	source.On("ActiveValidators", mock.Anything).Return([]types.ValidatorInfo{
		{Address: "0xFirst", CommissionPercent: 5, APYPercent: 4, WillParticipateNextEpoch: true},
		{Address: "0xSecond", CommissionPercent: 5, APYPercent: 4, WillParticipateNextEpoch: true},
	}, nil)

	selector := saga.NewValidatorSelector(source, nil)
	assert.Equal(t, "0xFirst", selector.SelectBest(context.Background()))
}

func TestSelectBestPrefersAllowList(t *testing.T) {
	source := mocks.NewValidatorSource(t)
	source.On("ActiveValidators", mock.Anything).Return([]types.ValidatorInfo{
		{Address: "0xaa", CommissionPercent: 0, APYPercent: 9, WillParticipateNextEpoch: true},
		{Address: "0xbb", CommissionPercent: 8, APYPercent: 3, WillParticipateNextEpoch: true},
		{Address: "0xcc", CommissionPercent: 2, APYPercent: 3, WillParticipateNextEpoch: false},
	}, nil)

	selector := saga.NewValidatorSelector(source, []string{"0xBB", "0xCC"})
	assert.Equal(t, "0xbb", selector.SelectBest(context.Background()))
}

func TestSelectBestFallsBackToActiveSetWhenNoPreferredIsActive(t *testing.T) {
	source := mocks.NewValidatorSource(t)
	source.On("ActiveValidators", mock.Anything).Return([]types.ValidatorInfo{
		{Address: "0xaa", CommissionPercent: 3, APYPercent: 4, WillParticipateNextEpoch: true},
		{Address: "0xbb", CommissionPercent: 1, APYPercent: 4, WillParticipateNextEpoch: true},
	}, nil)

	selector := saga.NewValidatorSelector(source, []string{"0xdd"})
	assert.Equal(t, "0xbb", selector.SelectBest(context.Background()))
}

func TestSelectBestFallsBackToFirstPreferred(t *testing.T) {
	t.Run("fetch error", func(t *testing.T) {
		source := mocks.NewValidatorSource(t)
		source.On("ActiveValidators", mock.Anything).Return(nil, errors.New("rpc unavailable"))

		selector := saga.NewValidatorSelector(source, []string{"0xdd", "0xee"})
		assert.Equal(t, "0xdd", selector.SelectBest(context.Background()))
	})

	t.Run("empty active set", func(t *testing.T) {
		source := mocks.NewValidatorSource(t)
		source.On("ActiveValidators", mock.Anything).Return([]types.ValidatorInfo{}, nil)

		selector := saga.NewValidatorSelector(source, []string{"0xdd"})
		assert.Equal(t, "0xdd", selector.SelectBest(context.Background()))
	})

	t.Run("no preferred validators", func(t *testing.T) {
		source := mocks.NewValidatorSource(t)
		source.On("ActiveValidators", mock.Anything).Return(nil, errors.New("rpc unavailable"))

		selector := saga.NewValidatorSelector(source, nil)
		assert.Empty(t, selector.SelectBest(context.Background()))
	})
}
