package saga

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/suistake/bridge-saga-service/internal/types"
	"github.com/suistake/bridge-saga-service/internal/utils"
)

const (
	commissionWeight  = 0.30
	apyWeight         = 0.40
	reliabilityWeight = 0.30
)

// ValidatorSelector ranks active validators with a fixed weighted score.
type ValidatorSelector struct {
	source    ValidatorSource
	preferred []string
}

func NewValidatorSelector(source ValidatorSource, preferred []string) *ValidatorSelector {
	return &ValidatorSelector{source: source, preferred: preferred}
}

// Score is (100 - commission) * 0.30 + apy * 0.40 + reliability * 0.30 where
// reliability is 100 for validators in the next epoch's committee.
func Score(v types.ValidatorInfo) float64 {
	reliability := 0.0
	if v.WillParticipateNextEpoch {
		reliability = 100
	}
	return (100-v.CommissionPercent)*commissionWeight + v.APYPercent*apyWeight + reliability*reliabilityWeight
}

// SelectBest never fails. When the validator set cannot be fetched or is
// empty it falls back to the first preferred validator.
func (s *ValidatorSelector) SelectBest(ctx context.Context) string {
	active, err := s.source.ActiveValidators(ctx)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("failed to fetch active validators, using preferred fallback")
		return s.fallback()
	}
	if len(active) == 0 {
		log.Ctx(ctx).Warn().Msg("active validator set is empty, using preferred fallback")
		return s.fallback()
	}

	candidates := s.filterPreferred(active)
	best := candidates[0]
	bestScore := Score(best)
	for _, v := range candidates[1:] {
		// Strictly greater keeps the first encountered on ties.
		if score := Score(v); score > bestScore {
			best, bestScore = v, score
		}
	}
	log.Ctx(ctx).Debug().Str("validator", best.Address).Float64("score", bestScore).Msg("selected validator")
	return best.Address
}

func (s *ValidatorSelector) filterPreferred(active []types.ValidatorInfo) []types.ValidatorInfo {
	if len(s.preferred) == 0 {
		return active
	}
	preferred := make([]string, 0, len(s.preferred))
	for _, p := range s.preferred {
		preferred = append(preferred, utils.NormalizeAddress(p))
	}
	var filtered []types.ValidatorInfo
	for _, v := range active {
		if utils.Contains(preferred, utils.NormalizeAddress(v.Address)) {
			filtered = append(filtered, v)
		}
	}
	if len(filtered) == 0 {
		return active
	}
	return filtered
}

func (s *ValidatorSelector) fallback() string {
	if len(s.preferred) == 0 {
		return ""
	}
	return s.preferred[0]
}
