package services

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/suistake/bridge-saga-service/internal/db/model"
	"github.com/suistake/bridge-saga-service/internal/locker"
	"github.com/suistake/bridge-saga-service/internal/monitor"
	"github.com/suistake/bridge-saga-service/internal/queue/client"
	"github.com/suistake/bridge-saga-service/internal/types"
	"github.com/suistake/bridge-saga-service/internal/utils"
)

const finalizeLockPrefix = "finalize:"

type MonitoredUserPublic struct {
	UserAddress   string `json:"user_address"`
	SourceChainId string `json:"source_chain_id"`
}

// StartMonitoring persists the monitored user and arms its timer.
func (s *Services) StartMonitoring(ctx context.Context, user, sourceChainId string) *types.Error {
	if err := validateUser(user); err != nil {
		return err
	}
	if err := s.validateChain(sourceChainId); err != nil {
		return err
	}
	user = utils.NormalizeAddress(user)

	if err := s.DbClient.SaveMonitoredUser(ctx, user, sourceChainId); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("user", user).Msg("Failed to save monitored user")
		return types.NewInternalServiceError(err)
	}
	if err := s.Monitor.StartMonitoring(user, sourceChainId); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("user", user).Msg("Failed to arm rewards monitor")
		if deleteErr := s.DbClient.DeleteMonitoredUser(ctx, user); deleteErr != nil {
			log.Ctx(ctx).Error().Err(deleteErr).Str("user", user).Msg("Failed to remove monitored user")
		}
		return types.NewErrorWithMsg(http.StatusServiceUnavailable, types.InternalServiceError, err.Error())
	}
	return nil
}

// StopMonitoring reports whether user was being monitored.
func (s *Services) StopMonitoring(ctx context.Context, user string) (bool, *types.Error) {
	user = utils.NormalizeAddress(user)
	stopped := s.Monitor.StopMonitoring(user)
	if err := s.DbClient.DeleteMonitoredUser(ctx, user); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("user", user).Msg("Failed to delete monitored user")
		return stopped, types.NewInternalServiceError(err)
	}
	return stopped, nil
}

func (s *Services) ListMonitored() []MonitoredUserPublic {
	users := s.Monitor.ListMonitored()
	sort.Strings(users)
	monitored := make([]MonitoredUserPublic, 0, len(users))
	for _, user := range users {
		chain, ok := s.Monitor.SourceChain(user)
		if !ok {
			// Stopped between the two reads.
			continue
		}
		monitored = append(monitored, MonitoredUserPublic{UserAddress: user, SourceChainId: chain})
	}
	return monitored
}

// RestoreMonitoring re-arms every persisted monitor, typically on startup.
func (s *Services) RestoreMonitoring(ctx context.Context) (int, error) {
	users, err := s.DbClient.FindMonitoredUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load monitored users: %w", err)
	}
	restored := 0
	for _, u := range users {
		if !utils.Contains(s.chains, u.SourceChainId) {
			log.Ctx(ctx).Warn().Str("user", u.UserAddress).Str("sourceChainId", u.SourceChainId).
				Msg("Skip monitored user on an unconfigured chain")
			continue
		}
		if err := s.Monitor.StartMonitoring(u.UserAddress, u.SourceChainId); err != nil {
			return restored, fmt.Errorf("failed to restore monitor for %s: %w", u.UserAddress, err)
		}
		restored++
	}
	log.Ctx(ctx).Info().Int("restored", restored).Msg("rewards monitors restored")
	return restored, nil
}

// onMonitorFinalized records a monitor-triggered finalization as a completed
// run so it shows up next to requested ones.
func (s *Services) onMonitorFinalized(
	ctx context.Context, user, sourceChainId string, result *types.FinalizationResult,
) {
	key := utils.NormalizeAddress(user)
	if err := s.DbClient.DeleteMonitoredUser(ctx, key); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("user", key).Msg("Failed to delete monitored user")
	}

	now := s.now().Unix()
	run := model.NewSagaRunDocument(s.newRequestId(), types.FinalizeSaga, key, sourceChainId, "", now)
	run.State = types.SagaRunSucceeded
	run.FinalizationResult = result
	if err := s.DbClient.SaveSagaRun(ctx, run); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("user", key).Str("txHash", result.TransactionHash).
			Msg("Failed to record monitor finalization")
	}
	s.publishOutcome(ctx, client.NewFinalizeOutcomeEvent(run.RequestId, key, result))
}

// serializedFinalizer lets one finalization per user run at a time, whether it
// was requested or triggered by the monitor.
type serializedFinalizer struct {
	next   monitor.Finalizer
	locker locker.Locker
}

func (f *serializedFinalizer) Finalize(ctx context.Context, user, sourceChainId string) *types.FinalizationResult {
	unlock, err := f.locker.Lock(ctx, finalizeLockPrefix+utils.NormalizeAddress(user))
	if err != nil {
		return types.NewFailedFinalizationResult(
			types.TimeoutError, fmt.Sprintf("Failed to acquire finalization lock: %v", err),
		)
	}
	defer unlock()
	return f.next.Finalize(ctx, user, sourceChainId)
}
