package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/suistake/bridge-saga-service/internal/observability/metrics"
	"github.com/suistake/bridge-saga-service/internal/saga"
	"github.com/suistake/bridge-saga-service/internal/scheduler"
	"github.com/suistake/bridge-saga-service/internal/types"
	"github.com/suistake/bridge-saga-service/internal/utils"
)

// Finalizer runs the return leg for a user.
type Finalizer interface {
	Finalize(ctx context.Context, user, sourceChainId string) *types.FinalizationResult
}

// FinalizedFunc is called once after a monitor tick finalized a user.
type FinalizedFunc func(ctx context.Context, user, sourceChainId string, result *types.FinalizationResult)

// RewardsMonitor polls each monitored user's rewards and triggers the return
// leg once they can be finalized. Monitoring is one-shot: a successful
// finalization removes the user.
type RewardsMonitor struct {
	scheduler   *scheduler.Scheduler
	snapshots   saga.SnapshotProvider
	finalizer   Finalizer
	interval    time.Duration
	onFinalized FinalizedFunc

	// Ticks derive their context from baseCtx so Shutdown can cancel them.
	baseCtx context.Context
	cancel  context.CancelFunc
	mu      sync.Mutex
	chains  map[string]string
}

func New(
	sched *scheduler.Scheduler, snapshots saga.SnapshotProvider, finalizer Finalizer,
	interval time.Duration, onFinalized FinalizedFunc,
) *RewardsMonitor {
	baseCtx, cancel := context.WithCancel(context.Background())
	return &RewardsMonitor{
		scheduler:   sched,
		snapshots:   snapshots,
		finalizer:   finalizer,
		interval:    interval,
		onFinalized: onFinalized,
		baseCtx:     baseCtx,
		cancel:      cancel,
		chains:      make(map[string]string),
	}
}

// StartMonitoring (re)arms the monitor for user. Calling it again for the
// same user leaves exactly one active timer.
func (m *RewardsMonitor) StartMonitoring(user, sourceChainId string) error {
	key := utils.NormalizeAddress(user)
	m.StopMonitoring(key)

	_, err := m.scheduler.Start(key, m.interval, func(h scheduler.Handle) {
		m.tick(h, user, sourceChainId)
	})
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.chains[key] = sourceChainId
	m.mu.Unlock()
	metrics.SetMonitoredUsers(len(m.scheduler.Keys()))
	log.Info().Str("user", user).Str("sourceChainId", sourceChainId).Msg("rewards monitoring started")
	return nil
}

// StopMonitoring reports whether user was being monitored.
func (m *RewardsMonitor) StopMonitoring(user string) bool {
	key := utils.NormalizeAddress(user)
	stopped := m.scheduler.Stop(key)

	m.mu.Lock()
	delete(m.chains, key)
	m.mu.Unlock()
	if stopped {
		metrics.SetMonitoredUsers(len(m.scheduler.Keys()))
		log.Info().Str("user", user).Msg("rewards monitoring stopped")
	}
	return stopped
}

func (m *RewardsMonitor) ListMonitored() []string {
	return m.scheduler.Keys()
}

// SourceChain returns the chain a monitored user settles on.
func (m *RewardsMonitor) SourceChain(user string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	chain, ok := m.chains[utils.NormalizeAddress(user)]
	return chain, ok
}

// Shutdown cancels every monitor. In-flight ticks see their context cancelled.
func (m *RewardsMonitor) Shutdown(ctx context.Context) error {
	m.cancel()
	err := m.scheduler.Shutdown(ctx)

	m.mu.Lock()
	m.chains = make(map[string]string)
	m.mu.Unlock()
	metrics.SetMonitoredUsers(0)
	return err
}

func (m *RewardsMonitor) tick(h scheduler.Handle, user, sourceChainId string) {
	logger := log.With().Str("user", user).Str("sourceChainId", sourceChainId).Logger()
	ctx := logger.WithContext(m.baseCtx)

	snapshot, err := m.snapshots.Compute(ctx, user)
	if err != nil {
		logger.Error().Err(err).Msg("failed to compute reward snapshot")
		return
	}
	if !snapshot.CanFinalize {
		logger.Debug().
			Int64("stakingDurationDays", snapshot.StakingDurationDays).
			Str("totalValueUsdc", snapshot.TotalValueUsdc.String()).
			Msg("rewards not ready for finalization")
		return
	}

	result := m.finalizer.Finalize(ctx, user, sourceChainId)
	if !result.Success {
		// The timer stays armed, the next tick retries.
		logger.Error().Str("errorCode", result.ErrorCode.String()).Msg("finalization failed: " + result.Error)
		return
	}

	if m.scheduler.Cancel(h) {
		m.mu.Lock()
		delete(m.chains, h.Key)
		m.mu.Unlock()
		metrics.SetMonitoredUsers(len(m.scheduler.Keys()))
	}
	logger.Info().Str("txHash", result.TransactionHash).Msg("user finalized, monitoring stopped")
	if m.onFinalized != nil {
		m.onFinalized(ctx, user, sourceChainId, result)
	}
}
