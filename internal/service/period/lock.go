package period

import (
	"sync"

	"github.com/zimhr/payroll-backend-go/internal/domain/period"
)

type lockKey struct {
	periodID     string
	costCenterID string
}

// lockRegistry serializes run/refresh/close per (period, cost center). The
// lock is try-only: a second caller gets ErrPeriodBusy immediately instead
// of queueing, so two concurrent runs can never interleave writes.
type lockRegistry struct {
	mu   sync.Mutex
	held map[lockKey]struct{}
}

func newLockRegistry() *lockRegistry {
	return &lockRegistry{held: make(map[lockKey]struct{})}
}

func (r *lockRegistry) acquire(periodID, costCenterID string) error {
	key := lockKey{periodID: periodID, costCenterID: costCenterID}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.held[key]; ok {
		return period.ErrPeriodBusy
	}
	r.held[key] = struct{}{}
	return nil
}

func (r *lockRegistry) release(periodID, costCenterID string) {
	key := lockKey{periodID: periodID, costCenterID: costCenterID}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.held, key)
}
