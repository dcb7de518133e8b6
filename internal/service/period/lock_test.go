package period

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zimhr/payroll-backend-go/internal/domain/period"
)

func TestLockRegistry_SecondAcquireIsBusy(t *testing.T) {
	locks := newLockRegistry()

	require.NoError(t, locks.acquire("p-1", "cc-1"))
	assert.ErrorIs(t, locks.acquire("p-1", "cc-1"), period.ErrPeriodBusy)

	locks.release("p-1", "cc-1")
	assert.NoError(t, locks.acquire("p-1", "cc-1"))
}

func TestLockRegistry_KeysAreIndependent(t *testing.T) {
	locks := newLockRegistry()

	require.NoError(t, locks.acquire("p-1", "cc-1"))
	assert.NoError(t, locks.acquire("p-1", "cc-2"), "different center")
	assert.NoError(t, locks.acquire("p-2", "cc-1"), "different period")
}

func TestLockRegistry_OnlyOneWinnerUnderContention(t *testing.T) {
	locks := newLockRegistry()

	const attempts = 32
	var wg sync.WaitGroup
	wins := make(chan struct{}, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if locks.acquire("p-1", "cc-1") == nil {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	count := 0
	for range wins {
		count++
	}
	assert.Equal(t, 1, count)
}
