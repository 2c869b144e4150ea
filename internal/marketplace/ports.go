// internal/marketplace/ports.go
package marketplace

import "time"

// Clock supplies the monotonically non-decreasing time unit (block height)
// the ledger stamps on every operation. The ledger never reads wall-clock
// time directly.
type Clock interface {
	Now() uint64
}

// TickClock derives block heights from wall time: one unit per tick elapsed
// since an epoch. It is trivially non-decreasing because time.Since is.
type TickClock struct {
	epoch time.Time
	tick  time.Duration
}

func NewTickClock(epoch time.Time, tick time.Duration) *TickClock {
	if tick <= 0 {
		tick = time.Minute
	}
	return &TickClock{epoch: epoch, tick: tick}
}

func (c *TickClock) Now() uint64 {
	elapsed := time.Since(c.epoch)
	if elapsed < 0 {
		return 0
	}
	return uint64(elapsed / c.tick)
}

// PaymentExecutor performs the external value transfer an operation orders.
// The ledger treats a call as synchronous and atomic: a nil return commits
// the pending mutation, any error aborts it with zero state change.
type PaymentExecutor interface {
	Transfer(from, to Principal, amount uint64) error
}

// Persister receives committed records for durable storage. It is invoked
// after commit and is best-effort from the ledger's point of view; the
// in-memory state remains the source of truth for reads.
type Persister interface {
	SaveTechnology(Technology) error
	SaveContract(LicenseContract) error
	SaveTransaction(RoyaltyTransaction) error
	SaveConfig(Config) error
}

// EventSink receives one event per successful mutating operation, in commit
// order, exactly once. Implementations must not block the caller.
type EventSink interface {
	Publish(Event)
}
