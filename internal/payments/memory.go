// internal/payments/memory.go
package payments

import (
	"fmt"
	"sync"

	"github.com/aniefioke/intellectual-property/internal/marketplace"
)

// MemoryExecutor is an in-process balance book implementing
// marketplace.PaymentExecutor. It backs tests and development mode, where no
// real settlement rail is configured, and fails transfers deterministically
// on insufficient funds.
type MemoryExecutor struct {
	mu       sync.Mutex
	balances map[string]uint64
}

func NewMemoryExecutor() *MemoryExecutor {
	return &MemoryExecutor{
		balances: make(map[string]uint64),
	}
}

// Deposit credits an account. Test and bootstrap helper.
func (m *MemoryExecutor) Deposit(account string, amount uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[account] += amount
}

// Balance returns the current balance of an account.
func (m *MemoryExecutor) Balance(account string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balances[account]
}

// Transfer moves amount from one account to the other atomically.
func (m *MemoryExecutor) Transfer(from, to marketplace.Principal, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if from == to {
		return nil
	}
	if m.balances[string(from)] < amount {
		return fmt.Errorf("insufficient balance: %s holds %d, needs %d", from, m.balances[string(from)], amount)
	}
	m.balances[string(from)] -= amount
	m.balances[string(to)] += amount
	return nil
}
