// internal/payments/memory_test.go
package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryExecutorTransfer(t *testing.T) {
	bank := NewMemoryExecutor()
	bank.Deposit("alice", 1000)

	require.NoError(t, bank.Transfer("alice", "bob", 400))
	assert.Equal(t, uint64(600), bank.Balance("alice"))
	assert.Equal(t, uint64(400), bank.Balance("bob"))
}

func TestMemoryExecutorInsufficientFunds(t *testing.T) {
	bank := NewMemoryExecutor()
	bank.Deposit("alice", 100)

	err := bank.Transfer("alice", "bob", 101)
	require.Error(t, err)
	assert.Equal(t, uint64(100), bank.Balance("alice"), "failed transfer moves nothing")
	assert.Equal(t, uint64(0), bank.Balance("bob"))
}

func TestMemoryExecutorSelfTransfer(t *testing.T) {
	bank := NewMemoryExecutor()
	bank.Deposit("alice", 50)

	require.NoError(t, bank.Transfer("alice", "alice", 9999))
	assert.Equal(t, uint64(50), bank.Balance("alice"))
}
