// internal/marketplace/royalty.go
package marketplace

import "math/bits"

// RoyaltyAmount computes the royalty due for a usage metric against a rate in
// basis points. Integer division truncates toward zero, so partial units
// round in the payer's favor. The product goes through a 128-bit intermediate
// so the usage metric, which has no upper bound, cannot wrap; with rate at
// most MaxRoyaltyRate the quotient always fits back in uint64.
func RoyaltyAmount(usage, rate uint64) uint64 {
	hi, lo := bits.Mul64(usage, rate)
	quo, _ := bits.Div64(hi, lo, MaxRoyaltyRate)
	return quo
}

// ProcessRoyaltyPayment computes the royalty for the reported usage against
// the contract's snapshotted rate, orders the transfer from the caller to the
// licensor, and appends an immutable transaction record. A rejected transfer
// aborts with no record and no counter movement.
func (l *Ledger) ProcessRoyaltyPayment(caller Principal, contractID, usage uint64) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.config.Operational {
		return 0, ErrSuspended
	}
	contract, ok := l.contracts[contractID]
	if !ok {
		return 0, newError(KindNotFound, CodeNotFound, "contract %d not found", contractID)
	}
	if !contract.Active {
		return 0, newError(KindInactive, CodeContractInactive, "contract %d is inactive", contractID)
	}
	now := l.clock.Now()
	if now > contract.EndBlock {
		return 0, newError(KindExpired, CodeExpired, "contract %d expired at block %d", contractID, contract.EndBlock)
	}
	if !ValidAmount(usage) {
		return 0, newError(KindInvalidInput, CodeInvalidInput, "usage metric must be positive")
	}

	amount := RoyaltyAmount(usage, contract.RoyaltyRate)
	if amount > 0 {
		if err := l.payments.Transfer(caller, contract.Licensor, amount); err != nil {
			return 0, newError(KindPaymentFailed, CodePaymentFailed, "royalty transfer rejected: %v", err)
		}
	}

	id := l.transactionCount + 1
	tx := &RoyaltyTransaction{
		ID:          id,
		ContractID:  contractID,
		Amount:      amount,
		Processor:   caller,
		ProcessedAt: now,
	}
	l.transactions[id] = tx
	l.transactionCount = id

	// The transaction record is the observable trace; royalty processing has
	// no dedicated event class.
	l.persistTransaction(*tx)
	return id, nil
}

// Transaction returns a copy of the stored royalty record.
func (l *Ledger) Transaction(transactionID uint64) (RoyaltyTransaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx, ok := l.transactions[transactionID]
	if !ok {
		return RoyaltyTransaction{}, newError(KindNotFound, CodeNotFound, "transaction %d not found", transactionID)
	}
	return *tx, nil
}
