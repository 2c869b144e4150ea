// internal/marketplace/admin.go
package marketplace

// ConfigureCommission sets the marketplace commission rate. Administrator
// only. The rate is recorded configuration; it is not deducted from any
// transfer the ledger orders.
func (l *Ledger) ConfigureCommission(caller Principal, rate uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller != l.admin {
		return newError(KindUnauthorized, CodeUnauthorized, "only the administrator may configure commission")
	}
	if !ValidCommissionRate(rate) {
		return newError(KindInvalidInput, CodeInvalidInput, "commission rate must not exceed %d basis points", MaxCommissionRate)
	}

	l.config.CommissionRate = rate

	l.persistConfig(l.config)
	l.emit(commissionConfiguredEvent(l.clock.Now(), rate))
	return nil
}

// ToggleOperational flips the marketplace kill switch. Administrator only,
// and deliberately not gated on the flag itself so a suspended marketplace
// can always be resumed.
func (l *Ledger) ToggleOperational(caller Principal) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller != l.admin {
		return false, newError(KindUnauthorized, CodeUnauthorized, "only the administrator may toggle marketplace status")
	}

	l.config.Operational = !l.config.Operational
	l.persistConfig(l.config)
	return l.config.Operational, nil
}
