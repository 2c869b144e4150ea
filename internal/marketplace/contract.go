// internal/marketplace/contract.go
package marketplace

// CreateLicenseContract purchases a time-bounded license over a technology.
// The caller becomes the licensee; payment amount and royalty rate are
// snapshotted from the technology at this moment. The licensing fee transfer
// is ordered before the commit: if the payment executor rejects it, no
// contract exists and no counter moves.
func (l *Ledger) CreateLicenseContract(caller Principal, technologyID, duration uint64) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.config.Operational {
		return 0, ErrSuspended
	}
	tech, ok := l.technologies[technologyID]
	if !ok {
		return 0, newError(KindNotFound, CodeNotFound, "technology %d not found", technologyID)
	}
	if !tech.Available {
		return 0, newError(KindUnavailable, CodeContractInactive, "technology %d is not available for licensing", technologyID)
	}
	if !ValidDuration(duration) {
		return 0, newError(KindInvalidDuration, CodeInvalidTimePeriod, "duration must be 1-%d time units", MaxLicensingDuration)
	}

	if err := l.payments.Transfer(caller, tech.Owner, tech.LicensingFee); err != nil {
		return 0, newError(KindPaymentFailed, CodePaymentFailed, "licensing fee transfer rejected: %v", err)
	}

	start := l.clock.Now()
	id := l.contractCount + 1
	contract := &LicenseContract{
		ID:           id,
		TechnologyID: technologyID,
		Licensee:     caller,
		Licensor:     tech.Owner,
		Payment:      tech.LicensingFee,
		RoyaltyRate:  tech.RoyaltyRate,
		StartBlock:   start,
		EndBlock:     start + duration,
		Active:       true,
	}
	l.contracts[id] = contract
	l.contractCount = id

	l.persistContract(*contract)
	l.emit(contractCreatedEvent(start, *contract))
	return id, nil
}

// RevokeContract terminates an active contract before its natural expiry.
// Either party may revoke. Revoking an already-inactive contract is surfaced
// as an error, not treated as success.
func (l *Ledger) RevokeContract(caller Principal, contractID uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.config.Operational {
		return ErrSuspended
	}
	contract, ok := l.contracts[contractID]
	if !ok {
		return newError(KindNotFound, CodeNotFound, "contract %d not found", contractID)
	}
	if caller != contract.Licensee && caller != contract.Licensor {
		return newError(KindUnauthorized, CodeUnauthorized, "only a contract party may revoke")
	}
	if !contract.Active {
		return newError(KindAlreadyInactive, CodeContractInactive, "contract %d is already inactive", contractID)
	}

	contract.Active = false

	l.persistContract(*contract)
	l.emit(contractRevokedEvent(l.clock.Now(), *contract, caller))
	return nil
}

// Contract returns a copy of the stored record.
func (l *Ledger) Contract(contractID uint64) (LicenseContract, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	contract, ok := l.contracts[contractID]
	if !ok {
		return LicenseContract{}, newError(KindNotFound, CodeNotFound, "contract %d not found", contractID)
	}
	return *contract, nil
}

// CheckAccess is the derived authorization relation: user holds access under
// contractID iff the user is the licensee, the contract is active, and the
// current block has not passed the contract end. It reads committed state
// only and is callable by any identity.
func (l *Ledger) CheckAccess(user Principal, contractID uint64) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	contract, ok := l.contracts[contractID]
	if !ok {
		return false, newError(KindNotFound, CodeNotFound, "contract %d not found", contractID)
	}
	authorized := contract.Licensee == user &&
		contract.Active &&
		l.clock.Now() <= contract.EndBlock
	return authorized, nil
}
