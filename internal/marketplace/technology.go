// internal/marketplace/technology.go
package marketplace

// RegisterTechnology records a new technology owned by the caller and returns
// its identifier. Identifiers are assigned sequentially starting at 1 and are
// never reused; a failed registration does not consume one.
func (l *Ledger) RegisterTechnology(owner Principal, params RegisterTechnologyParams) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.config.Operational {
		return 0, ErrSuspended
	}
	if !ValidTitle(params.Title) {
		return 0, newError(KindInvalidInput, CodeInvalidInput, "title must be 1-%d characters", MaxTitleLength)
	}
	if !ValidSummary(params.Summary) {
		return 0, newError(KindInvalidInput, CodeInvalidInput, "summary must be at most %d characters", MaxSummaryLength)
	}
	if !ValidAmount(params.LicensingFee) {
		return 0, newError(KindInvalidInput, CodeInvalidInput, "licensing fee must be positive")
	}
	if !ValidRoyaltyRate(params.RoyaltyRate) {
		return 0, newError(KindInvalidInput, CodeInvalidInput, "royalty rate must not exceed %d basis points", MaxRoyaltyRate)
	}

	id := l.technologyCount + 1
	tech := &Technology{
		ID:           id,
		Owner:        owner,
		Title:        params.Title,
		Summary:      params.Summary,
		LicensingFee: params.LicensingFee,
		RoyaltyRate:  params.RoyaltyRate,
		Available:    true,
		RegisteredAt: l.clock.Now(),
	}
	l.technologies[id] = tech
	l.technologyCount = id

	l.persistTechnology(*tech)
	l.emit(technologyRegisteredEvent(tech.RegisteredAt, *tech))
	return id, nil
}

// ModifyTerms applies a partial update of fee, royalty rate or availability.
// Only the stored owner may modify terms; existing contracts keep their
// snapshotted values regardless.
func (l *Ledger) ModifyTerms(caller Principal, technologyID uint64, params ModifyTermsParams) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.config.Operational {
		return ErrSuspended
	}
	tech, ok := l.technologies[technologyID]
	if !ok {
		return newError(KindNotFound, CodeNotFound, "technology %d not found", technologyID)
	}
	if tech.Owner != caller {
		return newError(KindUnauthorized, CodeUnauthorized, "only the technology owner may modify terms")
	}
	if params.LicensingFee != nil && !ValidAmount(*params.LicensingFee) {
		return newError(KindInvalidInput, CodeInvalidInput, "licensing fee must be positive")
	}
	if params.RoyaltyRate != nil && !ValidRoyaltyRate(*params.RoyaltyRate) {
		return newError(KindInvalidInput, CodeInvalidInput, "royalty rate must not exceed %d basis points", MaxRoyaltyRate)
	}

	if params.LicensingFee != nil {
		tech.LicensingFee = *params.LicensingFee
	}
	if params.RoyaltyRate != nil {
		tech.RoyaltyRate = *params.RoyaltyRate
	}
	if params.Available != nil {
		tech.Available = *params.Available
	}

	l.persistTechnology(*tech)
	l.emit(termsModifiedEvent(l.clock.Now(), *tech))
	return nil
}

// Technology returns a copy of the stored record.
func (l *Ledger) Technology(technologyID uint64) (Technology, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tech, ok := l.technologies[technologyID]
	if !ok {
		return Technology{}, newError(KindNotFound, CodeNotFound, "technology %d not found", technologyID)
	}
	return *tech, nil
}
