// internal/marketplace/events.go
package marketplace

import (
	"time"

	"github.com/google/uuid"
)

// Event names and payload keys match the deployed contract's print events.
const (
	EventTechnologyRegistered = "quantum-technology-registered"
	EventTermsModified        = "technology-terms-modified"
	EventContractCreated      = "licensing-contract-created"
	EventContractRevoked      = "licensing-contract-revoked"
	EventCommissionConfigured = "commission-rate-configured"
)

// Event is the observable side-channel record of one committed mutation.
type Event struct {
	ID        uuid.UUID              `json:"id"`
	Name      string                 `json:"marketplace_event"`
	Block     uint64                 `json:"block"`
	Payload   map[string]interface{} `json:"payload"`
	EmittedAt time.Time              `json:"emitted_at"`
}

func newEvent(name string, block uint64, payload map[string]interface{}) Event {
	return Event{
		ID:        uuid.New(),
		Name:      name,
		Block:     block,
		Payload:   payload,
		EmittedAt: time.Now().UTC(),
	}
}

func technologyRegisteredEvent(block uint64, t Technology) Event {
	return newEvent(EventTechnologyRegistered, block, map[string]interface{}{
		"technologyId":    t.ID,
		"ownerAddress":    t.Owner,
		"technologyTitle": t.Title,
	})
}

func termsModifiedEvent(block uint64, t Technology) Event {
	return newEvent(EventTermsModified, block, map[string]interface{}{
		"technologyId":    t.ID,
		"newLicensingFee": t.LicensingFee,
	})
}

func contractCreatedEvent(block uint64, c LicenseContract) Event {
	return newEvent(EventContractCreated, block, map[string]interface{}{
		"contractId":   c.ID,
		"technologyId": c.TechnologyID,
		"licensee":     c.Licensee,
	})
}

func contractRevokedEvent(block uint64, c LicenseContract, initiator Principal) Event {
	return newEvent(EventContractRevoked, block, map[string]interface{}{
		"revokedContractId":   c.ID,
		"revocationInitiator": initiator,
	})
}

func commissionConfiguredEvent(block uint64, rate uint64) Event {
	return newEvent(EventCommissionConfigured, block, map[string]interface{}{
		"updatedRate": rate,
	})
}
