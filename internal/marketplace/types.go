// internal/marketplace/types.go
package marketplace

// Principal is an opaque caller identity supplied by the environment. The
// ledger only ever compares principals for equality; it attaches no meaning
// to the string itself.
type Principal string

// Marketplace constants carried over from the deployed contract.
const (
	MaxRoyaltyRate       uint64 = 10000  // basis points, 100%
	MaxCommissionRate    uint64 = 1000   // basis points, 10%
	MaxLicensingDuration uint64 = 525600 // time units, about one year
	MinPositiveAmount    uint64 = 1
	MaxTitleLength              = 100
	MaxSummaryLength            = 500
	DefaultCommission    uint64 = 250 // 2.5%
)

// Technology is a registered intangible asset. The owner is fixed at
// registration; fee, royalty and availability are owner-mutable.
type Technology struct {
	ID           uint64    `json:"id"`
	Owner        Principal `json:"owner"`
	Title        string    `json:"title"`
	Summary      string    `json:"summary"`
	LicensingFee uint64    `json:"licensing_fee"`
	RoyaltyRate  uint64    `json:"royalty_rate"`
	Available    bool      `json:"available"`
	RegisteredAt uint64    `json:"registered_at"`
}

// LicenseContract is a time-bounded usage grant over one technology. Payment
// and royalty rate are snapshotted from the technology at creation and never
// track later term changes.
type LicenseContract struct {
	ID           uint64    `json:"id"`
	TechnologyID uint64    `json:"technology_id"`
	Licensee     Principal `json:"licensee"`
	Licensor     Principal `json:"licensor"`
	Payment      uint64    `json:"payment"`
	RoyaltyRate  uint64    `json:"royalty_rate"`
	StartBlock   uint64    `json:"start_block"`
	EndBlock     uint64    `json:"end_block"`
	Active       bool      `json:"active"`
}

// RoyaltyTransaction is an immutable record of one processed royalty payment.
type RoyaltyTransaction struct {
	ID          uint64    `json:"id"`
	ContractID  uint64    `json:"contract_id"`
	Amount      uint64    `json:"amount"`
	Processor   Principal `json:"processor"`
	ProcessedAt uint64    `json:"processed_at"`
}

// Config is the marketplace-wide configuration singleton. The administrator
// identity is fixed at ledger construction.
type Config struct {
	CommissionRate uint64 `json:"commission_rate"`
	Operational    bool   `json:"operational"`
}

// Metrics is the read-only aggregate returned by the ledger. ActiveContracts
// is a live count of contracts with Active=true, not the creation counter.
type Metrics struct {
	TotalTechnologies uint64 `json:"total_technologies"`
	ActiveContracts   uint64 `json:"active_contracts"`
	CommissionRate    uint64 `json:"commission_rate"`
	Operational       bool   `json:"is_operational"`
}

// Snapshot carries the full committed state of a ledger, used to rehydrate an
// instance from the persistence backend at boot.
type Snapshot struct {
	Technologies     []Technology
	Contracts        []LicenseContract
	Transactions     []RoyaltyTransaction
	Config           Config
	TechnologyCount  uint64
	ContractCount    uint64
	TransactionCount uint64
}

// RegisterTechnologyParams are the owner-supplied fields for registration.
type RegisterTechnologyParams struct {
	Title        string
	Summary      string
	LicensingFee uint64
	RoyaltyRate  uint64
}

// ModifyTermsParams is a partial update; nil fields are left unchanged.
type ModifyTermsParams struct {
	LicensingFee *uint64
	RoyaltyRate  *uint64
	Available    *bool
}
