// internal/models/marketplace.go
package models

import (
	"time"

	"github.com/lib/pq"
)

// Persistence records mirroring committed ledger state. The ledger's
// sequential identifiers are the primary keys; gorm never generates ids for
// these tables.

type TechnologyRecord struct {
	ID           uint64    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Owner        string    `json:"owner" gorm:"size:128;not null;index"`
	Title        string    `json:"title" gorm:"size:100;not null"`
	Summary      string    `json:"summary" gorm:"size:500"`
	LicensingFee uint64    `json:"licensing_fee" gorm:"not null"`
	RoyaltyRate  uint64    `json:"royalty_rate" gorm:"not null"`
	Available    bool      `json:"available" gorm:"not null;default:true"`
	RegisteredAt uint64    `json:"registered_at" gorm:"not null"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (TechnologyRecord) TableName() string { return "technologies" }

type LicenseContractRecord struct {
	ID           uint64    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	TechnologyID uint64    `json:"technology_id" gorm:"not null;index"`
	Licensee     string    `json:"licensee" gorm:"size:128;not null;index"`
	Licensor     string    `json:"licensor" gorm:"size:128;not null;index"`
	Payment      uint64    `json:"payment" gorm:"not null"`
	RoyaltyRate  uint64    `json:"royalty_rate" gorm:"not null"`
	StartBlock   uint64    `json:"start_block" gorm:"not null"`
	EndBlock     uint64    `json:"end_block" gorm:"not null"`
	Active       bool      `json:"active" gorm:"not null;index"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (LicenseContractRecord) TableName() string { return "license_contracts" }

type RoyaltyTransactionRecord struct {
	ID          uint64    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	ContractID  uint64    `json:"contract_id" gorm:"not null;index"`
	Amount      uint64    `json:"amount" gorm:"not null"`
	Processor   string    `json:"processor" gorm:"size:128;not null;index"`
	ProcessedAt uint64    `json:"processed_at" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}

func (RoyaltyTransactionRecord) TableName() string { return "royalty_transactions" }

// MarketplaceSettings is the singleton configuration row.
type MarketplaceSettings struct {
	ID             uint64    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	CommissionRate uint64    `json:"commission_rate" gorm:"not null"`
	Operational    bool      `json:"operational" gorm:"not null"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (MarketplaceSettings) TableName() string { return "marketplace_settings" }

// TechnologyDocuments holds the uploaded specification documents attached to
// a registered technology, one row per technology.
type TechnologyDocuments struct {
	TechnologyID uint64         `json:"technology_id" gorm:"primaryKey;autoIncrement:false"`
	FileURLs     pq.StringArray `json:"file_urls" gorm:"type:text[]"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (TechnologyDocuments) TableName() string { return "technology_documents" }
