// internal/database/store.go
package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aniefioke/intellectual-property/internal/marketplace"
	"github.com/aniefioke/intellectual-property/internal/models"
)

const settingsRowID = 1

// Store is the write-through persistence adapter behind the ledger. It
// implements marketplace.Persister: committed records are upserted keyed by
// the ledger's own sequential identifiers, and a full snapshot can be loaded
// back at boot.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) SaveTechnology(t marketplace.Technology) error {
	record := models.TechnologyRecord{
		ID:           t.ID,
		Owner:        string(t.Owner),
		Title:        t.Title,
		Summary:      t.Summary,
		LicensingFee: t.LicensingFee,
		RoyaltyRate:  t.RoyaltyRate,
		Available:    t.Available,
		RegisteredAt: t.RegisteredAt,
	}
	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&record).Error
}

func (s *Store) SaveContract(c marketplace.LicenseContract) error {
	record := models.LicenseContractRecord{
		ID:           c.ID,
		TechnologyID: c.TechnologyID,
		Licensee:     string(c.Licensee),
		Licensor:     string(c.Licensor),
		Payment:      c.Payment,
		RoyaltyRate:  c.RoyaltyRate,
		StartBlock:   c.StartBlock,
		EndBlock:     c.EndBlock,
		Active:       c.Active,
	}
	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&record).Error
}

func (s *Store) SaveTransaction(tx marketplace.RoyaltyTransaction) error {
	// Transactions are append-only; a conflict here means replayed state.
	record := models.RoyaltyTransactionRecord{
		ID:          tx.ID,
		ContractID:  tx.ContractID,
		Amount:      tx.Amount,
		Processor:   string(tx.Processor),
		ProcessedAt: tx.ProcessedAt,
	}
	return s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error
}

func (s *Store) SaveConfig(cfg marketplace.Config) error {
	record := models.MarketplaceSettings{
		ID:             settingsRowID,
		CommissionRate: cfg.CommissionRate,
		Operational:    cfg.Operational,
	}
	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&record).Error
}

// LoadSnapshot reads the full persisted marketplace state for ledger
// rehydration. Counters are recovered as the maximum persisted id, which is
// exact because ids are sequential and never reused.
func (s *Store) LoadSnapshot() (marketplace.Snapshot, error) {
	var snap marketplace.Snapshot

	var techs []models.TechnologyRecord
	if err := s.db.Order("id").Find(&techs).Error; err != nil {
		return snap, fmt.Errorf("failed to load technologies: %w", err)
	}
	for _, r := range techs {
		snap.Technologies = append(snap.Technologies, marketplace.Technology{
			ID:           r.ID,
			Owner:        marketplace.Principal(r.Owner),
			Title:        r.Title,
			Summary:      r.Summary,
			LicensingFee: r.LicensingFee,
			RoyaltyRate:  r.RoyaltyRate,
			Available:    r.Available,
			RegisteredAt: r.RegisteredAt,
		})
		if r.ID > snap.TechnologyCount {
			snap.TechnologyCount = r.ID
		}
	}

	var contracts []models.LicenseContractRecord
	if err := s.db.Order("id").Find(&contracts).Error; err != nil {
		return snap, fmt.Errorf("failed to load contracts: %w", err)
	}
	for _, r := range contracts {
		snap.Contracts = append(snap.Contracts, marketplace.LicenseContract{
			ID:           r.ID,
			TechnologyID: r.TechnologyID,
			Licensee:     marketplace.Principal(r.Licensee),
			Licensor:     marketplace.Principal(r.Licensor),
			Payment:      r.Payment,
			RoyaltyRate:  r.RoyaltyRate,
			StartBlock:   r.StartBlock,
			EndBlock:     r.EndBlock,
			Active:       r.Active,
		})
		if r.ID > snap.ContractCount {
			snap.ContractCount = r.ID
		}
	}

	var txs []models.RoyaltyTransactionRecord
	if err := s.db.Order("id").Find(&txs).Error; err != nil {
		return snap, fmt.Errorf("failed to load transactions: %w", err)
	}
	for _, r := range txs {
		snap.Transactions = append(snap.Transactions, marketplace.RoyaltyTransaction{
			ID:          r.ID,
			ContractID:  r.ContractID,
			Amount:      r.Amount,
			Processor:   marketplace.Principal(r.Processor),
			ProcessedAt: r.ProcessedAt,
		})
		if r.ID > snap.TransactionCount {
			snap.TransactionCount = r.ID
		}
	}

	var settings models.MarketplaceSettings
	err := s.db.First(&settings, settingsRowID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		snap.Config = marketplace.Config{
			CommissionRate: marketplace.DefaultCommission,
			Operational:    true,
		}
	case err != nil:
		return snap, fmt.Errorf("failed to load settings: %w", err)
	default:
		snap.Config = marketplace.Config{
			CommissionRate: settings.CommissionRate,
			Operational:    settings.Operational,
		}
	}

	return snap, nil
}

// AppendDocumentURL records an uploaded technology document location.
func (s *Store) AppendDocumentURL(technologyID uint64, url string) error {
	var docs models.TechnologyDocuments
	err := s.db.First(&docs, technologyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		docs = models.TechnologyDocuments{TechnologyID: technologyID, FileURLs: []string{url}}
		return s.db.Create(&docs).Error
	}
	if err != nil {
		return fmt.Errorf("failed to load document record: %w", err)
	}

	docs.FileURLs = append(docs.FileURLs, url)
	return s.db.Save(&docs).Error
}

// RemoveDocumentURL drops a stored document location after deletion from the
// object store. Removing an unknown URL is a no-op.
func (s *Store) RemoveDocumentURL(technologyID uint64, url string) error {
	var docs models.TechnologyDocuments
	err := s.db.First(&docs, technologyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load document record: %w", err)
	}

	kept := docs.FileURLs[:0]
	for _, u := range docs.FileURLs {
		if u != url {
			kept = append(kept, u)
		}
	}
	docs.FileURLs = kept
	return s.db.Save(&docs).Error
}

// DocumentURLs lists the stored document locations for a technology.
func (s *Store) DocumentURLs(technologyID uint64) ([]string, error) {
	var docs models.TechnologyDocuments
	err := s.db.First(&docs, technologyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load document record: %w", err)
	}
	return docs.FileURLs, nil
}
