// internal/marketplace/ledger.go
package marketplace

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Ledger is one marketplace instance: the registry of technologies, the set
// of license contracts, the royalty transaction log and the admin
// configuration, mutated only through its methods. All operations execute
// under a single lock, so concurrent callers observe a linearizable order.
//
// Suspension (Config.Operational=false) gates the mutating operations of the
// registry, license ledger and royalty accountant. Reads, access checks and
// the two admin operations stay available so a suspended marketplace can be
// inspected and resumed.
type Ledger struct {
	mu sync.Mutex

	admin    Principal
	clock    Clock
	payments PaymentExecutor

	persister Persister
	sink      EventSink
	log       *logrus.Entry

	technologies map[uint64]*Technology
	contracts    map[uint64]*LicenseContract
	transactions map[uint64]*RoyaltyTransaction
	config       Config

	technologyCount  uint64
	contractCount    uint64
	transactionCount uint64
}

func NewLedger(admin Principal, clock Clock, payments PaymentExecutor) *Ledger {
	return &Ledger{
		admin:        admin,
		clock:        clock,
		payments:     payments,
		log:          logrus.WithField("component", "marketplace"),
		technologies: make(map[uint64]*Technology),
		contracts:    make(map[uint64]*LicenseContract),
		transactions: make(map[uint64]*RoyaltyTransaction),
		config: Config{
			CommissionRate: DefaultCommission,
			Operational:    true,
		},
	}
}

// AttachPersister wires a durable store. Committed records are written
// through after each mutation; write failures are logged, not surfaced, the
// in-memory state stays authoritative.
func (l *Ledger) AttachPersister(p Persister) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.persister = p
}

// AttachSink wires the event side-channel.
func (l *Ledger) AttachSink(s EventSink) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sink = s
}

// Restore rehydrates the ledger from a persisted snapshot. It replaces all
// state and is intended for boot time only.
func (l *Ledger) Restore(snap Snapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.technologies = make(map[uint64]*Technology, len(snap.Technologies))
	for i := range snap.Technologies {
		t := snap.Technologies[i]
		l.technologies[t.ID] = &t
	}
	l.contracts = make(map[uint64]*LicenseContract, len(snap.Contracts))
	for i := range snap.Contracts {
		c := snap.Contracts[i]
		l.contracts[c.ID] = &c
	}
	l.transactions = make(map[uint64]*RoyaltyTransaction, len(snap.Transactions))
	for i := range snap.Transactions {
		tx := snap.Transactions[i]
		l.transactions[tx.ID] = &tx
	}
	l.config = snap.Config
	l.technologyCount = snap.TechnologyCount
	l.contractCount = snap.ContractCount
	l.transactionCount = snap.TransactionCount

	l.log.WithFields(logrus.Fields{
		"technologies": len(l.technologies),
		"contracts":    len(l.contracts),
		"transactions": len(l.transactions),
	}).Info("Ledger state restored")
}

// Administrator returns the fixed administrator identity.
func (l *Ledger) Administrator() Principal {
	return l.admin
}

// Metrics returns the read-only marketplace aggregate. ActiveContracts counts
// contracts with Active=true, which diverges from the monotonic creation
// counter once revocations happen.
func (l *Ledger) Metrics() Metrics {
	l.mu.Lock()
	defer l.mu.Unlock()

	var active uint64
	for _, c := range l.contracts {
		if c.Active {
			active++
		}
	}
	return Metrics{
		TotalTechnologies: l.technologyCount,
		ActiveContracts:   active,
		CommissionRate:    l.config.CommissionRate,
		Operational:       l.config.Operational,
	}
}

// emit publishes ev and logs it. Called with the lock held, immediately after
// the state commit it describes, so sinks see events in commit order.
func (l *Ledger) emit(ev Event) {
	l.log.WithFields(logrus.Fields{
		"event": ev.Name,
		"block": ev.Block,
	}).Info("Marketplace event")
	if l.sink != nil {
		l.sink.Publish(ev)
	}
}

func (l *Ledger) persistTechnology(t Technology) {
	if l.persister == nil {
		return
	}
	if err := l.persister.SaveTechnology(t); err != nil {
		l.log.WithError(err).WithField("technology_id", t.ID).Warn("Failed to persist technology")
	}
}

func (l *Ledger) persistContract(c LicenseContract) {
	if l.persister == nil {
		return
	}
	if err := l.persister.SaveContract(c); err != nil {
		l.log.WithError(err).WithField("contract_id", c.ID).Warn("Failed to persist contract")
	}
}

func (l *Ledger) persistTransaction(tx RoyaltyTransaction) {
	if l.persister == nil {
		return
	}
	if err := l.persister.SaveTransaction(tx); err != nil {
		l.log.WithError(err).WithField("transaction_id", tx.ID).Warn("Failed to persist transaction")
	}
}

func (l *Ledger) persistConfig(cfg Config) {
	if l.persister == nil {
		return
	}
	if err := l.persister.SaveConfig(cfg); err != nil {
		l.log.WithError(err).Warn("Failed to persist marketplace config")
	}
}
