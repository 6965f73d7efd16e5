package ledger

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"kakeibo/log"
)

// Default state installed on first run, after a reset, and whenever saved
// state cannot be restored.
const (
	DefaultAccountID   = "1"
	DefaultAccountName = "メイン銀行"
)

// ErrNoState is returned by a Persister whose medium holds no saved state
// yet. The store treats it as a first run, not a failure.
var ErrNoState = errors.New("no persisted state")

// Persister loads and saves both collections as a whole. Save overwrites
// the previous state in full; there are no incremental writes.
type Persister interface {
	Load(ctx context.Context) ([]Account, []Transaction, error)
	Save(ctx context.Context, accounts []Account, transactions []Transaction) error
}

// Options tunes a Store. The zero value is usable.
type Options struct {
	// AccountName labels the default account. Defaults to
	// DefaultAccountName.
	AccountName string

	// NewID generates ids for new accounts and transactions. Must be
	// unique for the lifetime of the store. Defaults to uuid.NewString.
	NewID func() string

	Logger *log.Logger
}

// Store owns the account and transaction collections. It is the only
// writer of both; all reads hand out copies. Execution is single-threaded
// by contract, so the store carries no locking.
//
// Two invariants hold after every operation: the account collection is
// never empty, and every transaction references a live account.
type Store struct {
	persister Persister
	logger    *log.Logger
	seedName  string
	newID     func() string

	accounts     []Account
	transactions []Transaction
	revision     uint64
}

// NewStore creates a store seeded with the default state. A nil persister
// makes the store ephemeral, which is what tests want.
func NewStore(persister Persister, opts Options) *Store {
	if opts.AccountName == "" {
		opts.AccountName = DefaultAccountName
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Logger == nil {
		opts.Logger = log.New(log.Config{Component: "ledger"})
	}

	s := &Store{
		persister: persister,
		logger:    opts.Logger,
		seedName:  opts.AccountName,
		newID:     opts.NewID,
	}
	s.installDefaults()
	return s
}

// Load restores the persisted state. Absent, unparseable, or empty state
// falls back to the default state; Load itself never fails.
func (s *Store) Load(ctx context.Context) {
	if s.persister == nil {
		return
	}

	// Both collections are replaced wholesale below, whichever branch is
	// taken, so derived data keyed by the current revision must go stale.
	defer func() { s.revision++ }()

	accounts, transactions, err := s.persister.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrNoState) {
			s.logger.InfoContext(ctx, "no saved state, starting from defaults")
		} else {
			s.logger.WarnContext(ctx, "discarding unreadable saved state", "error", err)
		}
		s.installDefaults()
		return
	}
	if len(accounts) == 0 {
		s.logger.WarnContext(ctx, "saved state has no accounts, starting from defaults")
		s.installDefaults()
		return
	}

	s.accounts = accounts
	s.transactions = s.dropOrphans(ctx, accounts, transactions)
}

// dropOrphans filters out transactions whose account no longer exists in
// the saved state.
func (s *Store) dropOrphans(ctx context.Context, accounts []Account, transactions []Transaction) []Transaction {
	live := make(map[string]bool, len(accounts))
	for _, a := range accounts {
		live[a.ID] = true
	}

	kept := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		if !live[t.AccountID] {
			s.logger.WarnContext(ctx, "dropping transaction with unknown account",
				"transaction_id", t.ID, "account_id", t.AccountID)
			continue
		}
		kept = append(kept, t)
	}
	return kept
}

func (s *Store) installDefaults() {
	s.accounts = []Account{{
		ID:             DefaultAccountID,
		Name:           s.seedName,
		InitialBalance: decimal.Zero,
	}}
	s.transactions = []Transaction{}
}

// Accounts returns a copy of the account collection.
func (s *Store) Accounts() []Account {
	return append([]Account(nil), s.accounts...)
}

// Transactions returns a copy of the transaction collection in insertion
// order.
func (s *Store) Transactions() []Transaction {
	return append([]Transaction(nil), s.transactions...)
}

// SortedTransactions returns the transactions ordered by ascending date,
// the order the presentation layer lists them in.
func (s *Store) SortedTransactions() []Transaction {
	return SortByDate(s.transactions)
}

// Account returns the account with the given id.
func (s *Store) Account(id string) (Account, bool) {
	for _, a := range s.accounts {
		if a.ID == id {
			return a, true
		}
	}
	return Account{}, false
}

// Revision is a counter incremented by every successful mutation. Derived
// data keyed by it is stale exactly when the counter has moved.
func (s *Store) Revision() uint64 {
	return s.revision
}

// AddAccount appends a new account. The name must be non-empty; the
// initial balance may be any signed amount.
func (s *Store) AddAccount(ctx context.Context, name string, initialBalance decimal.Decimal) (Account, error) {
	if strings.TrimSpace(name) == "" {
		return Account{}, ErrEmptyName
	}

	account := Account{
		ID:             s.newID(),
		Name:           name,
		InitialBalance: initialBalance,
	}
	s.accounts = append(s.accounts, account)
	s.commit(ctx, "account added", "account_id", account.ID, "name", account.Name)
	return account, nil
}

// UpdateAccount replaces the name and initial balance of an existing
// account. The id never changes.
func (s *Store) UpdateAccount(ctx context.Context, id, name string, initialBalance decimal.Decimal) (Account, error) {
	if strings.TrimSpace(name) == "" {
		return Account{}, ErrEmptyName
	}

	for i := range s.accounts {
		if s.accounts[i].ID != id {
			continue
		}
		s.accounts[i].Name = name
		s.accounts[i].InitialBalance = initialBalance
		s.commit(ctx, "account updated", "account_id", id)
		return s.accounts[i], nil
	}
	return Account{}, ErrAccountNotFound
}

// DeleteAccount removes an account and every transaction attributed to
// it. Deleting the last remaining account is refused with ErrLastAccount.
// The caller is responsible for having obtained user confirmation.
func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	if len(s.accounts) == 1 {
		return ErrLastAccount
	}

	idx := -1
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrAccountNotFound
	}

	s.accounts = append(s.accounts[:idx], s.accounts[idx+1:]...)

	kept := s.transactions[:0]
	cascaded := 0
	for _, t := range s.transactions {
		if t.AccountID == id {
			cascaded++
			continue
		}
		kept = append(kept, t)
	}
	s.transactions = kept

	s.commit(ctx, "account deleted", "account_id", id, "cascaded_transactions", cascaded)
	return nil
}

// AddTransaction appends a new transaction. The account id must reference
// an existing account; defaulting an unset selection to the first account
// is the presentation layer's concern.
func (s *Store) AddTransaction(ctx context.Context, p TransactionParams) (Transaction, error) {
	if err := p.validate(); err != nil {
		return Transaction{}, err
	}
	if _, ok := s.Account(p.AccountID); !ok {
		return Transaction{}, ErrAccountNotFound
	}

	transaction := Transaction{
		ID:        s.newID(),
		Title:     p.Title,
		Amount:    p.Amount,
		Date:      p.Date,
		AccountID: p.AccountID,
	}
	s.transactions = append(s.transactions, transaction)
	s.commit(ctx, "transaction added",
		"transaction_id", transaction.ID, "date", string(transaction.Date))
	return transaction, nil
}

// UpdateTransaction replaces all mutable fields of an existing
// transaction.
func (s *Store) UpdateTransaction(ctx context.Context, id string, p TransactionParams) (Transaction, error) {
	if err := p.validate(); err != nil {
		return Transaction{}, err
	}
	if _, ok := s.Account(p.AccountID); !ok {
		return Transaction{}, ErrAccountNotFound
	}

	for i := range s.transactions {
		if s.transactions[i].ID != id {
			continue
		}
		s.transactions[i].Title = p.Title
		s.transactions[i].Amount = p.Amount
		s.transactions[i].Date = p.Date
		s.transactions[i].AccountID = p.AccountID
		s.commit(ctx, "transaction updated", "transaction_id", id)
		return s.transactions[i], nil
	}
	return Transaction{}, ErrTransactionNotFound
}

// DeleteTransaction removes a single transaction. The caller is
// responsible for having obtained user confirmation.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	for i := range s.transactions {
		if s.transactions[i].ID != id {
			continue
		}
		s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
		s.commit(ctx, "transaction deleted", "transaction_id", id)
		return nil
	}
	return ErrTransactionNotFound
}

// ResetAll replaces the whole state with the default singleton account
// and no transactions. The caller is responsible for having obtained both
// user confirmations before invoking it.
func (s *Store) ResetAll(ctx context.Context) {
	s.installDefaults()
	s.commit(ctx, "all data reset")
}

// commit finalizes a successful mutation: the revision moves and the new
// state is written through the persister. Persistence is fire-and-forget;
// a failed save is logged and the mutation stands.
func (s *Store) commit(ctx context.Context, msg string, args ...any) {
	s.revision++
	s.logger.DebugContext(ctx, msg, args...)

	if s.persister == nil {
		return
	}
	if err := s.persister.Save(ctx, s.accounts, s.transactions); err != nil {
		s.logger.ErrorContext(ctx, "state save failed", "error", err)
	}
}
