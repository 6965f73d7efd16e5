package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"kakeibo/ledger"
)

// StateStore implements ledger.Persister over a KV medium using the plain
// JSON encoding of the state: field names as carried by the domain types,
// amounts as bare JSON numbers.
type StateStore struct {
	kv KV
}

func NewStateStore(kv KV) *StateStore {
	return &StateStore{kv: kv}
}

// accountDoc and transactionDoc are the wire forms. Amounts go through
// json.Number so that the stored text is a number, not a quoted string,
// and decimal precision survives the round trip.
type accountDoc struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	InitialBalance json.Number `json:"initialBalance"`
}

type transactionDoc struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Amount    json.Number `json:"amount"`
	Date      string      `json:"date"`
	AccountID string      `json:"accountId"`
}

// Load reads both keys and decodes the state. An absent accounts key is
// ledger.ErrNoState; an absent transactions key is an empty list; any
// decode failure is an error for the caller to fall back on.
func (s *StateStore) Load(ctx context.Context) ([]ledger.Account, []ledger.Transaction, error) {
	rawAccounts, ok, err := s.kv.Get(ctx, KeyAccounts)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", KeyAccounts, err)
	}
	if !ok {
		return nil, nil, ledger.ErrNoState
	}

	var accountDocs []accountDoc
	if err := json.Unmarshal([]byte(rawAccounts), &accountDocs); err != nil {
		return nil, nil, fmt.Errorf("decode %s: %w", KeyAccounts, err)
	}

	accounts := make([]ledger.Account, len(accountDocs))
	for i, doc := range accountDocs {
		balance, err := decodeAmount(doc.InitialBalance)
		if err != nil {
			return nil, nil, fmt.Errorf("decode %s[%d].initialBalance: %w", KeyAccounts, i, err)
		}
		accounts[i] = ledger.Account{
			ID:             doc.ID,
			Name:           doc.Name,
			InitialBalance: balance,
		}
	}

	rawTransactions, ok, err := s.kv.Get(ctx, KeyTransactions)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", KeyTransactions, err)
	}
	if !ok {
		return accounts, []ledger.Transaction{}, nil
	}

	var transactionDocs []transactionDoc
	if err := json.Unmarshal([]byte(rawTransactions), &transactionDocs); err != nil {
		return nil, nil, fmt.Errorf("decode %s: %w", KeyTransactions, err)
	}

	transactions := make([]ledger.Transaction, len(transactionDocs))
	for i, doc := range transactionDocs {
		amount, err := decodeAmount(doc.Amount)
		if err != nil {
			return nil, nil, fmt.Errorf("decode %s[%d].amount: %w", KeyTransactions, i, err)
		}
		transactions[i] = ledger.Transaction{
			ID:        doc.ID,
			Title:     doc.Title,
			Amount:    amount,
			Date:      ledger.Date(doc.Date),
			AccountID: doc.AccountID,
		}
	}

	return accounts, transactions, nil
}

// Save overwrites both keys with the full serialized state.
func (s *StateStore) Save(ctx context.Context, accounts []ledger.Account, transactions []ledger.Transaction) error {
	accountDocs := make([]accountDoc, len(accounts))
	for i, a := range accounts {
		accountDocs[i] = accountDoc{
			ID:             a.ID,
			Name:           a.Name,
			InitialBalance: json.Number(a.InitialBalance.String()),
		}
	}
	rawAccounts, err := json.Marshal(accountDocs)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyAccounts, err)
	}

	transactionDocs := make([]transactionDoc, len(transactions))
	for i, t := range transactions {
		transactionDocs[i] = transactionDoc{
			ID:        t.ID,
			Title:     t.Title,
			Amount:    json.Number(t.Amount.String()),
			Date:      string(t.Date),
			AccountID: t.AccountID,
		}
	}
	rawTransactions, err := json.Marshal(transactionDocs)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyTransactions, err)
	}

	if err := s.kv.Set(ctx, KeyAccounts, string(rawAccounts)); err != nil {
		return fmt.Errorf("write %s: %w", KeyAccounts, err)
	}
	if err := s.kv.Set(ctx, KeyTransactions, string(rawTransactions)); err != nil {
		return fmt.Errorf("write %s: %w", KeyTransactions, err)
	}
	return nil
}

func decodeAmount(n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(n.String())
}
