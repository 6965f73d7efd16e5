// Package ledger owns the account and transaction collections of a
// personal cash-flow plan and the mutation rules that keep them
// consistent.
package ledger

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire form of calendar dates. It is fixed-width and
// zero-padded, so lexicographic order on Date equals calendar order.
const DateLayout = "2006-01-02"

// Date is a calendar day in YYYY-MM-DD form with no time component.
type Date string

// NewDate builds a Date from its parts.
func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(DateLayout))
}

// ParseDate validates a user-supplied date string.
func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", ErrInvalidDate
	}
	return Date(s), nil
}

// Validate reports whether the date is a well-formed calendar day.
func (d Date) Validate() error {
	if _, err := time.Parse(DateLayout, string(d)); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// Time returns the day at midnight UTC. The zero time is returned for a
// malformed date.
func (d Date) Time() time.Time {
	t, _ := time.Parse(DateLayout, string(d))
	return t
}

// Account is a named balance source. InitialBalance is the balance
// attributed to the account before any transaction is applied.
type Account struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
}

// Transaction is a dated, signed monetary entry attributed to exactly one
// account. Positive amounts are income, negative amounts are expenses.
type Transaction struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Amount    decimal.Decimal `json:"amount"`
	Date      Date            `json:"date"`
	AccountID string          `json:"accountId"`
}

// TransactionParams carries the mutable fields of a transaction for add
// and update operations.
type TransactionParams struct {
	Title     string
	Amount    decimal.Decimal
	Date      Date
	AccountID string
}

func (p TransactionParams) validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return ErrEmptyTitle
	}
	return p.Date.Validate()
}

// ParseAmount parses a user-supplied transaction amount. Unparseable
// input is a validation rejection, never a silent zero.
func ParseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return amount, nil
}

// ParseBalance parses a user-supplied initial balance. Empty or
// unparseable input falls back to zero.
func ParseBalance(s string) decimal.Decimal {
	balance, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return balance
}

// SortByDate returns the transactions ordered by ascending date. Entries
// sharing a date keep their relative order.
func SortByDate(transactions []Transaction) []Transaction {
	sorted := append([]Transaction(nil), transactions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})
	return sorted
}
