// Package projection derives per-day running balances from the ledger
// state. The derived series is never stored; it is recomputed from the
// collections and a balance scope on every read.
package projection

import (
	"sort"

	"github.com/shopspring/decimal"

	"kakeibo/ledger"
)

// Scope selects the balance to project: one account, or every account
// combined. The zero value means all accounts.
type Scope struct {
	accountID string
}

// AllAccounts projects the sum of every account's initial balance and
// every transaction regardless of account.
func AllAccounts() Scope {
	return Scope{}
}

// SingleAccount projects one account's initial balance and only the
// transactions attributed to it.
func SingleAccount(accountID string) Scope {
	return Scope{accountID: accountID}
}

// All reports whether the scope covers every account.
func (s Scope) All() bool {
	return s.accountID == ""
}

// AccountID returns the scoped account id, empty for the all scope.
func (s Scope) AccountID() string {
	return s.accountID
}

// Key returns a stable string identity for the scope, usable as a cache
// key component.
func (s Scope) Key() string {
	if s.All() {
		return "all"
	}
	return "account:" + s.accountID
}

// DailyStat is the cumulative balance through end-of-day for one calendar
// date that has at least one in-scope transaction, together with that
// day's transactions.
type DailyStat struct {
	Date         ledger.Date
	Balance      decimal.Decimal
	Transactions []ledger.Transaction
}

// Result is one projection: the starting balance for the scope, the
// in-scope transactions, and one DailyStat per active date in ascending
// order. Dates with no transactions never appear; balances are not
// forward-filled onto inactive days.
type Result struct {
	Scope           Scope
	StartingBalance decimal.Decimal
	Transactions    []ledger.Transaction
	Days            []DailyStat
}

// Day returns the stat for the given date, if that date had any in-scope
// transactions.
func (r Result) Day(date ledger.Date) (DailyStat, bool) {
	for _, day := range r.Days {
		if day.Date == date {
			return day, true
		}
	}
	return DailyStat{}, false
}

// FinalBalance returns the running balance after the last active date, or
// the starting balance when nothing is in scope.
func (r Result) FinalBalance() decimal.Decimal {
	if len(r.Days) == 0 {
		return r.StartingBalance
	}
	return r.Days[len(r.Days)-1].Balance
}

// Project computes the running-balance series for the given state and
// scope. It is a total function: malformed or empty input yields an empty
// series, never an error. A scope account that no longer exists
// contributes a starting balance of zero.
func Project(accounts []ledger.Account, transactions []ledger.Transaction, scope Scope) Result {
	result := Result{Scope: scope, StartingBalance: decimal.Zero}

	if scope.All() {
		result.Transactions = append([]ledger.Transaction(nil), transactions...)
		for _, a := range accounts {
			result.StartingBalance = result.StartingBalance.Add(a.InitialBalance)
		}
	} else {
		result.Transactions = []ledger.Transaction{}
		for _, t := range transactions {
			if t.AccountID == scope.AccountID() {
				result.Transactions = append(result.Transactions, t)
			}
		}
		for _, a := range accounts {
			if a.ID == scope.AccountID() {
				result.StartingBalance = a.InitialBalance
				break
			}
		}
	}

	byDate := make(map[ledger.Date][]ledger.Transaction)
	dates := make([]ledger.Date, 0, len(byDate))
	for _, t := range result.Transactions {
		if _, seen := byDate[t.Date]; !seen {
			dates = append(dates, t.Date)
		}
		byDate[t.Date] = append(byDate[t.Date], t)
	}
	// The date format is fixed-width and zero-padded, so string order is
	// calendar order.
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })

	running := result.StartingBalance
	for _, date := range dates {
		for _, t := range byDate[date] {
			running = running.Add(t.Amount)
		}
		result.Days = append(result.Days, DailyStat{
			Date:         date,
			Balance:      running,
			Transactions: byDate[date],
		})
	}

	return result
}
