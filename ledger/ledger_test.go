package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{"valid date", "2024-01-05", Date("2024-01-05"), false},
		{"leap day", "2024-02-29", Date("2024-02-29"), false},
		{"empty", "", "", true},
		{"missing zero padding", "2024-1-5", "", true},
		{"not a date", "tomorrow", "", true},
		{"day out of range", "2024-02-30", "", true},
		{"time component", "2024-01-05T10:00:00Z", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewDate(t *testing.T) {
	if got := NewDate(2024, time.January, 5); got != Date("2024-01-05") {
		t.Errorf("NewDate(2024, January, 5) = %q, want 2024-01-05", got)
	}
}

func TestDate_Ordering(t *testing.T) {
	// String order must match calendar order across month and year
	// boundaries.
	earlier := NewDate(2023, time.December, 31)
	later := NewDate(2024, time.January, 1)
	if !(earlier < later) {
		t.Errorf("expected %q < %q", earlier, later)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"income", "2000", "2000", false},
		{"expense", "-300", "-300", false},
		{"fractional", "10.5", "10.5", false},
		{"surrounding spaces", " 42 ", "42", false},
		{"zero", "0", "0", false},
		{"empty", "", "", true},
		{"garbage", "abc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				if err != ErrInvalidAmount {
					t.Fatalf("ParseAmount(%q) error = %v, want ErrInvalidAmount", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) unexpected error: %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Errorf("ParseAmount(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseBalance(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"valid", "1000", "1000"},
		{"negative", "-250.75", "-250.75"},
		{"empty falls back to zero", "", "0"},
		{"garbage falls back to zero", "lots", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseBalance(tt.input); got.String() != tt.want {
				t.Errorf("ParseBalance(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestSortByDate(t *testing.T) {
	transactions := []Transaction{
		{ID: "1", Title: "Rent", Amount: decimal.NewFromInt(-300), Date: "2024-01-05"},
		{ID: "2", Title: "Salary", Amount: decimal.NewFromInt(2000), Date: "2024-01-01"},
		{ID: "3", Title: "Bonus", Amount: decimal.NewFromInt(500), Date: "2024-01-01"},
	}

	sorted := SortByDate(transactions)

	gotIDs := []string{sorted[0].ID, sorted[1].ID, sorted[2].ID}
	wantIDs := []string{"2", "3", "1"}
	for i := range wantIDs {
		if gotIDs[i] != wantIDs[i] {
			t.Fatalf("SortByDate order = %v, want %v", gotIDs, wantIDs)
		}
	}

	// The input slice stays untouched.
	if transactions[0].ID != "1" {
		t.Error("SortByDate mutated its input")
	}
}
