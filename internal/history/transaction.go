package history

import (
	"fmt"
	"time"

	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/shopspring/decimal"
)

// DayLayout is the ISO-8601 calendar date layout used for Day.
const DayLayout = "2006-01-02"

// Transaction is one recorded money movement. Reference, Day, Source, Amount
// and Notes come from the bank statement and never change after recording.
// Category holds the name of the budget item the transaction was assigned
// to during review, not a budget category.
type Transaction struct {
	Reference string          `json:"reference"`
	Day       time.Time       `json:"day"`
	Source    string          `json:"source"`
	Amount    decimal.Decimal `json:"amount"`
	Notes     string          `json:"notes"`
	Category  string          `json:"category"`
	Month     int             `json:"month"`
	Comments  string          `json:"comments"`
	Exclude   bool            `json:"exclude"`
}

// ChangedImmutableFields lists, in a fixed order, the statement fields in
// which t and other differ.
func (t Transaction) ChangedImmutableFields(other Transaction) []string {
	var fields []string
	if t.Reference != other.Reference {
		fields = append(fields, "reference")
	}
	if !sameDay(t.Day, other.Day) {
		fields = append(fields, "day")
	}
	if t.Source != other.Source {
		fields = append(fields, "source")
	}
	if !t.Amount.Equal(other.Amount) {
		fields = append(fields, "amount")
	}
	if t.Notes != other.Notes {
		fields = append(fields, "notes")
	}
	return fields
}

// Reviewed reports whether the transaction has been given a category
func (t Transaction) Reviewed() bool {
	return t.Category != ""
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// TransactionPatch names the fields a review may change. Nil fields are
// left as they are.
type TransactionPatch struct {
	Category *string
	Month    *int
	Comments *string
	Exclude  *bool
}

// Apply returns t with the set fields of the patch applied
func (p TransactionPatch) Apply(t Transaction) (Transaction, error) {
	if p.Month != nil {
		if err := ValidateMonth(*p.Month); err != nil {
			return Transaction{}, err
		}
		t.Month = *p.Month
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Comments != nil {
		t.Comments = *p.Comments
	}
	if p.Exclude != nil {
		t.Exclude = *p.Exclude
	}
	return t, nil
}

// IsEmpty reports whether the patch changes nothing
func (p TransactionPatch) IsEmpty() bool {
	return p.Category == nil && p.Month == nil && p.Comments == nil && p.Exclude == nil
}

// ValidateMonth rejects a month outside 1..12
func ValidateMonth(month int) error {
	if month < 1 || month > 12 {
		return internal.NewValidationError(
			fmt.Sprintf("The month should be between 1 and 12: %d", month),
			internal.ErrCodeInvalidMonth)
	}
	return nil
}
