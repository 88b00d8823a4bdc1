package history

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/shopspring/decimal"
)

// TransactionRecord is the flat text form of a Transaction used by
// persistence and import. Field order: reference, day, source, amount,
// notes, category, month, comments, exclude.
type TransactionRecord struct {
	Reference string
	Day       string
	Source    string
	Amount    string
	Notes     string
	Category  string
	Month     string
	Comments  string
	Exclude   string
}

const TransactionRecordFields = 9

func ToRecord(t Transaction) TransactionRecord {
	return TransactionRecord{
		Reference: t.Reference,
		Day:       t.Day.Format(DayLayout),
		Source:    t.Source,
		Amount:    t.Amount.String(),
		Notes:     t.Notes,
		Category:  t.Category,
		Month:     strconv.Itoa(t.Month),
		Comments:  t.Comments,
		Exclude:   strconv.FormatBool(t.Exclude),
	}
}

func FromRecord(r TransactionRecord) (Transaction, error) {
	day, err := ParseDay(r.Day)
	if err != nil {
		return Transaction{}, err
	}
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return Transaction{}, internal.NewValidationError(
			fmt.Sprintf("The amount of transaction %q should be a number: %q", r.Reference, r.Amount),
			internal.ErrCodeInvalidAmount).WithCause(err)
	}
	month, err := ParseMonth(r.Month)
	if err != nil {
		return Transaction{}, err
	}
	exclude, err := strconv.ParseBool(r.Exclude)
	if err != nil {
		return Transaction{}, internal.NewValidationError(
			fmt.Sprintf("The exclude flag of transaction %q should be true or false: %q", r.Reference, r.Exclude),
			internal.ErrCodeValidationFailed).WithCause(err)
	}

	return Transaction{
		Reference: r.Reference,
		Day:       day,
		Source:    r.Source,
		Amount:    amount,
		Notes:     r.Notes,
		Category:  r.Category,
		Month:     month,
		Comments:  r.Comments,
		Exclude:   exclude,
	}, nil
}

func (r TransactionRecord) Fields() []string {
	return []string{r.Reference, r.Day, r.Source, r.Amount, r.Notes, r.Category, r.Month, r.Comments, r.Exclude}
}

func RecordFromFields(fields []string) (TransactionRecord, error) {
	if len(fields) != TransactionRecordFields {
		return TransactionRecord{}, internal.NewValidationError(
			fmt.Sprintf("history record has %d fields, expected %d", len(fields), TransactionRecordFields),
			internal.ErrCodeValidationFailed)
	}
	return TransactionRecord{
		Reference: fields[0],
		Day:       fields[1],
		Source:    fields[2],
		Amount:    fields[3],
		Notes:     fields[4],
		Category:  fields[5],
		Month:     fields[6],
		Comments:  fields[7],
		Exclude:   fields[8],
	}, nil
}

func ParseDay(s string) (time.Time, error) {
	day, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, internal.NewValidationError(
			fmt.Sprintf("The day should be an ISO-8601 date: %q", s),
			internal.ErrCodeInvalidDate).WithCause(err)
	}
	return day, nil
}

func ParseMonth(s string) (int, error) {
	month, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, internal.NewValidationError(
			fmt.Sprintf("The month should be a number: %q", s),
			internal.ErrCodeInvalidMonth).WithCause(err)
	}
	if err := ValidateMonth(month); err != nil {
		return 0, err
	}
	return month, nil
}

// TransactionResponse is the presentation form of a Transaction.
type TransactionResponse struct {
	Reference string `json:"reference"`
	Day       string `json:"day"`
	Source    string `json:"source"`
	Amount    string `json:"amount"`
	Notes     string `json:"notes"`
	Category  string `json:"category"`
	Month     int    `json:"month"`
	Comments  string `json:"comments"`
	Exclude   bool   `json:"exclude"`
}

func ToResponse(t Transaction) TransactionResponse {
	return TransactionResponse{
		Reference: t.Reference,
		Day:       t.Day.Format(DayLayout),
		Source:    t.Source,
		Amount:    t.Amount.StringFixed(2),
		Notes:     t.Notes,
		Category:  t.Category,
		Month:     t.Month,
		Comments:  t.Comments,
		Exclude:   t.Exclude,
	}
}

func ToResponses(transactions []Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(transactions))
	for i, t := range transactions {
		responses[i] = ToResponse(t)
	}
	return responses
}

// UpdateTransactionDTO carries the raw input of an update request. Absent
// fields are left unchanged. A present empty category or comment clears
// it, so an empty category puts the transaction back up for review. A
// month cannot be cleared and a blank one is ignored.
type UpdateTransactionDTO struct {
	Category *string `json:"category,omitempty"`
	Month    *string `json:"month,omitempty"`
	Comments *string `json:"comments,omitempty"`
}

// Patch converts the request into a TransactionPatch, parsing the month.
func (dto UpdateTransactionDTO) Patch() (TransactionPatch, error) {
	var patch TransactionPatch
	if dto.Category != nil {
		patch.Category = dto.Category
	}
	if dto.Comments != nil {
		patch.Comments = dto.Comments
	}
	if dto.Month != nil && *dto.Month != "" {
		month, err := ParseMonth(*dto.Month)
		if err != nil {
			return TransactionPatch{}, err
		}
		patch.Month = &month
	}
	return patch, nil
}

// ImportResult reports the transactions added by an import and the
// duplicate rejections it skipped.
type ImportResult struct {
	Imported   []Transaction `json:"imported"`
	Duplicated []string      `json:"duplicated"`
}

// ReviewDecision is the outcome of reviewing one transaction: either
// delete it or apply the patch.
type ReviewDecision struct {
	Delete bool
	Patch  TransactionPatch
}

type ReviewSummary struct {
	Reviewed int `json:"reviewed"`
	Deleted  int `json:"deleted"`
}

// ImportRequestDTO names the statement file to import.
type ImportRequestDTO struct {
	Source string `json:"source"`
}

type IgnoreTransactionDTO struct {
	Exclude bool `json:"exclude"`
}
