package budget

import (
	"fmt"

	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemRecord is the flat text form of an Item used by persistence.
// Field order: identifier, name, amount, category, note.
type ItemRecord struct {
	Identifier string
	Name       string
	Amount     string
	Category   string
	Note       string
}

const ItemRecordFields = 5

func ToRecord(item Item) ItemRecord {
	return ItemRecord{
		Identifier: item.Identifier.String(),
		Name:       item.Name,
		Amount:     item.Amount.String(),
		Category:   item.Category.String(),
		Note:       item.Note,
	}
}

func FromRecord(r ItemRecord) (Item, error) {
	identifier, err := ParseIdentifier(r.Identifier)
	if err != nil {
		return Item{}, err
	}
	amount, err := ParseAmount(r.Amount)
	if err != nil {
		return Item{}, err
	}
	category, err := ParseCategory(r.Category)
	if err != nil {
		return Item{}, err
	}
	return Item{
		Identifier: identifier,
		Name:       r.Name,
		Amount:     amount,
		Category:   category,
		Note:       r.Note,
	}, nil
}

func (r ItemRecord) Fields() []string {
	return []string{r.Identifier, r.Name, r.Amount, r.Category, r.Note}
}

func RecordFromFields(fields []string) (ItemRecord, error) {
	if len(fields) != ItemRecordFields {
		return ItemRecord{}, internal.NewValidationError(
			fmt.Sprintf("budget record has %d fields, expected %d", len(fields), ItemRecordFields),
			internal.ErrCodeValidationFailed)
	}
	return ItemRecord{
		Identifier: fields[0],
		Name:       fields[1],
		Amount:     fields[2],
		Category:   fields[3],
		Note:       fields[4],
	}, nil
}

// ItemResponse is the presentation form of an Item.
type ItemResponse struct {
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
	Amount     string `json:"amount"`
	Category   string `json:"category"`
	Note       string `json:"note"`
}

func ToResponse(item Item) ItemResponse {
	return ItemResponse{
		Identifier: item.Identifier.String(),
		Name:       item.Name,
		Amount:     FormatAmount(item.Amount),
		Category:   item.Category.String(),
		Note:       item.Note,
	}
}

func ToResponses(items []Item) []ItemResponse {
	responses := make([]ItemResponse, len(items))
	for i, item := range items {
		responses[i] = ToResponse(item)
	}
	return responses
}

// CreateItemDTO carries the raw input of an add request.
type CreateItemDTO struct {
	Name     string `json:"name"`
	Amount   string `json:"amount"`
	Category string `json:"category"`
	Note     string `json:"note"`
}

// UpdateItemDTO carries the raw input of an update request; absent fields
// are nil.
type UpdateItemDTO struct {
	Name     *string `json:"name,omitempty"`
	Amount   *string `json:"amount,omitempty"`
	Category *string `json:"category,omitempty"`
	Note     *string `json:"note,omitempty"`
}

// Patch resolves the raw input into an ItemPatch, validating the amount and
// the category name.
func (dto UpdateItemDTO) Patch() (ItemPatch, error) {
	var patch ItemPatch
	patch.Name = dto.Name
	patch.Note = dto.Note
	if dto.Amount != nil {
		amount, err := ParseAmount(*dto.Amount)
		if err != nil {
			return ItemPatch{}, err
		}
		patch.Amount = &amount
	}
	if dto.Category != nil {
		category, err := ParseCategory(*dto.Category)
		if err != nil {
			return ItemPatch{}, err
		}
		patch.Category = &category
	}
	return patch, nil
}

func ParseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, internal.NewValidationError(
			fmt.Sprintf("The amount should be a number: %q", s),
			internal.ErrCodeInvalidAmount).WithCause(err)
	}
	return amount, nil
}

func ParseIdentifier(s string) (uuid.UUID, error) {
	identifier, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, internal.NewValidationError(
			fmt.Sprintf("The identifier should be a valid UUID: %q", s),
			internal.ErrCodeInvalidIdentifier).WithCause(err)
	}
	return identifier, nil
}
