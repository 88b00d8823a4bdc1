package budget

import (
	"fmt"

	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is a planned allocation of money to a category. Two items are the
// same item when their identifiers match, whatever the other fields hold.
type Item struct {
	Identifier uuid.UUID       `json:"identifier"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Category   Category        `json:"category"`
	Note       string          `json:"note"`
}

// NewItem creates an item with a fresh identifier
func NewItem(name string, amount decimal.Decimal, category Category, note string) Item {
	return Item{
		Identifier: uuid.New(),
		Name:       name,
		Amount:     amount,
		Category:   category,
		Note:       note,
	}
}

// Same reports whether both items carry the same identifier
func (i Item) Same(other Item) bool {
	return i.Identifier == other.Identifier
}

// ItemPatch names the fields an update may change. Nil fields are left as
// they are.
type ItemPatch struct {
	Name     *string
	Amount   *decimal.Decimal
	Category *Category
	Note     *string
}

// Apply returns item with the set fields of the patch applied
func (p ItemPatch) Apply(item Item) Item {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Amount != nil {
		item.Amount = *p.Amount
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Note != nil {
		item.Note = *p.Note
	}
	return item
}

// IsEmpty reports whether the patch changes nothing
func (p ItemPatch) IsEmpty() bool {
	return p.Name == nil && p.Amount == nil && p.Category == nil && p.Note == nil
}

// Budget is the ledger of planned items keyed by identifier. Items are
// handed out by value so callers cannot bypass the ledger.
type Budget struct {
	items map[uuid.UUID]Item
	order []uuid.UUID
}

// NewBudget creates an empty budget ledger
func NewBudget() *Budget {
	return &Budget{
		items: make(map[uuid.UUID]Item),
	}
}

// Len returns the number of items in the ledger
func (b *Budget) Len() int {
	return len(b.items)
}

// Has reports whether an item with identifier is in the ledger
func (b *Budget) Has(identifier uuid.UUID) bool {
	_, ok := b.items[identifier]
	return ok
}

// Add stores a new item, failing when its identifier is already taken
func (b *Budget) Add(item Item) (Item, error) {
	if b.Has(item.Identifier) {
		return Item{}, internal.NewConflictError(
			fmt.Sprintf("Failed to add a budget item. Item with identifier %q already exists", item.Identifier),
			internal.ErrCodeItemExists)
	}

	b.items[item.Identifier] = item
	b.order = append(b.order, item.Identifier)
	return item, nil
}

// Update replaces the stored item wholesale.
func (b *Budget) Update(item Item) (Item, error) {
	if !b.Has(item.Identifier) {
		return Item{}, itemNotFound("update", item.Identifier)
	}

	b.items[item.Identifier] = item
	return item, nil
}

// Delete removes the item with identifier and returns it
func (b *Budget) Delete(identifier uuid.UUID) (Item, error) {
	item, ok := b.items[identifier]
	if !ok {
		return Item{}, itemNotFound("delete", identifier)
	}

	delete(b.items, identifier)
	for i, id := range b.order {
		if id == identifier {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return item, nil
}

// Get retrieves an item by identifier
func (b *Budget) Get(identifier uuid.UUID) (Item, error) {
	item, ok := b.items[identifier]
	if !ok {
		return Item{}, itemNotFound("get", identifier)
	}
	return item, nil
}

// GetByName returns the first item with exactly that name. Names are not
// unique.
func (b *Budget) GetByName(name string) (Item, error) {
	for _, id := range b.order {
		if item := b.items[id]; item.Name == name {
			return item, nil
		}
	}
	return Item{}, internal.NewNotFoundError(
		fmt.Sprintf("Failed to get a budget item. Item with name %q does not exist", name),
		internal.ErrCodeItemNotFound)
}

// GetByCategory returns the items of category in insertion order
func (b *Budget) GetByCategory(category Category) []Item {
	items := make([]Item, 0)
	for _, id := range b.order {
		if item := b.items[id]; item.Category == category {
			items = append(items, item)
		}
	}
	return items
}

// List returns every item in insertion order
func (b *Budget) List() []Item {
	items := make([]Item, 0, len(b.order))
	for _, id := range b.order {
		items = append(items, b.items[id])
	}
	return items
}

// Names maps every category to the names of its items.
func (b *Budget) Names() map[Category][]string {
	names := make(map[Category][]string, len(categoryNames))
	for _, c := range Categories() {
		names[c] = []string{}
	}
	for _, id := range b.order {
		item := b.items[id]
		names[item.Category] = append(names[item.Category], item.Name)
	}
	return names
}

func itemNotFound(operation string, identifier uuid.UUID) *internal.AppError {
	return internal.NewNotFoundError(
		fmt.Sprintf("Failed to %s a budget item. Item with identifier %q does not exist", operation, identifier),
		internal.ErrCodeItemNotFound)
}
