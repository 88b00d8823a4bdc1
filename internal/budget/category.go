package budget

import (
	"fmt"
	"strings"

	"github.com/frahmantamala/budget-tracker/internal"
)

// Category groups budget items. The declaration order is the display and
// sort order.
type Category int

const (
	Empty Category = iota
	Income
	Needs
	Wants
	Savings
)

var categoryNames = [...]string{
	Empty:   "Empty",
	Income:  "Income",
	Needs:   "Needs",
	Wants:   "Wants",
	Savings: "Savings",
}

// Categories returns every category in order.
func Categories() []Category {
	return []Category{Empty, Income, Needs, Wants, Savings}
}

// CategoryNames returns the names of every category in order.
func CategoryNames() []string {
	names := make([]string, len(categoryNames))
	copy(names, categoryNames[:])
	return names
}

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

func (c Category) Valid() bool {
	return c >= Empty && c <= Savings
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid budget category %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// IsExpense reports whether the category counts towards expenses.
func (c Category) IsExpense() bool {
	return c == Needs || c == Wants || c == Savings
}

// ParseCategory resolves a category by its exact, case-sensitive name.
func ParseCategory(name string) (Category, error) {
	for _, c := range Categories() {
		if categoryNames[c] == name {
			return c, nil
		}
	}
	return Empty, NewCategoryNotFoundError(name)
}

func NewCategoryNotFoundError(name string) *internal.AppError {
	valid := CategoryNames()
	msg := fmt.Sprintf("%q is not a valid budget category. The valid categories are: %s", name, strings.Join(valid, ", "))
	return internal.NewNotFoundError(msg, internal.ErrCodeCategoryNotFound).WithDetails(valid)
}
