package budget

import "time"

// BudgetItem is one stored budget item row. Amount is kept as text so the
// decimal survives the round trip unchanged.
type BudgetItem struct {
	ID         int64     `gorm:"primaryKey"`
	Project    string    `gorm:"column:project;not null;uniqueIndex:idx_budget_items_project_identifier"`
	Identifier string    `gorm:"column:identifier;not null;uniqueIndex:idx_budget_items_project_identifier"`
	Position   int       `gorm:"column:position;not null"`
	Name       string    `gorm:"column:name;not null"`
	Amount     string    `gorm:"column:amount;not null"`
	Category   string    `gorm:"column:category;not null"`
	Note       string    `gorm:"column:note"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (BudgetItem) TableName() string {
	return "budget_items"
}
