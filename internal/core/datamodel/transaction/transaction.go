package transaction

import "time"

type Transaction struct {
	ID        int64     `gorm:"primaryKey"`
	Project   string    `gorm:"column:project;not null;uniqueIndex:idx_transactions_project_reference"`
	Reference string    `gorm:"column:reference;not null;uniqueIndex:idx_transactions_project_reference"`
	Position  int       `gorm:"column:position;not null"`
	Day       string    `gorm:"column:day;not null"`
	Source    string    `gorm:"column:source"`
	Amount    string    `gorm:"column:amount;not null"`
	Notes     string    `gorm:"column:notes"`
	Category  string    `gorm:"column:category"`
	Month     string    `gorm:"column:month;not null"`
	Comments  string    `gorm:"column:comments"`
	Exclude   string    `gorm:"column:exclude;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Transaction) TableName() string {
	return "transactions"
}
