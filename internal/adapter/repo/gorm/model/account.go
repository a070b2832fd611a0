package model

import "time"

type Account struct {
	ID          int64  `gorm:"primaryKey"`
	ExternalID  string `gorm:"uniqueIndex;not null"`
	DisplayName string
	Balance     int64 `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Account) TableName() string {
	return "accounts"
}
