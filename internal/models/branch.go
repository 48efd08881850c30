package models

import "time"

type Branch struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:100;not null;unique"`
	Address     string `gorm:"size:255"`
	Phone       string `gorm:"size:50"`        // optional
	UtakAccount string `gorm:"size:150;index"` // POS account email embedded in Utak export filenames
	IsWarehouse bool   `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Users []User
}
