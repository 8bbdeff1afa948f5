package entities

import "time"

// SeenPosting is written once, when a posting is first reported, and never updated.
type SeenPosting struct {
	ID        string `gorm:"primaryKey"`
	Source    string `gorm:"primaryKey"`
	URL       string
	Title     string
	CreatedAt time.Time
}
