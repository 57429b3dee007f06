package models

import "time"

// Event rows are sourced from the outside world through the ingest endpoint
// and are read-only everywhere else.
type Event struct {
	ID       string `gorm:"primaryKey"`
	Name     string `gorm:"not null"`
	Date     time.Time
	Location string

	// Relationships
	Fights []Fight `gorm:"foreignKey:EventID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
