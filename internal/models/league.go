package models

import (
	"time"

	"gorm.io/datatypes"
)

type League struct {
	ID             string `gorm:"primaryKey"`
	Name           string `gorm:"not null"`
	OwnerID        string `gorm:"not null;index"`
	Code           string `gorm:"uniqueIndex;not null"` // join code, the sole join mechanism
	ScoringRules   string
	Settings       datatypes.JSON `gorm:"type:jsonb"`
	DiscordWebhook string
	SlackWebhook   string
	CreatedAt      time.Time `gorm:"not null"`

	// Relationships
	Owner       User         `gorm:"foreignKey:OwnerID"`
	Memberships []Membership `gorm:"foreignKey:LeagueID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Picks       []Pick       `gorm:"foreignKey:LeagueID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
