package models

import "time"

// Pick is replace-on-resubmit: submitting picks for an event within a league
// wipes the user's previous picks for that (user, league, event) scope before
// the new set is written. PointsEarned starts at 0 and is only ever changed by
// the external grading process.
type Pick struct {
	ID           string `gorm:"primaryKey"`
	UserID       string `gorm:"not null;index"`
	LeagueID     string `gorm:"not null;index"`
	EventID      string `gorm:"not null;index"`
	FightID      string `gorm:"not null"`
	FighterID    string `gorm:"not null"`
	PointsEarned int    `gorm:"not null;default:0"`
	CreatedAt    time.Time

	// Relationships
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	League  League  `gorm:"foreignKey:LeagueID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Event   Event   `gorm:"foreignKey:EventID"`
	Fight   Fight   `gorm:"foreignKey:FightID"`
	Fighter Fighter `gorm:"foreignKey:FighterID"`
}
