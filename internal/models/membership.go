package models

import "time"

const (
	RoleOwner  = "Owner"
	RoleMember = "Member"
)

type Membership struct {
	ID       string `gorm:"primaryKey"`
	UserID   string `gorm:"not null;uniqueIndex:idx_user_league"`
	LeagueID string `gorm:"not null;uniqueIndex:idx_user_league"`
	Role     string `gorm:"not null"`
	JoinedAt time.Time

	// Relationships
	User   User   `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	League League `gorm:"foreignKey:LeagueID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
