package models

// Fight stores its two fighters in fixed corner slots. A fighter's corner is
// specific to the fight, so win/loss relative to a fighter is always derived
// by comparing WinnerID against that fight's corners.
type Fight struct {
	ID          string `gorm:"primaryKey"`
	EventID     string `gorm:"not null;index"`
	FighterAID  string `gorm:"not null"` // first corner
	FighterBID  string `gorm:"not null"` // second corner
	WinnerID    string // empty while pending, and for draws / no contests
	Method      string
	Round       int
	WeightClass string

	// Relationships
	Event    Event   `gorm:"foreignKey:EventID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	FighterA Fighter `gorm:"foreignKey:FighterAID"`
	FighterB Fighter `gorm:"foreignKey:FighterBID"`
}
