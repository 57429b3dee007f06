package models

import "fmt"

type Fighter struct {
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"not null;index"`
	WeightClass string
	Wins        int
	Losses      int
	Draws       int
}

// Record renders the fighter's record in the usual "wins-losses-draws" form.
func (f Fighter) Record() string {
	return fmt.Sprintf("%d-%d-%d", f.Wins, f.Losses, f.Draws)
}
