package models

import "gorm.io/gorm"

// Team is a football club that can loan players out or borrow them.
type Team struct {
	gorm.Model
	Name  string `gorm:"not null" json:"name"`
	Coach string `gorm:"not null" json:"coach"`
}

// TeamSnapshot is the point-in-time copy of a team embedded in players and
// loans. It is never updated after creation, so historical records survive
// later edits or deletion of the team.
type TeamSnapshot struct {
	TeamID uint   `json:"teamId"`
	Name   string `json:"name"`
}

func (t *Team) Snapshot() TeamSnapshot {
	return TeamSnapshot{
		TeamID: t.ID,
		Name:   t.Name,
	}
}
