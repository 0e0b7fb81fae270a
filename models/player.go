package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Player carries the loan eligibility bookkeeping: LoanDaysRemaining is
// decremented once per loan created and must never go below zero. LoanCost is
// the daily fee used as the basis for the return-fee calculation.
type Player struct {
	gorm.Model
	Name string `gorm:"not null" json:"name"`

	// Optional enrichment from the football data API.
	APIFootballID *int            `gorm:"uniqueIndex" json:"apiFootballId,omitempty"`
	Statistics    json.RawMessage `json:"statistics,omitempty"`
	DateOfBirth   *time.Time      `json:"dateOfBirth,omitempty"`
	Nationality   *string         `json:"nationality,omitempty"`

	Team TeamSnapshot `gorm:"embedded;embeddedPrefix:team_" json:"team"`

	LoanDaysRemaining int `gorm:"not null" json:"loanDaysRemaining"`
	LoanCost          int `gorm:"not null" json:"loanCost"`
}

// PlayerSnapshot is the copy of player data embedded in a loan at creation
// time. DailyLoanFee freezes the fee basis so later edits to the player do
// not change what an open loan will cost.
type PlayerSnapshot struct {
	PlayerID     uint   `json:"playerId"`
	Name         string `json:"name"`
	DailyLoanFee int    `json:"dailyLoanFee"`
}

func (p *Player) Snapshot() PlayerSnapshot {
	return PlayerSnapshot{
		PlayerID:     p.ID,
		Name:         p.Name,
		DailyLoanFee: p.LoanCost,
	}
}
