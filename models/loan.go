package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrAlreadyReturned is reported when a return is processed for a loan whose
// return has already been recorded.
var ErrAlreadyReturned = errors.New("loan already returned")

// Loan records a time-bounded transfer of a player between two teams,
// optionally brokered by an agent. The agent, player and team fields are
// snapshots taken at creation time, not references to the live rows: editing
// or deleting the source entities later must not rewrite loan history.
//
// A loan is Active until ReturnDate is set; ReturnDate and LoanFee are
// written exactly once, together.
type Loan struct {
	gorm.Model
	Agent         AgentSnapshot  `gorm:"embedded;embeddedPrefix:agent_" json:"agent"`
	Player        PlayerSnapshot `gorm:"embedded;embeddedPrefix:player_" json:"player"`
	LoaningTeam   TeamSnapshot   `gorm:"embedded;embeddedPrefix:loaning_team_" json:"loaningTeam"`
	BorrowingTeam TeamSnapshot   `gorm:"embedded;embeddedPrefix:borrowing_team_" json:"borrowingTeam"`

	StartDate time.Time `gorm:"not null" json:"startDate"`
	EndDate   time.Time `gorm:"not null" json:"endDate"`
	LoanDate  time.Time `gorm:"not null" json:"loanDate"`

	ReturnDate *time.Time `json:"returnDate,omitempty"`
	LoanFee    *int       `json:"loanFee,omitempty"`
}

func (l *Loan) Returned() bool {
	return l.ReturnDate != nil
}

// MarkReturned sets the return date and the accrued fee in one step. The fee
// is whole days elapsed since LoanDate times the snapshotted daily fee;
// partial days do not round up.
func (l *Loan) MarkReturned(now time.Time) error {
	if l.Returned() {
		return ErrAlreadyReturned
	}
	days := int(now.Sub(l.LoanDate).Hours() / 24)
	if days < 0 {
		days = 0
	}
	fee := days * l.Player.DailyLoanFee
	l.ReturnDate = &now
	l.LoanFee = &fee
	return nil
}
