package models

import "gorm.io/gorm"

// Agent represents a broker who can mediate a loan deal.
type Agent struct {
	gorm.Model
	Name      string `gorm:"not null" json:"name"`
	Email     string `gorm:"not null" json:"email"`
	Phone     string `gorm:"not null" json:"phone"`
	IsPremium bool   `gorm:"default:false" json:"isPremium"`
}

// AgentSnapshot is the copy of agent contact data embedded in a loan at
// creation time. All fields are empty when the loan was created without an
// agent.
type AgentSnapshot struct {
	AgentID *uint  `json:"agentId,omitempty"`
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

func (a *Agent) Snapshot() AgentSnapshot {
	id := a.ID
	return AgentSnapshot{
		AgentID: &id,
		Name:    a.Name,
		Phone:   a.Phone,
	}
}
