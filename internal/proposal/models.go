package proposal

import (
	"strings"
	"time"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusPassed   Status = "passed"
	StatusEnacted  Status = "enacted"
	StatusRejected Status = "rejected"
)

type Proposal struct {
	ID             string `gorm:"primarykey"`
	User           string
	Type           string
	Status         Status
	VestingAddress *string
	EnactedAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Proposal) TableName() string {
	return "proposals"
}

func (p *Proposal) IsAuthor(address string) bool {
	return address != "" && strings.EqualFold(p.User, address)
}

func (p *Proposal) HasVesting() bool {
	return p.VestingAddress != nil && *p.VestingAddress != ""
}

type CoauthorStatus string

const (
	CoauthorStatusPending  CoauthorStatus = "pending"
	CoauthorStatusApproved CoauthorStatus = "approved"
	CoauthorStatusRejected CoauthorStatus = "rejected"
)

// Coauthor is an address invited by the proposal author. Only approved
// coauthors are allowed to manage the proposal updates.
type Coauthor struct {
	ProposalID string `gorm:"primarykey"`
	Address    string `gorm:"primarykey"`
	Status     CoauthorStatus
	CreatedAt  time.Time
}

func (Coauthor) TableName() string {
	return "coauthors"
}
