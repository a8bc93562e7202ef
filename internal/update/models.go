package update

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
	StatusLate    Status = "late"
	StatusMissed  Status = "missed"
)

type Health string

const (
	HealthOnTrack  Health = "on_track"
	HealthAtRisk   Health = "at_risk"
	HealthOffTrack Health = "off_track"
)

func (h Health) Valid() bool {
	switch h {
	case HealthOnTrack, HealthAtRisk, HealthOffTrack:
		return true
	default:
		return false
	}
}

// Update is a periodic grant progress report. DueDate is nil for ad-hoc updates
// which are not a part of the schedule.
type Update struct {
	ID         string `gorm:"primarykey" json:"id"`
	ProposalID string `gorm:"uniqueIndex:idx_proposal_updates_schedule,priority:1" json:"proposal_id"`
	Status     Status `json:"status"`

	// Seq is the position in the schedule starting from 1, nil for ad-hoc updates
	Seq            *int       `gorm:"uniqueIndex:idx_proposal_updates_schedule,priority:2" json:"seq,omitempty"`
	DueDate        *time.Time `json:"due_date"`
	CompletionDate *time.Time `json:"completion_date"`

	Author          *string `json:"author"`
	Health          *Health `json:"health"`
	Introduction    *string `json:"introduction"`
	Highlights      *string `json:"highlights"`
	Blockers        *string `json:"blockers"`
	NextSteps       *string `json:"next_steps"`
	AdditionalNotes *string `json:"additional_notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Update) TableName() string {
	return "proposal_updates"
}

func (u *Update) IsCompleted() bool {
	return u.CompletionDate != nil
}

func (u *Update) IsScheduled() bool {
	return u.DueDate != nil
}

// Content holds the author provided fields of the update
type Content struct {
	Author          string  `json:"author"`
	Health          Health  `json:"health"`
	Introduction    string  `json:"introduction"`
	Highlights      string  `json:"highlights"`
	Blockers        string  `json:"blockers"`
	NextSteps       string  `json:"next_steps"`
	AdditionalNotes *string `json:"additional_notes,omitempty"`
}

func (c Content) apply(u *Update) {
	health := c.Health

	u.Author = &c.Author
	u.Health = &health
	u.Introduction = &c.Introduction
	u.Highlights = &c.Highlights
	u.Blockers = &c.Blockers
	u.NextSteps = &c.NextSteps
	u.AdditionalNotes = c.AdditionalNotes
}

// reset turns the update into a blank pending shell keeping its schedule
func (u *Update) reset() {
	u.Status = StatusPending
	u.CompletionDate = nil
	u.Author = nil
	u.Health = nil
	u.Introduction = nil
	u.Highlights = nil
	u.Blockers = nil
	u.NextSteps = nil
	u.AdditionalNotes = nil
}

type Partition struct {
	PublicUpdates  []Update `json:"publicUpdates"`
	PendingUpdates []Update `json:"pendingUpdates"`
	NextUpdate     *Update  `json:"nextUpdate"`
	CurrentUpdate  *Update  `json:"currentUpdate"`
}

// ReleaseLog describes funds released from the vesting contract
type ReleaseLog struct {
	Amount    decimal.Decimal
	Timestamp time.Time
}

type FundsReleased struct {
	Value    decimal.Decimal `json:"value"`
	TxAmount int             `json:"txAmount"`
}
