package update

import (
	"time"
)

const (
	SubjectUpdateSubmitted = "grant_updates.submitted"
	SubjectUpdateDeleted   = "grant_updates.deleted"
	SubjectUpdateMissed    = "grant_updates.missed"
)

// Event is the payload published on every update state change
type Event struct {
	UpdateID       string     `json:"update_id"`
	ProposalID     string     `json:"proposal_id"`
	Status         Status     `json:"status"`
	Author         string     `json:"author,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	CompletionDate *time.Time `json:"completion_date,omitempty"`
}

func newEvent(u *Update) Event {
	ev := Event{
		UpdateID:       u.ID,
		ProposalID:     u.ProposalID,
		Status:         u.Status,
		DueDate:        u.DueDate,
		CompletionDate: u.CompletionDate,
	}

	if u.Author != nil {
		ev.Author = *u.Author
	}

	return ev
}
