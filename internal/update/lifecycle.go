package update

import (
	"fmt"
	"time"
)

// DefaultLateThreshold is the grace window applied when none is configured
const DefaultLateThreshold = 7 * 24 * time.Hour

// NextPolicy describes how the next pending update is picked
type NextPolicy string

const (
	// NextStrictlyFuture picks the earliest pending update which is due after now
	NextStrictlyFuture NextPolicy = "strictly_future"
	// NextEarliestPending picks the earliest pending update including overdue ones
	NextEarliestPending NextPolicy = "earliest_pending"
)

// ParseNextPolicy converts the configured value into a NextPolicy
func ParseNextPolicy(value string) (NextPolicy, error) {
	switch p := NextPolicy(value); p {
	case NextStrictlyFuture, NextEarliestPending:
		return p, nil
	default:
		return "", fmt.Errorf("unknown next update policy: %q", value)
	}
}

// Lifecycle classifies updates and decides if submissions are acceptable.
// It holds no state besides its configuration.
type Lifecycle struct {
	lateThreshold time.Duration
	nextPolicy    NextPolicy
}

func NewLifecycle(lateThreshold time.Duration, policy NextPolicy) *Lifecycle {
	if lateThreshold <= 0 {
		lateThreshold = DefaultLateThreshold
	}

	if policy == "" {
		policy = NextStrictlyFuture
	}

	return &Lifecycle{
		lateThreshold: lateThreshold,
		nextPolicy:    policy,
	}
}

// LateThreshold returns the length of the grace window after a due date
func (l *Lifecycle) LateThreshold() time.Duration {
	return l.lateThreshold
}

// Partition splits updates of a proposal into public and pending ones and picks
// the next and the current pending update at the moment now.
func (l *Lifecycle) Partition(updates []Update, now time.Time) Partition {
	res := Partition{
		PublicUpdates:  PublicUpdates(updates),
		PendingUpdates: PendingUpdates(updates),
	}

	for i := range res.PendingUpdates {
		item := &res.PendingUpdates[i]

		if l.isNextCandidate(item, now) && (res.NextUpdate == nil || item.DueDate.Before(*res.NextUpdate.DueDate)) {
			res.NextUpdate = item
		}

		if l.isCurrentCandidate(item, now) && (res.CurrentUpdate == nil || item.DueDate.Before(*res.CurrentUpdate.DueDate)) {
			res.CurrentUpdate = item
		}
	}

	return res
}

func (l *Lifecycle) isNextCandidate(u *Update, now time.Time) bool {
	if l.nextPolicy == NextEarliestPending {
		return true
	}

	return u.DueDate.After(now)
}

// isCurrentCandidate accepts overdue updates which are still within the grace window
func (l *Lifecycle) isCurrentCandidate(u *Update, now time.Time) bool {
	return u.Status != StatusMissed && l.IsWithinLateGrace(u, now)
}

// PublicUpdates returns submitted updates in input order
func PublicUpdates(updates []Update) []Update {
	list := make([]Update, 0, len(updates))
	for _, u := range updates {
		if u.IsCompleted() {
			list = append(list, u)
		}
	}

	return list
}

// PendingUpdates returns scheduled updates which are not submitted yet
func PendingUpdates(updates []Update) []Update {
	list := make([]Update, 0, len(updates))
	for _, u := range updates {
		if !u.IsCompleted() && u.IsScheduled() {
			list = append(list, u)
		}
	}

	return list
}

// LatestPublicUpdate returns the submitted update with the greatest completion date
func LatestPublicUpdate(updates []Update) *Update {
	var latest *Update
	for i := range updates {
		u := &updates[i]
		if !u.IsCompleted() {
			continue
		}

		if latest == nil || u.CompletionDate.After(*latest.CompletionDate) {
			latest = u
		}
	}

	return latest
}

// IsOnTime reports if the scheduled update is submitted strictly before its due date
func (l *Lifecycle) IsOnTime(u *Update, at time.Time) bool {
	if !u.IsScheduled() {
		return false
	}

	return at.Before(*u.DueDate)
}

// IsWithinLateGrace reports if now is in [due date, due date + threshold)
func (l *Lifecycle) IsWithinLateGrace(u *Update, now time.Time) bool {
	if !u.IsScheduled() {
		return false
	}

	return !now.Before(*u.DueDate) && now.Before(u.DueDate.Add(l.lateThreshold))
}

// CanSubmit reports if the content of the update could be stored at the moment.
// Ad-hoc updates have no schedule and are always accepted.
func (l *Lifecycle) CanSubmit(u *Update, now time.Time) bool {
	if !u.IsScheduled() {
		return true
	}

	return l.IsOnTime(u, now) || l.IsWithinLateGrace(u, now)
}

// SubmissionStatus is the status stored when the update is submitted at the given moment
func (l *Lifecycle) SubmissionStatus(u *Update, at time.Time) Status {
	if !u.IsScheduled() || l.IsOnTime(u, at) {
		return StatusDone
	}

	return StatusLate
}

// IsMissed reports if the pending update has outlived its grace window
func (l *Lifecycle) IsMissed(u *Update, now time.Time) bool {
	if u.IsCompleted() || !u.IsScheduled() || u.Status != StatusPending {
		return false
	}

	return !now.Before(u.DueDate.Add(l.lateThreshold))
}
