package update

import (
	"time"

	"gorm.io/gorm"
)

type Filter interface {
	Apply(*gorm.DB) *gorm.DB
}

type ProposalFilter struct {
	ProposalID string
}

func (f ProposalFilter) Apply(db *gorm.DB) *gorm.DB {
	var (
		dummy Update
		_     = dummy.ProposalID
	)

	return db.Where("proposal_id = ?", f.ProposalID)
}

type StatusFilter struct {
	Status Status
}

func (f StatusFilter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", f.Status)
}

// NotCompletedFilter selects scheduled updates without completion date
type NotCompletedFilter struct{}

func (f NotCompletedFilter) Apply(db *gorm.DB) *gorm.DB {
	var (
		dummy Update
		_     = dummy.CompletionDate
		_     = dummy.DueDate
	)

	return db.Where("completion_date is null and due_date is not null")
}

type DueBeforeFilter struct {
	Date time.Time
}

func (f DueBeforeFilter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("due_date <= ?", f.Date)
}

type OrderByDueDateFilter struct{}

func (f OrderByDueDateFilter) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("due_date asc").Order("created_at asc")
}
