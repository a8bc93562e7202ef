package update

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Create(ctx context.Context, u *Update) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// CreateBatch stores all provided updates in a single transaction
func (r *Repo) CreateBatch(ctx context.Context, list []Update) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range list {
			if err := tx.Create(&list[i]).Error; err != nil {
				return fmt.Errorf("create update #%d: %w", i, err)
			}
		}

		return nil
	})
}

// CreateSchedule stores the schedule unless the proposal already has one. Concurrent
// attempts which pass the count are rejected by the unique schedule index.
func (r *Repo) CreateSchedule(ctx context.Context, proposalID string, list []Update) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := NewRepo(tx)

		cnt, err := txRepo.CountScheduled(ctx, proposalID)
		if err != nil {
			return fmt.Errorf("count scheduled updates: %w", err)
		}

		if cnt > 0 {
			return ErrAlreadyScheduled
		}

		return txRepo.CreateBatch(ctx, list)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyScheduled
	}

	return err
}

// Save stores all fields of the update including nil ones
func (r *Repo) Save(ctx context.Context, u *Update) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Update{ID: id}).Error
}

func (r *Repo) GetByID(ctx context.Context, id string) (*Update, error) {
	var u Update
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&u).
		Error
	if err != nil {
		return nil, fmt.Errorf("get update by id #%s: %w", id, err)
	}

	return &u, nil
}

func (r *Repo) FindByProposal(ctx context.Context, proposalID string) ([]Update, error) {
	return r.GetByFilters(ctx, []Filter{
		ProposalFilter{ProposalID: proposalID},
		OrderByDueDateFilter{},
	})
}

func (r *Repo) GetByFilters(ctx context.Context, filters []Filter) ([]Update, error) {
	db := r.db.WithContext(ctx).Model(&Update{})
	for _, f := range filters {
		db = f.Apply(db)
	}

	var list []Update
	if err := db.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get updates by filters: %w", err)
	}

	return list, nil
}

func (r *Repo) CountScheduled(ctx context.Context, proposalID string) (int64, error) {
	var (
		dummy Update
		_     = dummy.ProposalID
		_     = dummy.DueDate
	)

	var count int64
	err := r.db.WithContext(ctx).
		Model(&Update{}).
		Where("proposal_id = ? and due_date is not null", proposalID).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *Repo) UpdateStatus(ctx context.Context, id string, status Status) error {
	return r.db.WithContext(ctx).
		Model(&Update{ID: id}).
		UpdateColumn("status", status).
		Error
}
