package proposal

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

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

func (r *Repo) GetByID(ctx context.Context, id string) (*Proposal, error) {
	var p Proposal
	err := r.db.WithContext(ctx).
		Where("id = @id", sql.Named("id", id)).
		Take(&p).
		Error
	if err != nil {
		return nil, fmt.Errorf("get proposal by id #%s: %w", id, err)
	}

	return &p, nil
}

// IsCoauthor returns true if address is an approved coauthor of the proposal
func (r *Repo) IsCoauthor(ctx context.Context, proposalID, address string) (bool, error) {
	var (
		dummy Coauthor
		_     = dummy.ProposalID
		_     = dummy.Address
		_     = dummy.Status
	)

	var count int64
	err := r.db.WithContext(ctx).
		Model(&Coauthor{}).
		Where(
			"proposal_id = @proposal_id and lower(address) = @address and status = @status",
			sql.Named("proposal_id", proposalID),
			sql.Named("address", strings.ToLower(address)),
			sql.Named("status", CoauthorStatusApproved),
		).
		Count(&count).
		Error
	if err != nil {
		return false, fmt.Errorf("count coauthors: %w", err)
	}

	return count > 0, nil
}

func (r *Repo) Create(ctx context.Context, p *Proposal) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *Repo) AddCoauthor(ctx context.Context, c *Coauthor) error {
	return r.db.WithContext(ctx).Create(c).Error
}
