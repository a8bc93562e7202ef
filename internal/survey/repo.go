package survey

import (
	"context"
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

// FindByIDs returns topics with provided ids, unknown ids are skipped
func (r *Repo) FindByIDs(ctx context.Context, ids []string) ([]Topic, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var list []Topic
	err := r.db.WithContext(ctx).
		Where("topic_id in ?", ids).
		Find(&list).
		Error
	if err != nil {
		return nil, fmt.Errorf("find topics by ids: %w", err)
	}

	return list, nil
}

func (r *Repo) List(ctx context.Context) ([]Topic, error) {
	var list []Topic
	err := r.db.WithContext(ctx).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}

	return list, nil
}

func (r *Repo) Create(ctx context.Context, t *Topic) error {
	return r.db.WithContext(ctx).Create(t).Error
}
