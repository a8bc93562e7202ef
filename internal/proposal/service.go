package proposal

import (
	"context"
	"fmt"
)

type Service struct {
	repo *Repo
}

func NewService(repo *Repo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (*Proposal, error) {
	return s.repo.GetByID(ctx, id)
}

// IsAuthorOrCoauthor checks if the address is allowed to manage the proposal
func (s *Service) IsAuthorOrCoauthor(ctx context.Context, p *Proposal, address string) (bool, error) {
	if address == "" {
		return false, nil
	}

	if p.IsAuthor(address) {
		return true, nil
	}

	ok, err := s.repo.IsCoauthor(ctx, p.ID, address)
	if err != nil {
		return false, fmt.Errorf("check coauthor: %w", err)
	}

	return ok, nil
}
