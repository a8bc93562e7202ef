package survey

import (
	"context"
	"fmt"

	"github.com/goverland-labs/goverland-grant-updates/internal/metrics"
)

type Service struct {
	repo  *Repo
	codec *Codec
}

func NewService(repo *Repo, codec *Codec) *Service {
	return &Service{
		repo:  repo,
		codec: codec,
	}
}

func (s *Service) Topics(ctx context.Context) ([]Topic, error) {
	return s.repo.List(ctx)
}

func (s *Service) Decode(ctx context.Context, encoded string) (Survey, error) {
	res, err := s.codec.Decode(ctx, encoded)
	metrics.CollectSurveyDecode(err)

	return res, err
}

// Encode validates the survey and returns the encoded form
func (s *Service) Encode(sv Survey) (string, error) {
	if err := Validate(sv); err != nil {
		return "", err
	}

	return Encode(sv), nil
}

// Summary decodes all provided surveys and counts reactions per topic
func (s *Service) Summary(ctx context.Context, encoded []string) ([]TopicSummary, error) {
	list := make([]Survey, 0, len(encoded))
	for idx, item := range encoded {
		sv, err := s.Decode(ctx, item)
		if err != nil {
			return nil, fmt.Errorf("decode survey #%d: %w", idx, err)
		}

		list = append(list, sv)
	}

	return Tally(list), nil
}
