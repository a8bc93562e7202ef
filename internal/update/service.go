package update

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/goverland-labs/goverland-grant-updates/internal/metrics"
	"github.com/goverland-labs/goverland-grant-updates/internal/proposal"
)

var (
	ErrUpdateNotFound   = errors.New("update not found")
	ErrProposalNotFound = errors.New("proposal not found")
	ErrForbidden        = errors.New("forbidden")
	ErrNotOnTime        = errors.New("update is not on time")
	ErrNotCompleted     = errors.New("update is not completed")
	ErrAlreadyScheduled = errors.New("updates are already scheduled")
	ErrInvalidContent   = errors.New("invalid update content")
	ErrInvalidSchedule  = errors.New("invalid schedule")
)

// ProposalProvider resolves proposals and checks who may manage their updates
type ProposalProvider interface {
	GetByID(ctx context.Context, id string) (*proposal.Proposal, error)
	IsAuthorOrCoauthor(ctx context.Context, p *proposal.Proposal, address string) (bool, error)
}

// ReleaseProvider returns vesting releases ordered by timestamp desc
type ReleaseProvider interface {
	ReleaseLogs(ctx context.Context, vestingAddress string) ([]ReleaseLog, error)
}

// Publisher delivers update events to the message bus
type Publisher interface {
	PublishJSON(ctx context.Context, subject string, obj any) error
}

// SubmitRequest carries the content for a scheduled update
type SubmitRequest struct {
	ProposalID string
	UpdateID   string
	// Caller is the address of the user performing the request
	Caller  string
	Content Content
}

type Service struct {
	repo      *Repo
	lifecycle *Lifecycle
	proposals ProposalProvider
	releases  ReleaseProvider
	publisher Publisher

	now func() time.Time
}

func NewService(
	repo *Repo,
	lc *Lifecycle,
	pp ProposalProvider,
	rp ReleaseProvider,
	pb Publisher,
) *Service {
	return &Service{
		repo:      repo,
		lifecycle: lc,
		proposals: pp,
		releases:  rp,
		publisher: pb,
		now:       time.Now,
	}
}

func (s *Service) GetProposalUpdates(ctx context.Context, proposalID string) (Partition, error) {
	list, err := s.repo.FindByProposal(ctx, proposalID)
	if err != nil {
		return Partition{}, fmt.Errorf("find updates: %w", err)
	}

	return s.lifecycle.Partition(list, s.now()), nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Update, error) {
	u, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUpdateNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("get update: %w", err)
	}

	return u, nil
}

// Create stores an ad-hoc update which is not a part of the schedule
func (s *Service) Create(ctx context.Context, proposalID, caller string, content Content) (*Update, error) {
	if err := validateContent(content, caller); err != nil {
		return nil, err
	}

	if _, err := s.authorize(ctx, proposalID, caller); err != nil {
		return nil, err
	}

	now := s.now()
	u := &Update{
		ID:             uuid.New().String(),
		ProposalID:     proposalID,
		Status:         StatusDone,
		CompletionDate: &now,
	}
	content.apply(u)

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create update: %w", err)
	}

	metrics.CollectUpdateSubmission(string(u.Status))
	s.publish(ctx, SubjectUpdateSubmitted, u)

	return u, nil
}

// Submit fills the content of the scheduled update or edits already submitted one
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*Update, error) {
	u, err := s.GetByID(ctx, req.UpdateID)
	if err != nil {
		return nil, err
	}

	if u.ProposalID != req.ProposalID {
		return nil, ErrUpdateNotFound
	}

	if _, err = s.authorize(ctx, req.ProposalID, req.Caller); err != nil {
		return nil, err
	}

	if err = validateContent(req.Content, req.Caller); err != nil {
		return nil, err
	}

	now := s.now()
	if !s.lifecycle.CanSubmit(u, now) {
		return nil, fmt.Errorf("%w: %s", ErrNotOnTime, u.ID)
	}

	req.Content.apply(u)
	u.Status = s.lifecycle.SubmissionStatus(u, now)
	u.CompletionDate = &now

	if err = s.repo.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("save update: %w", err)
	}

	metrics.CollectUpdateSubmission(string(u.Status))
	s.publish(ctx, SubjectUpdateSubmitted, u)

	return u, nil
}

// Delete removes ad-hoc updates and resets scheduled ones to the pending state
func (s *Service) Delete(ctx context.Context, proposalID, id, caller string) error {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if u.ProposalID != proposalID {
		return ErrUpdateNotFound
	}

	if !u.IsCompleted() {
		return fmt.Errorf("%w: %s", ErrNotCompleted, u.ID)
	}

	if _, err = s.authorize(ctx, proposalID, caller); err != nil {
		return err
	}

	// keep the details for the event before resetting the record
	ev := newEvent(u)

	if !u.IsScheduled() {
		err = s.repo.Delete(ctx, u.ID)
	} else {
		u.reset()
		err = s.repo.Save(ctx, u)
	}
	if err != nil {
		return fmt.Errorf("delete update: %s: %w", u.ID, err)
	}

	if errP := s.publisher.PublishJSON(ctx, SubjectUpdateDeleted, ev); errP != nil {
		log.Warn().Err(errP).Str("update", u.ID).Msg("publish update deleted")
	}

	return nil
}

// Schedule creates pending updates, one per month starting a month after the start date
func (s *Service) Schedule(ctx context.Context, proposalID string, start time.Time, months int) ([]Update, error) {
	if months <= 0 || start.IsZero() {
		return nil, ErrInvalidSchedule
	}

	if _, err := s.getProposal(ctx, proposalID); err != nil {
		return nil, err
	}

	list := make([]Update, 0, months)
	for i := 1; i <= months; i++ {
		seq := i
		due := start.AddDate(0, i, 0)
		list = append(list, Update{
			ID:         uuid.New().String(),
			ProposalID: proposalID,
			Status:     StatusPending,
			Seq:        &seq,
			DueDate:    &due,
		})
	}

	err := s.repo.CreateSchedule(ctx, proposalID, list)
	if errors.Is(err, ErrAlreadyScheduled) {
		return nil, ErrAlreadyScheduled
	}

	if err != nil {
		return nil, fmt.Errorf("create schedule: %w", err)
	}

	log.Info().Str("proposal", proposalID).Int("updates", months).Msg("updates are scheduled")

	return list, nil
}

// FundsReleased calculates funds released by the proposal vesting since the latest submitted update
func (s *Service) FundsReleased(ctx context.Context, proposalID string) (FundsReleased, error) {
	p, err := s.getProposal(ctx, proposalID)
	if err != nil {
		return FundsReleased{}, err
	}

	if !p.HasVesting() {
		return FundsReleasedSinceLatestUpdate(nil, nil), nil
	}

	releases, err := s.releases.ReleaseLogs(ctx, *p.VestingAddress)
	if err != nil {
		return FundsReleased{}, fmt.Errorf("get release logs: %w", err)
	}

	list, err := s.repo.FindByProposal(ctx, proposalID)
	if err != nil {
		return FundsReleased{}, fmt.Errorf("find updates: %w", err)
	}

	return FundsReleasedSinceLatestUpdate(LatestPublicUpdate(list), releases), nil
}

// MarkMissed moves pending updates with expired grace window to the missed state
func (s *Service) MarkMissed(ctx context.Context) (int, error) {
	now := s.now()
	list, err := s.repo.GetByFilters(ctx, []Filter{
		NotCompletedFilter{},
		StatusFilter{Status: StatusPending},
		DueBeforeFilter{Date: now.Add(-s.lifecycle.LateThreshold())},
	})
	if err != nil {
		return 0, fmt.Errorf("get overdue updates: %w", err)
	}

	marked := 0
	for i := range list {
		u := &list[i]
		if !s.lifecycle.IsMissed(u, now) {
			continue
		}

		if err = s.repo.UpdateStatus(ctx, u.ID, StatusMissed); err != nil {
			return marked, fmt.Errorf("mark update as missed: %s: %w", u.ID, err)
		}

		u.Status = StatusMissed
		marked++

		s.publish(ctx, SubjectUpdateMissed, u)
	}

	return marked, nil
}

func (s *Service) getProposal(ctx context.Context, id string) (*proposal.Proposal, error) {
	p, err := s.proposals.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProposalNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("get proposal: %w", err)
	}

	return p, nil
}

func (s *Service) authorize(ctx context.Context, proposalID, caller string) (*proposal.Proposal, error) {
	p, err := s.getProposal(ctx, proposalID)
	if errors.Is(err, ErrProposalNotFound) {
		return nil, ErrForbidden
	}

	if err != nil {
		return nil, err
	}

	ok, err := s.proposals.IsAuthorOrCoauthor(ctx, p, caller)
	if err != nil {
		return nil, fmt.Errorf("check permissions: %w", err)
	}

	if !ok {
		return nil, ErrForbidden
	}

	return p, nil
}

func (s *Service) publish(ctx context.Context, subject string, u *Update) {
	if err := s.publisher.PublishJSON(ctx, subject, newEvent(u)); err != nil {
		log.Warn().Err(err).Str("update", u.ID).Msgf("publish %s", subject)
	}
}

func validateContent(c Content, caller string) error {
	if !strings.EqualFold(c.Author, caller) {
		return ErrForbidden
	}

	if !c.Health.Valid() {
		return fmt.Errorf("%w: unknown health %q", ErrInvalidContent, c.Health)
	}

	required := map[string]string{
		"introduction": c.Introduction,
		"highlights":   c.Highlights,
		"blockers":     c.Blockers,
		"next_steps":   c.NextSteps,
	}
	for name, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: missing %s", ErrInvalidContent, name)
		}
	}

	return nil
}
