package update

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultMissedCheckInterval = time.Hour

type MissedWorker struct {
	service  *Service
	interval time.Duration
}

func NewMissedWorker(s *Service, interval time.Duration) *MissedWorker {
	if interval <= 0 {
		interval = defaultMissedCheckInterval
	}

	return &MissedWorker{
		service:  s,
		interval: interval,
	}
}

func (w *MissedWorker) Start(ctx context.Context) error {
	for {
		marked, err := w.service.MarkMissed(ctx)
		if err != nil {
			log.Error().Err(err).Msg("mark missed updates")
		}

		if marked > 0 {
			log.Info().Int("updates", marked).Msg("updates marked as missed")
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(w.interval):
		}
	}
}
