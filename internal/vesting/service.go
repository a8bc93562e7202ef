package vesting

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/goverland-labs/goverland-grant-updates/internal/update"
	"github.com/goverland-labs/goverland-grant-updates/pkg/sdk/vestings"
)

type DataProvider interface {
	GetVesting(ctx context.Context, address string) (*vestings.Vesting, error)
}

type Service struct {
	api DataProvider
}

func NewService(api DataProvider) *Service {
	return &Service{
		api: api,
	}
}

// ReleaseLogs returns releases of the vesting contract ordered by timestamp desc
func (s *Service) ReleaseLogs(ctx context.Context, address string) ([]update.ReleaseLog, error) {
	v, err := s.api.GetVesting(ctx, address)
	if errors.Is(err, vestings.ErrVestingNotFound) {
		log.Warn().Str("address", address).Msg("vesting is not indexed")

		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("get vesting by API: %w", err)
	}

	list := make([]update.ReleaseLog, 0, len(v.ReleaseLogs))
	for _, rl := range v.ReleaseLogs {
		item, err := convertReleaseLog(rl)
		if err != nil {
			return nil, fmt.Errorf("convert release log %s: %w", rl.ID, err)
		}

		list = append(list, item)
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Timestamp.After(list[j].Timestamp)
	})

	return list, nil
}

func convertReleaseLog(rl vestings.ReleaseLog) (update.ReleaseLog, error) {
	ts, err := strconv.ParseInt(rl.Timestamp, 10, 64)
	if err != nil {
		return update.ReleaseLog{}, fmt.Errorf("parse timestamp: %w", err)
	}

	amount, err := decimal.NewFromString(rl.Amount)
	if err != nil {
		return update.ReleaseLog{}, fmt.Errorf("parse amount: %w", err)
	}

	return update.ReleaseLog{
		Amount:    amount,
		Timestamp: time.Unix(ts, 0).UTC(),
	}, nil
}
