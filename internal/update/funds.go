package update

import (
	"github.com/shopspring/decimal"
)

// FundsReleasedSinceLatestUpdate sums releases made after the latest submitted update.
// Without a submitted update every release is counted.
func FundsReleasedSinceLatestUpdate(latest *Update, releases []ReleaseLog) FundsReleased {
	res := FundsReleased{
		Value: decimal.Zero,
	}

	for _, r := range releases {
		if latest != nil && latest.IsCompleted() && !r.Timestamp.After(*latest.CompletionDate) {
			continue
		}

		res.Value = res.Value.Add(r.Amount)
		res.TxAmount++
	}

	return res
}
