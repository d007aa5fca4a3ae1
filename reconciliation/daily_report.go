package reconciliation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"connectrpc.com/connect"
	"github.com/pdcgo/shared/pkg/ware_cache"
	"github.com/pdcgo/treasury_service/treasury_core"
	"github.com/pdcgo/treasury_service/treasury_iface"
	"gorm.io/gorm"
)

// DailyReport aggregates one day of ledger activity, opening and closing
// balances plus movement totals broken down by entry type. Days in the
// past are immutable because the ledger is append only, so those reports
// are served from cache.
func (r *reconServiceImpl) DailyReport(
	ctx context.Context,
	req *connect.Request[treasury_iface.DailyReportRequest],
) (*connect.Response[treasury_iface.DailyReportResponse], error) {
	var err error
	result := treasury_iface.DailyReportResponse{}
	pay := req.Msg

	day := time.Now()
	if pay.Date != 0 {
		day = time.UnixMicro(pay.Date).Local()
	}
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := day.Add(24 * time.Hour)

	closedDay := !dayEnd.After(time.Now())
	key := fmt.Sprintf("treasury/daily_report/%s", day.Format("2006-01-02"))

	if closedDay {
		err = r.cache.Get(ctx, key, &result)
		if err == nil {
			return connect.NewResponse(&result), nil
		}
		if !errors.Is(err, ware_cache.ErrCacheMiss) {
			return connect.NewResponse(&result), err
		}
	}

	db := r.db.WithContext(ctx)
	result.Date = day.UnixMicro()

	opening, err := balancesAsOf(db, day)
	if err != nil {
		return connect.NewResponse(&result), err
	}
	result.Opening = opening

	closing := *opening
	byType := map[string]*treasury_iface.TypeBreakdown{}

	err = treasury_core.NewHistory(db).
		DateRange(day, dayEnd).
		Iterate(func(entry *treasury_core.LedgerEntry) error {
			closing.Registry = entry.RegistryBalanceAfter
			closing.Safe = entry.SafeBalanceAfter
			closing.Bank = entry.BankBalanceAfter
			closing.MobileMoney = entry.MobileMoneyBalanceAfter

			stat := byType[string(entry.EntryType)]
			if stat == nil {
				stat = &treasury_iface.TypeBreakdown{
					EntryType: string(entry.EntryType),
				}
				byType[string(entry.EntryType)] = stat
			}

			stat.Count += 1
			switch entry.Direction {
			case treasury_core.DirectionIn:
				stat.TotalIn += entry.Amount
				result.TotalIn += entry.Amount
			case treasury_core.DirectionOut:
				stat.TotalOut += entry.Amount
				result.TotalOut += entry.Amount
			}

			return nil
		})

	if err != nil {
		return connect.NewResponse(&result), err
	}

	result.Closing = &closing
	for _, stat := range byType {
		result.ByType = append(result.ByType, stat)
	}
	sort.Slice(result.ByType, func(i, j int) bool {
		return result.ByType[i].EntryType < result.ByType[j].EntryType
	})

	if closedDay {
		err = r.cache.Add(ctx, &ware_cache.CacheItem{
			Key:        key,
			Expiration: time.Hour * 24,
			Data:       &result,
		})
		if err != nil {
			return connect.NewResponse(&result), err
		}
	}

	return connect.NewResponse(&result), nil
}

func balancesAsOf(db *gorm.DB, t time.Time) (*treasury_iface.TreasuryBalances, error) {
	last, err := treasury_core.LastEntryBefore(db, t)
	if err != nil {
		return nil, err
	}

	balances := treasury_iface.TreasuryBalances{}
	if last != nil {
		balances.Registry = last.RegistryBalanceAfter
		balances.Safe = last.SafeBalanceAfter
		balances.Bank = last.BankBalanceAfter
		balances.MobileMoney = last.MobileMoneyBalanceAfter
		balances.UpdatedAt = last.RecordedAt.UnixMicro()
	}

	return &balances, nil
}
