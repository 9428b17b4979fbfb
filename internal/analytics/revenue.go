// Package analytics aggregates orders for the admin dashboard and reports.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/flicky/carcare-storefront/internal/model"
)

const trailingMonths = 12

type MonthBucket struct {
	Label   string
	Start   time.Time
	End     time.Time // exclusive
	Revenue decimal.Decimal
	Orders  int
}

type MonthStats struct {
	Revenue decimal.Decimal
	Orders  int
}

type MonthlyStats struct {
	Current  MonthStats
	Previous MonthStats
	Growth   float64
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthlyRevenue buckets orders into the twelve calendar months ending with
// now's month, oldest first. Boundaries are taken in now's location.
func MonthlyRevenue(orders []model.Order, now time.Time) []MonthBucket {
	current := monthStart(now)
	buckets := make([]MonthBucket, trailingMonths)
	for i := range buckets {
		start := current.AddDate(0, i-(trailingMonths-1), 0)
		buckets[i] = MonthBucket{
			Label:   start.Format("Jan"),
			Start:   start,
			End:     start.AddDate(0, 1, 0),
			Revenue: decimal.Zero,
		}
	}
	for _, o := range orders {
		created := o.CreatedAt.In(now.Location())
		for i := range buckets {
			if !created.Before(buckets[i].Start) && created.Before(buckets[i].End) {
				buckets[i].Revenue = buckets[i].Revenue.Add(o.TotalAmount)
				buckets[i].Orders++
				break
			}
		}
	}
	return buckets
}

// Growth is the percentage change from previous to current, 0 when previous
// is zero.
func Growth(current, previous decimal.Decimal) float64 {
	if !previous.IsPositive() {
		return 0
	}
	pct, _ := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}

func growthCount(current, previous int) float64 {
	return Growth(decimal.NewFromInt(int64(current)), decimal.NewFromInt(int64(previous)))
}

func MonthOverMonth(orders []model.Order, now time.Time) MonthlyStats {
	buckets := MonthlyRevenue(orders, now)
	cur, prev := buckets[len(buckets)-1], buckets[len(buckets)-2]
	return MonthlyStats{
		Current:  MonthStats{Revenue: cur.Revenue, Orders: cur.Orders},
		Previous: MonthStats{Revenue: prev.Revenue, Orders: prev.Orders},
		Growth:   Growth(cur.Revenue, prev.Revenue),
	}
}
