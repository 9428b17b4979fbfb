package analytics

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/flicky/carcare-storefront/internal/model"
)

const (
	FilterAll = "all"
	DateToday = "today"
	DateWeek  = "week"
	DateMonth = "month"
)

type OrderFilter struct {
	Search string
	Status string
	Date   string
}

func (f OrderFilter) dateFrom(now time.Time) (time.Time, bool) {
	switch f.Date {
	case DateToday:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), true
	case DateWeek:
		return now.AddDate(0, 0, -7), true
	case DateMonth:
		return now.AddDate(0, 0, -30), true
	}
	return time.Time{}, false
}

// FilterOrders keeps input order. Empty fields and "all" match everything.
func FilterOrders(orders []model.AdminOrder, f OrderFilter, now time.Time) []model.AdminOrder {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	from, byDate := f.dateFrom(now)

	out := make([]model.AdminOrder, 0, len(orders))
	for _, o := range orders {
		if f.Status != "" && f.Status != FilterAll && string(o.Status) != f.Status {
			continue
		}
		if byDate && o.CreatedAt.Before(from) {
			continue
		}
		if search != "" && !matches(o, search) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func matches(o model.AdminOrder, needle string) bool {
	addr, _ := json.Marshal(o.DeliveryAddress)
	for _, hay := range []string{
		o.ID.String(), o.CustomerName, o.CustomerEmail, o.UserEmail, string(addr),
	} {
		if strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	return false
}

// StatusCounts always carries every known status, zero included.
func StatusCounts(orders []model.Order) map[model.OrderStatus]int {
	counts := make(map[model.OrderStatus]int, len(model.OrderStatuses))
	for _, s := range model.OrderStatuses {
		counts[s] = 0
	}
	for _, o := range orders {
		counts[o.Status]++
	}
	return counts
}
