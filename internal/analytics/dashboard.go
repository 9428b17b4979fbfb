package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/flicky/carcare-storefront/internal/model"
)

const (
	recentOrdersLimit = 5
	week              = 7 * 24 * time.Hour
)

type DashboardStats struct {
	TotalRevenue  decimal.Decimal
	TotalOrders   int
	TotalUsers    int
	TotalProducts int
	RevenueChange float64
	OrdersChange  float64
	UsersChange   float64
	RecentOrders  []model.Order
	TopProducts   []ProductSales
}

func within(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

// Dashboard computes totals and compares the last seven days with the seven
// days before them.
func Dashboard(orders []model.Order, users []model.User, productCount int, now time.Time) DashboardStats {
	thisWeek, lastWeek := now.Add(-week), now.Add(-2*week)

	stats := DashboardStats{
		TotalRevenue:  decimal.Zero,
		TotalOrders:   len(orders),
		TotalUsers:    len(users),
		TotalProducts: productCount,
	}

	curRevenue, prevRevenue := decimal.Zero, decimal.Zero
	var curOrders, prevOrders int
	for _, o := range orders {
		stats.TotalRevenue = stats.TotalRevenue.Add(o.TotalAmount)
		switch {
		case within(o.CreatedAt, thisWeek, now):
			curRevenue = curRevenue.Add(o.TotalAmount)
			curOrders++
		case within(o.CreatedAt, lastWeek, thisWeek):
			prevRevenue = prevRevenue.Add(o.TotalAmount)
			prevOrders++
		}
	}

	var curUsers, prevUsers int
	for _, u := range users {
		switch {
		case within(u.CreatedAt, thisWeek, now):
			curUsers++
		case within(u.CreatedAt, lastWeek, thisWeek):
			prevUsers++
		}
	}

	stats.RevenueChange = Growth(curRevenue, prevRevenue)
	stats.OrdersChange = growthCount(curOrders, prevOrders)
	stats.UsersChange = growthCount(curUsers, prevUsers)
	stats.RecentOrders = Recent(orders, recentOrdersLimit)
	stats.TopProducts = TopProducts(orders, DashboardTopN)
	return stats
}

// Recent returns up to n orders, newest first, without reordering the input.
func Recent(orders []model.Order, n int) []model.Order {
	sorted := make([]model.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

type Report struct {
	Monthly        []MonthBucket
	MonthOverMonth MonthlyStats
	TopProducts    []ProductSales
	Categories     []CategoryShare
	StatusCounts   map[model.OrderStatus]int
}

// BuildReport assembles the analytics page from a single order snapshot.
func BuildReport(orders []model.Order, now time.Time) Report {
	top := TopProducts(orders, AnalyticsTopN)
	return Report{
		Monthly:        MonthlyRevenue(orders, now),
		MonthOverMonth: MonthOverMonth(orders, now),
		TopProducts:    top,
		Categories:     CategoryBreakdown(top),
		StatusCounts:   StatusCounts(orders),
	}
}
