package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/flicky/carcare-storefront/internal/analytics"
	"github.com/flicky/carcare-storefront/internal/catalog"
	"github.com/flicky/carcare-storefront/internal/model"
	"github.com/flicky/carcare-storefront/internal/repository"
)

var ErrInvalidStatus = errors.New("invalid order status")

const dashboardCacheKey = "admin:dashboard"

// DashboardView is Degraded when a source could not be read and empty data
// stands in for it.
type DashboardView struct {
	Stats    analytics.DashboardStats
	Degraded bool
}

type AnalyticsView struct {
	Report   analytics.Report
	Degraded bool
}

type AdminService struct {
	userRepo    repository.UserRepository
	orderRepo   repository.OrderRepository
	redisClient *redis.Client
	cacheTTL    time.Duration
	log         *slog.Logger
	now         func() time.Time
}

func NewAdminService(
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
	redisClient *redis.Client,
	cacheTTL time.Duration,
	log *slog.Logger,
) *AdminService {
	return &AdminService{
		userRepo: userRepo, orderRepo: orderRepo,
		redisClient: redisClient, cacheTTL: cacheTTL,
		log: log, now: time.Now,
	}
}

func (s *AdminService) ListOrders(ctx context.Context, filter analytics.OrderFilter) ([]model.AdminOrder, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return analytics.FilterOrders(orders, filter, s.now()), nil
}

// UpdateOrderStatus accepts any known status regardless of the current one.
func (s *AdminService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status string) (*model.Order, error) {
	st := model.OrderStatus(status)
	if !st.Valid() {
		return nil, ErrInvalidStatus
	}
	order, err := s.orderRepo.UpdateStatus(ctx, orderID, st)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	s.invalidate(ctx)
	return order, nil
}

func (s *AdminService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *AdminService) ToggleAdmin(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	updated, err := s.userRepo.SetAdmin(ctx, userID, !user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("set admin: %w", err)
	}
	if updated == nil {
		return nil, ErrUserNotFound
	}
	return updated, nil
}

func (s *AdminService) orders(ctx context.Context) ([]model.Order, bool) {
	all, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		s.log.Error("load orders for admin view", "error", err)
		return nil, false
	}
	orders := make([]model.Order, len(all))
	for i := range all {
		orders[i] = all[i].Order
	}
	return orders, true
}

// Dashboard serves from the cache when possible. Degraded results are never cached.
func (s *AdminService) Dashboard(ctx context.Context) (*DashboardView, error) {
	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, dashboardCacheKey).Bytes(); err == nil {
			var view DashboardView
			if json.Unmarshal(cached, &view) == nil {
				return &view, nil
			}
		}
	}

	orders, ordersOK := s.orders(ctx)
	users, err := s.userRepo.List(ctx)
	if err != nil {
		s.log.Error("load users for admin view", "error", err)
		users = nil
	}
	view := &DashboardView{
		Stats:    analytics.Dashboard(orders, users, catalog.Count(), s.now()),
		Degraded: !ordersOK || err != nil,
	}

	if s.redisClient != nil && !view.Degraded {
		if data, err := json.Marshal(view); err == nil {
			s.redisClient.Set(ctx, dashboardCacheKey, data, s.cacheTTL)
		}
	}
	return view, nil
}

func (s *AdminService) Analytics(ctx context.Context) (*AnalyticsView, error) {
	orders, ok := s.orders(ctx)
	return &AnalyticsView{Report: analytics.BuildReport(orders, s.now()), Degraded: !ok}, nil
}

func (s *AdminService) InvalidateDashboard(ctx context.Context) error {
	if s.redisClient == nil {
		return nil
	}
	if err := s.redisClient.Del(ctx, dashboardCacheKey).Err(); err != nil {
		return fmt.Errorf("delete dashboard cache: %w", err)
	}
	return nil
}

func (s *AdminService) invalidate(ctx context.Context) {
	if err := s.InvalidateDashboard(ctx); err != nil {
		s.log.Warn("invalidate dashboard cache", "error", err)
	}
}
