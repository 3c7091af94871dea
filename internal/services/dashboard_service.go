package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

type DashboardStats struct {
	Products       int64                        `json:"products"`
	ActiveProducts int64                        `json:"active_products"`
	Orders         int64                        `json:"orders"`
	OrdersByStatus map[domain.OrderStatus]int64 `json:"orders_by_status"`
	PendingReviews int64                        `json:"pending_reviews"`
	ActiveCodes    int64                        `json:"active_redeem_codes"`
}

type DashboardService struct {
	stats repository.StatsRepository
}

func NewDashboardService(stats repository.StatsRepository) *DashboardService {
	return &DashboardService{stats: stats}
}

var dashboardStatuses = []domain.OrderStatus{
	domain.StatusPending,
	domain.StatusPaymentPending,
	domain.StatusPaid,
	domain.StatusCompleted,
	domain.StatusCancelled,
}

// Stats runs every count concurrently and fails if any of them fails.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	var out DashboardStats
	byStatus := make([]int64, len(dashboardStatuses))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Products, err = s.stats.CountProducts(gctx, false)
		return err
	})
	g.Go(func() (err error) {
		out.ActiveProducts, err = s.stats.CountProducts(gctx, true)
		return err
	})
	g.Go(func() (err error) {
		out.Orders, err = s.stats.CountOrders(gctx, "")
		return err
	})
	for i, st := range dashboardStatuses {
		g.Go(func() (err error) {
			byStatus[i], err = s.stats.CountOrders(gctx, st)
			return err
		})
	}
	g.Go(func() (err error) {
		out.PendingReviews, err = s.stats.CountReviews(gctx, false)
		return err
	})
	g.Go(func() (err error) {
		out.ActiveCodes, err = s.stats.CountActiveRedeemCodes(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.OrdersByStatus = make(map[domain.OrderStatus]int64, len(dashboardStatuses))
	for i, st := range dashboardStatuses {
		out.OrdersByStatus[st] = byStatus[i]
	}
	return &out, nil
}
