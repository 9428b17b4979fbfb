package handler

import (
	"github.com/flicky/carcare-storefront/internal/analytics"
	"github.com/flicky/carcare-storefront/internal/dto"
	"github.com/flicky/carcare-storefront/internal/model"
	"github.com/flicky/carcare-storefront/internal/service"
)

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

func toProductResponse(p model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:             p.ID,
		ShortID:        p.ShortID,
		Slug:           p.Slug,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		OriginalPrice:  p.OriginalPrice,
		Category:       p.Category,
		StockCount:     p.StockCount,
		InStock:        p.StockCount > 0,
		ImageURL:       p.ImageURL,
		Images:         p.Images,
		Features:       p.Features,
		Specifications: p.Specifications,
		Rating:         p.Rating,
		Reviews:        p.Reviews,
		IsCombo:        p.IsCombo,
	}
}

func toCartResponse(view *service.CartView) dto.CartResponse {
	items := make([]dto.CartItemResponse, 0, len(view.State.Items))
	for _, item := range view.State.Items {
		items = append(items, dto.CartItemResponse{
			ID:           item.ID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductPrice: item.ProductPrice,
			ProductImage: item.ProductImage,
			Quantity:     item.Quantity,
			LineTotal:    item.LineTotal(),
		})
	}
	s := view.Summary
	return dto.CartResponse{
		Items: items,
		Summary: dto.CartSummaryResponse{
			Subtotal:              s.Subtotal,
			Shipping:              s.Shipping,
			Tax:                   s.Tax,
			Total:                 s.Total,
			FreeShippingRemaining: s.FreeShippingRemaining,
			ItemCount:             s.ItemCount,
		},
		Loading: view.State.Loading,
		Error:   view.State.Err,
	}
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemResponse{
			ID:           item.ID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductPrice: item.ProductPrice,
			Quantity:     item.Quantity,
			TotalPrice:   item.TotalPrice,
		})
	}
	return dto.OrderResponse{
		ID:              order.ID,
		UserID:          order.UserID,
		CustomerName:    order.CustomerName,
		CustomerEmail:   order.CustomerEmail,
		CustomerPhone:   order.CustomerPhone,
		DeliveryAddress: order.DeliveryAddress,
		Subtotal:        order.Subtotal,
		DeliveryCharge:  order.DeliveryCharge,
		TotalAmount:     order.TotalAmount,
		PaymentMethod:   order.PaymentMethod,
		Status:          order.Status,
		Items:           items,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

func toOrderResponses(orders []model.Order) []dto.OrderResponse {
	out := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}
	return out
}

func toAdminOrderResponse(o *model.AdminOrder) dto.AdminOrderResponse {
	return dto.AdminOrderResponse{
		OrderResponse: toOrderResponse(&o.Order),
		User:          dto.OrderUserResponse{Email: o.UserEmail, FullName: o.UserFullName},
	}
}

func toProductSales(sales []analytics.ProductSales) []dto.ProductSalesResponse {
	out := make([]dto.ProductSalesResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, dto.ProductSalesResponse{Name: s.Name, Quantity: s.Quantity, Revenue: s.Revenue})
	}
	return out
}

func toDashboardResponse(view *service.DashboardView) dto.DashboardResponse {
	s := view.Stats
	return dto.DashboardResponse{
		TotalRevenue:  s.TotalRevenue,
		TotalOrders:   s.TotalOrders,
		TotalUsers:    s.TotalUsers,
		TotalProducts: s.TotalProducts,
		RevenueChange: s.RevenueChange,
		OrdersChange:  s.OrdersChange,
		UsersChange:   s.UsersChange,
		RecentOrders:  toOrderResponses(s.RecentOrders),
		TopProducts:   toProductSales(s.TopProducts),
		Degraded:      view.Degraded,
	}
}

func toAnalyticsResponse(view *service.AnalyticsView) dto.AnalyticsResponse {
	r := view.Report
	monthly := make([]dto.MonthResponse, 0, len(r.Monthly))
	for _, m := range r.Monthly {
		monthly = append(monthly, dto.MonthResponse{Month: m.Label, Revenue: m.Revenue, Orders: m.Orders})
	}
	categories := make([]dto.CategoryResponse, 0, len(r.Categories))
	for _, cat := range r.Categories {
		categories = append(categories, dto.CategoryResponse{Name: cat.Name, Units: cat.Units})
	}
	mom := r.MonthOverMonth
	return dto.AnalyticsResponse{
		Monthly: monthly,
		MonthOverMonth: dto.MonthOverMonthResponse{
			Current:  dto.MonthStatsResponse{Revenue: mom.Current.Revenue, Orders: mom.Current.Orders},
			Previous: dto.MonthStatsResponse{Revenue: mom.Previous.Revenue, Orders: mom.Previous.Orders},
			Growth:   mom.Growth,
		},
		TopProducts:  toProductSales(r.TopProducts),
		Categories:   categories,
		StatusCounts: r.StatusCounts,
		Degraded:     view.Degraded,
	}
}
