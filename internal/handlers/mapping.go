package handlers

import (
	"shop-service/internal/dto"
	"shop-service/internal/models"
	"shop-service/internal/service"
)

func toUserResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Username:  u.Username,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func toProductResponse(p *models.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Stock:       p.Stock,
		Sold:        p.Sold,
		Rating:      p.Rating,
		RatingCount: p.RatingCount,
		CreatedAt:   p.CreatedAt,
	}
}

func toProductList(list []models.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(list))
	for i := range list {
		out = append(out, toProductResponse(&list[i]))
	}
	return out
}

func toStockResponse(s *service.StockInfo) dto.StockResponse {
	return dto.StockResponse{ID: s.ID.String(), Name: s.Name, Stock: s.Stock, Sold: s.Sold}
}

func toRatingsResponse(s *service.RatingSummary) dto.ProductRatingsResponse {
	ratings := make([]dto.RatingResponse, 0, len(s.Ratings))
	for _, r := range s.Ratings {
		ratings = append(ratings, dto.RatingResponse{
			ID:        r.ID.String(),
			UserID:    r.UserID.String(),
			Username:  r.Username,
			OrderID:   r.OrderID.String(),
			Rating:    r.Rating,
			Review:    r.Review,
			CreatedAt: r.CreatedAt,
		})
	}
	return dto.ProductRatingsResponse{
		Ratings:      ratings,
		Average:      s.Average,
		Total:        s.Total,
		Distribution: s.Distribution,
	}
}

func toRateableList(list []models.RateableProduct) []dto.RateableProductResponse {
	out := make([]dto.RateableProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.RateableProductResponse{
			ProductID:    p.ProductID.String(),
			OrderID:      p.OrderID.String(),
			Name:         p.Name,
			ImageURL:     p.ImageURL,
			Category:     p.Category,
			OrderDate:    p.OrderDate,
			AlreadyRated: p.AlreadyRated,
		})
	}
	return out
}

func toCartResponse(c *service.Cart) dto.CartResponse {
	items := make([]dto.CartItemResponse, 0, len(c.Items))
	for _, l := range c.Items {
		items = append(items, dto.CartItemResponse{
			ID:        l.ID.String(),
			ProductID: l.ProductID.String(),
			Name:      l.Name,
			Price:     l.Price,
			ImageURL:  l.ImageURL,
			Quantity:  l.Quantity,
			Stock:     l.Stock,
			Subtotal:  l.Price * l.Quantity,
		})
	}
	return dto.CartResponse{Items: items, Total: c.Total}
}

func toOrderResponse(o *models.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ID:          it.ID.String(),
			ProductID:   it.ProductID.String(),
			Quantity:    it.Quantity,
			PriceAtTime: it.PriceAtTime,
			Subtotal:    it.Quantity * it.PriceAtTime,
		})
	}
	return dto.OrderResponse{
		ID:          o.ID.String(),
		UserID:      o.UserID.String(),
		Status:      string(o.Status),
		TotalAmount: o.TotalAmount,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		Items:       items,
	}
}

// toOrderDetailsResponse: заказ с названиями и картинками товаров.
func toOrderDetailsResponse(d *service.OrderDetails) dto.OrderResponse {
	resp := toOrderResponse(&d.Order)
	resp.Items = make([]dto.OrderItemResponse, 0, len(d.Items))
	for _, it := range d.Items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID:          it.ID.String(),
			ProductID:   it.ProductID.String(),
			ProductName: it.ProductName,
			ImageURL:    it.ImageURL,
			Category:    it.Category,
			Quantity:    it.Quantity,
			PriceAtTime: it.PriceAtTime,
			Subtotal:    it.Subtotal(),
		})
	}
	return resp
}

func toServiceResponse(s *models.Service) dto.ServiceResponse {
	return dto.ServiceResponse{
		ID:          s.ID.String(),
		Name:        s.Name,
		Description: s.Description,
		Category:    s.Category,
		Price:       s.Price,
		ImageURL:    s.ImageURL,
		CreatedAt:   s.CreatedAt,
	}
}

func toConsultationResponse(c *models.Consultation) dto.ConsultationResponse {
	resp := dto.ConsultationResponse{
		ID:                 c.ID.String(),
		ServiceID:          c.ServiceID.String(),
		ConsultationTypeID: c.ConsultationTypeID.String(),
		DesignCategoryID:   c.DesignCategoryID.String(),
		DesignStyleID:      c.DesignStyleID.String(),
		ConsultationDate:   c.ConsultationDate,
		ConsultationTime:   c.ConsultationTime,
		Address:            c.Address,
		Notes:              c.Notes,
		Status:             string(c.Status),
		CreatedAt:          c.CreatedAt,
	}
	if c.Service != nil {
		resp.ServiceName = c.Service.Name
	}
	if c.ConsultationType != nil {
		resp.ConsultationTypeName = c.ConsultationType.Name
	}
	if c.DesignCategory != nil {
		resp.DesignCategoryName = c.DesignCategory.Name
	}
	if c.DesignStyle != nil {
		resp.DesignStyleName = c.DesignStyle.Name
	}
	return resp
}
