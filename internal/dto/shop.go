package dto

import "time"

type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       int64     `json:"price"`
	ImageURL    string    `json:"imageUrl"`
	Stock       int64     `json:"stock"`
	Sold        int64     `json:"sold"`
	Rating      float64   `json:"rating"`
	RatingCount int64     `json:"ratingCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CreateProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required"`
	Price       *int64 `json:"price" binding:"required"`
	ImageURL    string `json:"imageUrl"`
	Stock       *int64 `json:"stock"`
}

type StockResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Stock int64  `json:"stock"`
	Sold  int64  `json:"sold"`
}

type UpdateStockRequest struct {
	Stock *int64 `json:"stock" binding:"required"`
}

type AddRatingRequest struct {
	Rating  int     `json:"rating" binding:"required"`
	Review  *string `json:"review"`
	OrderID string  `json:"orderId" binding:"required"`
}

type RatingResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username,omitempty"`
	OrderID   string    `json:"orderId"`
	Rating    int       `json:"rating"`
	Review    *string   `json:"review,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type ProductRatingsResponse struct {
	Ratings      []RatingResponse `json:"ratings"`
	Average      float64          `json:"averageRating"`
	Total        int64            `json:"totalRatings"`
	Distribution map[int]int64    `json:"distribution"`
}

type RateableProductResponse struct {
	ProductID    string    `json:"productId"`
	OrderID      string    `json:"orderId"`
	Name         string    `json:"name"`
	ImageURL     string    `json:"imageUrl"`
	Category     string    `json:"category"`
	OrderDate    time.Time `json:"orderDate"`
	AlreadyRated bool      `json:"alreadyRated"`
}

type AddToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  *int64 `json:"quantity"`
}

type UpdateCartRequest struct {
	Quantity *int64 `json:"quantity" binding:"required"`
}

type CartItemResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	ImageURL  string `json:"imageUrl"`
	Quantity  int64  `json:"quantity"`
	Stock     int64  `json:"stock"`
	Subtotal  int64  `json:"subtotal"`
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total int64              `json:"total"`
}

type CheckoutResponse struct {
	Message     string `json:"message"`
	OrderID     string `json:"orderId"`
	TotalAmount int64  `json:"totalAmount"`
}

type OrderItemResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Category    string `json:"category,omitempty"`
	Quantity    int64  `json:"quantity"`
	PriceAtTime int64  `json:"priceAtTime"`
	Subtotal    int64  `json:"subtotal"`
}

type OrderResponse struct {
	ID          string              `json:"id"`
	UserID      string              `json:"userId"`
	Status      string              `json:"status"`
	TotalAmount int64               `json:"totalAmount"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
	Items       []OrderItemResponse `json:"items"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int64           `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
