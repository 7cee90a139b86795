package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleCustomer Role = "ROLE_CUSTOMER"
	RoleAdmin    Role = "ROLE_ADMIN"
)

// ID генерируем на стороне приложения, чтобы схема не зависела от pgcrypto.
func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"not null;uniqueIndex:ux_users_email"` // храним в lower-case
	Username  string    `gorm:"not null;uniqueIndex:ux_users_username"`
	Password  string    `gorm:"not null"` // bcrypt hash
	Role      Role      `gorm:"type:text;not null;default:'ROLE_CUSTOMER';index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(*gorm.DB) error { ensureID(&u.ID); return nil }

type PasswordResetToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Email     string    `gorm:"not null"`
	CodeHash  string    `gorm:"not null;index"`
	ExpiresAt time.Time `gorm:"not null;index"`
	Consumed  bool      `gorm:"not null;default:false;index"`
	CreatedAt time.Time `gorm:"not null"`
}

func (PasswordResetToken) TableName() string { return "password_reset_tokens" }

func (t *PasswordResetToken) BeforeCreate(*gorm.DB) error { ensureID(&t.ID); return nil }

// Product: позиция каталога. Stock/Sold меняются только условными UPDATE в репозитории.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null"`
	Description string    `gorm:"type:text"`
	Category    string    `gorm:"not null;index"`
	Price       int64     `gorm:"not null"` // в минимальных единицах валюты
	ImageURL    string    `gorm:"type:text"`
	Stock       int64     `gorm:"not null;default:0"`
	Sold        int64     `gorm:"not null;default:0"`
	Rating      float64   `gorm:"not null;default:0"`
	RatingCount int64     `gorm:"not null;default:0"`
	CreatedAt   time.Time `gorm:"not null;index"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (Product) TableName() string { return "products" }

func (p *Product) BeforeCreate(*gorm.DB) error { ensureID(&p.ID); return nil }

type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_cart_items_user_product"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_cart_items_user_product"`
	Quantity  int64     `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (CartItem) TableName() string { return "cart_items" }

func (c *CartItem) BeforeCreate(*gorm.DB) error { ensureID(&c.ID); return nil }

type Order struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID   `gorm:"type:uuid;not null;index"`
	Status      OrderStatus `gorm:"type:text;not null;default:'pending';index"`
	TotalAmount int64       `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string { return "orders" }

func (o *Order) BeforeCreate(*gorm.DB) error { ensureID(&o.ID); return nil }

// OrderItem: снимок позиции на момент оформления, после создания не меняется.
type OrderItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:ux_order_items_order_product"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:ux_order_items_order_product"`
	Quantity    int64     `gorm:"not null"`
	PriceAtTime int64     `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}

func (OrderItem) TableName() string { return "order_items" }

func (i *OrderItem) BeforeCreate(*gorm.DB) error { ensureID(&i.ID); return nil }

type ProductRating struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_product_ratings_user_product_order"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:ux_product_ratings_user_product_order"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_product_ratings_user_product_order"`
	Rating    int       `gorm:"not null"`
	Review    *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null;index"`
}

func (ProductRating) TableName() string { return "product_ratings" }

func (r *ProductRating) BeforeCreate(*gorm.DB) error { ensureID(&r.ID); return nil }

// Service: услуга (дизайн, ремонт и т.п.), к которой привязываются консультации.
type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null;uniqueIndex:ux_services_name"`
	Description string    `gorm:"type:text"`
	Category    string    `gorm:"not null;index"`
	Price       int64     `gorm:"not null;default:0"`
	ImageURL    string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (Service) TableName() string { return "services" }

func (s *Service) BeforeCreate(*gorm.DB) error { ensureID(&s.ID); return nil }

type ConsultationType struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null;uniqueIndex:ux_consultation_types_name"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (ConsultationType) TableName() string { return "consultation_types" }

func (c *ConsultationType) BeforeCreate(*gorm.DB) error { ensureID(&c.ID); return nil }

type DesignCategory struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null;uniqueIndex:ux_design_categories_name"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (DesignCategory) TableName() string { return "design_categories" }

func (c *DesignCategory) BeforeCreate(*gorm.DB) error { ensureID(&c.ID); return nil }

type DesignStyle struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null;uniqueIndex:ux_design_styles_name"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (DesignStyle) TableName() string { return "design_styles" }

func (s *DesignStyle) BeforeCreate(*gorm.DB) error { ensureID(&s.ID); return nil }

type Consultation struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primaryKey"`
	UserID             uuid.UUID          `gorm:"type:uuid;not null;index"`
	ServiceID          uuid.UUID          `gorm:"type:uuid;not null;index"`
	ConsultationTypeID uuid.UUID          `gorm:"type:uuid;not null"`
	DesignCategoryID   uuid.UUID          `gorm:"type:uuid;not null"`
	DesignStyleID      uuid.UUID          `gorm:"type:uuid;not null"`
	ConsultationDate   string             `gorm:"type:text;not null"` // YYYY-MM-DD
	ConsultationTime   *string            `gorm:"type:text"`          // HH:MM
	Address            *string            `gorm:"type:text"`
	Notes              *string            `gorm:"type:text"`
	Status             ConsultationStatus `gorm:"type:text;not null;default:'pending';index"`

	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`

	Service          *Service          `gorm:"foreignKey:ServiceID"`
	ConsultationType *ConsultationType `gorm:"foreignKey:ConsultationTypeID"`
	DesignCategory   *DesignCategory   `gorm:"foreignKey:DesignCategoryID"`
	DesignStyle      *DesignStyle      `gorm:"foreignKey:DesignStyleID"`
}

func (Consultation) TableName() string { return "consultations" }

func (c *Consultation) BeforeCreate(*gorm.DB) error { ensureID(&c.ID); return nil }
