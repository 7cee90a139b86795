package dto

import "time"

type ServiceResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       int64     `json:"price"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CreateServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required"`
	Price       *int64 `json:"price" binding:"required"`
	ImageURL    string `json:"imageUrl"`
}

// LookupResponse: тип консультации, категория или стиль дизайна.
type LookupResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateConsultationRequest struct {
	ServiceID          string  `json:"serviceId" binding:"required"`
	ConsultationTypeID string  `json:"consultationTypeId" binding:"required"`
	DesignCategoryID   string  `json:"designCategoryId" binding:"required"`
	DesignStyleID      string  `json:"designStyleId" binding:"required"`
	ConsultationDate   string  `json:"consultationDate" binding:"required"`
	ConsultationTime   *string `json:"consultationTime"`
	Address            *string `json:"address"`
	Notes              *string `json:"notes"`
}

type ConsultationResponse struct {
	ID                   string    `json:"id"`
	ServiceID            string    `json:"serviceId"`
	ServiceName          string    `json:"serviceName,omitempty"`
	ConsultationTypeID   string    `json:"consultationTypeId"`
	ConsultationTypeName string    `json:"consultationTypeName,omitempty"`
	DesignCategoryID     string    `json:"designCategoryId"`
	DesignCategoryName   string    `json:"designCategoryName,omitempty"`
	DesignStyleID        string    `json:"designStyleId"`
	DesignStyleName      string    `json:"designStyleName,omitempty"`
	ConsultationDate     string    `json:"consultationDate"`
	ConsultationTime     *string   `json:"consultationTime,omitempty"`
	Address              *string   `json:"address,omitempty"`
	Notes                *string   `json:"notes,omitempty"`
	Status               string    `json:"status"`
	CreatedAt            time.Time `json:"createdAt"`
}
