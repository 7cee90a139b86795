package service

import (
	"context"
	"shop-service/internal/models"
	"shop-service/internal/repository"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	consultationDateLayout = "2006-01-02"
	consultationTimeLayout = "15:04"
)

type consultationService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewConsultationService(repo *repository.Repository, log *zap.Logger) ConsultationService {
	return &consultationService{repo: repo, log: log}
}

func (s *consultationService) ListTypes(ctx context.Context) ([]models.ConsultationType, error) {
	return s.repo.Lookups.ListConsultationTypes(ctx)
}

func (s *consultationService) ListDesignCategories(ctx context.Context) ([]models.DesignCategory, error) {
	return s.repo.Lookups.ListDesignCategories(ctx)
}

func (s *consultationService) ListDesignStyles(ctx context.Context) ([]models.DesignStyle, error) {
	return s.repo.Lookups.ListDesignStyles(ctx)
}

func (s *consultationService) Create(ctx context.Context, in CreateConsultationInput) (*models.Consultation, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if err := validateConsultation(&in); err != nil {
		return nil, err
	}

	c := &models.Consultation{
		UserID:             userID,
		ServiceID:          in.ServiceID,
		ConsultationTypeID: in.ConsultationTypeID,
		DesignCategoryID:   in.DesignCategoryID,
		DesignStyleID:      in.DesignStyleID,
		ConsultationDate:   in.ConsultationDate,
		ConsultationTime:   in.ConsultationTime,
		Address:            in.Address,
		Notes:              in.Notes,
		Status:             models.ConsultationStatusPending,
	}

	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		checks := []struct {
			exists func(context.Context, uuid.UUID) (bool, error)
			id     uuid.UUID
			err    error
		}{
			{tx.Services.Exists, in.ServiceID, ErrServiceNotFound},
			{tx.Lookups.ConsultationTypeExists, in.ConsultationTypeID, ErrConsultationTypeNotFound},
			{tx.Lookups.DesignCategoryExists, in.DesignCategoryID, ErrDesignCategoryNotFound},
			{tx.Lookups.DesignStyleExists, in.DesignStyleID, ErrDesignStyleNotFound},
		}
		for _, ch := range checks {
			ok, err := ch.exists(ctx, ch.id)
			if err != nil {
				return err
			}
			if !ok {
				return ch.err
			}
		}

		if err := tx.Consultations.Create(ctx, c); err != nil {
			return err
		}
		created, err := tx.Consultations.GetByID(ctx, c.ID)
		if err != nil {
			return err
		}
		c = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Консультация создана",
		zap.String("consultation_id", c.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("date", c.ConsultationDate),
	)
	return c, nil
}

func (s *consultationService) List(ctx context.Context) ([]models.Consultation, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.repo.Consultations.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.Consultation{}
	}
	return list, nil
}

func (s *consultationService) Get(ctx context.Context, id uuid.UUID) (*models.Consultation, error) {
	userID, role, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	return loadConsultation(ctx, s.repo, id, userID, role)
}

func (s *consultationService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Consultation, error) {
	userID, role, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	next := models.ConsultationStatus(status)
	if !next.Valid() {
		return nil, ErrInvalidStatus
	}

	c, err := loadConsultation(ctx, s.repo, id, userID, role)
	if err != nil {
		return nil, err
	}

	ok, err := s.repo.Consultations.UpdateStatus(ctx, c.ID, next)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrConsultationNotFound
	}

	s.log.Info("Статус консультации изменён", zap.String("consultation_id", c.ID.String()), zap.String("status", string(next)))
	return loadConsultation(ctx, s.repo, id, userID, role)
}

func loadConsultation(ctx context.Context, repo *repository.Repository, id, userID uuid.UUID, role models.Role) (*models.Consultation, error) {
	var (
		c   *models.Consultation
		err error
	)
	if role == models.RoleAdmin {
		c, err = repo.Consultations.GetByID(ctx, id)
	} else {
		c, err = repo.Consultations.GetByIDForUser(ctx, id, userID)
	}
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrConsultationNotFound
	}
	return c, nil
}

func validateConsultation(in *CreateConsultationInput) error {
	switch {
	case in.ServiceID == uuid.Nil:
		return invalid("serviceId is required")
	case in.ConsultationTypeID == uuid.Nil:
		return invalid("consultationTypeId is required")
	case in.DesignCategoryID == uuid.Nil:
		return invalid("designCategoryId is required")
	case in.DesignStyleID == uuid.Nil:
		return invalid("designStyleId is required")
	}

	in.ConsultationDate = strings.TrimSpace(in.ConsultationDate)
	if in.ConsultationDate == "" {
		return invalid("consultationDate is required")
	}
	if _, err := time.Parse(consultationDateLayout, in.ConsultationDate); err != nil {
		return invalid("consultationDate must be in YYYY-MM-DD format")
	}

	in.ConsultationTime = trimOptional(in.ConsultationTime)
	if in.ConsultationTime != nil {
		if _, err := time.Parse(consultationTimeLayout, *in.ConsultationTime); err != nil {
			return invalid("consultationTime must be in HH:MM format")
		}
	}
	in.Address = trimOptional(in.Address)
	in.Notes = trimOptional(in.Notes)
	return nil
}

func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
