package service_test

import (
	"context"
	"testing"

	"shop-service/internal/models"
	"shop-service/internal/repository"
	"shop-service/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type lookups struct {
	service  *models.Service
	kind     *models.ConsultationType
	category *models.DesignCategory
	style    *models.DesignStyle
}

func mkLookups(t *testing.T, repo *repository.Repository) lookups {
	t.Helper()
	ctx := context.Background()
	l := lookups{
		service:  &models.Service{Name: "Interior design", Category: "design", Price: 5000},
		kind:     &models.ConsultationType{Name: "Online"},
		category: &models.DesignCategory{Name: "Living room"},
		style:    &models.DesignStyle{Name: "Loft"},
	}
	require.NoError(t, repo.Services.Create(ctx, l.service))
	_, err := repo.Lookups.EnsureConsultationType(ctx, l.kind)
	require.NoError(t, err)
	_, err = repo.Lookups.EnsureDesignCategory(ctx, l.category)
	require.NoError(t, err)
	_, err = repo.Lookups.EnsureDesignStyle(ctx, l.style)
	require.NoError(t, err)
	return l
}

func (l lookups) input(date string) service.CreateConsultationInput {
	return service.CreateConsultationInput{
		ServiceID:          l.service.ID,
		ConsultationTypeID: l.kind.ID,
		DesignCategoryID:   l.category.ID,
		DesignStyleID:      l.style.ID,
		ConsultationDate:   date,
	}
}

func TestConsultationService_CreateAndList(t *testing.T) {
	repo := setupRepo(t)
	u := mkUser(t, repo, "alice", models.RoleCustomer)
	l := mkLookups(t, repo)
	svc := service.NewConsultationService(repo, zap.NewNop())
	ctx := asUser(u)

	at := "14:30"
	notes := "  "
	in := l.input("2026-11-02")
	in.ConsultationTime = &at
	in.Notes = &notes

	c, err := svc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, models.ConsultationStatusPending, c.Status)
	assert.Equal(t, "2026-11-02", c.ConsultationDate)
	require.NotNil(t, c.ConsultationTime)
	assert.Equal(t, "14:30", *c.ConsultationTime)
	assert.Nil(t, c.Notes)
	require.NotNil(t, c.Service)
	assert.Equal(t, "Interior design", c.Service.Name)
	require.NotNil(t, c.DesignStyle)
	assert.Equal(t, "Loft", c.DesignStyle.Name)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].ID)

	types, err := svc.ListTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 1)
	cats, err := svc.ListDesignCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 1)
	styles, err := svc.ListDesignStyles(ctx)
	require.NoError(t, err)
	assert.Len(t, styles, 1)
}

func TestConsultationService_CreateValidation(t *testing.T) {
	repo := setupRepo(t)
	u := mkUser(t, repo, "bob", models.RoleCustomer)
	l := mkLookups(t, repo)
	svc := service.NewConsultationService(repo, zap.NewNop())
	ctx := asUser(u)

	bad := l.input("02.11.2026")
	_, err := svc.Create(ctx, bad)
	assert.ErrorIs(t, err, service.ErrValidation)

	bad = l.input("")
	_, err = svc.Create(ctx, bad)
	assert.ErrorIs(t, err, service.ErrValidation)

	tm := "25:99"
	bad = l.input("2026-11-02")
	bad.ConsultationTime = &tm
	_, err = svc.Create(ctx, bad)
	assert.ErrorIs(t, err, service.ErrValidation)

	bad = l.input("2026-11-02")
	bad.ServiceID = uuid.Nil
	_, err = svc.Create(ctx, bad)
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = svc.Create(context.Background(), l.input("2026-11-02"))
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestConsultationService_UnknownLookupsNamed(t *testing.T) {
	repo := setupRepo(t)
	u := mkUser(t, repo, "carol", models.RoleCustomer)
	l := mkLookups(t, repo)
	svc := service.NewConsultationService(repo, zap.NewNop())
	ctx := asUser(u)

	in := l.input("2026-11-02")
	in.ServiceID = uuid.New()
	_, err := svc.Create(ctx, in)
	assert.ErrorIs(t, err, service.ErrServiceNotFound)

	in = l.input("2026-11-02")
	in.ConsultationTypeID = uuid.New()
	_, err = svc.Create(ctx, in)
	assert.ErrorIs(t, err, service.ErrConsultationTypeNotFound)

	in = l.input("2026-11-02")
	in.DesignCategoryID = uuid.New()
	_, err = svc.Create(ctx, in)
	assert.ErrorIs(t, err, service.ErrDesignCategoryNotFound)

	in = l.input("2026-11-02")
	in.DesignStyleID = uuid.New()
	_, err = svc.Create(ctx, in)
	assert.ErrorIs(t, err, service.ErrDesignStyleNotFound)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestConsultationService_StatusAndOwnership(t *testing.T) {
	repo := setupRepo(t)
	owner := mkUser(t, repo, "owner", models.RoleCustomer)
	other := mkUser(t, repo, "other", models.RoleCustomer)
	admin := mkUser(t, repo, "root", models.RoleAdmin)
	l := mkLookups(t, repo)
	svc := service.NewConsultationService(repo, zap.NewNop())

	c, err := svc.Create(asUser(owner), l.input("2026-11-02"))
	require.NoError(t, err)

	_, err = svc.Get(asUser(other), c.ID)
	assert.ErrorIs(t, err, service.ErrConsultationNotFound)
	_, err = svc.UpdateStatus(asUser(other), c.ID, string(models.ConsultationStatusCancelled))
	assert.ErrorIs(t, err, service.ErrConsultationNotFound)

	_, err = svc.UpdateStatus(asUser(owner), c.ID, "postponed")
	assert.ErrorIs(t, err, service.ErrInvalidStatus)

	got, err := svc.UpdateStatus(asUser(admin), c.ID, string(models.ConsultationStatusConfirmed))
	require.NoError(t, err)
	assert.Equal(t, models.ConsultationStatusConfirmed, got.Status)

	got, err = svc.UpdateStatus(asUser(owner), c.ID, string(models.ConsultationStatusCancelled))
	require.NoError(t, err)
	assert.Equal(t, models.ConsultationStatusCancelled, got.Status)

	got, err = svc.Get(asUser(owner), c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ConsultationStatusCancelled, got.Status)

	_, err = svc.Get(asUser(owner), uuid.New())
	assert.ErrorIs(t, err, service.ErrConsultationNotFound)
}
