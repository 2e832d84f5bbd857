package service

import (
	"context"
	"fmt"
	"testing"

	tenanterrors "turnero/internal/tenants/errors"
	tenantvalidator "turnero/internal/tenants/validator"
	"turnero/internal/tenantstore"
	"turnero/pkg/config"
	apperrors "turnero/pkg/errors"
	"turnero/pkg/logger"
	"turnero/pkg/model"
)

type mockTenantRepository struct {
	createFunc          func(ctx context.Context, t *model.Tenant) error
	findByCodeFunc      func(ctx context.Context, code string) (*model.Tenant, error)
	listActiveFunc      func(ctx context.Context) ([]*model.Tenant, error)
	listActiveCodesFunc func(ctx context.Context) ([]string, error)
}

func (m *mockTenantRepository) Create(ctx context.Context, t *model.Tenant) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, t)
	}
	return nil
}

func (m *mockTenantRepository) FindByCode(ctx context.Context, code string) (*model.Tenant, error) {
	if m.findByCodeFunc != nil {
		return m.findByCodeFunc(ctx, code)
	}
	return &model.Tenant{Code: code, Name: "Test", Active: true}, nil
}

func (m *mockTenantRepository) ListActive(ctx context.Context) ([]*model.Tenant, error) {
	if m.listActiveFunc != nil {
		return m.listActiveFunc(ctx)
	}
	return nil, nil
}

func (m *mockTenantRepository) ListActiveCodes(ctx context.Context) ([]string, error) {
	if m.listActiveCodesFunc != nil {
		return m.listActiveCodesFunc(ctx)
	}
	return nil, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   logger.ERROR,
			Format:  logger.JSON,
			Service: "test",
		}),
	}
}

func newService(repo *mockTenantRepository, store tenantstore.Store) TenantService {
	cfg := testConfig()
	return NewTenantService(repo, store, tenantvalidator.NewTenantValidator(cfg.Log), cfg)
}

func TestCreateTenant(t *testing.T) {
	var created *model.Tenant
	repo := &mockTenantRepository{
		createFunc: func(_ context.Context, tn *model.Tenant) error {
			created = tn
			return nil
		},
	}
	svc := newService(repo, tenantstore.NewMemory())

	err := svc.Create(context.Background(), &model.Tenant{
		Code:       "barberia-sur",
		Name:       "  Barbería   Sur ",
		AdminPhone: "+5491122334455",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("expected the repository to receive the tenant")
	}
	if created.Name != "Barbería Sur" {
		t.Errorf("expected sanitized name, got %q", created.Name)
	}
	if !created.Active {
		t.Error("expected new tenants to be active")
	}
}

func TestCreateTenantRejectsBadCode(t *testing.T) {
	svc := newService(&mockTenantRepository{}, tenantstore.NewMemory())

	for _, code := range []string{"Barbería", "UPPER", "with space", "-leading"} {
		err := svc.Create(context.Background(), &model.Tenant{Code: code, Name: "Test"})
		if !apperrors.HasCode(err, apperrors.CodeValidation) {
			t.Errorf("code %q: expected VALIDATION_ERROR, got %v", code, err)
		}
	}
}

func TestCreateTenantDuplicateCode(t *testing.T) {
	repo := &mockTenantRepository{
		createFunc: func(_ context.Context, tn *model.Tenant) error {
			return fmt.Errorf("%w: %s", tenanterrors.ErrDuplicateCode, tn.Code)
		},
	}
	svc := newService(repo, tenantstore.NewMemory())

	err := svc.Create(context.Background(), &model.Tenant{Code: "barberia-sur", Name: "Test"})
	if !apperrors.HasCode(err, apperrors.CodeConflict) {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestGetByCodeNotFound(t *testing.T) {
	repo := &mockTenantRepository{
		findByCodeFunc: func(_ context.Context, code string) (*model.Tenant, error) {
			return nil, fmt.Errorf("%w: %s", tenanterrors.ErrNotFound, code)
		},
	}
	svc := newService(repo, tenantstore.NewMemory())

	_, err := svc.GetByCode(context.Background(), "missing")
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestSetHours(t *testing.T) {
	store := tenantstore.NewMemory()
	svc := newService(&mockTenantRepository{}, store)
	ctx := context.Background()

	hours := model.HoursConfig{
		Open: "09:00", Close: "18:00", IntervalMin: 30,
		OperatingDays: []int{1, 2, 3, 4, 5, 6},
	}
	if err := svc.SetHours(ctx, "barberia-sur", hours); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.GetHours(ctx, "barberia-sur")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Open != "09:00" || got.Close != "18:00" || got.IntervalMin != 30 {
		t.Errorf("stored hours do not match: %+v", got)
	}
}

func TestSetHoursRejectsInvertedRange(t *testing.T) {
	svc := newService(&mockTenantRepository{}, tenantstore.NewMemory())

	err := svc.SetHours(context.Background(), "barberia-sur", model.HoursConfig{
		Open: "18:00", Close: "09:00", IntervalMin: 30,
	})
	if !apperrors.HasCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}
