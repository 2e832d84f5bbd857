package service

import (
	"context"
	"errors"

	tenanterrors "turnero/internal/tenants/errors"
	"turnero/internal/tenants/repository"
	"turnero/internal/tenants/validator"
	"turnero/internal/tenantstore"
	"turnero/pkg/config"
	apperrors "turnero/pkg/errors"
	"turnero/pkg/model"
	"turnero/pkg/sanitizer"
)

type TenantService interface {
	Create(ctx context.Context, t *model.Tenant) error
	GetByCode(ctx context.Context, code string) (*model.Tenant, error)
	ListActiveCodes(ctx context.Context) ([]string, error)
	SetHours(ctx context.Context, code string, h model.HoursConfig) error
	GetHours(ctx context.Context, code string) (model.HoursConfig, error)
}

type tenantService struct {
	repo      repository.TenantRepository
	store     tenantstore.Store
	validator *validator.TenantValidator
	cfg       *config.Config
}

func NewTenantService(
	repo repository.TenantRepository,
	store tenantstore.Store,
	v *validator.TenantValidator,
	cfg *config.Config,
) TenantService {
	return &tenantService{
		repo:      repo,
		store:     store,
		validator: v,
		cfg:       cfg,
	}
}

func (s *tenantService) Create(ctx context.Context, t *model.Tenant) error {
	t.Name = sanitizer.SanitizeText(t.Name)
	if t.AdminPhone != "" {
		t.AdminPhone = sanitizer.SanitizePhone(t.AdminPhone)
	}
	t.Active = true

	if err := s.validator.Validate(t); err != nil {
		s.cfg.Log.Warn("Tenant validation failed",
			"code", t.Code,
			"error", err,
		)
		return apperrors.Validation("Tenant validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.repo.Create(ctx, t); err != nil {
		if errors.Is(err, tenanterrors.ErrDuplicateCode) {
			return apperrors.Conflict("A tenant with this code already exists")
		}
		s.cfg.Log.Error("Failed to create tenant",
			"code", t.Code,
			"error", err,
		)
		return apperrors.Internal("Failed to create tenant", err)
	}

	s.cfg.Log.Info("Tenant created",
		"code", t.Code,
		"name", t.Name,
	)
	return nil
}

func (s *tenantService) GetByCode(ctx context.Context, code string) (*model.Tenant, error) {
	if code == "" {
		return nil, apperrors.InvalidInput("Tenant code cannot be empty")
	}

	t, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, tenanterrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Tenant", code)
		}
		s.cfg.Log.Error("Failed to get tenant",
			"code", code,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve tenant", err)
	}
	return t, nil
}

func (s *tenantService) ListActiveCodes(ctx context.Context) ([]string, error) {
	codes, err := s.repo.ListActiveCodes(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list active tenants", "error", err)
		return nil, apperrors.Internal("Failed to list active tenants", err)
	}
	return codes, nil
}

func (s *tenantService) SetHours(ctx context.Context, code string, h model.HoursConfig) error {
	if _, err := s.GetByCode(ctx, code); err != nil {
		return err
	}

	if err := s.validator.ValidateHours(&h); err != nil {
		s.cfg.Log.Warn("Hours validation failed",
			"code", code,
			"error", err,
		)
		return apperrors.Validation("Hours validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.store.SetBusinessHours(ctx, code, h); err != nil {
		s.cfg.Log.Error("Failed to set business hours",
			"code", code,
			"error", err,
		)
		return err
	}

	s.cfg.Log.Info("Business hours updated",
		"code", code,
		"open", h.Open,
		"close", h.Close,
		"interval_min", h.IntervalMin,
	)
	return nil
}

func (s *tenantService) GetHours(ctx context.Context, code string) (model.HoursConfig, error) {
	if _, err := s.GetByCode(ctx, code); err != nil {
		return model.HoursConfig{}, err
	}
	return s.store.ReadBusinessHours(ctx, code)
}
