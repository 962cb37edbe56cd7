package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"rental/infras/otel"
	"rental/internal/domains/admin/model"
	"rental/internal/domains/admin/model/dto"
	"rental/internal/domains/admin/repository"
	"rental/shared"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/failure"
	"rental/shared/password"
	"rental/shared/record"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
	defaultAdminFullName = "Default Administrator"
	defaultAdminEmail    = "admin@localhost"
)

type Admin interface {
	Bootstrap(ctx context.Context) error
	Create(ctx context.Context, req dto.CreateAdminRequest) (dto.AdminResponse, error)
	Get(ctx context.Context, id string) (dto.AdminResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams) (dto.GetAdminsResponse, error)
	Update(ctx context.Context, req dto.UpdateAdminRequest, id string) error
	Delete(ctx context.Context, id string) error
	HasPermission(ctx context.Context, adminID, permission string) (bool, error)
}

type serviceImpl struct {
	repo repository.Admin
	otel otel.Otel
}

func New(repo repository.Admin, ot otel.Otel) Admin {
	return &serviceImpl{
		repo: repo,
		otel: ot,
	}
}

// Bootstrap seeds the default administrator account when no admin exists yet,
// so a fresh deployment is never locked out. The default credentials are meant
// to be changed immediately after first login.
func (s *serviceImpl) Bootstrap(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Bootstrap")
	defer scope.End()
	defer scope.TraceIfError(err)

	admins, err := s.repo.LoadAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load admins")

		return fmt.Errorf("failed to load admins: %w", err)
	}

	if len(admins) > 0 {
		return nil
	}

	hashed, err := password.Hash(defaultAdminPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash default admin password")

		return fmt.Errorf("failed to hash default admin password: %w", err)
	}

	admin := model.Admin{
		ID:          record.NewID(),
		Username:    defaultAdminUsername,
		Password:    hashed,
		FullName:    defaultAdminFullName,
		Email:       defaultAdminEmail,
		Role:        constant.RoleAdmin,
		Permissions: []string{constant.PermissionAll},
	}

	if err = s.repo.Append(ctx, admin); err != nil {
		log.Error().Err(err).Msg("failed to seed default admin")

		return fmt.Errorf("failed to seed default admin: %w", err)
	}

	log.Info().Str("username", defaultAdminUsername).Msg("seeded default administrator account")

	return nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAdminRequest) (res dto.AdminResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	hashed, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash admin password")

		return res, fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := req.ToModel(hashed)

	if err = s.repo.Append(ctx, admin); err != nil {
		log.Error().Err(err).Msg("failed to create admin")

		return res, fmt.Errorf("failed to create admin: %w", err)
	}

	res.FromModel(admin)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AdminResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	admin, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return res, fmt.Errorf("failed to get admin: %w", err)
	}

	if !found {
		return res, failure.NotFound("admin not found") // nolint:wrapcheck
	}

	res.FromModel(admin)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams) (res dto.GetAdminsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	admins, err := s.repo.LoadAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get admins")

		return res, fmt.Errorf("failed to get admins: %w", err)
	}

	res.FromModels(shared.Paginate(admins, params.Page, params.Limit), len(admins), params.Limit)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateAdminRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	admin, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return fmt.Errorf("failed to get admin: %w", err)
	}

	if !found {
		return failure.NotFound("admin not found") // nolint:wrapcheck
	}

	req.ApplyTo(&admin)

	if err = s.repo.Update(ctx, admin); err != nil {
		log.Error().Err(err).Msg("failed to update admin")

		return fmt.Errorf("failed to update admin: %w", err)
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Msg("failed to delete admin")

		return fmt.Errorf("failed to delete admin: %w", err)
	}

	return nil
}

func (s *serviceImpl) HasPermission(ctx context.Context, adminID, permission string) (allowed bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".HasPermission")
	defer scope.End()
	defer scope.TraceIfError(err)

	admin, found, err := s.repo.FindByID(ctx, adminID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return false, fmt.Errorf("failed to get admin: %w", err)
	}

	if !found {
		return false, nil
	}

	return admin.HasPermission(permission), nil
}
