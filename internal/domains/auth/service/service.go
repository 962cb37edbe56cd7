package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"rental/infras/jwt"
	"rental/infras/otel"
	adminRepo "rental/internal/domains/admin/repository"
	"rental/internal/domains/auth/model/dto"
	userDto "rental/internal/domains/user/model/dto"
	"rental/internal/domains/user/repository"
	"rental/shared/constant"
	"rental/shared/failure"
	"rental/shared/password"
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (userDto.UserResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	AdminLogin(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
}

type serviceImpl struct {
	userRepo  repository.User
	adminRepo adminRepo.Admin
	jwt       jwt.JWT
	otel      otel.Otel
}

func New(userRepo repository.User, adminRepo adminRepo.Admin, jwtSvc jwt.JWT, ot otel.Otel) Auth {
	return &serviceImpl{
		userRepo:  userRepo,
		adminRepo: adminRepo,
		jwt:       jwtSvc,
		otel:      ot,
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res userDto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	hashed, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToModel(hashed)

	if err = s.userRepo.Append(ctx, user); err != nil {
		log.Error().Err(err).Msg("failed to register user")

		return res, fmt.Errorf("failed to register user: %w", err)
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, found, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if !found {
		return res, failure.Unauthorized("invalid username or password") // nolint:wrapcheck
	}

	if err = password.Verify(req.Password, user.Password); err != nil {
		return res, failure.Unauthorized("invalid username or password") // nolint:wrapcheck
	}

	// Legacy rows store the password in clear text; a successful login is the
	// chance to rewrite the row with a hash. Best effort only.
	if !password.IsHashed(user.Password) {
		if hashed, hashErr := password.Hash(req.Password); hashErr == nil {
			user.Password = hashed

			if updateErr := s.userRepo.Update(ctx, user); updateErr != nil {
				log.Warn().Err(updateErr).Str("username", user.Username).Msg("failed to upgrade legacy password")
			}
		}
	}

	tokens, err := s.jwt.GenerateTokenPair(user.ID, user.Username, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return dto.LoginResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		UserID:       user.ID,
		Username:     user.Username,
		Role:         user.Role,
	}, nil
}

func (s *serviceImpl) AdminLogin(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AdminLogin")
	defer scope.End()
	defer scope.TraceIfError(err)

	admin, found, err := s.adminRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return res, fmt.Errorf("failed to get admin: %w", err)
	}

	if !found {
		return res, failure.Unauthorized("invalid username or password") // nolint:wrapcheck
	}

	if err = password.Verify(req.Password, admin.Password); err != nil {
		return res, failure.Unauthorized("invalid username or password") // nolint:wrapcheck
	}

	if !password.IsHashed(admin.Password) {
		if hashed, hashErr := password.Hash(req.Password); hashErr == nil {
			admin.Password = hashed

			if updateErr := s.adminRepo.Update(ctx, admin); updateErr != nil {
				log.Warn().Err(updateErr).Str("username", admin.Username).Msg("failed to upgrade legacy password")
			}
		}
	}

	tokens, err := s.jwt.GenerateTokenPair(admin.ID, admin.Username, constant.RoleAdmin)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return dto.LoginResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		UserID:       admin.ID,
		Username:     admin.Username,
		Role:         constant.RoleAdmin,
	}, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	tokens, err := s.jwt.RefreshTokens(req.RefreshToken)
	if err != nil {
		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	return dto.RefreshTokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	user, found, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if !found {
		return failure.NotFound("user not found") // nolint:wrapcheck
	}

	if err = password.Verify(req.OldPassword, user.Password); err != nil {
		return failure.Unauthorized("old password does not match") // nolint:wrapcheck
	}

	hashed, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.Password = hashed

	if err = s.userRepo.Update(ctx, user); err != nil {
		log.Error().Err(err).Msg("failed to change password")

		return fmt.Errorf("failed to change password: %w", err)
	}

	return nil
}
