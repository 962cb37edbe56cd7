package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"rental/infras/jwt"
	jwtMocks "rental/infras/jwt/mocks"
	"rental/infras/otel/mocks"
	adminMocks "rental/internal/domains/admin/mocks"
	adminModel "rental/internal/domains/admin/model"
	"rental/internal/domains/auth/model/dto"
	"rental/internal/domains/auth/service"
	userMocks "rental/internal/domains/user/mocks"
	userModel "rental/internal/domains/user/model"
	"rental/shared/constant"
	"rental/shared/failure"
	"rental/shared/password"
)

// "password" hashed with bcrypt.
const passwordHash = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockAdminRepo := adminMocks.NewMockAdmin(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockUserRepo, mockAdminRepo, mockJWT, mockOtel)

	validUser := userModel.User{
		ID:       "user-id-123",
		Username: "budi",
		Password: passwordHash,
		Role:     constant.RoleUser,
	}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Username: "budi", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().
					FindByUsername(gomock.Any(), "budi").
					Return(validUser, true, nil)

				mockJWT.EXPECT().
					GenerateTokenPair(validUser.ID, validUser.Username, validUser.Role).
					Return(&jwt.TokenPair{
						AccessToken:  "access-token",
						RefreshToken: "refresh-token",
					}, nil)
			},
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Username: "budi", Password: "not-it"},
			setupMock: func() {
				mockUserRepo.EXPECT().
					FindByUsername(gomock.Any(), "budi").
					Return(validUser, true, nil)
			},
			wantErr: true,
		},
		{
			name: "unknown username",
			req:  dto.LoginRequest{Username: "nobody", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().
					FindByUsername(gomock.Any(), "nobody").
					Return(userModel.User{}, false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Login(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "access-token", res.AccessToken)
			assert.Equal(t, validUser.ID, res.UserID)
			assert.Equal(t, constant.RoleUser, res.Role)
		})
	}
}

func TestAuthService_Login_UpgradesLegacyPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockAdminRepo := adminMocks.NewMockAdmin(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockUserRepo, mockAdminRepo, mockJWT, mockOtel)

	legacyUser := userModel.User{
		ID:       "user-id-123",
		Username: "budi",
		Password: "password",
		Role:     constant.RoleUser,
	}

	mockUserRepo.EXPECT().
		FindByUsername(gomock.Any(), "budi").
		Return(legacyUser, true, nil)

	mockUserRepo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, updated userModel.User) {
			assert.True(t, password.IsHashed(updated.Password))
			assert.NoError(t, password.Verify("password", updated.Password))
		}).
		Return(nil)

	mockJWT.EXPECT().
		GenerateTokenPair(legacyUser.ID, legacyUser.Username, legacyUser.Role).
		Return(&jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil)

	res, err := svc.Login(context.Background(), dto.LoginRequest{Username: "budi", Password: "password"})

	assert.NoError(t, err)
	assert.Equal(t, "access-token", res.AccessToken)
}

func TestAuthService_AdminLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockAdminRepo := adminMocks.NewMockAdmin(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockUserRepo, mockAdminRepo, mockJWT, mockOtel)

	validAdmin := adminModel.Admin{
		ID:       "admin-id-123",
		Username: "admin",
		Password: passwordHash,
		Role:     constant.RoleAdmin,
	}

	t.Run("successful admin login", func(t *testing.T) {
		mockAdminRepo.EXPECT().
			FindByUsername(gomock.Any(), "admin").
			Return(validAdmin, true, nil)

		mockJWT.EXPECT().
			GenerateTokenPair(validAdmin.ID, validAdmin.Username, constant.RoleAdmin).
			Return(&jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil)

		res, err := svc.AdminLogin(context.Background(), dto.LoginRequest{Username: "admin", Password: "password"})

		assert.NoError(t, err)
		assert.Equal(t, constant.RoleAdmin, res.Role)
	})

	t.Run("unknown admin", func(t *testing.T) {
		mockAdminRepo.EXPECT().
			FindByUsername(gomock.Any(), "nobody").
			Return(adminModel.Admin{}, false, nil)

		_, err := svc.AdminLogin(context.Background(), dto.LoginRequest{Username: "nobody", Password: "password"})

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockAdminRepo := adminMocks.NewMockAdmin(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockUserRepo, mockAdminRepo, mockJWT, mockOtel)

	user := userModel.User{
		ID:       "user-id-123",
		Username: "budi",
		Password: passwordHash,
		Role:     constant.RoleUser,
	}

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, user.ID)

	t.Run("successful change stores a new hash", func(t *testing.T) {
		mockUserRepo.EXPECT().
			FindByID(gomock.Any(), user.ID).
			Return(user, true, nil)

		mockUserRepo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			Do(func(_ context.Context, updated userModel.User) {
				assert.True(t, password.IsHashed(updated.Password))
				assert.NoError(t, password.Verify("new-secret", updated.Password))
			}).
			Return(nil)

		err := svc.ChangePassword(ctx, dto.ChangePasswordRequest{OldPassword: "password", NewPassword: "new-secret"})

		assert.NoError(t, err)
	})

	t.Run("wrong old password", func(t *testing.T) {
		mockUserRepo.EXPECT().
			FindByID(gomock.Any(), user.ID).
			Return(user, true, nil)

		err := svc.ChangePassword(ctx, dto.ChangePasswordRequest{OldPassword: "not-it", NewPassword: "new-secret"})

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockAdminRepo := adminMocks.NewMockAdmin(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockUserRepo, mockAdminRepo, mockJWT, mockOtel)

	mockUserRepo.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, created userModel.User) {
			assert.True(t, password.IsHashed(created.Password))
			assert.Equal(t, constant.RoleUser, created.Role)
		}).
		Return(nil)

	req := dto.RegisterRequest{
		Username: "budi",
		Password: "secret123",
		FullName: "Budi Santoso",
		Email:    "budi@example.com",
	}

	res, err := svc.Register(context.Background(), req)

	assert.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, "budi", res.Username)
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockAdminRepo := adminMocks.NewMockAdmin(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockUserRepo, mockAdminRepo, mockJWT, mockOtel)

	t.Run("valid refresh token", func(t *testing.T) {
		mockJWT.EXPECT().
			RefreshTokens("refresh-token").
			Return(&jwt.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil)

		res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh-token"})

		assert.NoError(t, err)
		assert.Equal(t, "new-access", res.AccessToken)
	})

	t.Run("invalid refresh token", func(t *testing.T) {
		mockJWT.EXPECT().
			RefreshTokens("bad-token").
			Return(nil, jwt.ErrInvalidToken)

		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "bad-token"})

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}
