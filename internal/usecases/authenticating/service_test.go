package authenticating

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-tracker-api/infrastructure/repository"
	"github.com/vfg2006/sales-tracker-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-tracker-api/internal/config"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"github.com/vfg2006/sales-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/sales-tracker-api/pkg/log"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const strongPassword = "Verkoop#2025"

func newTestService(t *testing.T) (*Service, *mocks.MockUserRepository) {
	t.Helper()
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	userRepo := mocks.NewMockUserRepository(ctrl)

	cfg := &config.Config{
		SecretKey: "segredo-de-teste",
		Auth:      config.Auth{TokenTTL: time.Hour},
	}

	return NewService(userRepo, cfg), userRepo
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func assertAuthCode(t *testing.T, err error, code string) {
	t.Helper()
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, code, authErr.Code)
}

func TestService_Register(t *testing.T) {
	validRequest := domain.RegisterRequest{
		Name:     "Anna de Boer",
		Email:    "  Anna@Example.NL ",
		Password: strongPassword,
	}

	t.Run("Cadastro cria vendedor ativo", func(t *testing.T) {
		service, userRepo := newTestService(t)

		userRepo.EXPECT().GetUserByEmail(gomock.Any(), "anna@example.nl").Return(nil, nil)
		userRepo.EXPECT().
			CreateUser(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user *domain.User) (*domain.User, error) {
				assert.Equal(t, domain.RoleSeller, user.RoleID)
				assert.True(t, user.Active)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(strongPassword)))
				user.ID = 10
				return user, nil
			})

		user, err := service.Register(context.Background(), validRequest)

		require.NoError(t, err)
		assert.Equal(t, 10, user.ID)
		assert.Equal(t, "anna@example.nl", user.Email)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("Email já cadastrado", func(t *testing.T) {
		service, userRepo := newTestService(t)
		userRepo.EXPECT().GetUserByEmail(gomock.Any(), "anna@example.nl").Return(&domain.User{ID: 1}, nil)

		_, err := service.Register(context.Background(), validRequest)

		assert.ErrorIs(t, err, ErrUserAlreadyExists)
		assertAuthCode(t, err, apiErrors.ErrUserAlreadyExists)
	})

	t.Run("Corrida no cadastro vira usuário existente", func(t *testing.T) {
		service, userRepo := newTestService(t)
		userRepo.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(nil, nil)
		userRepo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(nil, repository.ErrDuplicateEmail)

		_, err := service.Register(context.Background(), validRequest)

		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	tests := []struct {
		name        string
		req         domain.RegisterRequest
		expectedErr error
		code        string
	}{
		{
			name:        "Sem nome",
			req:         domain.RegisterRequest{Email: "a@b.nl", Password: strongPassword},
			expectedErr: ErrMissingRequiredData,
			code:        apiErrors.ErrMissingRequiredData,
		},
		{
			name:        "Email inválido",
			req:         domain.RegisterRequest{Name: "Anna", Email: "sem-arroba", Password: strongPassword},
			expectedErr: ErrInvalidFormat,
			code:        apiErrors.ErrInvalidFormat,
		},
		{
			name:        "Senha fraca",
			req:         domain.RegisterRequest{Name: "Anna", Email: "a@b.nl", Password: "fraca"},
			expectedErr: ErrWeakPassword,
			code:        apiErrors.ErrWeakPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := newTestService(t)

			_, err := service.Register(context.Background(), tt.req)

			assert.ErrorIs(t, err, tt.expectedErr)
			assertAuthCode(t, err, tt.code)
		})
	}
}

func TestService_LoginUser(t *testing.T) {
	activeUser := func(t *testing.T) *domain.User {
		return &domain.User{
			ID:           5,
			Name:         "Anna",
			Email:        "anna@example.nl",
			PasswordHash: hashed(t, strongPassword),
			Active:       true,
			RoleID:       domain.RoleSeller,
		}
	}

	t.Run("Login gera token válido", func(t *testing.T) {
		service, userRepo := newTestService(t)
		userRepo.EXPECT().GetUserByEmail(gomock.Any(), "anna@example.nl").Return(activeUser(t), nil)

		token, err := service.LoginUser(context.Background(), "ANNA@example.nl", strongPassword)
		require.NoError(t, err)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, 5, claims.UserID)
		assert.Equal(t, domain.RoleSeller, claims.UserRoleID)
	})

	t.Run("Senha incorreta", func(t *testing.T) {
		service, userRepo := newTestService(t)
		userRepo.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(activeUser(t), nil)

		_, err := service.LoginUser(context.Background(), "anna@example.nl", "Errada#2025")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.True(t, IsCredentialsError(err))
	})

	t.Run("Usuário desativado", func(t *testing.T) {
		service, userRepo := newTestService(t)
		user := activeUser(t)
		user.Active = false
		userRepo.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(user, nil)

		_, err := service.LoginUser(context.Background(), "anna@example.nl", strongPassword)

		assertAuthCode(t, err, apiErrors.ErrUserDisabled)
	})

	t.Run("Usuário inexistente", func(t *testing.T) {
		service, userRepo := newTestService(t)
		userRepo.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := service.LoginUser(context.Background(), "x@y.nl", strongPassword)

		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("Falha no banco", func(t *testing.T) {
		service, userRepo := newTestService(t)
		userRepo.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

		_, err := service.LoginUser(context.Background(), "x@y.nl", strongPassword)

		assertAuthCode(t, err, apiErrors.ErrDatabaseOperation)
	})

	t.Run("Campos vazios", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.LoginUser(context.Background(), "", "")

		assertAuthCode(t, err, apiErrors.ErrMissingRequiredData)
	})
}

func TestService_ValidateToken(t *testing.T) {
	t.Run("Token expirado", func(t *testing.T) {
		service, _ := newTestService(t)
		service.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

		token, err := service.generateJWT(&domain.User{ID: 1})
		require.NoError(t, err)

		_, err = service.ValidateToken(token)

		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("Token assinado com outra chave", func(t *testing.T) {
		service, _ := newTestService(t)
		other, _ := newTestService(t)
		other.cfg = &config.Config{SecretKey: "outra-chave"}

		token, err := other.generateJWT(&domain.User{ID: 1})
		require.NoError(t, err)

		_, err = service.ValidateToken(token)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Texto qualquer", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.ValidateToken("nao-e-um-jwt")

		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestService_GetUserProfile(t *testing.T) {
	t.Run("Perfil sem hash da senha", func(t *testing.T) {
		service, userRepo := newTestService(t)
		userRepo.EXPECT().GetUserByID(gomock.Any(), 5).Return(&domain.User{ID: 5, PasswordHash: "hash"}, nil)

		user, err := service.GetUserProfile(context.Background(), 5)

		require.NoError(t, err)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("Usuário inexistente", func(t *testing.T) {
		service, userRepo := newTestService(t)
		userRepo.EXPECT().GetUserByID(gomock.Any(), 5).Return(nil, nil)

		_, err := service.GetUserProfile(context.Background(), 5)

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestService_ChangePassword(t *testing.T) {
	const newPassword = "Nieuw#Wachtwoord1"

	t.Run("Troca a senha", func(t *testing.T) {
		service, userRepo := newTestService(t)
		userRepo.EXPECT().GetUserByID(gomock.Any(), 5).Return(&domain.User{ID: 5, PasswordHash: hashed(t, strongPassword)}, nil)
		userRepo.EXPECT().
			UpdatePassword(gomock.Any(), 5, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int, hash string) error {
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(newPassword)))
				return nil
			})

		assert.NoError(t, service.ChangePassword(context.Background(), 5, strongPassword, newPassword))
	})

	t.Run("Senha atual incorreta", func(t *testing.T) {
		service, userRepo := newTestService(t)
		userRepo.EXPECT().GetUserByID(gomock.Any(), 5).Return(&domain.User{ID: 5, PasswordHash: hashed(t, strongPassword)}, nil)

		err := service.ChangePassword(context.Background(), 5, "Errada#2025", newPassword)

		assert.ErrorIs(t, err, ErrPasswordMismatch)
	})

	t.Run("Nova senha igual à atual", func(t *testing.T) {
		service, userRepo := newTestService(t)
		userRepo.EXPECT().GetUserByID(gomock.Any(), 5).Return(&domain.User{ID: 5, PasswordHash: hashed(t, strongPassword)}, nil)

		err := service.ChangePassword(context.Background(), 5, strongPassword, strongPassword)

		assert.ErrorIs(t, err, ErrSamePassword)
	})
}

func TestService_ValidatePasswordStrength(t *testing.T) {
	service, _ := newTestService(t)

	tests := []struct {
		password string
		valid    bool
	}{
		{"Curta1!", false},
		{"semmaiuscula1!", false},
		{"SEMMINUSCULA1!", false},
		{"SemNumero!!", false},
		{"SemEspecial123", false},
		{strongPassword, true},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			err := service.ValidatePasswordStrength(tt.password)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
