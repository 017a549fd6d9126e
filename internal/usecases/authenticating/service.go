package authenticating

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/sales-tracker-api/infrastructure/repository"
	"github.com/vfg2006/sales-tracker-api/internal/config"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"github.com/vfg2006/sales-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/sales-tracker-api/pkg/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultTokenTTL   = 24 * time.Hour
	minPasswordLength = 8

	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numberChars  = "0123456789"
	specialChars = "!@#$%^&*()-_=+[]{}|;:,.<>?"
)

type Authenticator interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)
	LoginUser(ctx context.Context, email, password string) (string, error)
	GetUserProfile(ctx context.Context, userID int) (*domain.User, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
	ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error
	ValidatePasswordStrength(password string) error
}

type Service struct {
	userRepo repository.UserRepository
	cfg      *config.Config
	now      func() time.Time
}

func NewService(userRepo repository.UserRepository, cfg *config.Config) *Service {
	return &Service{
		userRepo: userRepo,
		cfg:      cfg,
		now:      time.Now,
	}
}

func handleEmail(s string) string {
	email := strings.ToLower(s)
	email = strings.TrimSpace(email)
	email = strings.ReplaceAll(email, " ", "")
	return email
}

// Register cria um vendedor ativo com a senha já convertida em hash
func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	name := strings.TrimSpace(req.Name)
	email := handleEmail(req.Email)

	if name == "" || email == "" || req.Password == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Nome, email e senha são obrigatórios")
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return nil, NewAuthError(ErrInvalidFormat, apiErrors.ErrInvalidFormat, "Email inválido")
	}

	if err := s.ValidatePasswordStrength(req.Password); err != nil {
		return nil, NewAuthError(ErrWeakPassword, apiErrors.ErrWeakPassword, err.Error())
	}

	existing, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao consultar usuário no banco de dados")
	}
	if existing != nil {
		return nil, NewAuthError(ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists, "Email já cadastrado")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Active:       true,
		RoleID:       domain.RoleSeller,
	}

	user, err = s.userRepo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, NewAuthError(ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists, "Email já cadastrado")
		}
		log.ForContext(ctx).WithError(err).Error("Erro ao criar usuário")
		return nil, NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao criar usuário")
	}

	log.ForContext(ctx).WithField("user_id", user.ID).Info("Usuário registrado")

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) LoginUser(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Email e senha são obrigatórios")
	}

	email = handleEmail(email)

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return "", NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao consultar usuário no banco de dados")
	}

	if user == nil {
		return "", NewAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, "Usuário não encontrado")
	}

	if !user.Active {
		return "", NewUserAuthError(ErrUserDisabled, apiErrors.ErrUserDisabled, user.ID, "Conta desativada")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", NewUserAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, user.ID, "Senha incorreta")
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	return token, nil
}

func (s *Service) GetUserProfile(ctx context.Context, userID int) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao buscar perfil do usuário")
		return nil, NewUserAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, userID, "")
	}

	if user == nil {
		return nil, NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, userID, "")
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) tokenTTL() time.Duration {
	if s.cfg.Auth.TokenTTL <= 0 {
		return defaultTokenTTL
	}
	return s.cfg.Auth.TokenTTL
}

func (s *Service) generateJWT(user *domain.User) (string, error) {
	now := s.now()
	claims := domain.Claims{
		UserID:     user.ID,
		UserName:   user.Name,
		UserEmail:  user.Email,
		UserRoleID: user.RoleID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL())),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.SecretKey))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	return claims, nil
}

// ValidatePasswordStrength exige ao menos 8 caracteres com maiúsculas, minúsculas, números e caracteres especiais
func (s *Service) ValidatePasswordStrength(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("a senha deve conter pelo menos %d caracteres", minPasswordLength)
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool

	for _, char := range password {
		switch {
		case strings.ContainsRune(lowerChars, char):
			hasLower = true
		case strings.ContainsRune(upperChars, char):
			hasUpper = true
		case strings.ContainsRune(numberChars, char):
			hasNumber = true
		case strings.ContainsRune(specialChars, char):
			hasSpecial = true
		}
	}

	if !hasUpper {
		return errors.New("a senha deve conter pelo menos uma letra maiúscula")
	}
	if !hasLower {
		return errors.New("a senha deve conter pelo menos uma letra minúscula")
	}
	if !hasNumber {
		return errors.New("a senha deve conter pelo menos um número")
	}
	if !hasSpecial {
		return errors.New("a senha deve conter pelo menos um caractere especial")
	}

	return nil
}

// ChangePassword confere a senha atual antes de gravar a nova
func (s *Service) ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return NewUserAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, userID, "Senha atual e nova senha são obrigatórias")
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return NewUserAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, userID, "")
	}
	if user == nil {
		return NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, userID, "")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return NewUserAuthError(ErrPasswordMismatch, apiErrors.ErrInvalidCredentials, userID, "")
	}

	if currentPassword == newPassword {
		return NewUserAuthError(ErrSamePassword, apiErrors.ErrWeakPassword, userID, "")
	}

	if err := s.ValidatePasswordStrength(newPassword); err != nil {
		return NewUserAuthError(ErrWeakPassword, apiErrors.ErrWeakPassword, userID, err.Error())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, string(hashedPassword)); err != nil {
		log.ForContext(ctx).WithError(err).WithField("user_id", userID).Error("Erro ao atualizar senha")
		return NewUserAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, userID, "")
	}

	return nil
}
