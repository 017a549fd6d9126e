package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/sales-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
)

const (
	usersTable = "users"

	uniqueViolation = pq.ErrorCode("23505")
)

// ErrDuplicateEmail indica que já existe usuário com o email informado
var ErrDuplicateEmail = errors.New("email já cadastrado")

var userColumns = []string{"id", "name", "email", "password_hash", "active", "role_id", "created_at", "updated_at"}

//go:generate mockgen -source=user.go -destination=mocks/user_repository_mock.go -package=mocks
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID int) (*domain.User, error)
	UpdatePassword(ctx context.Context, userID int, passwordHash string) error
}

type userRepository struct {
	conn postgres.Conn
}

func NewUserRepository(conn postgres.Conn) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

func (r *userRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	query, args, err := squirrel.
		Insert(usersTable).
		Columns("name", "email", "password_hash", "active", "role_id").
		Values(user.Name, user.Email, user.PasswordHash, user.Active, user.RoleID).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(ctx, query, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("erro ao inserir usuário: %w", err)
	}

	return user, nil
}

// GetUserByEmail retorna nil, nil quando o email não existe
func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUser(ctx, squirrel.Eq{"email": email})
}

// GetUserByID retorna nil, nil quando o usuário não existe
func (r *userRepository) GetUserByID(ctx context.Context, userID int) (*domain.User, error) {
	return r.getUser(ctx, squirrel.Eq{"id": userID})
}

func (r *userRepository) getUser(ctx context.Context, where squirrel.Eq) (*domain.User, error) {
	query, args, err := squirrel.
		Select(userColumns...).
		From(usersTable).
		Where(where).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var user domain.User
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Active,
		&user.RoleID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar usuário: %w", err)
	}

	return &user, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID int, passwordHash string) error {
	query, args, err := squirrel.
		Update(usersTable).
		Set("password_hash", passwordHash).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao atualizar senha: %w", err)
	}

	return nil
}
