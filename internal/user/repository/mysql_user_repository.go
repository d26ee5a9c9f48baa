package repository

import (
	"context"
	"database/sql"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/tradeport/keyvault/internal/database"
	apperrors "github.com/tradeport/keyvault/internal/errors"
	userDomain "github.com/tradeport/keyvault/internal/user/domain"
)

// isMySQLUniqueViolation reports whether err is a MySQL duplicate-entry
// error (error number 1062).
func isMySQLUniqueViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	return apperrors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// MySQLUserRepository implements user persistence for MySQL databases.
// UUIDs are stored as BINARY(16) columns.
type MySQLUserRepository struct {
	db *sql.DB
}

// Create inserts a new user.
func (m *MySQLUserRepository) Create(ctx context.Context, user *userDomain.User) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO users (id, email, password_hash, is_active, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	id, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		user.Email,
		user.PasswordHash,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return userDomain.ErrEmailTaken
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by their identifier.
func (m *MySQLUserRepository) GetByID(
	ctx context.Context,
	userID uuid.UUID,
) (*userDomain.User, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, email, password_hash, is_active, created_at, updated_at
			  FROM users
			  WHERE id = ?
			  LIMIT 1`

	id, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal user id")
	}

	return m.scanUser(querier.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a user by their email.
func (m *MySQLUserRepository) GetByEmail(
	ctx context.Context,
	email string,
) (*userDomain.User, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, email, password_hash, is_active, created_at, updated_at
			  FROM users
			  WHERE email = ?
			  LIMIT 1`

	return m.scanUser(querier.QueryRowContext(ctx, query, email))
}

func (m *MySQLUserRepository) scanUser(row *sql.Row) (*userDomain.User, error) {
	var (
		user userDomain.User
		id   []byte
	)
	err := row.Scan(
		&id,
		&user.Email,
		&user.PasswordHash,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user")
	}

	if user.ID, err = uuid.FromBytes(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse user id")
	}

	return &user, nil
}

// NewMySQLUserRepository creates a new MySQL user repository instance.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}
