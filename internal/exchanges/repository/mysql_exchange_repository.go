package repository

import (
	"context"
	"database/sql"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/tradeport/keyvault/internal/database"
	apperrors "github.com/tradeport/keyvault/internal/errors"
	exchangesDomain "github.com/tradeport/keyvault/internal/exchanges/domain"
)

// isMySQLUniqueViolation reports whether err is a MySQL duplicate-entry
// error (error number 1062).
func isMySQLUniqueViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	return apperrors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// MySQLExchangeRepository implements exchange persistence for MySQL databases.
// UUIDs are stored as BINARY(16) columns.
type MySQLExchangeRepository struct {
	db *sql.DB
}

// Create inserts a new exchange.
func (m *MySQLExchangeRepository) Create(
	ctx context.Context,
	exchange *exchangesDomain.Exchange,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO exchanges (id, name, display_name, base_url, is_active, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	id, err := exchange.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal exchange id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		exchange.Name,
		exchange.DisplayName,
		exchange.BaseURL,
		exchange.IsActive,
		exchange.CreatedAt,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return exchangesDomain.ErrExchangeNameTaken
		}
		return apperrors.Wrap(err, "failed to create exchange")
	}
	return nil
}

// GetByID retrieves an exchange by its identifier.
func (m *MySQLExchangeRepository) GetByID(
	ctx context.Context,
	exchangeID uuid.UUID,
) (*exchangesDomain.Exchange, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, display_name, base_url, is_active, created_at
			  FROM exchanges
			  WHERE id = ?
			  LIMIT 1`

	id, err := exchangeID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal exchange id")
	}

	return m.scanExchange(querier.QueryRowContext(ctx, query, id))
}

// GetByName retrieves an exchange by its canonical name.
func (m *MySQLExchangeRepository) GetByName(
	ctx context.Context,
	name string,
) (*exchangesDomain.Exchange, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, display_name, base_url, is_active, created_at
			  FROM exchanges
			  WHERE name = ?
			  LIMIT 1`

	return m.scanExchange(querier.QueryRowContext(ctx, query, name))
}

// List retrieves exchanges ordered by name.
func (m *MySQLExchangeRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*exchangesDomain.Exchange, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, display_name, base_url, is_active, created_at
			  FROM exchanges
			  ORDER BY name ASC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list exchanges")
	}
	defer func() {
		_ = rows.Close()
	}()

	var exchanges []*exchangesDomain.Exchange
	for rows.Next() {
		var (
			exchange exchangesDomain.Exchange
			id       []byte
		)
		err := rows.Scan(
			&id,
			&exchange.Name,
			&exchange.DisplayName,
			&exchange.BaseURL,
			&exchange.IsActive,
			&exchange.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan exchange")
		}
		if exchange.ID, err = uuid.FromBytes(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to parse exchange id")
		}
		exchanges = append(exchanges, &exchange)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate exchanges")
	}

	return exchanges, nil
}

func (m *MySQLExchangeRepository) scanExchange(row *sql.Row) (*exchangesDomain.Exchange, error) {
	var (
		exchange exchangesDomain.Exchange
		id       []byte
	)
	err := row.Scan(
		&id,
		&exchange.Name,
		&exchange.DisplayName,
		&exchange.BaseURL,
		&exchange.IsActive,
		&exchange.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get exchange")
	}

	if exchange.ID, err = uuid.FromBytes(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse exchange id")
	}

	return &exchange, nil
}

// NewMySQLExchangeRepository creates a new MySQL exchange repository instance.
func NewMySQLExchangeRepository(db *sql.DB) *MySQLExchangeRepository {
	return &MySQLExchangeRepository{db: db}
}
