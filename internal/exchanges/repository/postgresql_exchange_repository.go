// Package repository implements exchange persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/tradeport/keyvault/internal/database"
	apperrors "github.com/tradeport/keyvault/internal/errors"
	exchangesDomain "github.com/tradeport/keyvault/internal/exchanges/domain"
)

// isPostgreSQLUniqueViolation reports whether err is a PostgreSQL
// unique-constraint violation (SQLSTATE 23505).
func isPostgreSQLUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return apperrors.As(err, &pqErr) && pqErr.Code == "23505"
}

// PostgreSQLExchangeRepository implements exchange persistence for PostgreSQL databases.
type PostgreSQLExchangeRepository struct {
	db *sql.DB
}

// Create inserts a new exchange.
func (p *PostgreSQLExchangeRepository) Create(
	ctx context.Context,
	exchange *exchangesDomain.Exchange,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO exchanges (id, name, display_name, base_url, is_active, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		exchange.ID,
		exchange.Name,
		exchange.DisplayName,
		exchange.BaseURL,
		exchange.IsActive,
		exchange.CreatedAt,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return exchangesDomain.ErrExchangeNameTaken
		}
		return apperrors.Wrap(err, "failed to create exchange")
	}
	return nil
}

// GetByID retrieves an exchange by its identifier.
func (p *PostgreSQLExchangeRepository) GetByID(
	ctx context.Context,
	exchangeID uuid.UUID,
) (*exchangesDomain.Exchange, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, display_name, base_url, is_active, created_at
			  FROM exchanges
			  WHERE id = $1
			  LIMIT 1`

	var exchange exchangesDomain.Exchange
	err := querier.QueryRowContext(ctx, query, exchangeID).Scan(
		&exchange.ID,
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
		return nil, apperrors.Wrap(err, "failed to get exchange by id")
	}

	return &exchange, nil
}

// GetByName retrieves an exchange by its canonical name.
func (p *PostgreSQLExchangeRepository) GetByName(
	ctx context.Context,
	name string,
) (*exchangesDomain.Exchange, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, display_name, base_url, is_active, created_at
			  FROM exchanges
			  WHERE name = $1
			  LIMIT 1`

	var exchange exchangesDomain.Exchange
	err := querier.QueryRowContext(ctx, query, name).Scan(
		&exchange.ID,
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
		return nil, apperrors.Wrap(err, "failed to get exchange by name")
	}

	return &exchange, nil
}

// List retrieves exchanges ordered by name.
func (p *PostgreSQLExchangeRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*exchangesDomain.Exchange, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, display_name, base_url, is_active, created_at
			  FROM exchanges
			  ORDER BY name ASC
			  OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list exchanges")
	}
	defer func() {
		_ = rows.Close()
	}()

	var exchanges []*exchangesDomain.Exchange
	for rows.Next() {
		var exchange exchangesDomain.Exchange
		err := rows.Scan(
			&exchange.ID,
			&exchange.Name,
			&exchange.DisplayName,
			&exchange.BaseURL,
			&exchange.IsActive,
			&exchange.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan exchange")
		}
		exchanges = append(exchanges, &exchange)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate exchanges")
	}

	return exchanges, nil
}

// NewPostgreSQLExchangeRepository creates a new PostgreSQL exchange repository instance.
func NewPostgreSQLExchangeRepository(db *sql.DB) *PostgreSQLExchangeRepository {
	return &PostgreSQLExchangeRepository{db: db}
}
