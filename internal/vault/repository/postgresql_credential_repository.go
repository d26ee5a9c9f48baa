// Package repository implements credential record persistence.
// Repositories support both PostgreSQL and MySQL; rotation updates replace
// ciphertext, nonce, and public part in a single statement so readers never
// observe a mixed record.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/tradeport/keyvault/internal/database"
	apperrors "github.com/tradeport/keyvault/internal/errors"
	vaultDomain "github.com/tradeport/keyvault/internal/vault/domain"
)

// isPostgreSQLUniqueViolation reports whether err is a PostgreSQL
// unique-constraint violation (SQLSTATE 23505).
func isPostgreSQLUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return apperrors.As(err, &pqErr) && pqErr.Code == "23505"
}

// PostgreSQLCredentialRepository implements credential persistence for PostgreSQL databases.
type PostgreSQLCredentialRepository struct {
	db *sql.DB
}

// Create inserts a new credential record.
func (p *PostgreSQLCredentialRepository) Create(
	ctx context.Context,
	credential *vaultDomain.CredentialRecord,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO user_api_keys
			  (id, user_id, exchange_id, name, api_key_public_part, ciphertext, nonce, is_active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := querier.ExecContext(
		ctx,
		query,
		credential.ID,
		credential.UserID,
		credential.ExchangeID,
		credential.Name,
		credential.APIKeyPublicPart,
		credential.Ciphertext,
		credential.Nonce,
		credential.IsActive,
		credential.CreatedAt,
		credential.UpdatedAt,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return vaultDomain.ErrCredentialNameTaken
		}
		return apperrors.Wrap(err, "failed to create credential")
	}
	return nil
}

// GetByID retrieves a credential record by its identifier.
func (p *PostgreSQLCredentialRepository) GetByID(
	ctx context.Context,
	credentialID uuid.UUID,
) (*vaultDomain.CredentialRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, user_id, exchange_id, name, api_key_public_part, ciphertext, nonce, is_active, created_at, updated_at
			  FROM user_api_keys
			  WHERE id = $1
			  LIMIT 1`

	var credential vaultDomain.CredentialRecord
	err := querier.QueryRowContext(ctx, query, credentialID).Scan(
		&credential.ID,
		&credential.UserID,
		&credential.ExchangeID,
		&credential.Name,
		&credential.APIKeyPublicPart,
		&credential.Ciphertext,
		&credential.Nonce,
		&credential.IsActive,
		&credential.CreatedAt,
		&credential.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get credential by id")
	}

	return &credential, nil
}

// GetByUserExchangeName retrieves a credential by its unique (user, exchange, name) triple.
func (p *PostgreSQLCredentialRepository) GetByUserExchangeName(
	ctx context.Context,
	userID, exchangeID uuid.UUID,
	name string,
) (*vaultDomain.CredentialRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, user_id, exchange_id, name, api_key_public_part, ciphertext, nonce, is_active, created_at, updated_at
			  FROM user_api_keys
			  WHERE user_id = $1 AND exchange_id = $2 AND name = $3
			  LIMIT 1`

	var credential vaultDomain.CredentialRecord
	err := querier.QueryRowContext(ctx, query, userID, exchangeID, name).Scan(
		&credential.ID,
		&credential.UserID,
		&credential.ExchangeID,
		&credential.Name,
		&credential.APIKeyPublicPart,
		&credential.Ciphertext,
		&credential.Nonce,
		&credential.IsActive,
		&credential.CreatedAt,
		&credential.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get credential by user, exchange and name")
	}

	return &credential, nil
}

// UpdateCiphertext replaces the sealed payload of a credential in a single
// statement. Ciphertext, nonce, and public part change together or not at all.
func (p *PostgreSQLCredentialRepository) UpdateCiphertext(
	ctx context.Context,
	credentialID uuid.UUID,
	ciphertext, nonce []byte,
	apiKeyPublicPart string,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE user_api_keys
			  SET ciphertext = $1, nonce = $2, api_key_public_part = $3, updated_at = $4
			  WHERE id = $5`

	result, err := querier.ExecContext(
		ctx,
		query,
		ciphertext,
		nonce,
		apiKeyPublicPart,
		time.Now().UTC(),
		credentialID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update credential ciphertext")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check updated rows")
	}
	if rows == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// SetActive toggles the active flag of a credential record.
func (p *PostgreSQLCredentialRepository) SetActive(
	ctx context.Context,
	credentialID uuid.UUID,
	isActive bool,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE user_api_keys
			  SET is_active = $1, updated_at = $2
			  WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, isActive, time.Now().UTC(), credentialID)
	if err != nil {
		return apperrors.Wrap(err, "failed to set credential active flag")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check updated rows")
	}
	if rows == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// Delete removes a credential record permanently.
func (p *PostgreSQLCredentialRepository) Delete(ctx context.Context, credentialID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM user_api_keys WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, credentialID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete credential")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check deleted rows")
	}
	if rows == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// ListByUser retrieves a user's credential records ordered by creation time.
func (p *PostgreSQLCredentialRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*vaultDomain.CredentialRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, user_id, exchange_id, name, api_key_public_part, ciphertext, nonce, is_active, created_at, updated_at
			  FROM user_api_keys
			  WHERE user_id = $1
			  ORDER BY created_at ASC
			  OFFSET $2 LIMIT $3`

	rows, err := querier.QueryContext(ctx, query, userID, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list credentials")
	}
	defer func() {
		_ = rows.Close()
	}()

	var credentials []*vaultDomain.CredentialRecord
	for rows.Next() {
		var credential vaultDomain.CredentialRecord
		err := rows.Scan(
			&credential.ID,
			&credential.UserID,
			&credential.ExchangeID,
			&credential.Name,
			&credential.APIKeyPublicPart,
			&credential.Ciphertext,
			&credential.Nonce,
			&credential.IsActive,
			&credential.CreatedAt,
			&credential.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan credential")
		}
		credentials = append(credentials, &credential)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate credentials")
	}

	return credentials, nil
}

// NewPostgreSQLCredentialRepository creates a new PostgreSQL credential repository instance.
func NewPostgreSQLCredentialRepository(db *sql.DB) *PostgreSQLCredentialRepository {
	return &PostgreSQLCredentialRepository{db: db}
}
