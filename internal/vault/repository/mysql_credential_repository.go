package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/tradeport/keyvault/internal/database"
	apperrors "github.com/tradeport/keyvault/internal/errors"
	vaultDomain "github.com/tradeport/keyvault/internal/vault/domain"
)

// isMySQLUniqueViolation reports whether err is a MySQL duplicate-entry
// error (error number 1062).
func isMySQLUniqueViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	return apperrors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// MySQLCredentialRepository implements credential persistence for MySQL databases.
// UUIDs are stored as BINARY(16) columns.
type MySQLCredentialRepository struct {
	db *sql.DB
}

// Create inserts a new credential record.
func (m *MySQLCredentialRepository) Create(
	ctx context.Context,
	credential *vaultDomain.CredentialRecord,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO user_api_keys
			  (id, user_id, exchange_id, name, api_key_public_part, ciphertext, nonce, is_active, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := credential.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal credential id")
	}

	userID, err := credential.UserID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	exchangeID, err := credential.ExchangeID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal exchange id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		userID,
		exchangeID,
		credential.Name,
		credential.APIKeyPublicPart,
		credential.Ciphertext,
		credential.Nonce,
		credential.IsActive,
		credential.CreatedAt,
		credential.UpdatedAt,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return vaultDomain.ErrCredentialNameTaken
		}
		return apperrors.Wrap(err, "failed to create credential")
	}

	return nil
}

// GetByID retrieves a credential record by its identifier.
func (m *MySQLCredentialRepository) GetByID(
	ctx context.Context,
	credentialID uuid.UUID,
) (*vaultDomain.CredentialRecord, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, user_id, exchange_id, name, api_key_public_part, ciphertext, nonce, is_active, created_at, updated_at
			  FROM user_api_keys
			  WHERE id = ?
			  LIMIT 1`

	id, err := credentialID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal credential id")
	}

	return m.scanCredential(querier.QueryRowContext(ctx, query, id))
}

// GetByUserExchangeName retrieves a credential by its unique (user, exchange, name) triple.
func (m *MySQLCredentialRepository) GetByUserExchangeName(
	ctx context.Context,
	userID, exchangeID uuid.UUID,
	name string,
) (*vaultDomain.CredentialRecord, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, user_id, exchange_id, name, api_key_public_part, ciphertext, nonce, is_active, created_at, updated_at
			  FROM user_api_keys
			  WHERE user_id = ? AND exchange_id = ? AND name = ?
			  LIMIT 1`

	userIDBytes, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal user id")
	}

	exchangeIDBytes, err := exchangeID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal exchange id")
	}

	return m.scanCredential(
		querier.QueryRowContext(ctx, query, userIDBytes, exchangeIDBytes, name),
	)
}

// UpdateCiphertext replaces the sealed payload of a credential in a single
// statement. Ciphertext, nonce, and public part change together or not at all.
func (m *MySQLCredentialRepository) UpdateCiphertext(
	ctx context.Context,
	credentialID uuid.UUID,
	ciphertext, nonce []byte,
	apiKeyPublicPart string,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE user_api_keys
			  SET ciphertext = ?, nonce = ?, api_key_public_part = ?, updated_at = ?
			  WHERE id = ?`

	id, err := credentialID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal credential id")
	}

	result, err := querier.ExecContext(
		ctx,
		query,
		ciphertext,
		nonce,
		apiKeyPublicPart,
		time.Now().UTC(),
		id,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update credential ciphertext")
	}

	return m.requireRows(result)
}

// SetActive toggles the active flag of a credential record.
func (m *MySQLCredentialRepository) SetActive(
	ctx context.Context,
	credentialID uuid.UUID,
	isActive bool,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE user_api_keys
			  SET is_active = ?, updated_at = ?
			  WHERE id = ?`

	id, err := credentialID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal credential id")
	}

	result, err := querier.ExecContext(ctx, query, isActive, time.Now().UTC(), id)
	if err != nil {
		return apperrors.Wrap(err, "failed to set credential active flag")
	}

	return m.requireRows(result)
}

// Delete removes a credential record permanently.
func (m *MySQLCredentialRepository) Delete(ctx context.Context, credentialID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM user_api_keys WHERE id = ?`

	id, err := credentialID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal credential id")
	}

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete credential")
	}

	return m.requireRows(result)
}

// ListByUser retrieves a user's credential records ordered by creation time.
func (m *MySQLCredentialRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*vaultDomain.CredentialRecord, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, user_id, exchange_id, name, api_key_public_part, ciphertext, nonce, is_active, created_at, updated_at
			  FROM user_api_keys
			  WHERE user_id = ?
			  ORDER BY created_at ASC
			  LIMIT ? OFFSET ?`

	userIDBytes, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal user id")
	}

	rows, err := querier.QueryContext(ctx, query, userIDBytes, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list credentials")
	}
	defer func() {
		_ = rows.Close()
	}()

	var credentials []*vaultDomain.CredentialRecord
	for rows.Next() {
		var (
			credential    vaultDomain.CredentialRecord
			id            []byte
			userIDRaw     []byte
			exchangeIDRaw []byte
		)
		err := rows.Scan(
			&id,
			&userIDRaw,
			&exchangeIDRaw,
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
		if err := m.fromBytes(&credential, id, userIDRaw, exchangeIDRaw); err != nil {
			return nil, err
		}
		credentials = append(credentials, &credential)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate credentials")
	}

	return credentials, nil
}

// scanCredential reads a single row, converting BINARY(16) UUID columns.
func (m *MySQLCredentialRepository) scanCredential(
	row *sql.Row,
) (*vaultDomain.CredentialRecord, error) {
	var (
		credential    vaultDomain.CredentialRecord
		id            []byte
		userIDRaw     []byte
		exchangeIDRaw []byte
	)
	err := row.Scan(
		&id,
		&userIDRaw,
		&exchangeIDRaw,
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
		return nil, apperrors.Wrap(err, "failed to get credential")
	}

	if err := m.fromBytes(&credential, id, userIDRaw, exchangeIDRaw); err != nil {
		return nil, err
	}

	return &credential, nil
}

func (m *MySQLCredentialRepository) fromBytes(
	credential *vaultDomain.CredentialRecord,
	id, userID, exchangeID []byte,
) error {
	var err error
	if credential.ID, err = uuid.FromBytes(id); err != nil {
		return apperrors.Wrap(err, "failed to parse credential id")
	}
	if credential.UserID, err = uuid.FromBytes(userID); err != nil {
		return apperrors.Wrap(err, "failed to parse user id")
	}
	if credential.ExchangeID, err = uuid.FromBytes(exchangeID); err != nil {
		return apperrors.Wrap(err, "failed to parse exchange id")
	}
	return nil
}

func (m *MySQLCredentialRepository) requireRows(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check affected rows")
	}
	if rows == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// NewMySQLCredentialRepository creates a new MySQL credential repository instance.
func NewMySQLCredentialRepository(db *sql.DB) *MySQLCredentialRepository {
	return &MySQLCredentialRepository{db: db}
}
