package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"profitdesk/internal/domain"
	"profitdesk/internal/domain/entity"
	"profitdesk/pkg/errcodes"
)

type UserSecurityRepository struct {
	db *sqlx.DB
}

func NewUserSecurityRepository(db *sqlx.DB) *UserSecurityRepository {
	return &UserSecurityRepository{db: db}
}

func (r *UserSecurityRepository) GetByUserID(ctx context.Context, userID string) (*entity.UserSecurity, error) {
	query := `SELECT user_id, access_code_hash, role FROM user_security WHERE user_id = $1`

	var schema userSecuritySchema
	if err := r.db.GetContext(ctx, &schema, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.CodeNotVerified, "personal code not verified")
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get user security")
	}

	return schema.toDomain(), nil
}

// Upsert writes or replaces the access-code binding for one user.
func (r *UserSecurityRepository) Upsert(ctx context.Context, sec *entity.UserSecurity) error {
	query := `
		INSERT INTO user_security (user_id, access_code_hash, role)
		VALUES (:user_id, :access_code_hash, :role)
		ON CONFLICT (user_id) DO UPDATE SET
			access_code_hash = EXCLUDED.access_code_hash,
			role = EXCLUDED.role`

	if _, err := r.db.NamedExecContext(ctx, query, &userSecuritySchema{
		UserID:         sec.UserID,
		AccessCodeHash: sec.AccessCodeHash,
		Role:           sec.Role,
	}); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to upsert user security")
	}

	return nil
}
