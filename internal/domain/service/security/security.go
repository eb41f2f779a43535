package security

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"profitdesk/internal/domain"
	"profitdesk/internal/domain/entity"
	"profitdesk/pkg/contextx"
	"profitdesk/pkg/errcodes"
)

type SecurityRepository interface {
	GetByUserID(ctx context.Context, userID string) (*entity.UserSecurity, error)
	Upsert(ctx context.Context, sec *entity.UserSecurity) error
}

// UserDirectory answers whether a user exists in the auth provider. Access
// codes are only issued to users that do.
type UserDirectory interface {
	UserExists(ctx context.Context, userID string) error
}

// Service owns personal access codes: verifying a submitted code against the
// stored hash and issuing codes to users.
type Service struct {
	repo      SecurityRepository
	directory UserDirectory
}

func NewService(repo SecurityRepository, directory UserDirectory) *Service {
	return &Service{repo: repo, directory: directory}
}

// VerifyCode checks a submitted personal code against the caller's stored
// hash and returns the role it grants.
func (s *Service) VerifyCode(ctx context.Context, userID, code string) (contextx.Role, error) {
	if code == "" {
		return "", domain.NewError(errcodes.AccessCodeMissing, "access code is required")
	}

	sec, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if domain.GetCode(err) == errcodes.CodeNotVerified {
			return "", domain.NewError(errcodes.AccessCodeMissing, "no access code issued for this user")
		}

		return "", fmt.Errorf("repo.GetByUserID: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(HashCode(code)), []byte(sec.AccessCodeHash)) != 1 {
		return "", domain.NewError(errcodes.AccessCodeInvalid, "access code does not match")
	}

	return contextx.Role(sec.Role), nil
}

// IssueCode stores the hash of a new personal code for a user. The raw code
// is never persisted; it travels from the admin to the user out of band.
func (s *Service) IssueCode(ctx context.Context, userID, code string, role contextx.Role) error {
	if code == "" {
		return domain.NewError(errcodes.AccessCodeMissing, "access code is required")
	}

	if role != contextx.RoleUser && role != contextx.RoleAdmin {
		return domain.NewError(errcodes.ValidationError, fmt.Sprintf("unknown role %q", role))
	}

	if err := s.directory.UserExists(ctx, userID); err != nil {
		return fmt.Errorf("directory.UserExists: %w", err)
	}

	sec := &entity.UserSecurity{
		UserID:         userID,
		AccessCodeHash: HashCode(code),
		Role:           string(role),
	}

	if err := s.repo.Upsert(ctx, sec); err != nil {
		return fmt.Errorf("repo.Upsert: %w", err)
	}

	return nil
}

// RoleOf returns the role recorded for a user, failing when no access code
// was ever issued.
func (s *Service) RoleOf(ctx context.Context, userID string) (contextx.Role, error) {
	sec, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("repo.GetByUserID: %w", err)
	}

	return contextx.Role(sec.Role), nil
}

// HashCode is the canonical hash for personal access codes. The same form is
// produced by the hashcode CLI for seeding rows by hand.
func HashCode(code string) string {
	sum := sha256.Sum256([]byte(code))

	return hex.EncodeToString(sum[:])
}
