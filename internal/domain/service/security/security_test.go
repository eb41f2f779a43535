package security

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"profitdesk/internal/domain"
	"profitdesk/internal/domain/entity"
	"profitdesk/pkg/contextx"
	"profitdesk/pkg/errcodes"
)

type fakeSecurityRepo struct {
	rows map[string]*entity.UserSecurity
}

func newFakeSecurityRepo() *fakeSecurityRepo {
	return &fakeSecurityRepo{rows: map[string]*entity.UserSecurity{}}
}

func (r *fakeSecurityRepo) GetByUserID(_ context.Context, userID string) (*entity.UserSecurity, error) {
	sec, ok := r.rows[userID]
	if !ok {
		return nil, domain.NewError(errcodes.CodeNotVerified, "personal code not verified")
	}

	return sec, nil
}

func (r *fakeSecurityRepo) Upsert(_ context.Context, sec *entity.UserSecurity) error {
	r.rows[sec.UserID] = sec

	return nil
}

type fakeDirectory struct {
	missing map[string]bool
}

func (d *fakeDirectory) UserExists(_ context.Context, userID string) error {
	if d.missing[userID] {
		return domain.NewError(errcodes.NotFound, "auth user not found")
	}

	return nil
}

func TestVerifyCode(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	ctx := context.Background()

	repo := newFakeSecurityRepo()
	svc := NewService(repo, &fakeDirectory{})

	rq.NoError(svc.IssueCode(ctx, "user-1", "s3cret", contextx.RoleAdmin))

	role, err := svc.VerifyCode(ctx, "user-1", "s3cret")
	rq.NoError(err)
	rq.Equal(contextx.RoleAdmin, role)

	_, err = svc.VerifyCode(ctx, "user-1", "wrong")
	rq.Equal(errcodes.AccessCodeInvalid, domain.GetCode(err))

	_, err = svc.VerifyCode(ctx, "user-1", "")
	rq.Equal(errcodes.AccessCodeMissing, domain.GetCode(err))

	_, err = svc.VerifyCode(ctx, "stranger", "s3cret")
	rq.Equal(errcodes.AccessCodeMissing, domain.GetCode(err))
}

func TestIssueCode(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	ctx := context.Background()

	repo := newFakeSecurityRepo()
	svc := NewService(repo, &fakeDirectory{missing: map[string]bool{"ghost": true}})

	err := svc.IssueCode(ctx, "ghost", "code", contextx.RoleUser)
	rq.Equal(errcodes.NotFound, domain.GetCode(err))

	err = svc.IssueCode(ctx, "user-1", "code", contextx.Role("owner"))
	rq.Equal(errcodes.ValidationError, domain.GetCode(err))

	rq.NoError(svc.IssueCode(ctx, "user-1", "first", contextx.RoleUser))
	rq.NoError(svc.IssueCode(ctx, "user-1", "second", contextx.RoleUser))

	_, err = svc.VerifyCode(ctx, "user-1", "first")
	rq.Equal(errcodes.AccessCodeInvalid, domain.GetCode(err))

	role, err := svc.VerifyCode(ctx, "user-1", "second")
	rq.NoError(err)
	rq.Equal(contextx.RoleUser, role)
}

func TestRoleOf(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	ctx := context.Background()

	repo := newFakeSecurityRepo()
	svc := NewService(repo, &fakeDirectory{})

	_, err := svc.RoleOf(ctx, "user-1")
	rq.Equal(errcodes.CodeNotVerified, domain.GetCode(err))

	rq.NoError(svc.IssueCode(ctx, "user-1", "code", contextx.RoleUser))

	role, err := svc.RoleOf(ctx, "user-1")
	rq.NoError(err)
	rq.Equal(contextx.RoleUser, role)
}
