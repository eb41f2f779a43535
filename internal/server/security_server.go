package server

import (
	"context"
	"fmt"
	"net/http"

	"profitdesk/pkg/contextx"
	"profitdesk/pkg/httpx/reply"
	"profitdesk/pkg/httpx/req"
	"profitdesk/pkg/rest"
)

type securityService interface {
	VerifyCode(ctx context.Context, userID, code string) (contextx.Role, error)
	IssueCode(ctx context.Context, userID, code string, role contextx.Role) error
}

type SecurityServer struct {
	securityService securityService
}

func NewSecurityServer(securityService securityService) SecurityServer {
	return SecurityServer{
		securityService: securityService,
	}
}

func (s SecurityServer) postV1VerifyCode(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	userID, err := contextx.UserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("contextx.UserIDFromContext: %w", err)
	}

	var request rest.VerifyCodeRequest
	if err = req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	role, err := s.securityService.VerifyCode(ctx, userID.String(), request.Code)
	if err != nil {
		return asFailure(fmt.Errorf("securityService.VerifyCode: %w", err))
	}

	reply.JSON(ctx, w, http.StatusOK, rest.VerifyCodeResponse{
		Success: true,
		Role:    role.String(),
	})

	return nil
}

func (s SecurityServer) postV1AccessCodes(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.CreateAccessCodeRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	role := contextx.Role(request.Role)
	if role == "" {
		role = contextx.RoleUser
	}

	if err := s.securityService.IssueCode(ctx, request.UserID, request.Code, role); err != nil {
		return asFailure(fmt.Errorf("securityService.IssueCode: %w", err))
	}

	reply.Created(w)

	return nil
}
