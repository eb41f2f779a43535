package server

import (
	"git.appkode.ru/pub/go/failure"

	"profitdesk/internal/domain"
	"profitdesk/pkg/errcodes"
)

// asFailure translates a domain error into the failure kind the reply
// package maps to an HTTP status. Errors without a domain code pass through
// and surface as 500.
func asFailure(err error) error {
	if err == nil {
		return nil
	}

	code := domain.GetCode(err)

	switch code {
	case errcodes.InvalidInput,
		errcodes.InvalidRate,
		errcodes.InvalidItemID,
		errcodes.InvalidThreshold,
		errcodes.ValidationError:
		return failure.NewInvalidArgumentErrorFromError(err,
			failure.WithCode(code), failure.WithDescription(domain.GetMessage(err)))
	case errcodes.NotFound,
		errcodes.ItemNotFound,
		errcodes.SettingsNotFound,
		errcodes.MarketUnknown:
		return failure.NewNotFoundErrorFromError(err,
			failure.WithCode(code), failure.WithDescription(domain.GetMessage(err)))
	case errcodes.Unauthorized,
		errcodes.TokenInvalid:
		return failure.NewUnauthorizedErrorFromError(err,
			failure.WithCode(code), failure.WithDescription(domain.GetMessage(err)))
	case errcodes.Forbidden,
		errcodes.AdminOnly,
		errcodes.CodeNotVerified,
		errcodes.AccessCodeMissing,
		errcodes.AccessCodeInvalid:
		return failure.NewForbiddenErrorFromError(err,
			failure.WithCode(code), failure.WithDescription(domain.GetMessage(err)))
	default:
		return err
	}
}
