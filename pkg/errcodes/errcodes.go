package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	Forbidden           failure.ErrorCode = "Forbidden"
	Unauthorized        failure.ErrorCode = "Unauthorized"

	// Evaluation core.
	InvalidInput failure.ErrorCode = "InvalidInput"
	InvalidRate  failure.ErrorCode = "InvalidRate"

	// Items.
	ItemNotFound  failure.ErrorCode = "ItemNotFound"
	InvalidItemID failure.ErrorCode = "InvalidItemID"

	// Fee resolver.
	MarketUnknown failure.ErrorCode = "MarketUnknown"

	// Settings.
	SettingsNotFound failure.ErrorCode = "SettingsNotFound"
	InvalidThreshold failure.ErrorCode = "InvalidThreshold"

	// Access codes and auth.
	AccessCodeMissing failure.ErrorCode = "AccessCodeMissing"
	AccessCodeInvalid failure.ErrorCode = "AccessCodeInvalid"
	CodeNotVerified   failure.ErrorCode = "CodeNotVerified"
	TokenInvalid      failure.ErrorCode = "TokenInvalid"
	AdminOnly         failure.ErrorCode = "AdminOnly"
)
