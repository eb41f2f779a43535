package entity

// UserSecurity binds an authenticated user to a personal access code and a
// role. A user without a row here has not redeemed a code yet.
type UserSecurity struct {
	UserID         string `json:"user_id" db:"user_id"`
	AccessCodeHash string `json:"-" db:"access_code_hash"`
	Role           string `json:"role" db:"role"`
}
