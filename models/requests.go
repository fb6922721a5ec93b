package models

// LoginRequest is the body of POST /api/user/login.
// Identifier is either an e-mail address (contains '@') or a username.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// SignupRequest is the body of POST /api/user/register.
type SignupRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	RetypedPassword string `json:"retyped_password"`
}

// ResetRequest is the body of POST /api/user/reset.
type ResetRequest struct {
	OldPassword        string `json:"old_password"`
	NewPassword        string `json:"new_password"`
	RetypedNewPassword string `json:"retyped_new_password"`
}

// ProfileUpdateRequest is the body of PUT /api/user/profile.
type ProfileUpdateRequest struct {
	Username string `json:"username"`
}

// ChatQueryRequest is the body of POST /api/chat/query.
type ChatQueryRequest struct {
	Query string `json:"query"`
}
