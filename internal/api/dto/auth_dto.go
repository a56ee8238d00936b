package dto

// RegisterRequest payload for new users.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserSummary is the outward-facing view of a user. The password hash is
// never part of any response shape.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// RegisterResponse returned from POST /api/auth/register.
type RegisterResponse struct {
	Msg   string      `json:"msg"`
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

// LoginResponse returned from POST /api/auth/login.
type LoginResponse struct {
	Msg   string `json:"msg"`
	Token string `json:"token"`
}
