package api

// Request DTOs

type RegisterRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Response DTOs

type RegisterResponse struct {
	Id      int64  `json:"id"`
	Message string `json:"message"`
}

type LoginResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token,omitempty"` // for clients that do not keep cookies
}

// LoginPromptResponse is served where guests are redirected.
type LoginPromptResponse struct {
	Message string   `json:"message"`
	Method  string   `json:"method"`
	Action  string   `json:"action"`
	Fields  []string `json:"fields"`
}

type LogoutResponse struct {
	Message string `json:"message"`
}
