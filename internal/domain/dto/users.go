package dto

import "github.com/sahiljoster32/stock-monitor-backend/internal/domain/models"

// RegisterRequest is the body of POST /api/v1/users/register.
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,max=150" example:"jdoe"`
	Email     string `json:"email" binding:"required,email" example:"jdoe@example.com"`
	Password  string `json:"password" binding:"required" example:"s3cret-pass"`
	Password2 string `json:"password2" binding:"required" example:"s3cret-pass"`
	FirstName string `json:"first_name" binding:"required" example:"John"`
	LastName  string `json:"last_name" binding:"required" example:"Doe"`
}

// RegisterResponse echoes the created account. It never contains the password.
type RegisterResponse struct {
	Username  string `json:"username" example:"jdoe"`
	Email     string `json:"email" example:"jdoe@example.com"`
	FirstName string `json:"first_name" example:"John"`
	LastName  string `json:"last_name" example:"Doe"`
}

// NewRegisterResponse maps a created user to its public representation.
func NewRegisterResponse(u *models.User) RegisterResponse {
	return RegisterResponse{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// LoginRequest is the body of POST /api/v1/users/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"jdoe"`
	Password string `json:"password" binding:"required" example:"s3cret-pass"`
}

// LoginResponse carries the auth token plus the user's last saved watch list.
type LoginResponse struct {
	Token            string   `json:"token" example:"9944b09199c62bcf9418ad846dd0e4bbdfc6ee4b"`
	UserName         string   `json:"user_name" example:"jdoe"`
	UserEmail        string   `json:"user_email" example:"jdoe@example.com"`
	FirstName        string   `json:"first_name" example:"John"`
	LastName         string   `json:"last_name" example:"Doe"`
	WatchListSymbols []string `json:"watch_list_symbols"`
}
