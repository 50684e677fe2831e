package httpapi

import (
	"github.com/mycompany/credit-platform/internal/authservice/models"
	"github.com/mycompany/credit-platform/internal/authservice/services"
)

type registerRequest struct {
	Document string `json:"document" binding:"required,min=5,max=32"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Salary   string `json:"salary" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// authResponse is the body returned by register and login.
type authResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	UserID    int64  `json:"userId"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Message   string `json:"message,omitempty"`
}

func newAuthResponse(res *services.AuthResult, message string) authResponse {
	return authResponse{
		Token:     res.Token,
		TokenType: "Bearer",
		UserID:    res.User.ID,
		Email:     res.User.Email,
		Name:      res.User.Name,
		Role:      string(res.User.Role),
		Message:   message,
	}
}

// userResponse is the account view served to other platform services and
// administrators. It never carries the password hash.
type userResponse struct {
	UserID   int64  `json:"userId"`
	Document string `json:"document"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Status   string `json:"status"`
	Salary   int64  `json:"salary"`
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{
		UserID:   u.ID,
		Document: u.Document,
		Name:     u.Name,
		Email:    u.Email,
		Role:     string(u.Role),
		Status:   string(u.Status),
		Salary:   u.Salary,
	}
}
