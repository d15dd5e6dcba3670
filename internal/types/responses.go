package types

import "github.com/rajtharani77/BlackBuck-pro/internal/models"

type UserResponse struct {
	ID    uint        `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}
