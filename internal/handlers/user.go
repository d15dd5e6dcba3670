package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rajtharani77/BlackBuck-pro/internal/models"
	"github.com/rajtharani77/BlackBuck-pro/internal/policy"
	"github.com/rajtharani77/BlackBuck-pro/internal/types"
	"github.com/rajtharani77/BlackBuck-pro/internal/utils"
)

// ListUsers returns the users visible to the requester: everyone for an
// ADMIN, everyone but ADMIN accounts for a MANAGER. Plain users are denied.
func (h *Handler) ListUsers(ctx *gin.Context) {
	identity, err := utils.CurrentIdentity(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if !policy.CanListUsers(identity) {
		ctx.JSON(http.StatusForbidden, gin.H{
			"error": "User role " + string(identity.Role) + " is not authorized to access this route",
		})
		return
	}

	var users []models.User

	if err := h.DB.Scopes(policy.VisibleUsers(identity)).Order("name ASC").Find(&users).Error; err != nil {
		log.Printf("Failed to fetch users: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	response := make([]types.UserResponse, 0, len(users))

	for _, user := range users {
		response = append(response, types.UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		})
	}

	ctx.JSON(http.StatusOK, response)
}
