package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rajtharani77/BlackBuck-pro/internal/models"
	"github.com/rajtharani77/BlackBuck-pro/internal/utils"
)

// DashboardStats returns a role-specific summary. The message strings are
// part of the client contract; the counts supplement them.
func (h *Handler) DashboardStats(ctx *gin.Context) {
	identity, err := utils.CurrentIdentity(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	switch identity.Role {
	case models.RoleAdmin:
		var totalUsers, totalProjects int64

		if err := h.DB.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
			h.dashboardError(ctx, err)
			return
		}
		if err := h.DB.Model(&models.Project{}).Count(&totalProjects).Error; err != nil {
			h.dashboardError(ctx, err)
			return
		}

		ctx.JSON(http.StatusOK, gin.H{
			"message": "Admin Stats: Total Users, Active Projects",
			"stats": gin.H{
				"total_users":    totalUsers,
				"total_projects": totalProjects,
			},
		})
	case models.RoleManager:
		var managedProjects, openTasks int64

		if err := h.DB.Model(&models.Project{}).Where("manager_id = ?", identity.ID).Count(&managedProjects).Error; err != nil {
			h.dashboardError(ctx, err)
			return
		}

		err := h.DB.Model(&models.Task{}).
			Where("status <> ?", models.StatusDone).
			Where("project_id IN (SELECT id FROM projects WHERE manager_id = ? AND deleted_at IS NULL)", identity.ID).
			Count(&openTasks).Error
		if err != nil {
			h.dashboardError(ctx, err)
			return
		}

		ctx.JSON(http.StatusOK, gin.H{
			"message": "Manager Stats: Team Performance, Project Status",
			"stats": gin.H{
				"managed_projects": managedProjects,
				"open_tasks":       openTasks,
			},
		})
	default:
		var pendingTasks int64

		err := h.DB.Model(&models.Task{}).
			Where("assigned_to_id = ?", identity.ID).
			Where("status <> ?", models.StatusDone).
			Count(&pendingTasks).Error
		if err != nil {
			h.dashboardError(ctx, err)
			return
		}

		ctx.JSON(http.StatusOK, gin.H{
			"message": "User Stats: My Pending Tasks",
			"stats": gin.H{
				"pending_tasks": pendingTasks,
			},
		})
	}
}

func (h *Handler) dashboardError(ctx *gin.Context, err error) {
	log.Printf("Failed to compute dashboard stats: %v", err)
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
}
