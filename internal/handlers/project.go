package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rajtharani77/BlackBuck-pro/internal/models"
	"github.com/rajtharani77/BlackBuck-pro/internal/policy"
	"github.com/rajtharani77/BlackBuck-pro/internal/utils"
)

type CreateProjectRequest struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	MemberIDs         []uint `json:"memberIds"`
	AssignedManagerID uint   `json:"assignedManagerId"`
}

type ProjectManagerResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ProjectMemberResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ProjectResponse struct {
	ID          uint                    `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	ManagerID   uint                    `json:"managerId"`
	Manager     ProjectManagerResponse  `json:"manager"`
	Members     []ProjectMemberResponse `json:"members"`
	CreatedAt   time.Time               `json:"createdAt"`
}

func projectResponse(project models.Project) ProjectResponse {
	members := make([]ProjectMemberResponse, 0, len(project.Memberships))

	for _, membership := range project.Memberships {
		members = append(members, ProjectMemberResponse{
			ID:   membership.User.ID,
			Name: membership.User.Name,
		})
	}

	return ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		ManagerID:   project.ManagerID,
		Manager: ProjectManagerResponse{
			Name:  project.Manager.Name,
			Email: project.Manager.Email,
		},
		Members:   members,
		CreatedAt: project.CreatedAt,
	}
}

// CreateProject creates a project managed by the requester. An ADMIN may
// hand the project to another manager instead. Member attachment is
// best-effort after the project row exists; there is no rollback.
func (h *Handler) CreateProject(ctx *gin.Context) {
	var body CreateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if body.Name == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Project name is required"})
		return
	}

	identity, err := utils.CurrentIdentity(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	managerID := identity.ID

	if body.AssignedManagerID != 0 && policy.CanAssignManager(identity) {
		managerID = body.AssignedManagerID
	}

	project := models.Project{
		Name:        body.Name,
		Description: body.Description,
		ManagerID:   managerID,
	}

	if err := h.DB.Create(&project).Error; err != nil {
		log.Printf("Failed to create project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	for _, memberID := range body.MemberIDs {
		membership := models.ProjectMembership{
			UserID:    memberID,
			ProjectID: project.ID,
		}

		if err := h.DB.Create(&membership).Error; err != nil {
			log.Printf("Failed to attach member %d to project %d: %v", memberID, project.ID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
			return
		}
	}

	if err := h.DB.Preload("Manager").Preload("Memberships.User").First(&project, project.ID).Error; err != nil {
		log.Printf("Failed to reload project %d: %v", project.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	ctx.JSON(http.StatusCreated, projectResponse(project))
}

// ListProjects returns the projects visible to the requester, newest first.
func (h *Handler) ListProjects(ctx *gin.Context) {
	identity, err := utils.CurrentIdentity(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var projects []models.Project

	err = h.DB.Scopes(policy.VisibleProjects(identity)).
		Preload("Manager").
		Preload("Memberships.User").
		Order("created_at DESC").
		Find(&projects).Error

	if err != nil {
		log.Printf("Failed to retrieve projects: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	response := make([]ProjectResponse, 0, len(projects))

	for _, project := range projects {
		response = append(response, projectResponse(project))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *Handler) GetProject(ctx *gin.Context) {
	var project models.Project
	projectID := ctx.Param("id")

	err := h.DB.Preload("Manager").Preload("Memberships.User").
		Where("id = ?", projectID).
		First(&project).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			log.Printf("Failed to retrieve project: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	ctx.JSON(http.StatusOK, projectResponse(project))
}
