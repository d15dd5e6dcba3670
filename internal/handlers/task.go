package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rajtharani77/BlackBuck-pro/internal/models"
	"github.com/rajtharani77/BlackBuck-pro/internal/policy"
	"github.com/rajtharani77/BlackBuck-pro/internal/utils"
)

type CreateTaskRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	ProjectID       uint   `json:"projectId"`
	AssignedToEmail string `json:"assignedToEmail"`
	DueDate         string `json:"dueDate"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status"`
}

type TaskAssigneeResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type TaskResponse struct {
	ID          uint                  `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Status      models.TaskStatus     `json:"status"`
	ProjectID   uint                  `json:"projectId"`
	AssignedTo  *TaskAssigneeResponse `json:"assignedTo"`
	DueDate     *time.Time            `json:"dueDate"`
	CreatedAt   time.Time             `json:"createdAt"`
}

func taskResponse(task models.Task) TaskResponse {
	response := TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		ProjectID:   task.ProjectID,
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
	}

	if task.AssignedTo != nil {
		response.AssignedTo = &TaskAssigneeResponse{
			ID:    task.AssignedTo.ID,
			Name:  task.AssignedTo.Name,
			Email: task.AssignedTo.Email,
		}
	}

	return response
}

// CreateTask creates a task in TODO. The assignee is resolved from an email
// address; an unknown email fails the whole create rather than leaving the
// task silently unassigned.
func (h *Handler) CreateTask(ctx *gin.Context) {
	var body CreateTaskRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if body.Title == "" || body.ProjectID == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Title and Project ID are required"})
		return
	}

	var assignedToID *uint

	if body.AssignedToEmail != "" {
		var assignee models.User

		err := h.DB.Where("email = ?", body.AssignedToEmail).First(&assignee).Error

		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{
					"error": fmt.Sprintf("User with email %s not found", body.AssignedToEmail),
				})
				return
			}
			log.Printf("Failed to resolve assignee: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
			return
		}

		assignedToID = &assignee.ID
	}

	var dueDate *time.Time

	if body.DueDate != "" {
		parsed, err := time.Parse(time.RFC3339, body.DueDate)

		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid due date"})
			return
		}

		dueDate = &parsed
	}

	task := models.Task{
		Title:        body.Title,
		Description:  body.Description,
		Status:       models.StatusTodo,
		ProjectID:    body.ProjectID,
		AssignedToID: assignedToID,
		DueDate:      dueDate,
	}

	if err := h.DB.Create(&task).Error; err != nil {
		log.Printf("Failed to create task: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	if task.AssignedToID != nil {
		var assignee models.User

		if err := h.DB.First(&assignee, *task.AssignedToID).Error; err != nil {
			log.Printf("Failed to load assignee for task %d: %v", task.ID, err)
		} else {
			task.AssignedTo = &assignee
		}
	}

	BroadcastRefresh(strconv.FormatUint(uint64(task.ProjectID), 10))

	ctx.JSON(http.StatusCreated, taskResponse(task))
}

// ListTasks returns a project's tasks, newest first.
func (h *Handler) ListTasks(ctx *gin.Context) {
	projectID := ctx.Param("id")

	var tasks []models.Task

	err := h.DB.Preload("AssignedTo").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&tasks).Error

	if err != nil {
		log.Printf("Failed to retrieve tasks: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	response := make([]TaskResponse, 0, len(tasks))

	for _, task := range tasks {
		response = append(response, taskResponse(task))
	}

	ctx.JSON(http.StatusOK, response)
}

// UpdateTaskStatus moves a task to a new status. The three statuses form a
// flat set, so any status may follow any other, including itself. The task
// must exist before authorization is evaluated.
func (h *Handler) UpdateTaskStatus(ctx *gin.Context) {
	identity, err := utils.CurrentIdentity(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body UpdateTaskStatusRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	status, ok := models.ParseTaskStatus(body.Status)

	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	var task models.Task
	taskID := ctx.Param("id")

	if err := h.DB.Preload("Project").Where("id = ?", taskID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			log.Printf("Failed to retrieve task: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed"})
		}
		return
	}

	if !policy.CanUpdateTaskStatus(identity, task) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to update this task"})
		return
	}

	task.Status = status

	if err := h.DB.Model(&task).Update("status", status).Error; err != nil {
		log.Printf("Failed to update task %d: %v", task.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed"})
		return
	}

	if task.AssignedToID != nil {
		var assignee models.User

		if err := h.DB.First(&assignee, *task.AssignedToID).Error; err != nil {
			log.Printf("Failed to load assignee for task %d: %v", task.ID, err)
		} else {
			task.AssignedTo = &assignee
		}
	}

	BroadcastRefresh(strconv.FormatUint(uint64(task.ProjectID), 10))

	ctx.JSON(http.StatusOK, taskResponse(task))
}
