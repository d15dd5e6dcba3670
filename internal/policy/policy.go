// Package policy is the single place role-based access decisions live.
// Handlers and middleware consult it instead of branching on roles
// themselves, so the policy table cannot drift between call sites.
package policy

import (
	"gorm.io/gorm"

	"github.com/rajtharani77/BlackBuck-pro/internal/models"
)

// Identity is the resolved requester for the current operation.
type Identity struct {
	ID    uint
	Name  string
	Email string
	Role  models.Role
}

// CanCreateProject allows ADMIN and MANAGER.
func CanCreateProject(u Identity) bool {
	return u.Role == models.RoleAdmin || u.Role == models.RoleManager
}

// CanAssignManager allows only ADMIN to hand a new project to a manager
// other than themselves.
func CanAssignManager(u Identity) bool {
	return u.Role == models.RoleAdmin
}

// CanCreateTask allows ADMIN and MANAGER, on any project.
func CanCreateTask(u Identity) bool {
	return u.Role == models.RoleAdmin || u.Role == models.RoleManager
}

// CanListUsers allows ADMIN and MANAGER; plain users see nobody.
func CanListUsers(u Identity) bool {
	return u.Role == models.RoleAdmin || u.Role == models.RoleManager
}

// VisibleUsers scopes a user query to what the requester may see: ADMIN
// gets everyone, MANAGER everyone except ADMIN accounts.
func VisibleUsers(u Identity) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if u.Role == models.RoleManager {
			return db.Where("role <> ?", models.RoleAdmin)
		}
		return db
	}
}

// VisibleProjects scopes a project query: ADMIN sees all projects,
// MANAGER the ones they manage, USER the ones they are a member of.
func VisibleProjects(u Identity) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch u.Role {
		case models.RoleAdmin:
			return db
		case models.RoleManager:
			return db.Where("manager_id = ?", u.ID)
		default:
			return db.Where(
				"projects.id IN (SELECT project_id FROM project_memberships WHERE user_id = ? AND deleted_at IS NULL)",
				u.ID,
			)
		}
	}
}

// CanUpdateTaskStatus implements the status-update rule. Resolution order:
// ADMIN may touch any task; a MANAGER only tasks in projects they manage;
// anyone else only tasks assigned to them. task.Project must be loaded.
func CanUpdateTaskStatus(u Identity, task models.Task) bool {
	if u.Role == models.RoleAdmin {
		return true
	}
	if u.Role == models.RoleManager && task.Project.ManagerID == u.ID {
		return true
	}
	return task.AssignedToID != nil && *task.AssignedToID == u.ID
}
