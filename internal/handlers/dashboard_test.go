package handlers_test

import (
	"net/http"
	"testing"
)

type statsPayload struct {
	Message string           `json:"message"`
	Stats   map[string]int64 `json:"stats"`
}

func dashboardStats(t *testing.T, api *testAPI, token string) statsPayload {
	t.Helper()

	w := api.do(t, http.MethodGet, "/api/dashboard/stats", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("stats status %d: %s", w.Code, w.Body.String())
	}

	var stats statsPayload
	decodeJSON(t, w, &stats)
	return stats
}

func TestDashboardStatsPerRole(t *testing.T) {
	api := newTestAPI(t)
	_, managerToken := api.register(t, "Mandy", "mandy@example.com", "MANAGER")
	_, userToken := api.register(t, "Uri", "uri@example.com", "USER")

	project := api.createProject(t, managerToken, map[string]any{"name": "Alpha"})
	api.createTask(t, managerToken, map[string]any{
		"title":           "Open",
		"projectId":       project.ID,
		"assignedToEmail": "uri@example.com",
	})

	admin := dashboardStats(t, api, api.adminToken(t))
	if admin.Message != "Admin Stats: Total Users, Active Projects" {
		t.Errorf("admin message %q", admin.Message)
	}
	if admin.Stats["total_users"] != 3 || admin.Stats["total_projects"] != 1 {
		t.Errorf("admin stats %+v", admin.Stats)
	}

	manager := dashboardStats(t, api, managerToken)
	if manager.Message != "Manager Stats: Team Performance, Project Status" {
		t.Errorf("manager message %q", manager.Message)
	}
	if manager.Stats["managed_projects"] != 1 || manager.Stats["open_tasks"] != 1 {
		t.Errorf("manager stats %+v", manager.Stats)
	}

	user := dashboardStats(t, api, userToken)
	if user.Message != "User Stats: My Pending Tasks" {
		t.Errorf("user message %q", user.Message)
	}
	if user.Stats["pending_tasks"] != 1 {
		t.Errorf("user stats %+v", user.Stats)
	}
}

func TestDashboardStatsRequiresSession(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/dashboard/stats", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401: %s", w.Code, w.Body.String())
	}
}
